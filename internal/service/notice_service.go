package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/nawa-notice-api/internal/models"
	appErrors "github.com/noah-isme/nawa-notice-api/pkg/errors"
	"github.com/noah-isme/nawa-notice-api/pkg/jobs"
	"github.com/noah-isme/nawa-notice-api/pkg/pagination"
	"github.com/noah-isme/nawa-notice-api/pkg/storage"
)

const maxPageSize = 100

// JobRemoveAttachment is the job type that deletes a stored attachment file.
const JobRemoveAttachment = "remove_attachment"

type noticeRepository interface {
	List(ctx context.Context, filter models.NoticeFilter) ([]models.Notice, error)
	GetByID(ctx context.Context, id string) (*models.Notice, error)
	Create(ctx context.Context, notice *models.Notice) error
	Delete(ctx context.Context, id string) (*models.Notice, error)
	attachmentReferences
}

// attachmentReferences reports whether any stored notice still names a file.
// Attachments keep their original names, so two notices can share one file.
type attachmentReferences interface {
	AttachmentInUse(ctx context.Context, name string) (bool, error)
}

type attachmentStore interface {
	SaveStream(filename string, r io.Reader) (string, error)
	Delete(filename string) error
}

type cleanupQueue interface {
	Enqueue(job jobs.Job) error
}

// CreateNoticeRequest is the admin form for posting a notice.
type CreateNoticeRequest struct {
	Category    string `form:"noticecategory" json:"noticecategory" validate:"required"`
	Audience    string `form:"targetaudience" json:"targetaudience" validate:"required,notice_audience"`
	Title       string `form:"noticetitle" json:"noticetitle" validate:"required"`
	Description string `form:"noticedes" json:"noticedes" validate:"required"`
}

// Upload is an attachment received with a create request.
type Upload struct {
	Filename string
	Body     io.Reader
}

// NoticePage is one page of a role listing.
type NoticePage struct {
	Items      []models.EnrichedNotice
	Pagination models.Pagination
	CacheHit   bool
}

// NoticeService implements listing, creation and deletion of notices.
type NoticeService struct {
	repo      noticeRepository
	enricher  *NoticeEnricher
	files     attachmentStore
	cleanup   cleanupQueue
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	loc       *time.Location
	pageSize  int
	now       func() time.Time
}

// NewNoticeService wires the service. files and cache may be nil; loc is the
// school timezone used to decide which day a notice is posted on.
func NewNoticeService(
	repo noticeRepository,
	enricher *NoticeEnricher,
	files attachmentStore,
	cache *CacheService,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	loc *time.Location,
	pageSize int,
) *NoticeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	if pageSize <= 0 {
		pageSize = pagination.DefaultPageSize
	}
	if enricher == nil {
		enricher = NewNoticeEnricher(nil, 0, metrics, logger)
	}
	svc := &NoticeService{
		repo:      repo,
		enricher:  enricher,
		files:     files,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		loc:       loc,
		pageSize:  pageSize,
		now:       time.Now,
	}
	_ = svc.validator.RegisterValidation("notice_audience", func(fl validator.FieldLevel) bool {
		return models.Audience(fl.Field().String()).Valid()
	})
	return svc
}

// Location returns the school timezone.
func (s *NoticeService) Location() *time.Location {
	return s.loc
}

// Today returns the current calendar day in the school timezone.
func (s *NoticeService) Today() time.Time {
	return models.DayIn(s.now(), s.loc)
}

// ListForRole returns every notice visible to role, enriched, newest day first.
func (s *NoticeService) ListForRole(ctx context.Context, role models.Role) ([]models.EnrichedNotice, error) {
	notices, _, err := s.list(ctx, role)
	return notices, err
}

// ListPage returns one page of the role listing. Out-of-range pages are empty.
func (s *NoticeService) ListPage(ctx context.Context, role models.Role, page, size int) (*NoticePage, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = s.pageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	notices, hit, err := s.list(ctx, role)
	if err != nil {
		return nil, err
	}
	return &NoticePage{
		Items: pagination.Paginate(notices, page, size),
		Pagination: models.Pagination{
			Page:       page,
			PageSize:   size,
			TotalCount: len(notices),
			TotalPages: pagination.TotalPages(len(notices), size),
		},
		CacheHit: hit,
	}, nil
}

func (s *NoticeService) list(ctx context.Context, role models.Role) ([]models.EnrichedNotice, bool, error) {
	key := ListingKey(role)
	var cached []models.EnrichedNotice
	if s.cache.Get(ctx, key, &cached) {
		if cached == nil {
			cached = []models.EnrichedNotice{}
		}
		return cached, true, nil
	}

	start := time.Now()
	raw, err := s.repo.List(ctx, models.NoticeFilter{Audiences: models.VisibleAudiences(role)})
	s.metrics.ObserveDBQuery("list_notices", time.Since(start), err)
	if err != nil {
		s.logger.Error("list notices failed", zap.String("role", string(role)), zap.Error(err))
		return nil, false, appErrors.StoreUnavailable(err, "")
	}

	enriched := s.enricher.Enrich(ctx, raw)
	s.cache.Set(ctx, key, enriched, 0)
	return enriched, false, nil
}

// Get returns one notice if role may read it. Notices addressed elsewhere are
// reported as not found so their existence is not revealed.
func (s *NoticeService) Get(ctx context.Context, role models.Role, id string) (*models.EnrichedNotice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Notice not found")
	}

	start := time.Now()
	notice, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, models.ErrRecordNotFound) {
		s.metrics.ObserveDBQuery("get_notice", time.Since(start), nil)
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "Notice not found")
	}
	s.metrics.ObserveDBQuery("get_notice", time.Since(start), err)
	if err != nil {
		s.logger.Error("get notice failed", zap.String("notice_id", id), zap.Error(err))
		return nil, appErrors.StoreUnavailable(err, "")
	}
	if !role.CanSee(notice.Audience) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Notice not found")
	}

	enriched := s.enricher.Enrich(ctx, []models.Notice{*notice})
	return &enriched[0], nil
}

// Create validates and stores a new notice dated today in the school timezone.
// The attachment, when present, is stored under its original file name.
func (s *NoticeService) Create(ctx context.Context, adminID string, req CreateNoticeRequest, upload *Upload) (*models.Notice, error) {
	req.Category = strings.TrimSpace(req.Category)
	req.Audience = strings.TrimSpace(req.Audience)
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid notice payload")
	}
	if strings.TrimSpace(adminID) == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "admin session required")
	}

	notice := &models.Notice{
		AdminID:     adminID,
		Category:    req.Category,
		Audience:    models.Audience(req.Audience),
		Title:       req.Title,
		Description: req.Description,
		Date:        s.Today(),
	}

	if upload != nil && upload.Body != nil {
		if s.files == nil {
			return nil, appErrors.Clone(appErrors.ErrInternal, "attachment storage not configured")
		}
		name, err := s.files.SaveStream(upload.Filename, upload.Body)
		if err != nil {
			return nil, attachmentError(err)
		}
		notice.Attachments = []string{name}
	}

	start := time.Now()
	err := s.repo.Create(ctx, notice)
	s.metrics.ObserveDBQuery("create_notice", time.Since(start), err)
	if err != nil {
		s.removeAttachments(ctx, notice.Attachments)
		s.logger.Error("create notice failed", zap.String("admin_id", adminID), zap.Error(err))
		return nil, appErrors.StoreUnavailable(err, "")
	}

	s.cache.InvalidateListings(ctx)
	s.metrics.RecordNoticeMutation("create")
	s.logger.Info("notice created",
		zap.String("notice_id", notice.ID),
		zap.String("admin_id", adminID),
		zap.String("audience", string(notice.Audience)),
		zap.Int("attachments", len(notice.Attachments)),
	)
	return notice, nil
}

// Delete hard-deletes a notice and removes its attachment files.
func (s *NoticeService) Delete(ctx context.Context, id string) (*models.Notice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Notice not found")
	}

	start := time.Now()
	deleted, err := s.repo.Delete(ctx, id)
	if errors.Is(err, models.ErrRecordNotFound) {
		s.metrics.ObserveDBQuery("delete_notice", time.Since(start), nil)
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "Notice not found")
	}
	s.metrics.ObserveDBQuery("delete_notice", time.Since(start), err)
	if err != nil {
		s.logger.Error("delete notice failed", zap.String("notice_id", id), zap.Error(err))
		return nil, appErrors.StoreUnavailable(err, "")
	}

	s.removeAttachments(ctx, deleted.Attachments)
	s.cache.InvalidateListings(ctx)
	s.metrics.RecordNoticeMutation("delete")
	s.logger.Info("notice deleted", zap.String("notice_id", id))
	return deleted, nil
}

// UseCleanupQueue moves attachment removal off the request path. Files are
// removed inline whenever the queue rejects a job.
func (s *NoticeService) UseCleanupQueue(q cleanupQueue) {
	s.cleanup = q
}

func (s *NoticeService) removeAttachments(ctx context.Context, names []string) {
	if s.files == nil {
		return
	}
	for _, name := range names {
		if s.cleanup != nil {
			err := s.cleanup.Enqueue(jobs.Job{Type: JobRemoveAttachment, Target: name})
			if err == nil {
				continue
			}
			s.logger.Warn("cleanup queue rejected attachment, removing inline", zap.String("file", name), zap.Error(err))
		}
		if err := removeUnreferenced(context.WithoutCancel(ctx), s.repo, s.files, name); err != nil {
			s.logger.Warn("remove attachment failed", zap.String("file", name), zap.Error(err))
		}
	}
}

// AttachmentCleanupHandler deletes the file named by a JobRemoveAttachment job
// unless a remaining notice still references it.
func AttachmentCleanupHandler(files attachmentStore, refs attachmentReferences) jobs.Handler {
	return func(ctx context.Context, job jobs.Job) error {
		if job.Type != JobRemoveAttachment {
			return nil
		}
		return removeUnreferenced(ctx, refs, files, job.Target)
	}
}

// removeUnreferenced keeps the file when the reference check itself fails.
func removeUnreferenced(ctx context.Context, refs attachmentReferences, files attachmentStore, name string) error {
	inUse, err := refs.AttachmentInUse(ctx, name)
	if err != nil {
		return fmt.Errorf("check references to %s: %w", name, err)
	}
	if inUse {
		return nil
	}
	return files.Delete(name)
}

func attachmentError(err error) error {
	switch {
	case errors.Is(err, storage.ErrTooLarge):
		return appErrors.Wrap(err, appErrors.ErrPayloadTooLarge.Code, appErrors.ErrPayloadTooLarge.Status, appErrors.ErrPayloadTooLarge.Message)
	case errors.Is(err, storage.ErrInvalidName):
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attachment name")
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store attachment failed")
	}
}
