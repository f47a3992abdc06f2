package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/nawa-notice-api/internal/models"
)

const defaultEnrichConcurrency = 8

type adminRepository interface {
	FindByID(ctx context.Context, id string) (*models.Admin, error)
}

// NoticeEnricher joins notices with their author's display name.
type NoticeEnricher struct {
	admins      adminRepository
	concurrency int
	metrics     *MetricsService
	logger      *zap.Logger
}

// NewNoticeEnricher constructs the enricher. concurrency bounds parallel author lookups.
func NewNoticeEnricher(admins adminRepository, concurrency int, metrics *MetricsService, logger *zap.Logger) *NoticeEnricher {
	if concurrency <= 0 {
		concurrency = defaultEnrichConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoticeEnricher{admins: admins, concurrency: concurrency, metrics: metrics, logger: logger}
}

// Enrich wraps raw notices and resolves their authors.
func (e *NoticeEnricher) Enrich(ctx context.Context, notices []models.Notice) []models.EnrichedNotice {
	out := make([]models.EnrichedNotice, len(notices))
	for i, n := range notices {
		out[i] = models.EnrichedNotice{Notice: n}
	}
	return e.EnrichAll(ctx, out)
}

// EnrichAll fills AdminName and truncates Date to its calendar day, preserving
// order. Records that already carry a name are left alone, so the call is
// idempotent. Each distinct author is looked up once; failed lookups degrade
// to "Unknown" for that record only.
func (e *NoticeEnricher) EnrichAll(ctx context.Context, notices []models.EnrichedNotice) []models.EnrichedNotice {
	out := make([]models.EnrichedNotice, len(notices))
	copy(out, notices)

	pending := make(map[string]struct{})
	for i := range out {
		out[i].Date = models.CalendarDay(out[i].Date)
		if out[i].AdminName == "" && out[i].AdminID != "" {
			pending[out[i].AdminID] = struct{}{}
		}
	}

	names := e.lookup(ctx, pending)

	for i := range out {
		if out[i].AdminName != "" {
			continue
		}
		if name := names[out[i].AdminID]; name != "" {
			out[i].AdminName = name
		} else {
			out[i].AdminName = models.UnknownAdminName
		}
	}
	return out
}

func (e *NoticeEnricher) lookup(ctx context.Context, ids map[string]struct{}) map[string]string {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 || e.admins == nil {
		return names
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for id := range ids {
		id := id
		g.Go(func() error {
			admin, err := e.admins.FindByID(gctx, id)
			switch {
			case err == nil && admin != nil:
				e.metrics.RecordAdminLookup("found")
				mu.Lock()
				names[id] = admin.Name
				mu.Unlock()
			case errors.Is(err, models.ErrRecordNotFound) || (err == nil && admin == nil):
				e.metrics.RecordAdminLookup("missing")
			default:
				e.metrics.RecordAdminLookup("error")
				e.logger.Warn("admin lookup failed", zap.String("admin_id", id), zap.Error(err))
			}
			// Lookup failures degrade per record and never cancel siblings.
			return nil
		})
	}
	_ = g.Wait()
	return names
}
