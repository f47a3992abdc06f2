package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/nawa-notice-api/internal/models"
)

const noticeColumns = `id, admin_id, category, audience, title, description, attachments, date, created_at`

// noticeRow maps the notices table; attachments live in a TEXT[] column.
type noticeRow struct {
	ID          string         `db:"id"`
	AdminID     string         `db:"admin_id"`
	Category    string         `db:"category"`
	Audience    string         `db:"audience"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Attachments pq.StringArray `db:"attachments"`
	Date        time.Time      `db:"date"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r noticeRow) toModel() models.Notice {
	n := models.Notice{
		ID:          r.ID,
		AdminID:     r.AdminID,
		Category:    r.Category,
		Audience:    models.Audience(r.Audience),
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date.UTC(),
		CreatedAt:   r.CreatedAt.UTC(),
	}
	if len(r.Attachments) > 0 {
		n.Attachments = []string(r.Attachments)
	}
	return n
}

// NoticeRepository stores notices in PostgreSQL.
type NoticeRepository struct {
	db *sqlx.DB
}

// NewNoticeRepository creates the repository.
func NewNoticeRepository(db *sqlx.DB) *NoticeRepository {
	return &NoticeRepository{db: db}
}

// List returns notices addressed to any of the filter's audiences, newest day first
// and in insertion order within a day.
func (r *NoticeRepository) List(ctx context.Context, filter models.NoticeFilter) ([]models.Notice, error) {
	audiences := make([]string, 0, len(filter.Audiences))
	for _, a := range filter.Audiences {
		audiences = append(audiences, string(a))
	}

	query := `SELECT ` + noticeColumns + ` FROM notices WHERE audience = ANY($1) ORDER BY date DESC, created_at ASC`
	var rows []noticeRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(audiences)); err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}

	notices := make([]models.Notice, 0, len(rows))
	for _, row := range rows {
		notices = append(notices, row.toModel())
	}
	return notices, nil
}

// GetByID fetches a single notice.
func (r *NoticeRepository) GetByID(ctx context.Context, id string) (*models.Notice, error) {
	query := `SELECT ` + noticeColumns + ` FROM notices WHERE id = $1`
	var row noticeRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("get notice: %w", err)
	}
	n := row.toModel()
	return &n, nil
}

// Create inserts the notice, assigning an id and creation time when missing.
func (r *NoticeRepository) Create(ctx context.Context, notice *models.Notice) error {
	if notice.ID == "" {
		notice.ID = uuid.NewString()
	}
	if notice.CreatedAt.IsZero() {
		notice.CreatedAt = time.Now().UTC()
	}
	attachments := notice.Attachments
	if attachments == nil {
		attachments = []string{}
	}

	const query = `INSERT INTO notices (id, admin_id, category, audience, title, description, attachments, date, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := r.db.ExecContext(ctx, query,
		notice.ID,
		notice.AdminID,
		notice.Category,
		string(notice.Audience),
		notice.Title,
		notice.Description,
		pq.Array(attachments),
		notice.Date,
		notice.CreatedAt,
	); err != nil {
		return fmt.Errorf("create notice: %w", err)
	}
	return nil
}

// Delete removes the notice and returns the deleted record.
func (r *NoticeRepository) Delete(ctx context.Context, id string) (*models.Notice, error) {
	query := `DELETE FROM notices WHERE id = $1 RETURNING ` + noticeColumns
	var row noticeRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("delete notice: %w", err)
	}
	n := row.toModel()
	return &n, nil
}

// AttachmentInUse reports whether any stored notice still lists the file name.
func (r *NoticeRepository) AttachmentInUse(ctx context.Context, name string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM notices WHERE $1 = ANY(attachments))`
	var inUse bool
	if err := r.db.GetContext(ctx, &inUse, query, name); err != nil {
		return false, fmt.Errorf("check attachment references: %w", err)
	}
	return inUse, nil
}

// Ping verifies the database connection for readiness checks.
func (r *NoticeRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
