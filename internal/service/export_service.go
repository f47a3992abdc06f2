package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/nawa-notice-api/internal/models"
	appErrors "github.com/noah-isme/nawa-notice-api/pkg/errors"
	"github.com/noah-isme/nawa-notice-api/pkg/export"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var noticeExportHeaders = []string{"Date", "Category", "Audience", "Title", "Description", "Posted By", "Attachments"}

type renderer interface {
	Render(data export.Dataset) ([]byte, error)
	ContentType() string
	Extension() string
}

// ExportFile is a rendered export ready to be sent to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders the admin-visible notice listing as CSV or PDF.
type ExportService struct {
	notices   roleLister
	renderers map[string]renderer
	logger    *zap.Logger
}

// NewExportService constructs an ExportService with the default renderers.
func NewExportService(notices roleLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		notices: notices,
		renderers: map[string]renderer{
			ExportFormatCSV: export.NewCSVExporter(),
			ExportFormatPDF: export.NewPDFExporter(map[string]float64{"Description": 3, "Title": 2}),
		},
		logger: logger,
	}
}

// Export renders every notice visible to admins in format.
func (s *ExportService) Export(ctx context.Context, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	r, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	notices, err := s.notices.ListForRole(ctx, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	today := s.notices.Today()
	data, err := r.Render(NoticeDataset(notices, "School Notices "+models.DayKey(today)))
	if err != nil {
		s.logger.Error("render export failed", zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render export failed")
	}

	return &ExportFile{
		Filename:    fmt.Sprintf("notices-%s.%s", models.DayKey(today), r.Extension()),
		ContentType: r.ContentType(),
		Data:        data,
	}, nil
}

// NoticeDataset flattens notices into an export table.
func NoticeDataset(notices []models.EnrichedNotice, title string) export.Dataset {
	rows := make([]map[string]string, 0, len(notices))
	for _, n := range notices {
		rows = append(rows, map[string]string{
			"Date":        models.DayKey(n.Date),
			"Category":    n.Category,
			"Audience":    string(n.Audience),
			"Title":       n.Title,
			"Description": n.Description,
			"Posted By":   n.AdminName,
			"Attachments": strings.Join(n.Attachments, "; "),
		})
	}
	return export.Dataset{Title: title, Headers: noticeExportHeaders, Rows: rows}
}
