package service

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/nawa-notice-api/internal/models"
	appErrors "github.com/noah-isme/nawa-notice-api/pkg/errors"
)

func exportLister() *stubLister {
	n := enriched("n1", models.CategoryExam, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	n.Title = "Mid-term exams"
	n.Description = "Timetable attached"
	n.Attachments = []string{"timetable.pdf"}
	return &stubLister{today: time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), notices: []models.EnrichedNotice{n}}
}

func TestExportCSV(t *testing.T) {
	lister := exportLister()
	svc := NewExportService(lister, nil)

	file, err := svc.Export(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "notices-2024-03-16.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)
	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Category,Audience,Title,Description,Posted By,Attachments", lines[0])
	assert.Equal(t, "2024-03-15,Exam,All,Mid-term exams,Timetable attached,Principal Rao,timetable.pdf", lines[1])
	assert.Equal(t, []models.Role{models.RoleAdmin}, lister.roles)
}

func TestExportPDF(t *testing.T) {
	svc := NewExportService(exportLister(), nil)

	file, err := svc.Export(context.Background(), "PDF")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(exportLister(), nil)

	_, err := svc.Export(context.Background(), "xlsx")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}
