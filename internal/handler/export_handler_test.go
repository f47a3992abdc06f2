package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/nawa-notice-api/internal/service"
	appErrors "github.com/noah-isme/nawa-notice-api/pkg/errors"
)

type exportServiceMock struct {
	format string
	err    error
}

func (m *exportServiceMock) Export(ctx context.Context, format string) (*service.ExportFile, error) {
	m.format = format
	if m.err != nil {
		return nil, m.err
	}
	return &service.ExportFile{Filename: "notices-2024-03-16.csv", ContentType: "text/csv", Data: []byte("Date\n")}, nil
}

func TestExportHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &exportServiceMock{}
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/export?format=csv", nil)

	NewExportHandler(svc).Export(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "csv", svc.format)
	assert.Equal(t, `attachment; filename="notices-2024-03-16.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Date\n", rec.Body.String())
}

func TestExportHandlerRejectsUnknownFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/export?format=xlsx", nil)

	NewExportHandler(&exportServiceMock{err: appErrors.Clone(appErrors.ErrValidation, "unsupported export format")}).Export(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
}
