package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/nawa-notice-api/internal/calendar"
	"github.com/noah-isme/nawa-notice-api/internal/middleware"
	"github.com/noah-isme/nawa-notice-api/internal/models"
	appErrors "github.com/noah-isme/nawa-notice-api/pkg/errors"
	"github.com/noah-isme/nawa-notice-api/pkg/response"
)

type calendarService interface {
	Month(ctx context.Context, role models.Role, year int, month time.Month) (*calendar.Month, error)
	Day(ctx context.Context, role models.Role, day time.Time) ([]models.EnrichedNotice, error)
}

// CalendarHandler exposes the month grid and the selected-day panel.
type CalendarHandler struct {
	service calendarService
}

// NewCalendarHandler constructs the handler.
func NewCalendarHandler(service calendarService) *CalendarHandler {
	return &CalendarHandler{service: service}
}

// Month godoc
// @Summary Month grid of notices for the session role
// @Tags Calendar
// @Produce json
// @Param year query int false "Year, defaults to the current year"
// @Param month query int false "Month 1-12, defaults to the current month"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /api/v1/notices/calendar [get]
func (h *CalendarHandler) Month(c *gin.Context) {
	year, err := queryInt(c, "year", 0)
	if err != nil {
		response.Error(c, err)
		return
	}
	month, err := queryInt(c, "month", 0)
	if err != nil {
		response.Error(c, err)
		return
	}

	grid, err := h.service.Month(c.Request.Context(), middleware.RoleFromContext(c), year, time.Month(month))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil, middleware.ResponseMeta(c))
}

// Day godoc
// @Summary Notices on one calendar day
// @Tags Calendar
// @Produce json
// @Param date query string false "Day (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /api/v1/notices/calendar/day [get]
func (h *CalendarHandler) Day(c *gin.Context) {
	day, err := parseDay(c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	notices, err := h.service.Day(c.Request.Context(), middleware.RoleFromContext(c), day)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notices, nil, middleware.ResponseMeta(c))
}

func parseDay(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "invalid date, expected YYYY-MM-DD")
	}
	return parsed, nil
}
