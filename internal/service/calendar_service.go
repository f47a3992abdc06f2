package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/nawa-notice-api/internal/calendar"
	"github.com/noah-isme/nawa-notice-api/internal/models"
	appErrors "github.com/noah-isme/nawa-notice-api/pkg/errors"
)

type roleLister interface {
	ListForRole(ctx context.Context, role models.Role) ([]models.EnrichedNotice, error)
	Today() time.Time
}

// CalendarService lays role listings out on month grids.
type CalendarService struct {
	notices roleLister
	logger  *zap.Logger
}

// NewCalendarService constructs the service.
func NewCalendarService(notices roleLister, logger *zap.Logger) *CalendarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{notices: notices, logger: logger}
}

// Month builds the grid for year/month. A zero year or month selects the
// current one in the school timezone.
func (s *CalendarService) Month(ctx context.Context, role models.Role, year int, month time.Month) (*calendar.Month, error) {
	today := s.notices.Today()
	if year == 0 {
		year = today.Year()
	}
	if month == 0 {
		month = today.Month()
	}
	if month < time.January || month > time.December {
		return nil, appErrors.Clone(appErrors.ErrValidation, "month must be between 1 and 12")
	}
	if year < 1970 || year > 9999 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "year out of range")
	}

	notices, err := s.notices.ListForRole(ctx, role)
	if err != nil {
		return nil, err
	}
	grid := calendar.BuildMonth(year, month, notices, today)
	return &grid, nil
}

// Day returns the notices visible to role on the given calendar day.
func (s *CalendarService) Day(ctx context.Context, role models.Role, day time.Time) ([]models.EnrichedNotice, error) {
	if day.IsZero() {
		day = s.notices.Today()
	}
	notices, err := s.notices.ListForRole(ctx, role)
	if err != nil {
		return nil, err
	}
	return calendar.NoticesOn(notices, day), nil
}
