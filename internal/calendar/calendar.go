// Package calendar lays notices out on a Sunday-first month grid.
//
// Every date in this package is a calendar day expressed as UTC midnight, and
// notices are matched to cells by their UTC YYYY-MM-DD key, so the result does
// not depend on the process timezone.
package calendar

import (
	"time"

	"github.com/noah-isme/nawa-notice-api/internal/models"
)

// WeekLength is the number of columns in the grid.
const WeekLength = 7

// Cell is one grid position. Padding cells have Empty set and nothing else.
type Cell struct {
	Empty              bool                    `json:"empty"`
	Day                int                     `json:"day,omitempty"`
	Date               *time.Time              `json:"date,omitempty"`
	IsToday            bool                    `json:"isToday"`
	IsSaturday         bool                    `json:"isSaturday"`
	Notices            []models.EnrichedNotice `json:"notices"`
	HasImportantNotice bool                    `json:"hasImportantNotice"`
	HasRegularNotice   bool                    `json:"hasRegularNotice"`
}

// Month is a rendered month grid.
type Month struct {
	Year  int          `json:"year"`
	Month time.Month   `json:"month"`
	Cells []Cell       `json:"cells"`
	Weeks int          `json:"weeks"`
	Today *time.Time   `json:"today,omitempty"`
	Stats MonthSummary `json:"stats"`
}

// MonthSummary counts the notices placed on the grid.
type MonthSummary struct {
	Notices          int `json:"notices"`
	ImportantNotices int `json:"important_notices"`
	DaysWithNotices  int `json:"days_with_notices"`
}

// BuildMonth returns the grid for year/month. Leading padding equals the
// weekday of day 1 (Sunday = 0) and trailing padding rounds the cell count up
// to a multiple of 7. today is compared by calendar day only.
func BuildMonth(year int, month time.Month, notices []models.EnrichedNotice, today time.Time) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	lead := int(first.Weekday())
	todayKey := models.DayKey(today)

	byDay := groupByDay(notices)

	cells := make([]Cell, 0, roundUp(lead+daysInMonth))
	for i := 0; i < lead; i++ {
		cells = append(cells, emptyCell())
	}

	summary := MonthSummary{}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		key := models.DayKey(date)
		matched := byDay[key]
		if matched == nil {
			matched = []models.EnrichedNotice{}
		}

		cell := Cell{
			Day:        day,
			Date:       &date,
			IsToday:    !today.IsZero() && key == todayKey,
			IsSaturday: date.Weekday() == time.Saturday,
			Notices:    matched,
		}
		for _, n := range matched {
			if n.IsImportant() {
				cell.HasImportantNotice = true
				summary.ImportantNotices++
			} else {
				cell.HasRegularNotice = true
			}
		}
		if len(matched) > 0 {
			summary.Notices += len(matched)
			summary.DaysWithNotices++
		}
		cells = append(cells, cell)
	}

	for len(cells)%WeekLength != 0 {
		cells = append(cells, emptyCell())
	}

	result := Month{
		Year:  first.Year(),
		Month: first.Month(),
		Cells: cells,
		Weeks: len(cells) / WeekLength,
		Stats: summary,
	}
	if !today.IsZero() {
		t := models.CalendarDay(today)
		result.Today = &t
	}
	return result
}

// NoticesOn returns the notices whose calendar day equals day's UTC calendar day, in input order.
func NoticesOn(notices []models.EnrichedNotice, day time.Time) []models.EnrichedNotice {
	key := models.DayKey(day)
	out := make([]models.EnrichedNotice, 0)
	for _, n := range notices {
		if models.DayKey(n.Date) == key {
			out = append(out, n)
		}
	}
	return out
}

func groupByDay(notices []models.EnrichedNotice) map[string][]models.EnrichedNotice {
	byDay := make(map[string][]models.EnrichedNotice)
	for _, n := range notices {
		if n.Date.IsZero() {
			continue
		}
		key := models.DayKey(n.Date)
		byDay[key] = append(byDay[key], n)
	}
	return byDay
}

func emptyCell() Cell {
	return Cell{Empty: true, Notices: []models.EnrichedNotice{}}
}

func roundUp(n int) int {
	if rem := n % WeekLength; rem != 0 {
		return n + WeekLength - rem
	}
	return n
}
