package models

import "time"

// Audience defines who can see a notice.
type Audience string

const (
	AudienceAll      Audience = "All"
	AudienceTeachers Audience = "Teachers & Staffs"
	AudienceStudents Audience = "Students"
)

// Valid reports whether the audience is one of the enumerated values.
func (a Audience) Valid() bool {
	switch a {
	case AudienceAll, AudienceTeachers, AudienceStudents:
		return true
	default:
		return false
	}
}

// Known notice categories. Categories only drive presentation; any string is accepted.
const (
	CategoryGeneral        = "General"
	CategorySevere         = "Severe"
	CategoryEventsHolidays = "Events & Holidays"
	CategoryAcademic       = "Academic"
	CategoryMeeting        = "Meeting"
	CategoryImportant      = "Important"
	CategoryExam           = "Exam"
	CategoryEvent          = "Event"
	CategoryHoliday        = "Holiday"
)

// UnknownAdminName is shown when a notice's author cannot be resolved.
const UnknownAdminName = "Unknown"

// Notice is a single announcement posted by an admin.
// Date is a calendar day stored as UTC midnight.
type Notice struct {
	ID          string    `db:"id" json:"_id"`
	AdminID     string    `db:"admin_id" json:"adminID"`
	Category    string    `db:"category" json:"noticecategory"`
	Audience    Audience  `db:"audience" json:"targetaudience"`
	Title       string    `db:"title" json:"noticetitle"`
	Description string    `db:"description" json:"noticedes"`
	Attachments []string  `db:"-" json:"attachments,omitempty"`
	Date        time.Time `db:"date" json:"date"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// IsImportant reports whether the notice gets the highlighted calendar treatment.
func (n Notice) IsImportant() bool {
	return n.Category == CategoryImportant
}

// EnrichedNotice is a notice joined with its author's display name.
type EnrichedNotice struct {
	Notice
	AdminName string `json:"adminName"`
}

// NoticeFilter narrows a store query.
type NoticeFilter struct {
	Audiences []Audience
}

// CalendarDay truncates t to midnight UTC of its UTC calendar day.
// Applying it twice yields the same value.
func CalendarDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayIn returns the calendar day t falls on in loc, expressed as UTC midnight.
func DayIn(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	l := t.In(loc)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey formats the UTC calendar day of t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
