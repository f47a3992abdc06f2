package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVisibleAudiences(t *testing.T) {
	cases := map[Role][]Audience{
		RolePublic:  {AudienceAll},
		RoleTeacher: {AudienceAll, AudienceTeachers},
		RoleAdmin:   {AudienceAll, AudienceTeachers, AudienceStudents},
		RoleStudent: {AudienceAll, AudienceStudents},
		Role("x"):   {AudienceAll},
	}
	for role, want := range cases {
		assert.Equal(t, want, VisibleAudiences(role), "role %s", role)
	}
}

func TestRoleNeverSeesOutsideItsSet(t *testing.T) {
	all := []Audience{AudienceAll, AudienceTeachers, AudienceStudents, Audience("Parents")}
	for _, role := range []Role{RolePublic, RoleTeacher, RoleAdmin, RoleStudent} {
		allowed := map[Audience]bool{}
		for _, a := range VisibleAudiences(role) {
			allowed[a] = true
		}
		for _, a := range all {
			assert.Equal(t, allowed[a], role.CanSee(a), "role %s audience %s", role, a)
		}
	}
	assert.False(t, RoleTeacher.CanSee(AudienceStudents))
	assert.False(t, RoleStudent.CanSee(AudienceTeachers))
	assert.False(t, RolePublic.CanSee(AudienceStudents))
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleTeacher, ParseRole("teacher"))
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleStudent, ParseRole("student"))
	assert.Equal(t, RolePublic, ParseRole(""))
	assert.Equal(t, RolePublic, ParseRole("ADMIN"))
}

func TestAudienceValid(t *testing.T) {
	assert.True(t, AudienceTeachers.Valid())
	assert.False(t, Audience("all").Valid())
}

func TestCalendarDayIsIdempotent(t *testing.T) {
	raw := time.Date(2024, 3, 15, 17, 45, 12, 99, time.UTC)

	day := CalendarDay(raw)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), day)
	assert.Equal(t, day, CalendarDay(day))
	assert.Equal(t, "2024-03-15", DayKey(raw))
}

func TestDayInUsesSchoolZone(t *testing.T) {
	zone := time.FixedZone("UTC+7", 7*60*60)
	instant := time.Date(2024, 3, 14, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), DayIn(instant, zone))
	assert.Equal(t, time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), DayIn(instant, nil))
}
