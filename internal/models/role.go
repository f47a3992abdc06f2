package models

// Role is the caller's access level derived from session cookies.
type Role string

const (
	RolePublic  Role = "public"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// ParseRole maps a route or query value onto a Role. Unknown values resolve to RolePublic.
func ParseRole(raw string) Role {
	switch Role(raw) {
	case RoleTeacher, RoleAdmin, RoleStudent:
		return Role(raw)
	default:
		return RolePublic
	}
}

// VisibleAudiences returns the audiences a role may read, in a fixed order.
func VisibleAudiences(role Role) []Audience {
	switch role {
	case RoleTeacher:
		return []Audience{AudienceAll, AudienceTeachers}
	case RoleAdmin:
		return []Audience{AudienceAll, AudienceTeachers, AudienceStudents}
	case RoleStudent:
		return []Audience{AudienceAll, AudienceStudents}
	default:
		return []Audience{AudienceAll}
	}
}

// CanSee reports whether role may read a notice addressed to audience.
func (r Role) CanSee(audience Audience) bool {
	for _, a := range VisibleAudiences(r) {
		if a == audience {
			return true
		}
	}
	return false
}
