package handler

import "github.com/noah-isme/nawa-notice-api/pkg/config"

var testCookies = config.SessionConfig{
	Secret:        "secret",
	TeacherCookie: "teacherToken",
	AdminCookie:   "adminToken",
	StudentCookie: "studentToken",
}
