package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is carried by the admin session cookie. Older tokens put the
// admin id in "id"; newer ones use the registered "sub" claim.
type SessionClaims struct {
	LegacyID string `json:"id,omitempty"`
	jwt.RegisteredClaims
}

// AdminID returns the admin identifier from whichever claim carries it.
func (c *SessionClaims) AdminID() string {
	if c == nil {
		return ""
	}
	if c.LegacyID != "" {
		return c.LegacyID
	}
	return c.Subject
}
