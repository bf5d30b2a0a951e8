package models

import "time"

// Session is an issued-token row. Rows are never mutated: a session is
// created at login and either expires lazily or is deleted on revocation.
type Session struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}
