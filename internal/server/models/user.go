// Package models contains persistence-level structs shared by the server
// repositories and services.
package models

import "time"

// User is an account row. PasswordHash is a self-describing encoded hash
// (algorithm tag, parameters, salt, digest in one string).
type User struct {
	ID           int64
	Username     string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
}
