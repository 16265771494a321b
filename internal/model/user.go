// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data. The JSON shape the API returns
// is NOT defined here; handlers convert models into response types, so a field
// added to a model never leaks to clients by accident.
package model

// User represents an account that can bookmark favorites.
//
// WHY PasswordHash AND NOT Password?
// The store only ever sees the bcrypt hash of the credential secret (see
// internal/auth/password.go). The name makes it obvious at every call site
// that this is not something to echo back to a client.
type User struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"` // unique, at most 50 characters
	Email        string `db:"email"`    // unique, at most 120 characters
	PasswordHash string `db:"password"`
	IsActive     bool   `db:"is_active"`
}
