package models

import "time"

// User is an identity record. It is created on registration and never
// mutated afterwards; all editable content lives on Profile.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
