package models

import "time"

// Session is what the CLI client remembers after a successful login.
type Session struct {
	UserID  string
	Name    string
	Email   string
	Token   string
	Server  string
	SavedAt time.Time
}
