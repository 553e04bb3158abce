package model

import "time"

// User is a person who can check alerts out. Lookup happens by email
// through the user collaborator; this service never creates users.
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}
