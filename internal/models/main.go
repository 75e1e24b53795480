// Package models defines the core data structures for users and tasks.
package models

import "time"

// Role is the closed set of access levels a user can hold.
type Role string

const (
	// RoleMember is a regular user who only sees their own tasks.
	RoleMember Role = "member"
	// RoleAdmin can manage users and sees every task.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}

// Identity is the authenticated user's profile as returned by the API.
type Identity struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Name is the display name chosen at registration.
	Name string `json:"name"`
	// Email is the login email address.
	Email string `json:"email"`
	// Role determines which views and operations are available.
	Role Role `json:"role"`
}

// Priority defines the set of valid task priorities.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Status defines the set of valid task statuses.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusInProgress || s == StatusDone
}

// Task is a single task record. The server owns it; clients hold cached copies.
type Task struct {
	// ID is the unique identifier assigned by the server.
	ID string `json:"id"`
	// Title is the short task summary.
	Title string `json:"title"`
	// Description holds the longer free-form text.
	Description string `json:"description"`
	// Priority is one of low, medium, high.
	Priority Priority `json:"priority"`
	// Status is one of pending, in-progress, done.
	Status Status `json:"status"`
	// CreatedBy is the ID of the user who created the task.
	CreatedBy string `json:"createdBy"`
	// CreatedAt is the server-side creation timestamp.
	CreatedAt time.Time `json:"createdAt"`
}

// User is a full user record as stored by the server, including the
// password hash. It is never serialized to clients as-is.
type User struct {
	ID           string
	Name         string
	Email        string
	Role         Role
	PasswordHash []byte
}

// Identity returns the client-visible projection of the user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
