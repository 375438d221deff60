package models

import "time"

// Classroom role labels.
const (
	RoleClassRep = "Class Rep"
	RoleStudent  = "Student"
)

// Classroom is a shared space owned by a single account (the Class Rep).
// Members always include the owner; the membership invariant is kept in the
// classroom store: username in Members iff code in that user's index.
type Classroom struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Owner     string    `json:"owner"`
	Members   []string  `json:"members,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ClassroomInfo is the per-user listing entry with the viewer's role.
type ClassroomInfo struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	IsOwner bool   `json:"is_owner"`
}
