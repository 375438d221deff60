package models

import "time"

// Audit actions recorded in the in-memory trail.
const (
	AuditActionRegister        = "REGISTER"
	AuditActionLogin           = "LOGIN"
	AuditActionLogout          = "LOGOUT"
	AuditActionClassroomDelete = "CLASSROOM_DELETE"
)

// AuditLog captures who did what for later inspection. The trail lives for
// the process lifetime only, like every other store.
type AuditLog struct {
	ID         string    `json:"id"`
	Username   string    `json:"username,omitempty"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resource_id,omitempty"`
	Details    string    `json:"details,omitempty"`
	IPAddress  string    `json:"ip_address,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
