package models

import "time"

// PresenceStatus tracks what an account is currently doing. It is ephemeral
// state driven by timer heartbeats and never survives a restart.
type PresenceStatus string

const (
	StatusStudying PresenceStatus = "studying"
	StatusResting  PresenceStatus = "resting"
	StatusOffline  PresenceStatus = "offline"
)

// StudyMode is the self-selected context for a study session.
type StudyMode string

const (
	ModeHome   StudyMode = "Home"
	ModeSchool StudyMode = "School"
)

// User represents a registered account. The username is the immutable
// identifier; the full name is stored uppercased for display.
type User struct {
	Username     string         `json:"username"`
	FullName     string         `json:"full_name"`
	PasswordHash string         `json:"-"`
	PictureFile  string         `json:"picture_file,omitempty"`
	Status       PresenceStatus `json:"status"`
	Mode         StudyMode      `json:"mode,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}
