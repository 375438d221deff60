package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RegisterRequest carries the multipart registration form.
type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	// Picture bytes and the lowercased file extension, both mandatory.
	Picture    []byte `json:"-" validate:"required"`
	PictureExt string `json:"-" validate:"required"`
	IP         string `json:"-"`
	UserAgent  string `json:"-"`
}

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResponse returns the issued tokens and user info.
type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
	User         UserInfo  `json:"user"`
	IssuedAt     time.Time `json:"issued_at"`
}

// RefreshTokenRequest exchanges a refresh token for a new access token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
	IP           string `json:"-"`
	UserAgent    string `json:"-"`
}

// RefreshTokenResponse returns the refreshed tokens.
type RefreshTokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
	IssuedAt     time.Time `json:"issued_at"`
}

// RefreshToken is an issued, revocable refresh token. Tokens live in the user
// store for the lifetime of the process.
type RefreshToken struct {
	ID        string
	Username  string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	Revoked   bool
	RevokedAt *time.Time
	IPAddress string
	UserAgent string
}

// UserInfo describes the authenticated user in responses.
type UserInfo struct {
	Username    string         `json:"username"`
	FullName    string         `json:"full_name"`
	PictureFile string         `json:"picture_file,omitempty"`
	Status      PresenceStatus `json:"status"`
	Mode        StudyMode      `json:"mode,omitempty"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	jwt.RegisteredClaims
}
