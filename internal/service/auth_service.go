package service

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kumusta-app/kumusta-api/internal/models"
	"github.com/kumusta-app/kumusta-api/internal/store"
	appErrors "github.com/kumusta-app/kumusta-api/pkg/errors"
)

type authUserStore interface {
	Create(user *models.User) error
	Get(username string) (*models.User, error)
	Delete(username string) error
	SetStatus(username string, status models.PresenceStatus) error
	SetMode(username string, mode models.StudyMode) error
	SetPicture(username, filename string) error
	CreateRefreshToken(token *models.RefreshToken) error
	FindRefreshToken(token string) (*models.RefreshToken, error)
	RevokeRefreshToken(token string, revokedAt time.Time) error
	AppendAuditLog(log models.AuditLog)
}

type pictureStorage interface {
	Save(filename string, data []byte) (string, error)
	Delete(filename string) error
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	AccessTokenSecret  string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	Issuer             string
	AllowedPictureExts []string
}

// AuthService provides registration, authentication and presence use cases.
type AuthService struct {
	store     authUserStore
	pictures  pictureStorage
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(userStore authUserStore, pictures pictureStorage, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if len(config.AllowedPictureExts) == 0 {
		config.AllowedPictureExts = []string{"png", "jpg", "jpeg", "gif"}
	}
	return &AuthService{store: userStore, pictures: pictures, validator: validate, logger: logger, config: config, now: time.Now}
}

// Register creates an account together with its profile picture. The whole
// operation is all-or-nothing: a failed picture write rolls the account back.
func (s *AuthService) Register(req models.RegisterRequest) (*models.UserInfo, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "please fill in all fields and upload a profile picture")
	}

	ext := strings.ToLower(strings.TrimPrefix(req.PictureExt, "."))
	if !s.allowedExt(ext) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid file type, use PNG, JPG, JPEG, or GIF")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{
		Username:     req.Username,
		FullName:     strings.ToUpper(strings.TrimSpace(req.FullName)),
		PasswordHash: string(passwordHash),
		Status:       models.StatusOffline,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.Create(user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrDuplicateUsername, "that username is already taken")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create account")
	}

	filename := fmt.Sprintf("%s.%s", req.Username, ext)
	if _, err := s.pictures.Save(filename, req.Picture); err != nil {
		if delErr := s.store.Delete(req.Username); delErr != nil {
			s.logger.Error("failed to roll back account after picture write failure", zap.String("username", req.Username), zap.Error(delErr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store profile picture")
	}
	if err := s.store.SetPicture(req.Username, filename); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to attach profile picture")
	}

	s.store.AppendAuditLog(models.AuditLog{
		ID:        uuid.NewString(),
		Username:  req.Username,
		Action:    models.AuditActionRegister,
		Resource:  "auth",
		IPAddress: req.IP,
		UserAgent: req.UserAgent,
		CreatedAt: s.now().UTC(),
	})

	info := s.userInfo(user)
	info.PictureFile = filename
	return info, nil
}

// Login authenticates a user and returns issued tokens. A fresh session
// always starts with presence reset to offline.
func (s *AuthService) Login(req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	user, err := s.store.Get(req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid login")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid login")
	}

	if err := s.store.SetStatus(user.Username, models.StatusOffline); err != nil {
		s.logger.Warn("failed to reset presence on login", zap.Error(err))
	}
	user.Status = models.StatusOffline

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	refreshToken, err := s.issueRefreshToken(user.Username, req.IP, req.UserAgent)
	if err != nil {
		return nil, err
	}

	s.store.AppendAuditLog(models.AuditLog{
		ID:        uuid.NewString(),
		Username:  user.Username,
		Action:    models.AuditActionLogin,
		Resource:  "auth",
		IPAddress: req.IP,
		UserAgent: req.UserAgent,
		CreatedAt: s.now().UTC(),
	})

	return &models.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
		ExpiresIn:    int64(s.config.AccessTokenExpiry.Seconds()),
		IssuedAt:     s.now().UTC(),
		User:         *s.userInfo(user),
	}, nil
}

// RefreshToken exchanges a refresh token for a new access token pair.
func (s *AuthService) RefreshToken(req models.RefreshTokenRequest) (*models.RefreshTokenResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid refresh payload")
	}

	stored, err := s.store.FindRefreshToken(req.RefreshToken)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "refresh token not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch refresh token")
	}

	if stored.Revoked || s.now().UTC().After(stored.ExpiresAt) {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "refresh token is expired or revoked")
	}

	user, err := s.store.Get(stored.Username)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "associated user no longer exists")
	}

	if err := s.store.RevokeRefreshToken(stored.Token, s.now().UTC()); err != nil {
		s.logger.Warn("failed to revoke used refresh token", zap.Error(err))
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate access token")
	}

	rotated, err := s.issueRefreshToken(user.Username, req.IP, req.UserAgent)
	if err != nil {
		return nil, err
	}

	return &models.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: rotated.Token,
		ExpiresIn:    int64(s.config.AccessTokenExpiry.Seconds()),
		IssuedAt:     s.now().UTC(),
	}, nil
}

// Logout revokes the refresh token and drops presence back to offline.
func (s *AuthService) Logout(username, refreshToken, ip, userAgent string) error {
	stored, err := s.store.FindRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrUnauthorized, "refresh token not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load refresh token")
	}
	if stored.Username != username {
		return appErrors.Clone(appErrors.ErrForbidden, "token does not belong to user")
	}

	if err := s.store.RevokeRefreshToken(stored.Token, s.now().UTC()); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to revoke refresh token")
	}
	if err := s.store.SetStatus(username, models.StatusOffline); err != nil {
		s.logger.Warn("failed to reset presence on logout", zap.Error(err))
	}

	s.store.AppendAuditLog(models.AuditLog{
		ID:        uuid.NewString(),
		Username:  username,
		Action:    models.AuditActionLogout,
		Resource:  "auth",
		IPAddress: ip,
		UserAgent: userAgent,
		CreatedAt: s.now().UTC(),
	})

	return nil
}

// SetStatus updates presence for timer heartbeats.
func (s *AuthService) SetStatus(username string, status models.PresenceStatus) error {
	switch status {
	case models.StatusStudying, models.StatusResting, models.StatusOffline:
	default:
		return appErrors.Clone(appErrors.ErrValidation, "invalid status")
	}
	if err := s.store.SetStatus(username, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update status")
	}
	return nil
}

// SetMode switches between Home and School study modes.
func (s *AuthService) SetMode(username string, mode models.StudyMode) error {
	if mode != models.ModeHome && mode != models.ModeSchool {
		return appErrors.Clone(appErrors.ErrValidation, "invalid study mode")
	}
	if err := s.store.SetMode(username, mode); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update study mode")
	}
	return nil
}

// UpdatePicture replaces the stored profile picture.
func (s *AuthService) UpdatePicture(username string, picture []byte, pictureExt string) (*models.UserInfo, error) {
	if len(picture) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "please choose an image file")
	}
	ext := strings.ToLower(strings.TrimPrefix(pictureExt, "."))
	if !s.allowedExt(ext) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid file type, use PNG, JPG, JPEG, or GIF")
	}

	user, err := s.store.Get(username)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}

	filename := fmt.Sprintf("%s.%s", username, ext)
	if _, err := s.pictures.Save(filename, picture); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store profile picture")
	}
	if user.PictureFile != "" && user.PictureFile != filename {
		if err := s.pictures.Delete(user.PictureFile); err != nil {
			s.logger.Warn("failed to remove previous profile picture", zap.Error(err))
		}
	}
	if err := s.store.SetPicture(username, filename); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to attach profile picture")
	}

	user.PictureFile = filename
	return s.userInfo(user), nil
}

// Me returns the current account info.
func (s *AuthService) Me(username string) (*models.UserInfo, error) {
	user, err := s.store.Get(username)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	return s.userInfo(user), nil
}

// ConfirmCredential re-checks the account password. Used by destructive
// flows such as classroom deletion.
func (s *AuthService) ConfirmCredential(username, password string) error {
	user, err := s.store.Get(username)
	if err != nil {
		return appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return appErrors.Clone(appErrors.ErrInvalidCredentials, "wrong password")
	}
	return nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

func (s *AuthService) allowedExt(ext string) bool {
	for _, allowed := range s.config.AllowedPictureExts {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

func (s *AuthService) userInfo(user *models.User) *models.UserInfo {
	return &models.UserInfo{
		Username:    user.Username,
		FullName:    user.FullName,
		PictureFile: user.PictureFile,
		Status:      user.Status,
		Mode:        user.Mode,
	}
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.config.AccessTokenExpiry)
	claims := &models.JWTClaims{
		Username: user.Username,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.AccessTokenSecret))
}

func (s *AuthService) issueRefreshToken(username, ip, userAgent string) (*models.RefreshToken, error) {
	value, err := s.generateRefreshTokenString()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create refresh token")
	}
	token := &models.RefreshToken{
		ID:        uuid.NewString(),
		Username:  username,
		Token:     value,
		ExpiresAt: s.now().UTC().Add(s.config.RefreshTokenExpiry),
		CreatedAt: s.now().UTC(),
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if err := s.store.CreateRefreshToken(token); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist refresh token")
	}
	return token, nil
}

func (s *AuthService) generateRefreshTokenString() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
