package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "khata/internal/errors"
	"khata/internal/models"
	"khata/internal/uuid"
)

const minPasswordLength = 6

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// authService handles credentials and server-side sessions.
type authService struct {
	db         *gorm.DB
	sessionTTL time.Duration
	now        func() time.Time
}

// NewAuthService creates a new AuthServicer. Sessions expire after sessionTTL.
func NewAuthService(db *gorm.DB, sessionTTL time.Duration) AuthServicer {
	return &authService{db: db, sessionTTL: sessionTTL, now: time.Now}
}

// SignUp creates the credential and its profile together. The role is fixed
// from here on.
func (s *authService) SignUp(ctx context.Context, name, email, password string, role models.Role) (*models.Profile, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if !emailRegex.MatchString(email) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid email address")
	}
	if len(password) < minPasswordLength {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "password must be at least 6 characters")
	}
	if role == "" {
		role = models.RoleViewer
	}
	if !role.IsValid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "role must be admin or viewer")
	}

	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Credential{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var profile *models.Profile
	err = db.Transaction(func(tx *gorm.DB) error {
		credential := &models.Credential{
			Email:        email,
			PasswordHash: string(hashedPassword),
		}
		if err := tx.Create(credential).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		profile = &models.Profile{
			ID:    credential.ID,
			Name:  name,
			Email: email,
			Role:  role,
		}
		if err := tx.Create(profile).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// SignIn checks an email and password. Unknown email and wrong password
// produce the same error.
func (s *authService) SignIn(ctx context.Context, email, password string) (*models.Credential, error) {
	var credential models.Credential
	err := s.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&credential).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return &credential, nil
}

// StartSession stores a new session for credentialID.
func (s *authService) StartSession(ctx context.Context, credentialID string) (*models.Session, error) {
	session := &models.Session{
		ID:           uuid.New(),
		CredentialID: credentialID,
		ExpiresAt:    s.now().UTC().Add(s.sessionTTL),
	}
	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return session, nil
}

// EndSession revokes a session. Ending an unknown session is not an error.
func (s *authService) EndSession(ctx context.Context, sessionID string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", sessionID).Delete(&models.Session{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// SessionIdentity returns the credential ID behind a live session.
func (s *authService) SessionIdentity(ctx context.Context, sessionID string) (string, error) {
	var session models.Session
	err := s.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", sessionID, s.now().UTC()).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrUnauthorized
		}
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return session.CredentialID, nil
}
