package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flowerhq/flower-api/internal/constants"
	"github.com/flowerhq/flower-api/internal/models"
	"github.com/flowerhq/flower-api/internal/repository"
	"github.com/flowerhq/flower-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrEmailTaken           = errors.New("email already exists")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrSessionActive        = errors.New("user already has an active session")
	ErrSessionNotFound      = errors.New("invalid session ID")
	ErrSessionExpired       = errors.New("session expired")
	ErrSessionInvalid       = errors.New("invalid or expired session ID")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService owns registration and the session lifecycle: issuance,
// renewal after expiry, validation and teardown.
type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

// UserNameAvailable reports whether a username has not been registered yet.
func (s *AuthService) UserNameAvailable(username string) (bool, error) {
	taken, err := s.userRepo.UserNameExists(username)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return !taken, nil
}

// EmailAvailable reports whether an email has not been registered yet.
func (s *AuthService) EmailAvailable(email string) (bool, error) {
	taken, err := s.userRepo.EmailExists(email)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return !taken, nil
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a new user with a bcrypt password hash. The uniqueness
// pre-checks give friendly errors; the storage unique constraints remain
// the authoritative guard against races.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	if taken, err := s.userRepo.UserNameExists(username); err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	} else if taken {
		return nil, ErrUsernameTaken
	}

	if taken, err := s.userRepo.EmailExists(input.Email); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if taken {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		UserName:     username,
		UserEmail:    input.Email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username   string
	Password   string
	RememberMe bool
}

// Login verifies credentials and issues a session. A live session for the
// same user is a conflict; an expired one is overwritten in place with a
// fresh token and expiry.
func (s *AuthService) Login(input LoginInput) (*models.Session, error) {
	user, err := s.userRepo.FindByUserName(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	ttl := constants.SessionTTL
	if input.RememberMe {
		ttl = constants.PersistentSessionTTL
	}

	session := &models.Session{
		SessionID:    utils.NewSessionToken(),
		UserID:       user.UserID,
		ExpiresAt:    now.Add(ttl),
		IsPersistent: input.RememberMe,
	}

	existing, err := s.sessionRepo.FindByUserID(user.UserID)
	switch {
	case err == nil:
		if !existing.Expired(now) {
			return nil, ErrSessionActive
		}
		if err := s.sessionRepo.Replace(session); err != nil {
			return nil, fmt.Errorf("failed to renew session: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.sessionRepo.Create(session); err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to check existing session: %w", err)
	}

	return session, nil
}

// AutoLogin validates a presented session token and returns the associated
// user. A stale row is deleted on detection, so retrying with the same
// token reports not-found rather than expired.
func (s *AuthService) AutoLogin(sessionID string) (*models.User, error) {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	if session.Expired(time.Now()) {
		if err := s.sessionRepo.Delete(sessionID); err != nil {
			return nil, fmt.Errorf("failed to delete expired session: %w", err)
		}
		return nil, ErrSessionExpired
	}

	user, err := s.userRepo.FindByID(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find session user: %w", err)
	}

	return user, nil
}

// Logout removes the session bound to the token.
func (s *AuthService) Logout(sessionID string) error {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to find session: %w", err)
	}

	if session.Expired(time.Now()) {
		if err := s.sessionRepo.Delete(sessionID); err != nil {
			return fmt.Errorf("failed to delete expired session: %w", err)
		}
		return ErrSessionExpired
	}

	if err := s.sessionRepo.Delete(sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// ResolveCurrentUser is the primitive every mutating handler goes through:
// the token must name an unexpired session.
func (s *AuthService) ResolveCurrentUser(sessionID string) (*models.User, error) {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	if session.Expired(time.Now()) {
		return nil, ErrSessionInvalid
	}

	user, err := s.userRepo.FindByID(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find session user: %w", err)
	}

	return user, nil
}

// ResetAllSessions deletes every session row. Admin use only.
func (s *AuthService) ResetAllSessions() error {
	if err := s.sessionRepo.DeleteAll(); err != nil {
		return fmt.Errorf("failed to reset sessions: %w", err)
	}
	return nil
}
