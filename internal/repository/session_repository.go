package repository

import (
	"github.com/flowerhq/flower-api/internal/models"
	"gorm.io/gorm"
)

// GormSessionRepository is a GORM implementation of SessionRepository
type GormSessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &GormSessionRepository{db: db}
}

// FindByID finds a session by its token
func (r *GormSessionRepository) FindByID(sessionID string) (*models.Session, error) {
	var session models.Session
	if err := r.db.Where("session_id = ?", sessionID).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// FindByUserID finds the session of a user, if any
func (r *GormSessionRepository) FindByUserID(userID uint64) (*models.Session, error) {
	var session models.Session
	if err := r.db.Where("user_id = ?", userID).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// Create inserts a new session row
func (r *GormSessionRepository) Create(session *models.Session) error {
	return r.db.Create(session).Error
}

// Replace overwrites a user's existing session row with a new token,
// expiry and persistence flag. The user_id unique constraint guarantees
// there is exactly one row to replace.
func (r *GormSessionRepository) Replace(session *models.Session) error {
	return r.db.Model(&models.Session{}).
		Where("user_id = ?", session.UserID).
		Updates(map[string]interface{}{
			"session_id":    session.SessionID,
			"expires_at":    session.ExpiresAt,
			"is_persistent": session.IsPersistent,
		}).Error
}

// Delete removes a session row by token
func (r *GormSessionRepository) Delete(sessionID string) error {
	return r.db.Where("session_id = ?", sessionID).Delete(&models.Session{}).Error
}

// DeleteAll removes every session row
func (r *GormSessionRepository) DeleteAll() error {
	return r.db.Where("1 = 1").Delete(&models.Session{}).Error
}
