package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jhonDavid20/steady-vitality/domain"
)

// SessionRepositoryImpl implements domain.SessionRepository using GORM.
// Sessions live in Postgres rather than a TTL cache because revocation
// metadata and per-user listing must survive expiry.
type SessionRepositoryImpl struct {
	db *gorm.DB
}

// DBSession represents the database model for Session (with GORM tags)
type DBSession struct {
	ID               string `gorm:"primaryKey;size:36"`
	UserID           uint   `gorm:"index"`
	Token            string `gorm:"uniqueIndex;size:64"`
	RefreshToken     string `gorm:"uniqueIndex;size:64"`
	ExpiresAt        time.Time `gorm:"index"`
	RefreshExpiresAt time.Time
	IsActive         bool `gorm:"index"`
	RevokedAt        *time.Time
	RevokedBy        string `gorm:"size:64"`
	RevokedReason    string `gorm:"size:255"`
	LastAccessedAt   time.Time
	IPAddress        string `gorm:"size:45"`
	UserAgent        string `gorm:"size:512"`
	DeviceType       string `gorm:"size:32"`
	Browser          string `gorm:"size:64"`
	OS               string `gorm:"size:64"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName returns the table name for GORM
func (DBSession) TableName() string {
	return "sessions"
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) domain.SessionRepository {
	return &SessionRepositoryImpl{db: db}
}

// Create implements domain.SessionRepository
func (r *SessionRepositoryImpl) Create(ctx context.Context, session *domain.Session) error {
	dbSession := r.domainToDB(session)
	if err := r.db.WithContext(ctx).Create(dbSession).Error; err != nil {
		return err
	}
	session.CreatedAt = dbSession.CreatedAt
	session.UpdatedAt = dbSession.UpdatedAt
	return nil
}

// FindByID implements domain.SessionRepository
func (r *SessionRepositoryImpl) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	var dbSession DBSession
	err := r.db.WithContext(ctx).Where("id = ?", sessionID).First(&dbSession).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbSession), nil
}

// FindActive implements domain.SessionRepository. Only active, unexpired
// sessions owned by the given user are returned.
func (r *SessionRepositoryImpl) FindActive(ctx context.Context, sessionID string, userID uint) (*domain.Session, error) {
	var dbSession DBSession
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND is_active = ? AND expires_at > ?", sessionID, userID, true, time.Now()).
		First(&dbSession).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbSession), nil
}

// FindByUserID implements domain.SessionRepository, newest first
func (r *SessionRepositoryImpl) FindByUserID(ctx context.Context, userID uint) ([]*domain.Session, error) {
	var dbSessions []DBSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&dbSessions).Error
	if err != nil {
		return nil, err
	}
	sessions := make([]*domain.Session, 0, len(dbSessions))
	for i := range dbSessions {
		sessions = append(sessions, r.dbToDomain(&dbSessions[i]))
	}
	return sessions, nil
}

// Update implements domain.SessionRepository
func (r *SessionRepositoryImpl) Update(ctx context.Context, session *domain.Session) error {
	dbSession := r.domainToDB(session)
	dbSession.CreatedAt = session.CreatedAt
	return r.db.WithContext(ctx).Save(dbSession).Error
}

// RevokeAllForUser implements domain.SessionRepository as a single bulk write
func (r *SessionRepositoryImpl) RevokeAllForUser(ctx context.Context, userID uint, reason, revokedBy string) error {
	return r.db.WithContext(ctx).Model(&DBSession{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Updates(map[string]interface{}{
			"is_active":      false,
			"revoked_at":     time.Now(),
			"revoked_by":     revokedBy,
			"revoked_reason": reason,
		}).Error
}

// RevokeOthersForUser implements domain.SessionRepository; the session named
// by keepSessionID stays untouched.
func (r *SessionRepositoryImpl) RevokeOthersForUser(ctx context.Context, userID uint, keepSessionID, reason, revokedBy string) error {
	return r.db.WithContext(ctx).Model(&DBSession{}).
		Where("user_id = ? AND is_active = ? AND id <> ?", userID, true, keepSessionID).
		Updates(map[string]interface{}{
			"is_active":      false,
			"revoked_at":     time.Now(),
			"revoked_by":     revokedBy,
			"revoked_reason": reason,
		}).Error
}

// DeleteExpired implements domain.SessionRepository
func (r *SessionRepositoryImpl) DeleteExpired(ctx context.Context) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Where("expires_at < ? AND refresh_expires_at < ?", now, now).
		Delete(&DBSession{}).Error
}

func (r *SessionRepositoryImpl) domainToDB(s *domain.Session) *DBSession {
	return &DBSession{
		ID:               s.ID,
		UserID:           s.UserID,
		Token:            s.Token,
		RefreshToken:     s.RefreshToken,
		ExpiresAt:        s.ExpiresAt,
		RefreshExpiresAt: s.RefreshExpiresAt,
		IsActive:         s.IsActive,
		RevokedAt:        s.RevokedAt,
		RevokedBy:        s.RevokedBy,
		RevokedReason:    s.RevokedReason,
		LastAccessedAt:   s.LastAccessedAt,
		IPAddress:        s.IPAddress,
		UserAgent:        s.UserAgent,
		DeviceType:       s.DeviceType,
		Browser:          s.Browser,
		OS:               s.OS,
	}
}

func (r *SessionRepositoryImpl) dbToDomain(s *DBSession) *domain.Session {
	return &domain.Session{
		ID:               s.ID,
		UserID:           s.UserID,
		Token:            s.Token,
		RefreshToken:     s.RefreshToken,
		ExpiresAt:        s.ExpiresAt,
		RefreshExpiresAt: s.RefreshExpiresAt,
		IsActive:         s.IsActive,
		RevokedAt:        s.RevokedAt,
		RevokedBy:        s.RevokedBy,
		RevokedReason:    s.RevokedReason,
		LastAccessedAt:   s.LastAccessedAt,
		IPAddress:        s.IPAddress,
		UserAgent:        s.UserAgent,
		DeviceType:       s.DeviceType,
		Browser:          s.Browser,
		OS:               s.OS,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}
