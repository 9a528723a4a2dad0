package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jhonDavid20/steady-vitality/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID                         uint       `gorm:"primaryKey"`
	Email                      string     `gorm:"uniqueIndex;size:255"`
	Username                   string     `gorm:"uniqueIndex;size:64"`
	PasswordHash               string     `gorm:"column:password"`
	FirstName                  string     `gorm:"size:100"`
	LastName                   string     `gorm:"size:100"`
	Role                       string     `gorm:"index;size:32"`
	IsActive                   bool       `gorm:"index"`
	IsEmailVerified            bool       `gorm:"index"`
	VerificationTokenHash      string     `gorm:"index;size:64"`
	VerificationTokenExpiresAt *time.Time
	ResetTokenHash             string     `gorm:"index;size:64"`
	ResetTokenExpiresAt        *time.Time
	LastLoginAt                *time.Time
	CreatedAt                  time.Time      `gorm:"index"`
	UpdatedAt                  time.Time
	DeletedAt                  gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository. The email is normalized
// before the lookup so stored and queried values always agree.
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = ?", domain.NormalizeEmail(email))
}

// FindByUsername implements domain.UserRepository
func (r *UserRepositoryImpl) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByResetTokenHash implements domain.UserRepository. The lookup is keyed
// on the token digest with the expiry folded into the predicate, so no
// candidate scanning happens.
func (r *UserRepositoryImpl) FindByResetTokenHash(ctx context.Context, hash string) (*domain.User, error) {
	return r.findOne(ctx, "reset_token_hash = ? AND reset_token_expires_at > ?", hash, time.Now())
}

// FindByVerificationTokenHash implements domain.UserRepository
func (r *UserRepositoryImpl) FindByVerificationTokenHash(ctx context.Context, hash string) (*domain.User, error) {
	return r.findOne(ctx, "verification_token_hash = ? AND verification_token_expires_at > ?", hash, time.Now())
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	dbUser.CreatedAt = user.CreatedAt
	return r.db.WithContext(ctx).Save(dbUser).Error
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where(query, args...).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	dbUser := &DBUser{
		ID:              user.ID,
		Email:           domain.NormalizeEmail(user.Email),
		Username:        user.Username,
		PasswordHash:    user.PasswordHash,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Role:            user.Role,
		IsActive:        user.IsActive,
		IsEmailVerified: user.IsEmailVerified,
		LastLoginAt:     user.LastLoginAt,
	}
	if !user.VerificationToken.IsZero() {
		exp := user.VerificationToken.ExpiresAt
		dbUser.VerificationTokenHash = user.VerificationToken.Hash
		dbUser.VerificationTokenExpiresAt = &exp
	}
	if !user.ResetToken.IsZero() {
		exp := user.ResetToken.ExpiresAt
		dbUser.ResetTokenHash = user.ResetToken.Hash
		dbUser.ResetTokenExpiresAt = &exp
	}
	return dbUser
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	user := &domain.User{
		ID:              dbUser.ID,
		Email:           dbUser.Email,
		Username:        dbUser.Username,
		PasswordHash:    dbUser.PasswordHash,
		FirstName:       dbUser.FirstName,
		LastName:        dbUser.LastName,
		Role:            dbUser.Role,
		IsActive:        dbUser.IsActive,
		IsEmailVerified: dbUser.IsEmailVerified,
		LastLoginAt:     dbUser.LastLoginAt,
		CreatedAt:       dbUser.CreatedAt,
		UpdatedAt:       dbUser.UpdatedAt,
	}
	if dbUser.VerificationTokenHash != "" && dbUser.VerificationTokenExpiresAt != nil {
		user.VerificationToken = domain.TokenMaterial{
			Hash:      dbUser.VerificationTokenHash,
			ExpiresAt: *dbUser.VerificationTokenExpiresAt,
		}
	}
	if dbUser.ResetTokenHash != "" && dbUser.ResetTokenExpiresAt != nil {
		user.ResetToken = domain.TokenMaterial{
			Hash:      dbUser.ResetTokenHash,
			ExpiresAt: *dbUser.ResetTokenExpiresAt,
		}
	}
	return user
}
