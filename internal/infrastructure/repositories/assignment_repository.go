package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jhonDavid20/steady-vitality/domain"
)

// AssignmentRepositoryImpl implements domain.AssignmentRepository using GORM
type AssignmentRepositoryImpl struct {
	db *gorm.DB
}

// DBCoachAssignment represents the database model for CoachAssignment
type DBCoachAssignment struct {
	ID                 uint   `gorm:"primaryKey"`
	CoachID            uint   `gorm:"index"`
	TraineeID          uint   `gorm:"index"`
	Status             string `gorm:"index;size:32"`
	AssignmentType     string `gorm:"size:64"`
	IsActive           bool   `gorm:"index"`
	AssignedAt         time.Time
	PausedAt           *time.Time
	ResumedAt          *time.Time
	EndedAt            *time.Time
	TotalSessions      int
	CompletedSessions  int
	SatisfactionRating *float64          `gorm:"type:decimal(3,2)"`
	Notes              string            `gorm:"type:text"`
	Preferences        map[string]string `gorm:"serializer:json"`
	Goals              map[string]string `gorm:"serializer:json"`
	LastInteractionAt  *time.Time
	TerminatedBy       string `gorm:"size:64"`
	TerminationReason  string `gorm:"size:255"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName returns the table name for GORM
func (DBCoachAssignment) TableName() string {
	return "coach_assignments"
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *gorm.DB) domain.AssignmentRepository {
	return &AssignmentRepositoryImpl{db: db}
}

// Create implements domain.AssignmentRepository
func (r *AssignmentRepositoryImpl) Create(ctx context.Context, a *domain.CoachAssignment) error {
	dbA := r.domainToDB(a)
	if err := r.db.WithContext(ctx).Create(dbA).Error; err != nil {
		return err
	}
	a.ID = dbA.ID
	a.CreatedAt = dbA.CreatedAt
	a.UpdatedAt = dbA.UpdatedAt
	return nil
}

// FindByID implements domain.AssignmentRepository
func (r *AssignmentRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.CoachAssignment, error) {
	var dbA DBCoachAssignment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbA).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrAssignmentNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbA), nil
}

// FindByCoachID implements domain.AssignmentRepository
func (r *AssignmentRepositoryImpl) FindByCoachID(ctx context.Context, coachID uint) ([]*domain.CoachAssignment, error) {
	return r.findAll(ctx, "coach_id = ?", coachID)
}

// FindByTraineeID implements domain.AssignmentRepository
func (r *AssignmentRepositoryImpl) FindByTraineeID(ctx context.Context, traineeID uint) ([]*domain.CoachAssignment, error) {
	return r.findAll(ctx, "trainee_id = ?", traineeID)
}

// Update implements domain.AssignmentRepository
func (r *AssignmentRepositoryImpl) Update(ctx context.Context, a *domain.CoachAssignment) error {
	dbA := r.domainToDB(a)
	dbA.CreatedAt = a.CreatedAt
	return r.db.WithContext(ctx).Save(dbA).Error
}

func (r *AssignmentRepositoryImpl) findAll(ctx context.Context, query string, args ...interface{}) ([]*domain.CoachAssignment, error) {
	var dbAs []DBCoachAssignment
	err := r.db.WithContext(ctx).Where(query, args...).Order("assigned_at DESC").Find(&dbAs).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.CoachAssignment, 0, len(dbAs))
	for i := range dbAs {
		out = append(out, r.dbToDomain(&dbAs[i]))
	}
	return out, nil
}

func (r *AssignmentRepositoryImpl) domainToDB(a *domain.CoachAssignment) *DBCoachAssignment {
	return &DBCoachAssignment{
		ID:                 a.ID,
		CoachID:            a.CoachID,
		TraineeID:          a.TraineeID,
		Status:             a.Status,
		AssignmentType:     a.AssignmentType,
		IsActive:           a.IsActive,
		AssignedAt:         a.AssignedAt,
		PausedAt:           a.PausedAt,
		ResumedAt:          a.ResumedAt,
		EndedAt:            a.EndedAt,
		TotalSessions:      a.TotalSessions,
		CompletedSessions:  a.CompletedSessions,
		SatisfactionRating: a.SatisfactionRating,
		Notes:              a.Notes,
		Preferences:        a.Preferences,
		Goals:              a.Goals,
		LastInteractionAt:  a.LastInteractionAt,
		TerminatedBy:       a.TerminatedBy,
		TerminationReason:  a.TerminationReason,
	}
}

func (r *AssignmentRepositoryImpl) dbToDomain(a *DBCoachAssignment) *domain.CoachAssignment {
	return &domain.CoachAssignment{
		ID:                 a.ID,
		CoachID:            a.CoachID,
		TraineeID:          a.TraineeID,
		Status:             a.Status,
		AssignmentType:     a.AssignmentType,
		IsActive:           a.IsActive,
		AssignedAt:         a.AssignedAt,
		PausedAt:           a.PausedAt,
		ResumedAt:          a.ResumedAt,
		EndedAt:            a.EndedAt,
		TotalSessions:      a.TotalSessions,
		CompletedSessions:  a.CompletedSessions,
		SatisfactionRating: a.SatisfactionRating,
		Notes:              a.Notes,
		Preferences:        a.Preferences,
		Goals:              a.Goals,
		LastInteractionAt:  a.LastInteractionAt,
		TerminatedBy:       a.TerminatedBy,
		TerminationReason:  a.TerminationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}
