package mocks

import (
	"context"

	"github.com/jhonDavid20/steady-vitality/domain"
)

// MockAssignmentRepository implements domain.AssignmentRepository for testing
type MockAssignmentRepository struct {
	CreateFunc          func(ctx context.Context, a *domain.CoachAssignment) error
	FindByIDFunc        func(ctx context.Context, id uint) (*domain.CoachAssignment, error)
	FindByCoachIDFunc   func(ctx context.Context, coachID uint) ([]*domain.CoachAssignment, error)
	FindByTraineeIDFunc func(ctx context.Context, traineeID uint) ([]*domain.CoachAssignment, error)
	UpdateFunc          func(ctx context.Context, a *domain.CoachAssignment) error
}

// NewMockAssignmentRepository creates a new MockAssignmentRepository with default behaviors
func NewMockAssignmentRepository() *MockAssignmentRepository {
	return &MockAssignmentRepository{}
}

// Create stores a new assignment
func (m *MockAssignmentRepository) Create(ctx context.Context, a *domain.CoachAssignment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, a)
	}
	a.ID = 1
	return nil
}

// FindByID finds an assignment by ID
func (m *MockAssignmentRepository) FindByID(ctx context.Context, id uint) (*domain.CoachAssignment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrAssignmentNotFound
}

// FindByCoachID lists a coach's assignments
func (m *MockAssignmentRepository) FindByCoachID(ctx context.Context, coachID uint) ([]*domain.CoachAssignment, error) {
	if m.FindByCoachIDFunc != nil {
		return m.FindByCoachIDFunc(ctx, coachID)
	}
	return nil, nil
}

// FindByTraineeID lists a trainee's assignments
func (m *MockAssignmentRepository) FindByTraineeID(ctx context.Context, traineeID uint) ([]*domain.CoachAssignment, error) {
	if m.FindByTraineeIDFunc != nil {
		return m.FindByTraineeIDFunc(ctx, traineeID)
	}
	return nil, nil
}

// Update persists assignment mutations
func (m *MockAssignmentRepository) Update(ctx context.Context, a *domain.CoachAssignment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, a)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.AssignmentRepository = (*MockAssignmentRepository)(nil)
