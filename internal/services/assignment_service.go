package services

import (
	"context"
	"fmt"

	"github.com/jhonDavid20/steady-vitality/domain"
)

// AssignmentServiceImpl implements domain.AssignmentService
type AssignmentServiceImpl struct {
	assignments domain.AssignmentRepository
	users       domain.UserRepository
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(assignments domain.AssignmentRepository, users domain.UserRepository) domain.AssignmentService {
	return &AssignmentServiceImpl{assignments: assignments, users: users}
}

// Create implements domain.AssignmentService. Both parties must exist and be
// active, the coach side must actually hold the coach (or admin) role, and
// self-assignment is rejected outright.
func (s *AssignmentServiceImpl) Create(ctx context.Context, coachID, traineeID uint, assignmentType, createdBy string) (*domain.CoachAssignment, error) {
	if coachID == traineeID {
		return nil, domain.ErrSelfAssignment
	}

	coach, err := s.users.FindByID(ctx, coachID)
	if err != nil {
		return nil, err
	}
	if !coach.IsActive {
		return nil, domain.ErrUserInactive
	}
	if coach.Role != domain.RoleCoach && coach.Role != domain.RoleAdmin {
		return nil, domain.ErrInsufficientRole
	}

	trainee, err := s.users.FindByID(ctx, traineeID)
	if err != nil {
		return nil, err
	}
	if !trainee.IsActive {
		return nil, domain.ErrUserInactive
	}

	if assignmentType == "" {
		assignmentType = "general"
	}

	assignment := domain.NewCoachAssignment(coachID, traineeID, assignmentType)
	assignment.AddNote("Assignment created", createdBy)

	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}
	return assignment, nil
}

// Get implements domain.AssignmentService
func (s *AssignmentServiceImpl) Get(ctx context.Context, id uint) (*domain.CoachAssignment, error) {
	return s.assignments.FindByID(ctx, id)
}

// ListForUser implements domain.AssignmentService. Coaches and admins see
// their coach-side assignments, clients their trainee-side ones.
func (s *AssignmentServiceImpl) ListForUser(ctx context.Context, user *domain.User) ([]*domain.CoachAssignment, error) {
	if user.Role == domain.RoleCoach || user.Role == domain.RoleAdmin {
		return s.assignments.FindByCoachID(ctx, user.ID)
	}
	return s.assignments.FindByTraineeID(ctx, user.ID)
}

// Pause implements domain.AssignmentService
func (s *AssignmentServiceImpl) Pause(ctx context.Context, id uint, reason, by string) (*domain.CoachAssignment, error) {
	return s.transition(ctx, id, func(a *domain.CoachAssignment) error {
		return a.Pause(reason)
	})
}

// Resume implements domain.AssignmentService
func (s *AssignmentServiceImpl) Resume(ctx context.Context, id uint, reason, by string) (*domain.CoachAssignment, error) {
	return s.transition(ctx, id, func(a *domain.CoachAssignment) error {
		return a.Resume(reason)
	})
}

// Complete implements domain.AssignmentService
func (s *AssignmentServiceImpl) Complete(ctx context.Context, id uint, reason, by string) (*domain.CoachAssignment, error) {
	return s.transition(ctx, id, func(a *domain.CoachAssignment) error {
		return a.Complete(reason, by)
	})
}

// Terminate implements domain.AssignmentService
func (s *AssignmentServiceImpl) Terminate(ctx context.Context, id uint, reason, by string) (*domain.CoachAssignment, error) {
	return s.transition(ctx, id, func(a *domain.CoachAssignment) error {
		return a.Terminate(reason, by)
	})
}

// RecordSession implements domain.AssignmentService
func (s *AssignmentServiceImpl) RecordSession(ctx context.Context, id uint) (*domain.CoachAssignment, error) {
	return s.transition(ctx, id, func(a *domain.CoachAssignment) error {
		a.IncrementSessionCount()
		return nil
	})
}

// CompleteSession implements domain.AssignmentService
func (s *AssignmentServiceImpl) CompleteSession(ctx context.Context, id uint) (*domain.CoachAssignment, error) {
	return s.transition(ctx, id, func(a *domain.CoachAssignment) error {
		a.CompleteSession()
		return nil
	})
}

// AddNote implements domain.AssignmentService
func (s *AssignmentServiceImpl) AddNote(ctx context.Context, id uint, note, author string) (*domain.CoachAssignment, error) {
	return s.transition(ctx, id, func(a *domain.CoachAssignment) error {
		a.AddNote(note, author)
		return nil
	})
}

// SetPreference implements domain.AssignmentService
func (s *AssignmentServiceImpl) SetPreference(ctx context.Context, id uint, key, value string) (*domain.CoachAssignment, error) {
	return s.transition(ctx, id, func(a *domain.CoachAssignment) error {
		a.SetPreference(key, value)
		return nil
	})
}

// SetGoal implements domain.AssignmentService
func (s *AssignmentServiceImpl) SetGoal(ctx context.Context, id uint, key, value string) (*domain.CoachAssignment, error) {
	return s.transition(ctx, id, func(a *domain.CoachAssignment) error {
		a.SetGoal(key, value)
		return nil
	})
}

// SetSatisfactionRating implements domain.AssignmentService
func (s *AssignmentServiceImpl) SetSatisfactionRating(ctx context.Context, id uint, rating float64) (*domain.CoachAssignment, error) {
	return s.transition(ctx, id, func(a *domain.CoachAssignment) error {
		return a.SetSatisfactionRating(rating)
	})
}

// GetCoachWorkload implements domain.AssignmentService. Mean satisfaction
// counts rated assignments only; completion rate is computed over the summed
// session counters of every assignment.
func (s *AssignmentServiceImpl) GetCoachWorkload(ctx context.Context, coachID uint) (*domain.CoachWorkload, error) {
	assignments, err := s.assignments.FindByCoachID(ctx, coachID)
	if err != nil {
		return nil, err
	}

	workload := &domain.CoachWorkload{CoachID: coachID}
	var ratingSum float64
	var ratedCount, totalSessions, completedSessions int

	for _, a := range assignments {
		workload.TotalClients++
		if a.Status == domain.AssignmentActive {
			workload.ActiveClients++
		}
		if a.SatisfactionRating != nil {
			ratingSum += *a.SatisfactionRating
			ratedCount++
		}
		totalSessions += a.TotalSessions
		completedSessions += a.CompletedSessions
	}

	if ratedCount > 0 {
		workload.AvgSatisfaction = ratingSum / float64(ratedCount)
	}
	if totalSessions > 0 {
		workload.CompletionRate = float64(completedSessions) / float64(totalSessions) * 100
	}
	return workload, nil
}

// transition loads, mutates and persists one assignment
func (s *AssignmentServiceImpl) transition(ctx context.Context, id uint, mutate func(*domain.CoachAssignment) error) (*domain.CoachAssignment, error) {
	assignment, err := s.assignments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(assignment); err != nil {
		return nil, err
	}
	if err := s.assignments.Update(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}
	return assignment, nil
}
