package domain

import (
	"fmt"
	"math"
	"time"
)

// Assignment statuses
const (
	AssignmentActive     = "active"
	AssignmentPaused     = "paused"
	AssignmentCompleted  = "completed"
	AssignmentTerminated = "terminated"
)

// CoachAssignment links a coach user to a trainee user. Its lifecycle is a
// small state machine independent of either account's lifecycle; records are
// terminated, never deleted.
type CoachAssignment struct {
	ID                 uint
	CoachID            uint
	TraineeID          uint
	Status             string
	AssignmentType     string
	IsActive           bool
	AssignedAt         time.Time
	PausedAt           *time.Time
	ResumedAt          *time.Time
	EndedAt            *time.Time
	TotalSessions      int
	CompletedSessions  int
	SatisfactionRating *float64
	Notes              string
	Preferences        map[string]string
	Goals              map[string]string
	LastInteractionAt  *time.Time
	TerminatedBy       string
	TerminationReason  string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewCoachAssignment creates an active assignment. CoachID and TraineeID
// must differ; the service layer enforces that before calling.
func NewCoachAssignment(coachID, traineeID uint, assignmentType string) *CoachAssignment {
	now := time.Now()
	return &CoachAssignment{
		CoachID:        coachID,
		TraineeID:      traineeID,
		Status:         AssignmentActive,
		AssignmentType: assignmentType,
		IsActive:       true,
		AssignedAt:     now,
		Preferences:    map[string]string{},
		Goals:          map[string]string{},
	}
}

// IsCompleted reports whether the assignment ended successfully
func (a *CoachAssignment) IsCompleted() bool {
	return a.Status == AssignmentCompleted
}

// Pause transitions active -> paused
func (a *CoachAssignment) Pause(reason string) error {
	if a.Status != AssignmentActive {
		return &InvalidTransitionError{Action: "pause", From: a.Status, Message: "can only pause active assignments"}
	}
	now := time.Now()
	a.Status = AssignmentPaused
	a.IsActive = false
	a.PausedAt = &now
	a.AddNote("Assignment paused: "+reason, "system")
	return nil
}

// Resume transitions paused -> active
func (a *CoachAssignment) Resume(reason string) error {
	if a.Status != AssignmentPaused {
		return &InvalidTransitionError{Action: "resume", From: a.Status, Message: "can only resume paused assignments"}
	}
	now := time.Now()
	a.Status = AssignmentActive
	a.IsActive = true
	a.ResumedAt = &now
	a.AddNote("Assignment resumed: "+reason, "system")
	return nil
}

// Complete transitions active or paused -> completed
func (a *CoachAssignment) Complete(reason, completedBy string) error {
	if a.Status != AssignmentActive && a.Status != AssignmentPaused {
		return &InvalidTransitionError{Action: "complete", From: a.Status, Message: "can only complete active or paused assignments"}
	}
	now := time.Now()
	a.Status = AssignmentCompleted
	a.IsActive = false
	a.EndedAt = &now
	a.TerminatedBy = completedBy
	a.TerminationReason = reason
	a.AddNote("Assignment completed: "+reason, completedBy)
	return nil
}

// Terminate moves any non-terminated assignment to the terminal state
func (a *CoachAssignment) Terminate(reason, terminatedBy string) error {
	if a.Status == AssignmentTerminated {
		return &InvalidTransitionError{Action: "terminate", From: a.Status, Message: "assignment is already terminated"}
	}
	now := time.Now()
	a.Status = AssignmentTerminated
	a.IsActive = false
	a.EndedAt = &now
	a.TerminatedBy = terminatedBy
	a.TerminationReason = reason
	a.AddNote("Assignment terminated: "+reason, terminatedBy)
	return nil
}

// IncrementSessionCount records a newly scheduled session
func (a *CoachAssignment) IncrementSessionCount() {
	a.TotalSessions++
	now := time.Now()
	a.LastInteractionAt = &now
}

// CompleteSession records a finished session
func (a *CoachAssignment) CompleteSession() {
	a.CompletedSessions++
	now := time.Now()
	a.LastInteractionAt = &now
}

// AddNote appends a timestamped, author-tagged entry. Prior notes are never
// overwritten.
func (a *CoachAssignment) AddNote(note, author string) {
	entry := fmt.Sprintf("[%s] %s: %s", time.Now().UTC().Format(time.RFC3339), author, note)
	if a.Notes == "" {
		a.Notes = entry
	} else {
		a.Notes += "\n" + entry
	}
}

// SetPreference upserts a preference entry
func (a *CoachAssignment) SetPreference(key, value string) {
	if a.Preferences == nil {
		a.Preferences = map[string]string{}
	}
	a.Preferences[key] = value
}

// SetGoal upserts a goal entry
func (a *CoachAssignment) SetGoal(key, value string) {
	if a.Goals == nil {
		a.Goals = map[string]string{}
	}
	a.Goals[key] = value
}

// SetSatisfactionRating stores a 1-5 rating rounded to two decimals
func (a *CoachAssignment) SetSatisfactionRating(rating float64) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	rounded := math.Round(rating*100) / 100
	a.SatisfactionRating = &rounded
	return nil
}

// Duration returns whole days between assignment and end, nil while ongoing
func (a *CoachAssignment) Duration() *int {
	if a.EndedAt == nil {
		return nil
	}
	days := int(a.EndedAt.Sub(a.AssignedAt).Hours() / 24)
	return &days
}

// DaysActive returns days from assignment to end, or to now while ongoing
func (a *CoachAssignment) DaysActive() int {
	end := time.Now()
	if a.EndedAt != nil {
		end = *a.EndedAt
	}
	return int(end.Sub(a.AssignedAt).Hours() / 24)
}

// SessionCompletionRate returns completed/total as a percentage
func (a *CoachAssignment) SessionCompletionRate() float64 {
	if a.TotalSessions == 0 {
		return 0
	}
	return float64(a.CompletedSessions) / float64(a.TotalSessions) * 100
}

// DaysSinceLastInteraction returns nil when no interaction was recorded
func (a *CoachAssignment) DaysSinceLastInteraction() *int {
	if a.LastInteractionAt == nil {
		return nil
	}
	days := int(time.Since(*a.LastInteractionAt).Hours() / 24)
	return &days
}

// CoachWorkload aggregates assignment metrics for one coach
type CoachWorkload struct {
	CoachID         uint    `json:"coach_id"`
	ActiveClients   int     `json:"active_clients"`
	TotalClients    int     `json:"total_clients"`
	AvgSatisfaction float64 `json:"avg_satisfaction"`
	CompletionRate  float64 `json:"completion_rate"`
}
