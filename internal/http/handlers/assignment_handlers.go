package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jhonDavid20/steady-vitality/domain"
	"github.com/jhonDavid20/steady-vitality/internal/http/middleware"
)

// AssignmentHandlers handles coach/trainee assignment HTTP requests
type AssignmentHandlers struct {
	assignmentSvc domain.AssignmentService
}

// NewAssignmentHandlers creates new assignment handlers
func NewAssignmentHandlers(assignmentSvc domain.AssignmentService) *AssignmentHandlers {
	return &AssignmentHandlers{assignmentSvc: assignmentSvc}
}

// CreateAssignmentRequest represents the creation body
type CreateAssignmentRequest struct {
	CoachID        uint   `json:"coachId" binding:"required"`
	TraineeID      uint   `json:"traineeId" binding:"required"`
	AssignmentType string `json:"assignmentType"`
}

// ReasonRequest carries the free-text reason for a status transition
type ReasonRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// NoteRequest carries a note to append
type NoteRequest struct {
	Note string `json:"note" binding:"required"`
}

// RatingRequest carries a satisfaction rating
type RatingRequest struct {
	Rating float64 `json:"rating" binding:"required"`
}

// KeyValueRequest carries one preference or goal entry
type KeyValueRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// Create handles POST /assignments
func (h *AssignmentHandlers) Create(c *gin.Context) {
	var req CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	user := currentUser(c)
	// Coaches may only create assignments for themselves
	if user.Role == domain.RoleCoach && req.CoachID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Coaches can only create their own assignments"})
		return
	}

	assignment, err := h.assignmentSvc.Create(c.Request.Context(), req.CoachID, req.TraineeID, req.AssignmentType, user.Username)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "assignment": assignmentProjection(assignment)})
}

// List handles GET /assignments
func (h *AssignmentHandlers) List(c *gin.Context) {
	user := currentUser(c)
	assignments, err := h.assignmentSvc.ListForUser(c.Request.Context(), user)
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, assignmentProjection(a))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "assignments": out})
}

// Get handles GET /assignments/:id
func (h *AssignmentHandlers) Get(c *gin.Context) {
	assignment, ok := h.loadAuthorized(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "assignment": assignmentProjection(assignment)})
}

// Pause handles POST /assignments/:id/pause
func (h *AssignmentHandlers) Pause(c *gin.Context) {
	h.transition(c, h.assignmentSvc.Pause)
}

// Resume handles POST /assignments/:id/resume
func (h *AssignmentHandlers) Resume(c *gin.Context) {
	h.transition(c, h.assignmentSvc.Resume)
}

// Complete handles POST /assignments/:id/complete
func (h *AssignmentHandlers) Complete(c *gin.Context) {
	h.transition(c, h.assignmentSvc.Complete)
}

// Terminate handles POST /assignments/:id/terminate
func (h *AssignmentHandlers) Terminate(c *gin.Context) {
	h.transition(c, h.assignmentSvc.Terminate)
}

// RecordSession handles POST /assignments/:id/sessions
func (h *AssignmentHandlers) RecordSession(c *gin.Context) {
	assignment, ok := h.loadAuthorized(c)
	if !ok {
		return
	}
	updated, err := h.assignmentSvc.RecordSession(c.Request.Context(), assignment.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "assignment": assignmentProjection(updated)})
}

// CompleteSession handles POST /assignments/:id/sessions/complete
func (h *AssignmentHandlers) CompleteSession(c *gin.Context) {
	assignment, ok := h.loadAuthorized(c)
	if !ok {
		return
	}
	updated, err := h.assignmentSvc.CompleteSession(c.Request.Context(), assignment.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "assignment": assignmentProjection(updated)})
}

// AddNote handles POST /assignments/:id/notes
func (h *AssignmentHandlers) AddNote(c *gin.Context) {
	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	assignment, ok := h.loadAuthorized(c)
	if !ok {
		return
	}
	updated, err := h.assignmentSvc.AddNote(c.Request.Context(), assignment.ID, req.Note, currentUser(c).Username)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "assignment": assignmentProjection(updated)})
}

// SetRating handles POST /assignments/:id/rating
func (h *AssignmentHandlers) SetRating(c *gin.Context) {
	var req RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	assignment, ok := h.loadAuthorized(c)
	if !ok {
		return
	}
	updated, err := h.assignmentSvc.SetSatisfactionRating(c.Request.Context(), assignment.ID, req.Rating)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "assignment": assignmentProjection(updated)})
}

// SetPreference handles PUT /assignments/:id/preferences
func (h *AssignmentHandlers) SetPreference(c *gin.Context) {
	h.upsertEntry(c, h.assignmentSvc.SetPreference)
}

// SetGoal handles PUT /assignments/:id/goals
func (h *AssignmentHandlers) SetGoal(c *gin.Context) {
	h.upsertEntry(c, h.assignmentSvc.SetGoal)
}

// Workload handles GET /coaches/:id/workload
func (h *AssignmentHandlers) Workload(c *gin.Context) {
	coachID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid coach id"})
		return
	}

	user := currentUser(c)
	if user.Role != domain.RoleAdmin && user.ID != coachID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Cannot view another coach's workload"})
		return
	}

	workload, err := h.assignmentSvc.GetCoachWorkload(c.Request.Context(), coachID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "workload": workload})
}

func (h *AssignmentHandlers) transition(c *gin.Context, op func(ctx context.Context, id uint, reason, by string) (*domain.CoachAssignment, error)) {
	var req ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	assignment, ok := h.loadAuthorized(c)
	if !ok {
		return
	}
	updated, err := op(c.Request.Context(), assignment.ID, req.Reason, currentUser(c).Username)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "assignment": assignmentProjection(updated)})
}

func (h *AssignmentHandlers) upsertEntry(c *gin.Context, op func(ctx context.Context, id uint, key, value string) (*domain.CoachAssignment, error)) {
	var req KeyValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	assignment, ok := h.loadAuthorized(c)
	if !ok {
		return
	}
	updated, err := op(c.Request.Context(), assignment.ID, req.Key, req.Value)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "assignment": assignmentProjection(updated)})
}

// loadAuthorized fetches the assignment and enforces that the caller is a
// party to it (or an admin).
func (h *AssignmentHandlers) loadAuthorized(c *gin.Context) (*domain.CoachAssignment, bool) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid assignment id"})
		return nil, false
	}

	assignment, err := h.assignmentSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return nil, false
	}

	user := currentUser(c)
	if user.Role != domain.RoleAdmin && user.ID != assignment.CoachID && user.ID != assignment.TraineeID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not a party to this assignment"})
		return nil, false
	}
	return assignment, true
}

func (h *AssignmentHandlers) writeError(c *gin.Context, err error) {
	switch {
	case err == domain.ErrAssignmentNotFound || err == domain.ErrUserNotFound:
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	case err == domain.ErrSelfAssignment || err == domain.ErrInvalidRating || domain.IsInvalidTransition(err):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case err == domain.ErrInsufficientRole || err == domain.ErrUserInactive:
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": err.Error()})
	default:
		internalError(c, err)
	}
}

func currentUser(c *gin.Context) *domain.User {
	userVal, _ := c.Get(middleware.CtxUser)
	user, _ := userVal.(*domain.User)
	return user
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

// assignmentProjection includes the derived metrics alongside raw fields
func assignmentProjection(a *domain.CoachAssignment) gin.H {
	return gin.H{
		"id":                       a.ID,
		"coachId":                  a.CoachID,
		"traineeId":                a.TraineeID,
		"status":                   a.Status,
		"assignmentType":           a.AssignmentType,
		"isActive":                 a.IsActive,
		"assignedAt":               a.AssignedAt,
		"pausedAt":                 a.PausedAt,
		"resumedAt":                a.ResumedAt,
		"endedAt":                  a.EndedAt,
		"totalSessions":            a.TotalSessions,
		"completedSessions":        a.CompletedSessions,
		"satisfactionRating":       a.SatisfactionRating,
		"notes":                    a.Notes,
		"preferences":              a.Preferences,
		"goals":                    a.Goals,
		"lastInteractionAt":        a.LastInteractionAt,
		"terminatedBy":             a.TerminatedBy,
		"terminationReason":        a.TerminationReason,
		"duration":                 a.Duration(),
		"daysActive":               a.DaysActive(),
		"sessionCompletionRate":    a.SessionCompletionRate(),
		"daysSinceLastInteraction": a.DaysSinceLastInteraction(),
	}
}
