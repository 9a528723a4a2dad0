package domain

import (
	"errors"
	"fmt"
)

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrEmailNotVerified   = errors.New("email address not verified")
)

// Token errors
var (
	ErrTokenInvalid        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token has expired")
	ErrTokenMalformed      = errors.New("malformed token")
	ErrRefreshTokenInvalid = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token has expired")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionInvalid  = errors.New("session invalid or expired")
)

// Authorization errors
var (
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrInsufficientRole = errors.New("insufficient role permissions")
)

// Assignment errors
var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrSelfAssignment     = errors.New("coach and trainee must be different users")
	ErrInvalidRating      = errors.New("satisfaction rating must be between 1 and 5")
)

// InvalidTransitionError reports an illegal assignment state change together
// with the state the assignment was actually in.
type InvalidTransitionError struct {
	Action  string
	From    string
	Message string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s (current status: %s)", e.Message, e.From)
}

// IsInvalidTransition reports whether err is an illegal state-machine move
func IsInvalidTransition(err error) bool {
	var ite *InvalidTransitionError
	return errors.As(err, &ite)
}
