package errors

import (
	"errors"
	"net/http"
)

// Domain errors. Business-rule kinds are expected outcomes and are returned
// to the caller unchanged; ErrStorageUnavailable means "unknown outcome".
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrAlreadyMember       = errors.New("candidate already belongs to a team")
	ErrTeamFull            = errors.New("team is full")
	ErrDuplicateRequest    = errors.New("join request already pending")
	ErrPendingRequests     = errors.New("candidate has pending join requests")
	ErrTeamLocked          = errors.New("team is locked")
	ErrAlreadyLocked       = errors.New("team already submitted")
	ErrQuotaExceeded       = errors.New("region quota exceeded")
	ErrInvalidState        = errors.New("invalid state transition")
	ErrLeaderRemoval       = errors.New("leader cannot leave while members remain")
	ErrConcurrencyConflict = errors.New("concurrent modification detected")
	ErrStorageUnavailable  = errors.New("storage unavailable")
)

type kind struct {
	err     error
	status  int
	code    string
	message string
}

// Order matters: the first kind matched by errors.Is wins, so wrapped
// storage faults are checked last.
var kinds = []kind{
	{ErrNotFound, http.StatusNotFound, "NOT_FOUND", "The requested resource does not exist."},
	{ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT", "The request is invalid."},
	{ErrUnauthorized, http.StatusForbidden, "UNAUTHORIZED", "You are not allowed to perform this action."},
	{ErrAlreadyMember, http.StatusConflict, "ALREADY_MEMBER", "This candidate already belongs to a team."},
	{ErrTeamFull, http.StatusConflict, "TEAM_FULL", "This team has reached its maximum size."},
	{ErrDuplicateRequest, http.StatusConflict, "DUPLICATE_REQUEST", "A request to join this team is already pending."},
	{ErrPendingRequests, http.StatusConflict, "PENDING_REQUESTS", "Withdraw your pending join requests before creating a team."},
	{ErrTeamLocked, http.StatusConflict, "TEAM_LOCKED", "This team has been submitted and can no longer be edited."},
	{ErrAlreadyLocked, http.StatusConflict, "ALREADY_LOCKED", "This team has already been submitted."},
	{ErrQuotaExceeded, http.StatusUnprocessableEntity, "QUOTA_EXCEEDED", "The final selection quota for this region has been reached."},
	{ErrLeaderRemoval, http.StatusUnprocessableEntity, "INVALID_STATE", "The leader cannot leave while other members remain."},
	{ErrInvalidState, http.StatusUnprocessableEntity, "INVALID_STATE", "This action is not allowed in the current state."},
	{ErrConcurrencyConflict, http.StatusConflict, "CONCURRENCY_CONFLICT", "The data changed while processing the request, please retry."},
	{ErrStorageUnavailable, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "The data store is unavailable; verify the current state before retrying."},
}

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// FromError maps err onto its stable API representation. Unknown errors
// become an internal error.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return NewAppError(k.status, k.code, k.message, err)
		}
	}
	return InternalError(err)
}

// Message returns the stable human-readable message for a domain error kind.
func Message(err error) string {
	return FromError(err).Message
}

// IsBusiness reports whether err is an expected business-rule outcome, as
// opposed to a storage fault or an unknown failure.
func IsBusiness(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrStorageUnavailable) {
		return false
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return true
		}
	}
	return false
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, "NOT_FOUND", message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, "INVALID_INPUT", message, ErrInvalidInput)
}

func Unauthenticated(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, "UNAUTHENTICATED", message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, "FORBIDDEN", message, ErrUnauthorized)
}

// LeaderOnly is the UNAUTHORIZED outcome of a leader-only team action.
func LeaderOnly() *AppError {
	return NewAppError(http.StatusForbidden, "UNAUTHORIZED", "Only the team leader can perform this action.", ErrUnauthorized)
}

// ApplicantOnly is the UNAUTHORIZED outcome of acting on someone else's join request.
func ApplicantOnly() *AppError {
	return NewAppError(http.StatusForbidden, "UNAUTHORIZED", "Only the applicant can withdraw this request.", ErrUnauthorized)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", err)
}
