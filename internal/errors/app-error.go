package app_errors

import "fmt"

// AppError repräsentiert einen Anwendungsfehler mit einem Code, einer Nachricht und optional dem betroffenen Objekt.
type AppError struct {
	Code           int          // HTTP status code
	Type           string       // VALIDATION_ERROR, INVALID_TRANSITION, usw
	MessageKey     string       // i18n key
	Details        []FieldError // optional (validation)
	EntityID       string       // offending entity, if any
	CurrentState   string       // observed state of the offending entity
	RequestedState string       // state the caller asked for
	Err            error        // original error (internal only)
}

const (
	ErrValidation   = "VALIDATION_ERROR"
	ErrInvalidBody  = "INVALID_BODY"
	ErrInvalidParam = "INVALID_PARAM"
	ErrInvalidQuery = "INVALID_QUERY"
	ErrUnauthorized = "UNAUTHORIZED"
	ErrForbidden    = "FORBIDDEN"
	ErrNotFound     = "NOT_FOUND"
	ErrConflict     = "CONFLICT"
	ErrInternal     = "INTERNAL_ERROR"

	ErrInvalidTransition     = "INVALID_TRANSITION"
	ErrDuplicateJob          = "DUPLICATE_JOB"
	ErrStaleWorkItem         = "STALE_WORK_ITEM"
	ErrDownstreamUnavailable = "DOWNSTREAM_UNAVAILABLE"
)

type FieldError struct {
	Field      string         `json:"field"`
	Reason     string         `json:"reason"`
	MessageKey string         `json:"message_key"`
	Params     map[string]any `json:"params,omitempty"`
}

func NewAppError(code int, errType string, messageKey string, err error) *AppError {
	return &AppError{
		Code:       code,
		Type:       errType,
		MessageKey: messageKey,
		Err:        err,
	}
}

func NewValidationError(details []FieldError) *AppError {
	return &AppError{
		Code:       400,
		Type:       ErrValidation,
		MessageKey: "invalid_request",
		Details:    details,
	}
}

// NewInvalidTransition reports a state-machine guard violation. messageKey
// narrows the reason (skipped stage, missing deposit, wrong actor, ...).
func NewInvalidTransition(entityID, from, to, messageKey string) *AppError {
	if messageKey == "" {
		messageKey = "transition.invalid"
	}
	return &AppError{
		Code:           409,
		Type:           ErrInvalidTransition,
		MessageKey:     messageKey,
		EntityID:       entityID,
		CurrentState:   from,
		RequestedState: to,
		Err:            fmt.Errorf("invalid transition %s -> %s for %s", from, to, entityID),
	}
}

func NewStaleWorkItem(entityID, currentState string) *AppError {
	return &AppError{
		Code:         409,
		Type:         ErrStaleWorkItem,
		MessageKey:   "work_item.stale",
		EntityID:     entityID,
		CurrentState: currentState,
		Err:          fmt.Errorf("origin of work item %s has been cancelled", entityID),
	}
}

func NewDuplicateJob(err error) *AppError {
	return &AppError{
		Code:       409,
		Type:       ErrDuplicateJob,
		MessageKey: "schedule_job.duplicate",
		Err:        err,
	}
}

func NewDownstreamUnavailable(collaborator string, err error) *AppError {
	return &AppError{
		Code:       502,
		Type:       ErrDownstreamUnavailable,
		MessageKey: "downstream.unavailable",
		EntityID:   collaborator,
		Err:        err,
	}
}

// Is reports whether e is of the given error type. Nil-safe.
func (e *AppError) Is(errType string) bool {
	return e != nil && e.Type == errType
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.MessageKey
}
