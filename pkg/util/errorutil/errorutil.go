package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/team-organiser/internal/domain"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts roster, fiber and generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}

	var dupTeam *domain.DuplicateTeamError
	if errors.As(err, &dupTeam) {
		return &DomainError{
			Code:       "DUPLICATE_TEAM",
			Message:    dupTeam.Error(),
			HTTPStatus: http.StatusConflict,
			Details:    map[string]any{"name": dupTeam.Name, "existing_team_id": dupTeam.Existing.ID},
			Err:        err,
		}
	}
	var invalid *domain.InvalidFormatError
	if errors.As(err, &invalid) {
		return &DomainError{
			Code:       "INVALID_FORMAT",
			Message:    invalid.Error(),
			HTTPStatus: http.StatusBadRequest,
			Err:        err,
		}
	}
	var outOfRange *domain.IndexOutOfRangeError
	if errors.As(err, &outOfRange) {
		return &DomainError{
			Code:       "INDEX_OUT_OF_RANGE",
			Message:    "reorder index out of range",
			HTTPStatus: http.StatusUnprocessableEntity,
			Details:    map[string]any{"team_id": outOfRange.TeamID, "length": outOfRange.Length},
			Err:        err,
		}
	}
	if errors.Is(err, domain.ErrEmptyTeamName) {
		return NewDomainError("VALIDATION_FAILED", err.Error(), http.StatusBadRequest, nil)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return &DomainError{
			Code:       http.StatusText(fiberErr.Code),
			Message:    fiberErr.Message,
			HTTPStatus: fiberErr.Code,
		}
	}
	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
