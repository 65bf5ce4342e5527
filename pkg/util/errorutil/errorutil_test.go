package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/team-organiser/internal/domain"
)

func TestToDomainError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"duplicate team", fmt.Errorf("create: %w", &domain.DuplicateTeamError{Name: "x"}), "DUPLICATE_TEAM", http.StatusConflict},
		{"invalid format", &domain.InvalidFormatError{Reason: "people must be an array"}, "INVALID_FORMAT", http.StatusBadRequest},
		{"out of range", &domain.IndexOutOfRangeError{TeamID: "t1", From: 4, Length: 2}, "INDEX_OUT_OF_RANGE", http.StatusUnprocessableEntity},
		{"empty team name", domain.ErrEmptyTeamName, "VALIDATION_FAILED", http.StatusBadRequest},
		{"not found", NewNotFound("import", nil), "NOT_FOUND", http.StatusNotFound},
		{"fiber", fiber.NewError(http.StatusBadRequest, "invalid payload"), "Bad Request", http.StatusBadRequest},
		{"generic", errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ToDomainError(tc.err)
			if got.Code != tc.code || got.HTTPStatus != tc.status {
				t.Fatalf("got %s/%d want %s/%d", got.Code, got.HTTPStatus, tc.code, tc.status)
			}
		})
	}
	if ToDomainError(nil) != nil {
		t.Fatalf("nil error must map to nil")
	}
}
