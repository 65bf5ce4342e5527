package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/team-organiser/internal/api/dto"
	"github.com/spec-kit/team-organiser/internal/service"
	apperrors "github.com/spec-kit/team-organiser/pkg/util/errorutil"
)

// RosterHandler exposes the board and its drag-and-drop mutations.
type RosterHandler struct {
	service *service.OrganiserService
}

// NewRosterHandler constructs handler.
func NewRosterHandler(organiser *service.OrganiserService) *RosterHandler {
	return &RosterHandler{service: organiser}
}

// GetRoster GET /roster.
func (h *RosterHandler) GetRoster(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.NewRosterResponse(h.service.State())})
}

// TeamMembers GET /teams/:id/members.
func (h *RosterHandler) TeamMembers(c *fiber.Ctx) error {
	state := h.service.State()
	team, ok := state.Team(c.Params("id"))
	if !ok {
		return apperrors.NewNotFound("team", map[string]any{"team_id": c.Params("id")})
	}
	return c.JSON(fiber.Map{"data": dto.NewTeamResponse(state, team)})
}

// IngestCSV POST /people/csv.
func (h *RosterHandler) IngestCSV(c *fiber.Ctx) error {
	var req dto.IngestCSVRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	added, err := h.service.IngestCSV(c.UserContext(), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"added": dto.NewPeopleResponse(added)}})
}

// CreateTeam POST /teams.
func (h *RosterHandler) CreateTeam(c *fiber.Ctx) error {
	var req dto.CreateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	team, err := h.service.CreateTeam(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTeamResponse(h.service.State(), team)})
}

// BeginDrag POST /drag/begin.
func (h *RosterHandler) BeginDrag(c *fiber.Ctx) error {
	var req dto.BeginDragRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.PersonID == "" {
		return apperrors.NewValidationError("personId required", nil)
	}
	if err := h.service.BeginDrag(c.UserContext(), req.PersonID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Drop POST /drag/drop.
func (h *RosterHandler) Drop(c *fiber.Ctx) error {
	var req dto.DropRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	changed, err := h.service.CompleteDrop(c.UserContext(), req.PersonID, req.TargetTeamID, req.SourceTeamID)
	if err != nil {
		return err
	}
	return h.mutationResult(c, changed)
}

// Reorder POST /drag/reorder.
func (h *RosterHandler) Reorder(c *fiber.Ctx) error {
	var req dto.ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TeamID == "" || req.FromIndex == nil || req.ToIndex == nil {
		return apperrors.NewValidationError("teamId, fromIndex, toIndex required", nil)
	}
	changed, err := h.service.CompleteReorder(c.UserContext(), req.TeamID, *req.FromIndex, *req.ToIndex)
	if err != nil {
		return err
	}
	return h.mutationResult(c, changed)
}

// RemoveFromTeam DELETE /people/:id/team.
func (h *RosterHandler) RemoveFromTeam(c *fiber.Ctx) error {
	changed, err := h.service.RemoveFromTeam(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return h.mutationResult(c, changed)
}

func (h *RosterHandler) mutationResult(c *fiber.Ctx, changed bool) error {
	return c.JSON(fiber.Map{"data": dto.MutationResponse{
		Changed: changed,
		Roster:  dto.NewRosterResponse(h.service.State()),
	}})
}
