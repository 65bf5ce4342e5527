package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/team-organiser/internal/api/dto"
	"github.com/spec-kit/team-organiser/internal/service"
)

// SnapshotHandler serves export and the two-step import.
type SnapshotHandler struct {
	service *service.OrganiserService
}

// NewSnapshotHandler constructs handler.
func NewSnapshotHandler(organiser *service.OrganiserService) *SnapshotHandler {
	return &SnapshotHandler{service: organiser}
}

// Export GET /snapshot/export.
func (h *SnapshotHandler) Export(c *fiber.Ctx) error {
	data, filename, err := h.service.Export()
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

// StageImport POST /snapshot/import. The body is the snapshot file itself.
func (h *SnapshotHandler) StageImport(c *fiber.Ctx) error {
	staged, err := h.service.StageImport(c.UserContext(), c.Body())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"data": dto.StagedImportResponse{
		Token:         staged.Token,
		ExpiresAt:     staged.ExpiresAt,
		Prompt:        service.ImportConfirmPrompt,
		People:        staged.Summary.People,
		Teams:         staged.Summary.Teams,
		Reconstructed: staged.Summary.Reconstructed,
	}})
}

// ConfirmImport POST /snapshot/import/:token/confirm.
func (h *SnapshotHandler) ConfirmImport(c *fiber.Ctx) error {
	summary, err := h.service.ConfirmImport(c.UserContext(), c.Params("token"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ImportResultResponse{
		Message:       service.ImportSuccessMessage,
		People:        summary.People,
		Teams:         summary.Teams,
		Reconstructed: summary.Reconstructed,
	}})
}

// CancelImport DELETE /snapshot/import/:token.
func (h *SnapshotHandler) CancelImport(c *fiber.Ctx) error {
	if err := h.service.CancelImport(c.UserContext(), c.Params("token")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
