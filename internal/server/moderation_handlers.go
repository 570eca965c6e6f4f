package server

import (
	"newsdesk/internal/models"

	"github.com/gofiber/fiber/v2"
)

// RequestApproval handles POST /api/submissions/:id/approval-request.
// Succeeds only for complete submissions; the response carries the decision
// payload the client fills in before calling the approve endpoint.
func (s *Server) RequestApproval(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	decision, err := s.moderationService.RequestApproval(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(decision)
}

// FinalizeApproval handles POST /api/submissions/:id/approve
func (s *Server) FinalizeApproval(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Feedback string `json:"feedback"`
		Rating   int    `json:"rating"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	record, err := s.moderationService.FinalizeApproval(c.Context(), &models.ModerationDecision{
		SubmissionID: id,
		Feedback:     req.Feedback,
		Rating:       req.Rating,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// RequestRejection handles POST /api/submissions/:id/rejection-request.
// Always allowed; returns the decision payload awaiting a reason.
func (s *Server) RequestRejection(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	decision, err := s.moderationService.RequestRejection(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(decision)
}

// FinalizeRejection handles POST /api/submissions/:id/reject
func (s *Server) FinalizeRejection(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	record, err := s.moderationService.FinalizeRejection(c.Context(), id, req.Reason)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// RunReconcile handles POST /api/admin/reconcile
func (s *Server) RunReconcile(c *fiber.Ctx) error {
	cleaned, err := s.moderationService.Reconcile(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"cleaned": cleaned})
}
