package server

import (
	"newsdesk/internal/models"

	"github.com/gofiber/fiber/v2"
)

// submissionRequest is the JSON body for creating or editing a submission.
type submissionRequest struct {
	Topic    string `json:"topic"`
	Reporter string `json:"reporter"`
	Content  string `json:"content"`
	Image    string `json:"image"`
	Status   string `json:"status"`
}

// GetSubmissions handles GET /api/submissions
func (s *Server) GetSubmissions(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	subs, err := s.moderationService.ListSubmissions(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(subs)
}

// GetPendingSubmissions handles GET /api/submissions/pending.
// Returns the same snapshot shape delivered over the WebSocket stream.
func (s *Server) GetPendingSubmissions(c *fiber.Ctx) error {
	subs, err := s.moderationService.ListPending(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(subs)
}

// GetSubmission handles GET /api/submissions/:id
func (s *Server) GetSubmission(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	sub, err := s.moderationService.GetSubmission(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(sub)
}

// CreateSubmission handles POST /api/submissions
func (s *Server) CreateSubmission(c *fiber.Ctx) error {
	var req submissionRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	sub := &models.Submission{
		Topic:    req.Topic,
		Reporter: req.Reporter,
		Content:  req.Content,
		Image:    req.Image,
		Status:   req.Status,
	}
	if err := s.moderationService.CreateSubmission(c.Context(), sub); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sub)
}

// UpdateSubmission handles PUT /api/submissions/:id
func (s *Server) UpdateSubmission(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req submissionRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	sub, err := s.moderationService.EditSubmission(c.Context(), id, &models.Submission{
		Topic:    req.Topic,
		Reporter: req.Reporter,
		Content:  req.Content,
		Image:    req.Image,
		Status:   req.Status,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(sub)
}

// DeleteSubmission handles DELETE /api/submissions/:id
func (s *Server) DeleteSubmission(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.moderationService.DeleteSubmission(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
