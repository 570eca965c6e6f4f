package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetApprovedRecords handles GET /api/approved
func (s *Server) GetApprovedRecords(c *fiber.Ctx) error {
	records, err := s.moderationService.ListApproved(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(records)
}

// GetRejectedRecords handles GET /api/rejected
func (s *Server) GetRejectedRecords(c *fiber.Ctx) error {
	records, err := s.moderationService.ListRejected(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(records)
}
