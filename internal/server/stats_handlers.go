package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetStats handles GET /api/stats
func (s *Server) GetStats(c *fiber.Ctx) error {
	stats, err := s.statsService.GetDashboardStats(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(stats)
}
