package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/mrsingh-rishi/bill-diff/comparison"
	"github.com/mrsingh-rishi/bill-diff/logger"
)

type compareResponse struct {
	Summary string  `json:"summary"`
	Success bool    `json:"success"`
	Error   *string `json:"error"`
}

type compareAndSpeakResponse struct {
	Summary     string  `json:"summary"`
	AudioBase64 *string `json:"audio_base64"`
	Success     bool    `json:"success"`
	Error       *string `json:"error"`
}

// POST /compare-bills
func (s *Server) compareBills(c *fiber.Ctx) error {
	var req comparison.Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}

	res, err := s.comparer.Compare(c.UserContext(), req)
	if err != nil {
		return validationError(c, err)
	}
	return c.JSON(compareResponse{
		Summary: res.Summary,
		Success: res.Success,
		Error:   optional(res.Error),
	})
}

// POST /compare-and-speak
func (s *Server) compareAndSpeak(c *fiber.Ctx) error {
	var req comparison.Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}

	res, err := s.comparer.CompareAndSpeak(c.UserContext(), req)
	if err != nil {
		return validationError(c, err)
	}
	return c.JSON(compareAndSpeakResponse{
		Summary:     res.Summary,
		AudioBase64: res.AudioBase64,
		Success:     res.Success,
		Error:       optional(res.Error),
	})
}

func validationError(c *fiber.Ctx, err error) error {
	if errors.Is(err, comparison.ErrValidation) {
		logger.Warn().Str("path", c.Path()).Msg("rejected comparison request with blank bill text")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return err
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
