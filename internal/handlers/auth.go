package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// GET /connect (Basic auth header) -> {token}
func (h *Handler) Connect(c *fiber.Ctx) error {
	tok, err := h.auth.Connect(c.Context(), c.Get("Authorization"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"token": tok})
}

// GET /disconnect (X-Token header) -> 204
func (h *Handler) Disconnect(c *fiber.Ctx) error {
	if err := h.auth.Disconnect(c.Context(), c.Get("X-Token")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
