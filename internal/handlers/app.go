package handlers

import (
	"github.com/gofiber/fiber/v2"

	"files-manager/internal/apperr"
)

// GET /status -> {"redis":bool,"db":bool}
func (h *Handler) GetStatus(c *fiber.Ctx) error {
	redisAlive, dbAlive := h.app.Status(c.Context())
	return c.JSON(fiber.Map{"redis": redisAlive, "db": dbAlive})
}

// GET /stats -> {"users":n,"files":n}
func (h *Handler) GetStats(c *fiber.Ctx) error {
	users, files, err := h.app.Stats(c.Context())
	if err != nil {
		return h.fail(c, apperr.Storage("stats failed"))
	}
	return c.JSON(fiber.Map{"users": users, "files": files})
}
