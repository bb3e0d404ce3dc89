package handlers

import (
	"github.com/gofiber/fiber/v2"

	"files-manager/internal/apperr"
)

type newUserReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /users {email,password} -> 201 {id,email}
func (h *Handler) PostUser(c *fiber.Ctx) error {
	var req newUserReq
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, apperr.InvalidArgument("Missing email"))
	}
	user, err := h.auth.Register(c.Context(), req.Email, req.Password)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user.Response())
}

// GET /users/me (X-Token) -> {id,email}
func (h *Handler) GetMe(c *fiber.Ctx) error {
	user, err := h.auth.Me(c.Context(), c.Get("X-Token"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(user.Response())
}
