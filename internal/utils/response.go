package utils

import "github.com/gofiber/fiber/v2"

// JSONError writes the API's error body shape: {"error": "<message>"}.
func JSONError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
