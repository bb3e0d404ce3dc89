package routes

import (
	"github.com/gofiber/fiber/v2"

	"files-manager/internal/handlers"
)

func Setup(app *fiber.App, h *handlers.Handler) {
	app.Get("/status", h.GetStatus)
	app.Get("/stats", h.GetStats)

	app.Get("/connect", h.Connect)
	app.Get("/disconnect", h.Disconnect)

	app.Post("/users", h.PostUser)
	app.Get("/users/me", h.GetMe)

	app.Post("/files", h.PostFile)
	app.Get("/files", h.ListFiles)
	app.Get("/files/:id", h.GetFile)
	app.Put("/files/:id/publish", h.PublishFile)
	app.Put("/files/:id/unpublish", h.UnpublishFile)
	app.Get("/files/:id/data", h.GetFileData)
}
