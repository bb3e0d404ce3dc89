package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"files-manager/internal/apperr"
	service "files-manager/internal/services"
	"files-manager/internal/utils"
)

type Handler struct {
	auth   *service.AuthService
	files  *service.FileService
	app    *service.AppService
	logger *zap.SugaredLogger
}

func NewHandler(auth *service.AuthService, files *service.FileService, app *service.AppService, logger *zap.SugaredLogger) *Handler {
	return &Handler{auth: auth, files: files, app: app, logger: logger}
}

// fail maps a service error onto the HTTP taxonomy. Internal failures
// are logged here and the body keeps the generic message.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := apperr.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		h.logger.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return utils.JSONError(c, status, apperr.PublicMessage(err))
}
