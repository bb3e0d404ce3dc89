package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"files-manager/internal/apperr"
	"files-manager/internal/models"
	service "files-manager/internal/services"
)

// POST /files (X-Token) -> 201 entry
func (h *Handler) PostFile(c *fiber.Ctx) error {
	var in service.UploadInput
	if err := c.BodyParser(&in); err != nil {
		return h.fail(c, apperr.InvalidArgument("Missing name"))
	}
	f, err := h.files.Upload(c.Context(), c.Get("X-Token"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(f.Response())
}

// GET /files/:id (X-Token) -> entry
func (h *Handler) GetFile(c *fiber.Ctx) error {
	f, err := h.files.Show(c.Context(), c.Get("X-Token"), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(f.Response())
}

// GET /files?parentId=&page= (X-Token) -> [entry]
func (h *Handler) ListFiles(c *fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "0"), 10, 64)
	list, err := h.files.List(c.Context(), c.Get("X-Token"), c.Query("parentId"), page)
	if err != nil {
		return h.fail(c, err)
	}
	out := make([]models.FileResponse, 0, len(list))
	for _, f := range list {
		out = append(out, f.Response())
	}
	return c.JSON(out)
}

// PUT /files/:id/publish (X-Token) -> entry
func (h *Handler) PublishFile(c *fiber.Ctx) error {
	return h.setVisibility(c, true)
}

// PUT /files/:id/unpublish (X-Token) -> entry
func (h *Handler) UnpublishFile(c *fiber.Ctx) error {
	return h.setVisibility(c, false)
}

func (h *Handler) setVisibility(c *fiber.Ctx, isPublic bool) error {
	f, err := h.files.SetVisibility(c.Context(), c.Get("X-Token"), c.Params("id"), isPublic)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(f.Response())
}

// GET /files/:id/data?size= -> raw bytes, Content-Type from the name.
// Works with or without a token; private entries stay hidden without one.
func (h *Handler) GetFileData(c *fiber.Ctx) error {
	data, mimeType, err := h.files.FetchContent(c.Context(), c.Get("X-Token"), c.Params("id"), c.Query("size"))
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, mimeType)
	return c.Send(data)
}
