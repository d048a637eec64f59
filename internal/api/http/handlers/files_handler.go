package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iot-kit/sensor-gateway/internal/api/dto"
	"github.com/iot-kit/sensor-gateway/internal/service"
	apperrors "github.com/iot-kit/sensor-gateway/pkg/util"
)

// FilesHandler exposes the lab file-CRUD routes.
type FilesHandler struct {
	files *service.FileService
}

// NewFilesHandler constructs handler.
func NewFilesHandler(fileService *service.FileService) *FilesHandler {
	return &FilesHandler{files: fileService}
}

// List handles GET /files.
func (h *FilesHandler) List(c *fiber.Ctx) error {
	names, err := h.files.List()
	if err != nil {
		return err
	}
	return c.JSON(names)
}

// Create handles POST /files with auto-generated names.
func (h *FilesHandler) Create(c *fiber.Ctx) error {
	var req dto.FileContentRequest
	if err := c.BodyParser(&req); err != nil || req.Content == "" {
		return apperrors.NewValidationError("content missing", nil)
	}

	name, err := h.files.CreateAuto(req.Content)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FileCreatedResponse{
		Filename: name,
		Message:  "File created",
	})
}

// Get handles GET /files/+.
func (h *FilesHandler) Get(c *fiber.Ctx) error {
	name := c.Params("+")
	content, err := h.files.Read(name)
	if err != nil {
		return err
	}
	return c.JSON(dto.FileContentResponse{Filename: name, Content: content})
}

// Update handles PUT /files/+.
func (h *FilesHandler) Update(c *fiber.Ctx) error {
	var req dto.FileContentRequest
	if err := c.BodyParser(&req); err != nil || req.Content == "" {
		return apperrors.NewValidationError("content missing", nil)
	}

	name := c.Params("+")
	if err := h.files.Update(name, req.Content); err != nil {
		return err
	}
	return c.JSON(dto.FileCreatedResponse{Filename: name, Message: "File updated"})
}

// Delete handles DELETE /files/+.
func (h *FilesHandler) Delete(c *fiber.Ctx) error {
	name := c.Params("+")
	if err := h.files.Delete(name); err != nil {
		return err
	}
	return c.JSON(dto.FileCreatedResponse{Filename: name, Message: "File deleted"})
}
