package handlers

import (
	"os"
	"regexp"

	"github.com/gofiber/fiber/v2"

	"github.com/iot-kit/sensor-gateway/internal/config"
	apperrors "github.com/iot-kit/sensor-gateway/pkg/util"
)

var buildNumberRe = regexp.MustCompile(`#define BUILD_NUMBER "(\d+)"`)

// FirmwareHandler serves firmware images and the build number to
// devices polling for updates.
type FirmwareHandler struct {
	cfg config.StorageConfig
}

// NewFirmwareHandler constructs handler.
func NewFirmwareHandler(cfg config.StorageConfig) *FirmwareHandler {
	return &FirmwareHandler{cfg: cfg}
}

// Image handles GET /firmware.bin.
func (h *FirmwareHandler) Image(c *fiber.Ctx) error {
	data, err := os.ReadFile(h.cfg.FirmwarePath)
	if err != nil {
		if os.IsNotExist(err) {
			return apperrors.NewNotFound("firmware image", nil)
		}
		return apperrors.NewInternalError(err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.Send(data)
}

// Version handles GET /version, extracting BUILD_NUMBER from the
// version header file.
func (h *FirmwareHandler) Version(c *fiber.Ctx) error {
	data, err := os.ReadFile(h.cfg.VersionFile)
	if err != nil {
		if os.IsNotExist(err) {
			return apperrors.NewNotFound("version file", nil)
		}
		return apperrors.NewInternalError(err)
	}
	match := buildNumberRe.FindSubmatch(data)
	if match == nil {
		return apperrors.NewNotFound("build number", nil)
	}
	return c.SendString(string(match[1]))
}
