package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iot-kit/sensor-gateway/internal/api/dto"
	"github.com/iot-kit/sensor-gateway/internal/service"
	apperrors "github.com/iot-kit/sensor-gateway/pkg/util"
)

// SensorsHandler serves simulated readings and sensor config files.
type SensorsHandler struct {
	sensors *service.SensorService
}

// NewSensorsHandler constructs handler.
func NewSensorsHandler(sensors *service.SensorService) *SensorsHandler {
	return &SensorsHandler{sensors: sensors}
}

// Data handles GET /sensor/data.
func (h *SensorsHandler) Data(c *fiber.Ctx) error {
	return c.JSON(h.sensors.Data(c.Context()))
}

// ConfigAck handles POST/PUT /sensor/config.
func (h *SensorsHandler) ConfigAck(c *fiber.Ctx) error {
	return c.JSON(dto.MessageResponse{Msg: "Config updated"})
}

// Sample handles GET /sensors/:id.
func (h *SensorsHandler) Sample(c *fiber.Ctx) error {
	return c.JSON(h.sensors.Sample(c.Context(), c.Params("id")))
}

// CreateConfig handles POST /sensors/:id.
func (h *SensorsHandler) CreateConfig(c *fiber.Ctx) error {
	sensorID := c.Params("id")
	filename, err := h.sensors.CreateConfig(sensorID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Config file created for sensor " + sensorID,
		"filename": filename,
	})
}

// UpdateConfig handles PUT /sensors/:id/:file.
func (h *SensorsHandler) UpdateConfig(c *fiber.Ctx) error {
	var req dto.FileContentRequest
	if err := c.BodyParser(&req); err != nil || req.Content == "" {
		return apperrors.NewValidationError("content missing", nil)
	}

	sensorID := c.Params("id")
	configFile := c.Params("file")
	if err := h.sensors.UpdateConfig(sensorID, configFile, req.Content); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Config file " + configFile + " updated for sensor " + sensorID,
	})
}
