package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// DocsHandler serves a minimal OpenAPI description of the service.
type DocsHandler struct {
	serviceName string
	version     string
}

// NewDocsHandler constructs handler.
func NewDocsHandler(serviceName, version string) *DocsHandler {
	return &DocsHandler{serviceName: serviceName, version: version}
}

// Spec handles GET /apispec.json.
func (h *DocsHandler) Spec(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"swagger": "2.0",
		"info": fiber.Map{
			"title":       h.serviceName,
			"description": "Sensor API with JWT authentication and role-based authorization",
			"version":     h.version,
		},
		"basePath": "/",
		"securityDefinitions": fiber.Map{
			"Bearer": fiber.Map{
				"type":        "apiKey",
				"name":        "Authorization",
				"in":          "header",
				"description": `JWT Authorization header using the Bearer scheme. Example: "Authorization: Bearer {token}"`,
			},
		},
	})
}
