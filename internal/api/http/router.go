package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iot-kit/sensor-gateway/internal/api/http/handlers"
	"github.com/iot-kit/sensor-gateway/internal/auth"
	"github.com/iot-kit/sensor-gateway/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Docs     *handlers.DocsHandler
	Auth     *handlers.AuthHandler
	Sensors  *handlers.SensorsHandler
	Files    *handlers.FilesHandler
	Firmware *handlers.FirmwareHandler
	Roles    *auth.RolePredicate
}

// RegisterRoutes wires HTTP routes. The global gate is registered as a
// middleware; per-route role predicates are attached here.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/apispec.json", cfg.Docs.Spec)
	app.Get("/apidocs", cfg.Docs.Spec)

	app.Post("/auth", cfg.Auth.Login)
	app.Get("/auth", cfg.Auth.LoginPage)
	app.Get("/auth/jwtStore", cfg.Auth.CheckToken)
	app.Delete("/auth/jwtStore", cfg.Auth.Logout)

	anyRole := cfg.Roles.Require(domain.RoleOwner, domain.RoleAdmin)
	adminOnly := cfg.Roles.Require(domain.RoleAdmin)

	app.Get("/sensor/data", anyRole, cfg.Sensors.Data)
	app.Post("/sensor/config", adminOnly, cfg.Sensors.ConfigAck)
	app.Put("/sensor/config", adminOnly, cfg.Sensors.ConfigAck)

	app.Get("/sensors/:id", anyRole, cfg.Sensors.Sample)
	app.Post("/sensors/:id", adminOnly, cfg.Sensors.CreateConfig)
	app.Put("/sensors/:id/:file", adminOnly, cfg.Sensors.UpdateConfig)

	app.Get("/files", anyRole, cfg.Files.List)
	app.Post("/files", adminOnly, cfg.Files.Create)
	app.Get("/files/+", anyRole, cfg.Files.Get)
	app.Put("/files/+", adminOnly, cfg.Files.Update)
	app.Delete("/files/+", adminOnly, cfg.Files.Delete)

	app.Get("/firmware.bin", cfg.Firmware.Image)
	app.Get("/version", cfg.Firmware.Version)
}
