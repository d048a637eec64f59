package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iot-kit/sensor-gateway/internal/events"
	"github.com/iot-kit/sensor-gateway/internal/observability"
)

// LoginPath is the surface denied requests are redirected to.
const LoginPath = "/auth"

// DefaultPublicPaths are exempt from the gate: the login surface, the
// API documentation, health probes and the device-facing firmware
// endpoints (devices hold no tokens).
var DefaultPublicPaths = []string{
	"/auth",
	"/apidocs",
	"/apispec.json",
	"/health",
	"/firmware.bin",
	"/version",
}

// Gate is the global pre-dispatch check. It admits allow-listed paths
// unconditionally and requires a syntactically well-formed bearer
// header everywhere else. It performs no registry lookup; a well-formed
// but revoked token passes here and is rejected by the role predicate.
type Gate struct {
	publicPaths []string
	logger      *zap.Logger
	metrics     *observability.Metrics
	dispatcher  events.Dispatcher
}

// NewGate constructs the gate middleware.
func NewGate(publicPaths []string, logger *zap.Logger, metrics *observability.Metrics, dispatcher events.Dispatcher) *Gate {
	if len(publicPaths) == 0 {
		publicPaths = DefaultPublicPaths
	}
	return &Gate{publicPaths: publicPaths, logger: logger, metrics: metrics, dispatcher: dispatcher}
}

// Handle admits or redirects the request.
func (g *Gate) Handle(c *fiber.Ctx) error {
	path := c.Path()
	for _, public := range g.publicPaths {
		if strings.HasPrefix(path, public) {
			return c.Next()
		}
	}

	if _, ok := ExtractBearerToken(c.Get(fiber.HeaderAuthorization)); !ok {
		g.logger.Warn("gate denied request",
			zap.String("path", path),
			zap.String("reason", string(DenyMalformedHeader)),
		)
		g.metrics.RecordDenial(path, string(DenyMalformedHeader))
		publishDenied(c, g.dispatcher, path, DenyMalformedHeader)
		return c.Redirect(LoginPath, fiber.StatusFound)
	}
	return c.Next()
}

func publishDenied(c *fiber.Ctx, dispatcher events.Dispatcher, path string, reason DenyReason) {
	if dispatcher == nil {
		return
	}
	_ = dispatcher.Publish(c.Context(), events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAccessDenied,
		Timestamp: time.Now(),
		Payload:   events.AccessDeniedPayload{Path: path, Reason: string(reason)},
	})
}
