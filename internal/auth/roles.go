package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/iot-kit/sensor-gateway/internal/domain"
	"github.com/iot-kit/sensor-gateway/internal/events"
	"github.com/iot-kit/sensor-gateway/internal/observability"
)

const claimKey = "auth_claim"

// Introspector resolves a token string to its claim, requiring both a
// valid decode and registry membership. Implemented by the auth service.
type Introspector interface {
	Introspect(token string) (domain.Claim, error)
}

// RolePredicate wraps routes with a required-role check. Revocation
// takes effect here on the next request, even though the gate does not
// re-check the registry.
type RolePredicate struct {
	introspector Introspector
	logger       *zap.Logger
	metrics      *observability.Metrics
	dispatcher   events.Dispatcher
}

// NewRolePredicate constructs the predicate factory.
func NewRolePredicate(introspector Introspector, logger *zap.Logger, metrics *observability.Metrics, dispatcher events.Dispatcher) *RolePredicate {
	return &RolePredicate{introspector: introspector, logger: logger, metrics: metrics, dispatcher: dispatcher}
}

// Require builds a handler admitting only claims whose role is in the
// allowed set. Any failure redirects to the login surface.
func (p *RolePredicate) Require(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		token, ok := ExtractBearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return p.deny(c, DenyMalformedHeader)
		}

		claim, err := p.introspector.Introspect(token)
		if err != nil {
			return p.deny(c, DenyTokenNotActive)
		}

		if _, member := allowedSet[claim.Role]; !member {
			return p.deny(c, DenyInsufficientRole)
		}

		c.Locals(claimKey, claim)
		return c.Next()
	}
}

func (p *RolePredicate) deny(c *fiber.Ctx, reason DenyReason) error {
	p.logger.Warn("route denied request",
		zap.String("path", c.Path()),
		zap.String("reason", string(reason)),
	)
	p.metrics.RecordDenial(c.Path(), string(reason))
	publishDenied(c, p.dispatcher, c.Path(), reason)
	return c.Redirect(LoginPath, fiber.StatusFound)
}

// ClaimFromContext retrieves the claim stored by a passing predicate.
func ClaimFromContext(c *fiber.Ctx) (domain.Claim, bool) {
	val := c.Locals(claimKey)
	if val == nil {
		return domain.Claim{}, false
	}
	claim, ok := val.(domain.Claim)
	return claim, ok
}
