package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/iot-kit/sensor-gateway/internal/events"
)

// AuditService writes structured audit lines for auth events.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventTokenIssued, a.handleTokenIssued)
	a.dispatcher.Subscribe(events.EventTokenRevoked, a.handleTokenRevoked)
	a.dispatcher.Subscribe(events.EventAccessDenied, a.handleAccessDenied)
}

func (a *AuditService) handleTokenIssued(ctx context.Context, event events.Event) error {
	a.logger.Info("TokenIssued", zap.String("subject", event.Subject), zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleTokenRevoked(ctx context.Context, event events.Event) error {
	a.logger.Info("TokenRevoked", zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleAccessDenied(ctx context.Context, event events.Event) error {
	a.logger.Warn("AccessDenied", zap.Any("payload", event.Payload))
	return nil
}
