package worker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iot-kit/sensor-gateway/internal/heartbeat"
)

// RunHeartbeat toggles a GPIO key on the peer at a fixed interval,
// alternating between 1 and 0, until ctx is cancelled. Send failures
// are logged and the loop keeps going.
func RunHeartbeat(ctx context.Context, sender *heartbeat.Sender, interval time.Duration, gpioKey string, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	count := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			value := "1"
			if count%2 == 1 {
				value = "0"
			}
			payload := []byte(fmt.Sprintf("%s=%s", gpioKey, value))
			if err := sender.Send(payload); err != nil {
				logger.Warn("heartbeat send failed", zap.String("peer", sender.Peer()), zap.Error(err))
			} else {
				logger.Debug("heartbeat sent", zap.ByteString("payload", payload))
			}
			count++
		}
	}
}
