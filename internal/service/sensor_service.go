package service

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/iot-kit/sensor-gateway/internal/domain"
	"github.com/iot-kit/sensor-gateway/internal/persistence"
	"github.com/iot-kit/sensor-gateway/internal/storage"
	apperrors "github.com/iot-kit/sensor-gateway/pkg/util"
)

const sensorConfigFile = "config.txt"

// SensorService simulates sensor readings and manages per-sensor config
// files. Readings are uniform random values; the latest sample per
// sensor is cached in Redis best-effort.
type SensorService struct {
	configs *storage.FileStore
	redis   *persistence.Redis
	logger  *zap.Logger
	rng     *rand.Rand
}

// NewSensorService builds the service.
func NewSensorService(configs *storage.FileStore, redis *persistence.Redis, logger *zap.Logger) *SensorService {
	return &SensorService{
		configs: configs,
		redis:   redis,
		logger:  logger,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Sample returns a simulated reading for the sensor, in [10, 100).
func (s *SensorService) Sample(ctx context.Context, sensorID string) domain.SensorReading {
	value := round2(10.0 + s.rng.Float64()*90.0)
	s.cacheReading(ctx, sensorID, value)
	return domain.SensorReading{SensorID: sensorID, Value: value}
}

// Data returns the aggregate dashboard payload.
func (s *SensorService) Data(ctx context.Context) domain.SensorData {
	data := domain.SensorData{
		Temperature: round2(18.0 + s.rng.Float64()*12.0),
		Humidity:    round2(40.0 + s.rng.Float64()*30.0),
	}
	s.cacheReading(ctx, "temperature", data.Temperature)
	s.cacheReading(ctx, "humidity", data.Humidity)
	return data
}

// CreateConfig writes the default config file for a sensor. It fails
// with a conflict when the file already exists.
func (s *SensorService) CreateConfig(sensorID string) (string, error) {
	name := configName(sensorID, sensorConfigFile)
	err := s.configs.Create(name, "scale=1.0\n")
	switch err {
	case nil:
		return sensorConfigFile, nil
	case storage.ErrExists:
		return "", apperrors.NewConflict(
			fmt.Sprintf("config file for sensor %s already exists", sensorID), nil)
	case storage.ErrInvalidPath:
		return "", apperrors.NewValidationError("invalid sensor id", nil)
	default:
		return "", apperrors.NewInternalError(err)
	}
}

// UpdateConfig replaces the content of an existing sensor config file.
func (s *SensorService) UpdateConfig(sensorID, configFile, content string) error {
	err := s.configs.Update(configName(sensorID, configFile), content)
	switch err {
	case nil:
		return nil
	case storage.ErrNotFound:
		return apperrors.NewNotFound(
			fmt.Sprintf("config file %s for sensor %s", configFile, sensorID), nil)
	case storage.ErrInvalidPath:
		return apperrors.NewValidationError("invalid config path", nil)
	default:
		return apperrors.NewInternalError(err)
	}
}

func (s *SensorService) cacheReading(ctx context.Context, sensorID string, value float64) {
	if s.redis == nil {
		return
	}
	if err := s.redis.CacheReading(ctx, sensorID, value); err != nil {
		s.logger.Debug("sensor cache write failed", zap.String("sensor", sensorID), zap.Error(err))
	}
}

func configName(sensorID, file string) string {
	return sensorID + "/" + file
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
