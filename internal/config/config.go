package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Storage   StorageConfig
	Heartbeat HeartbeatConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// CredentialEntry is one username:secret:role triple from AUTH_USERS.
type CredentialEntry struct {
	Username string
	Secret   string
	Role     string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
	Users                 []CredentialEntry
}

// StorageConfig locates the filesystem-backed collaborators.
type StorageConfig struct {
	FilesDir        string
	SensorConfigDir string
	FirmwarePath    string
	VersionFile     string
}

// HeartbeatConfig controls the UDP heartbeat sender. An empty PeerAddr
// disables the worker.
type HeartbeatConfig struct {
	PeerAddr        string
	IntervalSeconds int
	GPIOKey         string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	users, err := parseUsers(getEnv("AUTH_USERS", defaultUsers))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_USERS: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "sensor-gateway"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "5000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "super-secret-key"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 10),
			Users:                 users,
		},
		Storage: StorageConfig{
			FilesDir:        getEnv("FILES_DIR", "./files"),
			SensorConfigDir: getEnv("SENSOR_CONFIG_DIR", "./sensor_configs"),
			FirmwarePath:    getEnv("FIRMWARE_PATH", "./firmware.bin"),
			VersionFile:     getEnv("VERSION_FILE", "./version.h"),
		},
		Heartbeat: HeartbeatConfig{
			PeerAddr:        os.Getenv("HEARTBEAT_PEER_ADDR"),
			IntervalSeconds: getEnvAsInt("HEARTBEAT_INTERVAL_SECONDS", 1),
			GPIOKey:         getEnv("HEARTBEAT_GPIO_KEY", "GPIO4"),
		},
	}

	return cfg, nil
}

// defaultUsers mirrors the classroom credential table.
const defaultUsers = "user1:parola1:admin,user2:parola2:owner,user3:parolaX:owner"

func parseUsers(raw string) ([]CredentialEntry, error) {
	entries := strings.Split(raw, ",")
	users := make([]CredentialEntry, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return nil, fmt.Errorf("entry %q must be username:secret:role", entry)
		}
		users = append(users, CredentialEntry{Username: parts[0], Secret: parts[1], Role: parts[2]})
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("no credential entries configured")
	}
	return users, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Interval returns the heartbeat period.
func (h HeartbeatConfig) Interval() time.Duration {
	if h.IntervalSeconds <= 0 {
		return time.Second
	}
	return time.Duration(h.IntervalSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
