package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/iot-kit/sensor-gateway/internal/api/http/handlers"
	"github.com/iot-kit/sensor-gateway/internal/auth"
	"github.com/iot-kit/sensor-gateway/internal/config"
	"github.com/iot-kit/sensor-gateway/internal/events"
	"github.com/iot-kit/sensor-gateway/internal/observability"
	"github.com/iot-kit/sensor-gateway/internal/service"
	"github.com/iot-kit/sensor-gateway/internal/storage"
	"github.com/iot-kit/sensor-gateway/internal/worker"
)

type testEnv struct {
	app     *fiber.App
	metrics *observability.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	credentials, err := auth.NewCredentialStore([]config.CredentialEntry{
		{Username: "user1", Secret: "parola1", Role: "admin"},
		{Username: "user2", Secret: "parola2", Role: "owner"},
		{Username: "user3", Secret: "parolaX", Role: "owner"},
	}, bcrypt.MinCost)
	require.NoError(t, err)

	authService := service.NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
	}, credentials, dispatcher)

	fileStore, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	sensorConfigStore, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	firmwareDir := t.TempDir()
	storageCfg := config.StorageConfig{
		FirmwarePath: filepath.Join(firmwareDir, "firmware.bin"),
		VersionFile:  filepath.Join(firmwareDir, "version.h"),
	}
	require.NoError(t, os.WriteFile(storageCfg.FirmwarePath, []byte{0xde, 0xad, 0xbe, 0xef}, 0o644))
	require.NoError(t, os.WriteFile(storageCfg.VersionFile, []byte("#define BUILD_NUMBER \"42\"\n"), 0o644))

	auditService := service.NewAuditService(dispatcher, logger)
	worker.StartAuditWorker(auditService)

	gate := auth.NewGate(nil, logger, metrics, dispatcher)
	roles := auth.NewRolePredicate(authService, logger, metrics, dispatcher)

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, gate, 0)
	RegisterRoutes(app, RouteConfig{
		Health:   handlers.NewHealthHandler("test", "dev", nil),
		Docs:     handlers.NewDocsHandler("test", "dev"),
		Auth:     handlers.NewAuthHandler(authService),
		Sensors:  handlers.NewSensorsHandler(service.NewSensorService(sensorConfigStore, nil, logger)),
		Files:    handlers.NewFilesHandler(service.NewFileService(fileStore)),
		Firmware: handlers.NewFirmwareHandler(storageCfg),
		Roles:    roles,
	})

	return &testEnv{app: app, metrics: metrics}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/auth", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func TestLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)

	t.Run("missing fields", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/auth", "", map[string]string{"username": "user1"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("bad credentials", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/auth", "", map[string]string{
			"username": "user1", "password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("success returns token", func(t *testing.T) {
		token := env.login(t, "user1", "parola1")
		assert.NotEmpty(t, token)
	})

	t.Run("login surface requires auth", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/auth", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGateAllowList(t *testing.T) {
	env := newTestEnv(t)

	publicPaths := []string{"/auth", "/apidocs", "/apispec.json", "/health/live", "/version", "/firmware.bin"}
	for _, path := range publicPaths {
		t.Run(path, func(t *testing.T) {
			resp := env.do(t, http.MethodGet, path, "", nil)
			assert.NotEqual(t, http.StatusFound, resp.StatusCode)
		})
	}

	t.Run("gated path without header redirects", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/sensor/data", "", nil)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/auth", resp.Header.Get("Location"))
	})

	t.Run("malformed scheme redirects", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/sensor/data", nil)
		req.Header.Set(fiber.HeaderAuthorization, "bearer lowercase-scheme")
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
	})

	t.Run("well-formed inactive token passes gate, dies at predicate", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/sensor/data", "not-an-active-token", nil)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, int64(1), env.metrics.DenialCount("/sensor/data", "token_not_active"))
	})
}

func TestOwnerRoleScenario(t *testing.T) {
	env := newTestEnv(t)

	token := env.login(t, "user2", "parola2")

	resp := env.do(t, http.MethodGet, "/sensor/data", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		Temperature float64 `json:"temperature"`
		Humidity    float64 `json:"humidity"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
	assert.NotZero(t, data.Temperature)
	assert.NotZero(t, data.Humidity)

	// owner is insufficient for the admin-only config route
	resp = env.do(t, http.MethodPost, "/sensor/config", token, nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth", resp.Header.Get("Location"))
	assert.Equal(t, int64(1), env.metrics.DenialCount("/sensor/config", "insufficient_role"))
}

func TestAdminRoleScenario(t *testing.T) {
	env := newTestEnv(t)

	token := env.login(t, "user1", "parola1")

	resp := env.do(t, http.MethodPost, "/sensor/config", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Msg string `json:"msg"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Config updated", body.Msg)

	resp = env.do(t, http.MethodPut, "/sensor/config", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTokenStoreEndpoints(t *testing.T) {
	env := newTestEnv(t)

	token := env.login(t, "user2", "parola2")

	t.Run("check active token returns role", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/auth/jwtStore", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Role string `json:"role"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "owner", body.Role)
	})

	t.Run("logout then check returns 404", func(t *testing.T) {
		resp := env.do(t, http.MethodDelete, "/auth/jwtStore", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = env.do(t, http.MethodGet, "/auth/jwtStore", token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		// revoked token no longer opens role-gated routes
		resp = env.do(t, http.MethodGet, "/sensor/data", token, nil)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
	})

	t.Run("second logout returns 404", func(t *testing.T) {
		resp := env.do(t, http.MethodDelete, "/auth/jwtStore", token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("unknown token returns 404", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/auth/jwtStore", "bogus", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestSensorRoutes(t *testing.T) {
	env := newTestEnv(t)

	admin := env.login(t, "user1", "parola1")
	owner := env.login(t, "user2", "parola2")

	t.Run("owner reads a simulated sample", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/sensors/s1", owner, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var reading struct {
			SensorID string  `json:"sensor_id"`
			Value    float64 `json:"value"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&reading))
		assert.Equal(t, "s1", reading.SensorID)
		assert.GreaterOrEqual(t, reading.Value, 10.0)
	})

	t.Run("admin manages sensor config files", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/sensors/s1", admin, nil)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		resp = env.do(t, http.MethodPost, "/sensors/s1", admin, nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		resp = env.do(t, http.MethodPut, "/sensors/s1/config.txt", admin, map[string]string{"content": "scale=2.5"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp = env.do(t, http.MethodPut, "/sensors/s1/other.txt", admin, map[string]string{"content": "scale=2.5"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("owner cannot create config", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/sensors/s2", owner, nil)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
	})
}

func TestFileRoutes(t *testing.T) {
	env := newTestEnv(t)

	admin := env.login(t, "user1", "parola1")
	owner := env.login(t, "user2", "parola2")

	resp := env.do(t, http.MethodGet, "/files", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/files", admin, map[string]string{"content": "hello"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Filename string `json:"filename"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "file1.txt", created.Filename)

	resp = env.do(t, http.MethodGet, "/files/file1.txt", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got struct {
		Content string `json:"content"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "hello", got.Content)

	resp = env.do(t, http.MethodPut, "/files/file1.txt", admin, map[string]string{"content": "changed"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// writes are admin-only
	resp = env.do(t, http.MethodPost, "/files", owner, map[string]string{"content": "nope"})
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, "/files/file1.txt", admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/files/file1.txt", owner, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFirmwareRoutes(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/firmware.bin", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, data)

	resp = env.do(t, http.MethodGet, "/version", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	version, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "42", string(version))
}
