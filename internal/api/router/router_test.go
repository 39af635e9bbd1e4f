package router

import (
	"IOStatDO/internal/metrics"
	"IOStatDO/internal/monitoring/iostat"
	"IOStatDO/internal/pkg/config"
	wsregistry "IOStatDO/internal/websocket"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSysfs creates a sysfs tree with one physical and one mapped device.
func fakeSysfs(t *testing.T) string {
	t.Helper()
	sys := t.TempDir()
	for _, name := range []string{"sda", "dm-0"} {
		dir := filepath.Join(sys, "block", name)
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "stat"),
			[]byte("100 0 2048 0 50 0 4096 0 0 0 0\n"), 0644))
	}
	return sys
}

func testConfig(t *testing.T) *config.Config {
	cfg := config.GetDefaultConfig()
	cfg.Monitoring.IOStat.SysPath = fakeSysfs(t)
	cfg.Monitoring.IOStat.Interval = 0.01
	return cfg
}

func startedMonitor(t *testing.T, cfg *config.Config, m *metrics.Metrics) *iostat.Monitor {
	t.Helper()
	mon, err := iostat.NewMonitorFromConfig(cfg, m)
	require.NoError(t, err)
	require.NoError(t, mon.StartMonitoring())
	t.Cleanup(mon.StopMonitoring)

	require.Eventually(t, func() bool {
		_, ok := mon.LastReading()
		return ok
	}, 2*time.Second, 5*time.Millisecond)
	return mon
}

func do(r http.Handler, method, path string, body []byte, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRootAndHealth(t *testing.T) {
	cfg := testConfig(t)
	r := New(cfg, nil, nil).Initialize()

	rec := do(r, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"app":"IOStatDO"`)

	rec = do(r, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "degraded")

	r = New(cfg, startedMonitor(t, cfg, nil), nil).Initialize()
	rec = do(r, http.MethodGet, "/health", nil, nil)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestIOStatBeforeBaseline(t *testing.T) {
	cfg := testConfig(t)

	rec := do(New(cfg, nil, nil).Initialize(), http.MethodGet, "/api/iostat", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	mon, err := iostat.NewMonitorFromConfig(cfg, nil)
	require.NoError(t, err)
	rec = do(New(cfg, mon, nil).Initialize(), http.MethodGet, "/api/iostat", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "no reading yet")
}

func TestIOStatLatest(t *testing.T) {
	cfg := testConfig(t)
	r := New(cfg, startedMonitor(t, cfg, nil), nil).Initialize()

	rec := do(r, http.MethodGet, "/api/iostat", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Reading    iostat.Reading `json:"reading"`
		Thresholds struct {
			Warning  uint64 `json:"warning_bytes"`
			Critical uint64 `json:"critical_bytes"`
		} `json:"thresholds"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "     0.000 MiB/s read      0.000 MiB/s write", body.Reading.Text)
	assert.Equal(t, iostat.AlertNormal, body.Reading.Class)
	assert.Equal(t, uint64(128<<20), body.Thresholds.Warning)
	assert.Equal(t, uint64(1024<<20), body.Thresholds.Critical)
}

func TestIOStatDevices(t *testing.T) {
	cfg := testConfig(t)
	r := New(cfg, nil, nil).Initialize()

	rec := do(r, http.MethodGet, "/api/iostat/devices", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Devices []iostat.Device `json:"devices"`
		Count   int             `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "sda", body.Devices[0].Name)

	cfg.Monitoring.IOStat.SysPath = t.TempDir()
	rec = do(New(cfg, nil, nil).Initialize(), http.MethodGet, "/api/iostat/devices", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	cfg := testConfig(t)
	m := metrics.NewMetrics(cfg.AppName)
	r := New(cfg, startedMonitor(t, cfg, m), m).Initialize()

	rec := do(r, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "iostat_samples_total")

	cfg.Metrics.Enabled = false
	rec = do(New(cfg, nil, m).Initialize(), http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthProtectsAPI(t *testing.T) {
	cfg := testConfig(t)
	cfg.API.Auth = config.AuthConfig{
		Enabled:       true,
		JWTSecret:     "test-secret",
		JWTExpiration: 60,
		Username:      "admin",
		Password:      "hunter2",
	}
	r := New(cfg, nil, nil).Initialize()

	rec := do(r, http.MethodGet, "/api/iostat/devices", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(r, http.MethodGet, "/api/iostat/devices", nil, http.Header{"Authorization": {"Token abc"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(r, http.MethodPost, "/api/auth/login", []byte(`{"username":"admin","password":"wrong"}`), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(r, http.MethodPost, "/api/auth/login", []byte(`not json`), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodPost, "/api/auth/login", []byte(`{"username":"admin","password":"hunter2"}`), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		Token     string  `json:"token"`
		ExpiresIn float64 `json:"expires_in"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)
	assert.Equal(t, 60.0, login.ExpiresIn)

	rec = do(r, http.MethodGet, "/api/iostat/devices", nil,
		http.Header{"Authorization": {"Bearer " + login.Token}})
	assert.Equal(t, http.StatusOK, rec.Code)

	// liveness stays public
	rec = do(r, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginDisabledWithoutAuth(t *testing.T) {
	r := New(testConfig(t), nil, nil).Initialize()

	rec := do(r, http.MethodPost, "/api/auth/login", []byte(`{}`), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebSocketStreamsReadings(t *testing.T) {
	cfg := testConfig(t)
	mon, err := iostat.NewMonitorFromConfig(cfg, nil)
	require.NoError(t, err)
	mon.BroadcastReadings(wsregistry.GetRegistry())

	server := httptest.NewServer(New(cfg, mon, nil).Initialize())
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/iostat"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return wsregistry.GetRegistry().Handler(wsregistry.ChannelIOStat).ClientCount() > 0
	}, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, mon.StartMonitoring())
	defer mon.StopMonitoring()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		IOStat iostat.Reading `json:"iostat"`
	}
	require.NoError(t, json.Unmarshal(data, &msg), fmt.Sprintf("payload: %s", data))
	assert.Equal(t, iostat.AlertNormal, msg.IOStat.Class)
	assert.Contains(t, msg.IOStat.Text, "MiB/s read")
}
