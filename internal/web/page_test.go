package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-santatrack/internal/config"
	"github.com/coreman2200/funtimes-santatrack/internal/tracking"
)

func TestIndexPage(t *testing.T) {
	cfg := config.Defaults()
	h, err := Handler(cfg, tracking.Default("Маша", "SANTA-M", "06.01 - 09.01"))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "ПОСЫЛКА ДЛЯ Маша")
	assert.Contains(t, body, "SANTA-M")
	assert.Contains(t, body, `id="ev-1"`)
	assert.Contains(t, body, "#ef4444")
	assert.Contains(t, body, `new WebSocket(proto + location.host + "/ws")`)
	assert.Contains(t, body, "touring = v.tourRunning;")
}

func TestIndexOnlyAtRoot(t *testing.T) {
	h, err := Handler(config.Defaults(), tracking.Default("x", "y", "z"))
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBadThemeFails(t *testing.T) {
	cfg := config.Defaults()
	cfg.Theme.Accent = "nope"
	_, err := Handler(cfg, tracking.Default("x", "y", "z"))
	assert.ErrorContains(t, err, "theme.accent")
}
