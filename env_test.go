package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/everforgeworks/galaxies-warp/internal/game"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("WARP_TEST_STR", "custom.yaml")
	t.Setenv("WARP_TEST_INT", "30")
	t.Setenv("WARP_TEST_BAD_INT", "-2")
	t.Setenv("WARP_TEST_DUR", "100ms")
	t.Setenv("WARP_TEST_BAD_DUR", "soon")

	assert.Equal(t, "custom.yaml", getEnvOrDefault("WARP_TEST_STR", "universe.yaml"))
	assert.Equal(t, "universe.yaml", getEnvOrDefault("WARP_TEST_UNSET", "universe.yaml"))
	assert.Equal(t, 30, getEnvInt("WARP_TEST_INT", 60))
	assert.Equal(t, 60, getEnvInt("WARP_TEST_BAD_INT", 60))
	assert.Equal(t, 100*time.Millisecond, getDurationOrDefault("WARP_TEST_DUR", time.Second))
	assert.Equal(t, time.Second, getDurationOrDefault("WARP_TEST_BAD_DUR", time.Second))
}

func TestSetupLogging(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	t.Setenv("LOG_LEVEL", "debug")
	setupLogging()
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	t.Setenv("LOG_LEVEL", "loud")
	setupLogging()
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}

func TestCorsMiddleware(t *testing.T) {
	called := false
	h := corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/research", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, called)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/research", nil))
	assert.True(t, called)
}

func TestSampleUniverseLoads(t *testing.T) {
	u, err := game.LoadConfig("universe.yaml")
	require.NoError(t, err)

	w, err := game.NewWorld(u)
	require.NoError(t, err)
	assert.Len(t, w.Systems, 3)
	assert.Len(t, w.Planets, 4)
	assert.Equal(t, "warp:scout", w.HeroShip().Hull)
	assert.Equal(t, []string{"warp:scout", "warp:explorer"}, u.Research.Ships)
	assert.Len(t, u.Abilities, 3)
}
