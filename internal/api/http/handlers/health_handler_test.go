package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_Ready(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("dial tcp: connection refused") })

	cases := []struct {
		name   string
		deps   map[string]Pinger
		status int
	}{
		{"no dependencies", nil, fiber.StatusOK},
		{"all up", map[string]Pinger{"mongo": ok, "redis": ok}, fiber.StatusOK},
		{"redis down", map[string]Pinger{"mongo": ok, "redis": down}, fiber.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			h := NewHealthHandler("bloglist", "test", tc.deps)
			app.Get("/ready", h.Ready)

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ready", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			deps, _ := body["dependencies"].(map[string]any)
			assert.Len(t, deps, len(tc.deps))
		})
	}
}

func TestHealthHandler_Live(t *testing.T) {
	app := fiber.New()
	app.Get("/live", NewHealthHandler("bloglist", "1.2.3", nil).Live)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/live", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "1.2.3", body["version"])
}
