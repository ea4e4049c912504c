package main

import (
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uwaveapi/docs"
	"uwaveapi/internal/config"
)

func TestSources(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ProviderConfig
		want []string
	}{
		{"none", config.ProviderConfig{}, []string{}},
		{"youtube only", config.ProviderConfig{YouTubeKey: "k"}, []string{"youtube"}},
		{"both", config.ProviderConfig{YouTubeKey: "k", SoundCloudKey: "c", RequestsPerSecond: 1}, []string{"soundcloud", "youtube"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sources(tt.cfg, zerolog.Nop()).Names())
		})
	}
}

func TestMountDocs(t *testing.T) {
	app := fiber.New()
	mountDocs(app)

	var wg sync.WaitGroup
	for _, host := range []string{"a.example", "b.example", "c.example"} {
		wg.Add(1)
		go func(host string) {
			defer wg.Done()
			req := httptest.NewRequest("GET", "/swagger/doc.json", nil)
			req.Host = host
			resp, err := app.Test(req)
			if !assert.NoError(t, err) {
				return
			}
			defer resp.Body.Close()
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)

			var doc map[string]any
			if assert.NoError(t, json.NewDecoder(resp.Body).Decode(&doc)) {
				assert.Equal(t, "", doc["host"])
			}
		}(host)
	}
	wg.Wait()

	require.Empty(t, docs.SwaggerInfo.Host)
	assert.Empty(t, docs.SwaggerInfo.Schemes)
}
