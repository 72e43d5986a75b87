package builder

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/samsontands/RAG/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		ServerAddr:           ":0",
		ServerHandlerTimeout: time.Minute,
		EnableMocks:          true,
		UploadURL:            config.DefaultUploadURL,
		PathwayHost:          config.DefaultPathwayHost,
		SessionCfg:           config.SessionConfig{TTL: time.Hour, CleanupInterval: time.Minute},
		FallbackAnswer:       config.DefaultFallbackAnswer,
		MaxMessageLength:     100,
	}
}

func TestSetupComponents(t *testing.T) {
	c := setupComponents(testConfig(), zap.NewNop())

	require.NotNil(t, c.Chat)
	require.NotNil(t, c.Files)
	require.NotNil(t, c.Validator)
	assert.Equal(t, config.DefaultUploadURL, c.Files.Info().UploadURL)
	assert.Contains(t, c.Files.Info().BackendCaption, "public Pathway sandbox")
}

func TestNewApp(t *testing.T) {
	app := newApp(setupComponents(testConfig(), zap.NewNop()))

	assert.Equal(t, ":0", app.server.Addr)
	assert.Greater(t, app.server.WriteTimeout, time.Minute)

	rec := httptest.NewRecorder()
	app.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
