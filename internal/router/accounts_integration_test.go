package router_test

import (
	"context"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/account-service/internal/config"
	"github.com/deppfellow/account-service/internal/database/fixture"
	"github.com/deppfellow/account-service/internal/handler"
	"github.com/deppfellow/account-service/internal/repository"
	"github.com/deppfellow/account-service/internal/router"
	"github.com/deppfellow/account-service/internal/server"
	"github.com/deppfellow/account-service/internal/service"
)

// TestAccountsAgainstPostgres runs the full stack against a real database.
// Set ACCOUNTS_TEST_DB_URL to a disposable database to enable it.
func TestAccountsAgainstPostgres(t *testing.T) {
	url := os.Getenv("ACCOUNTS_TEST_DB_URL")
	if url == "" {
		t.Skip("ACCOUNTS_TEST_DB_URL not set")
	}

	log := zerolog.New(zerolog.NewTestWriter(t))

	cfg := config.Default()
	cfg.Database.URL = url
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"

	s, err := server.New(cfg, &log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })

	require.NoError(t, fixture.Apply(context.Background(), s.DB.Pool, &log))

	services := service.NewServices(repository.NewRepositories(s))
	env := &testEnv{router: router.NewRouter(s, handler.NewHandlers(s, services))}

	tests := []struct {
		target string
		status int
		body   string
	}{
		{target: "/accounts?id=1", status: http.StatusOK, body: `{"id":1,"name":"Alice"}`},
		{target: "/accounts?id=2", status: http.StatusOK, body: `{"id":2,"name":"山田"}`},
		{target: "/accounts?id=3", status: http.StatusOK, body: `{"id":3,"name":""}`},
		{target: "/accounts?id=999", status: http.StatusNotFound},
		{target: "/accounts?id=abc", status: http.StatusBadRequest},
		{target: "/accounts", status: http.StatusBadRequest},
		{target: "/status", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := env.do(http.MethodGet, tt.target)

			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, strings.TrimSpace(rec.Body.String()))
			}
		})
	}

	rec := env.do(http.MethodPost, "/accounts?id=1")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
