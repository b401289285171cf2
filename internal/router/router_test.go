package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/account-service/internal/config"
	"github.com/deppfellow/account-service/internal/errs"
	"github.com/deppfellow/account-service/internal/handler"
	"github.com/deppfellow/account-service/internal/model"
	"github.com/deppfellow/account-service/internal/router"
	"github.com/deppfellow/account-service/internal/server"
	"github.com/deppfellow/account-service/internal/sqlerr"
)

// fakeAccounts serves the seed rows (1, "Alice") and (2, "山田").
type fakeAccounts struct {
	mu       sync.Mutex
	calls    int
	lastCtx  context.Context
	err      error
	panicMsg string
}

var seed = map[int64]string{1: "Alice", 2: "山田"}

func (f *fakeAccounts) Get(ctx context.Context, id int64) (model.AccountInfo, error) {
	f.mu.Lock()
	f.calls++
	f.lastCtx = ctx
	f.mu.Unlock()

	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.err != nil {
		return model.AccountInfo{}, f.err
	}
	name, ok := seed[id]
	if !ok {
		return model.AccountInfo{}, &errs.NotFoundError{Entity: "account", Key: id}
	}
	return model.AccountInfo{ID: id, Name: name}, nil
}

func (f *fakeAccounts) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error {
	return p.err
}

type testEnv struct {
	router   *echo.Echo
	accounts *fakeAccounts
	logs     *bytes.Buffer
}

func newTestEnv(t *testing.T, pinger handler.Pinger) *testEnv {
	t.Helper()

	logs := &bytes.Buffer{}
	log := zerolog.New(logs)

	cfg := config.Default()
	s := &server.Server{Config: cfg, Logger: &log}

	accounts := &fakeAccounts{}
	h := &handler.Handlers{
		Account: handler.NewAccountHandler(accounts),
		Health:  handler.NewHealthHandler(cfg.Primary.Env, pinger),
		OpenAPI: handler.NewOpenAPIHandler(),
	}

	return &testEnv{
		router:   router.NewRouter(s, h),
		accounts: accounts,
		logs:     logs,
	}
}

func (e *testEnv) do(method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()
	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGetAccountFound(t *testing.T) {
	tests := []struct {
		target string
		body   string
	}{
		{target: "/accounts?id=1", body: `{"id":1,"name":"Alice"}`},
		{target: "/accounts?id=2", body: `{"id":2,"name":"山田"}`},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			env := newTestEnv(t, fakePinger{})

			rec := env.do(http.MethodGet, tt.target)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON))
			// UTF-8 is written as-is, never \u escaped.
			assert.Equal(t, tt.body, strings.TrimSpace(rec.Body.String()))
		})
	}
}

func TestGetAccountRoundTripsID(t *testing.T) {
	env := newTestEnv(t, fakePinger{})

	rec := env.do(http.MethodGet, "/accounts?id=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var info model.AccountInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, model.AccountInfo{ID: 2, Name: "山田"}, info)
}

func TestGetAccountIdempotent(t *testing.T) {
	env := newTestEnv(t, fakePinger{})

	first := env.do(http.MethodGet, "/accounts?id=1")
	second := env.do(http.MethodGet, "/accounts?id=1")

	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestGetAccountNotFound(t *testing.T) {
	for _, target := range []string{"/accounts?id=999", "/accounts?id=0", "/accounts?id=-1"} {
		t.Run(target, func(t *testing.T) {
			env := newTestEnv(t, fakePinger{})

			rec := env.do(http.MethodGet, target)

			assert.Equal(t, http.StatusNotFound, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, "ACCOUNT_NOT_FOUND", body.Code)
			assert.Equal(t, "Account not found", body.Message)
			assert.Equal(t, 1, env.accounts.callCount())
		})
	}
}

func TestGetAccountBadRequest(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{target: "/accounts", want: "is required"},
		{target: "/accounts?id=", want: "is required"},
		{target: "/accounts?id=abc", want: "must be a signed 64-bit integer"},
		{target: "/accounts?id=99999999999999999999", want: "must be a signed 64-bit integer"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			env := newTestEnv(t, fakePinger{})

			rec := env.do(http.MethodGet, tt.target)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, "BAD_REQUEST", body.Code)
			assert.Equal(t, []errs.FieldError{{Field: "id", Error: tt.want}}, body.Errors)
			assert.Zero(t, env.accounts.callCount(), "service must not be called")
		})
	}
}

func TestAccountsMethodNotAllowed(t *testing.T) {
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			env := newTestEnv(t, fakePinger{})

			rec := env.do(method, "/accounts?id=1")

			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Contains(t, rec.Header().Get(echo.HeaderAllow), http.MethodGet)
			assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, rec).Code)
			assert.Zero(t, env.accounts.callCount())
		})
	}
}

func TestGetAccountStorageErrorIsHidden(t *testing.T) {
	env := newTestEnv(t, fakePinger{})
	env.accounts.err = &errs.StorageError{
		Op: "account.get_by_id",
		Err: pkgerrors.WithStack(sqlerr.ConvertPgError(&pgconn.PgError{
			Severity: "FATAL",
			Code:     "28P01",
			Message:  `password authentication failed for user "svc"`,
		})),
	}

	rec := env.do(http.MethodGet, "/accounts?id=1")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Code)
	assert.Equal(t, "Internal Server Error", body.Message)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "28P01")

	// The cause is in the logs.
	assert.Contains(t, env.logs.String(), `"sqlstate":"28P01"`)
	assert.Contains(t, env.logs.String(), `"op":"account.get_by_id"`)
	assert.Contains(t, env.logs.String(), `"stack"`)
}

func TestGetAccountUnexpectedError(t *testing.T) {
	env := newTestEnv(t, fakePinger{})
	env.accounts.err = errors.New("unexpected")

	rec := env.do(http.MethodGet, "/accounts?id=1")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "unexpected")
}

func TestGetAccountPanicRecovered(t *testing.T) {
	env := newTestEnv(t, fakePinger{})
	env.accounts.panicMsg = "boom"

	rec := env.do(http.MethodGet, "/accounts?id=1")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
	assert.Contains(t, env.logs.String(), "recovered from panic")
}

func TestGetAccountForwardsRequestLogger(t *testing.T) {
	env := newTestEnv(t, fakePinger{})

	req := httptest.NewRequest(http.MethodGet, "/accounts?id=1", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))

	zerolog.Ctx(env.accounts.lastCtx).Info().Msg("from service")
	assert.Contains(t, env.logs.String(), `"request_id":"req-42","method":"GET","path":"/accounts"`)
}

func TestRequestIDGenerated(t *testing.T) {
	env := newTestEnv(t, fakePinger{})

	rec := env.do(http.MethodGet, "/accounts?id=1")

	assert.Len(t, rec.Header().Get("X-Request-ID"), 36)
}

func TestAccessLogLevelsFollowStatus(t *testing.T) {
	env := newTestEnv(t, fakePinger{})

	env.do(http.MethodGet, "/accounts?id=999")

	assert.Contains(t, env.logs.String(), `"level":"warn"`)
	assert.Contains(t, env.logs.String(), `"status":404`)
	assert.Contains(t, env.logs.String(), `"message":"API"`)
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t, fakePinger{})

	rec := env.do(http.MethodGet, "/nope")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeError(t, rec).Message)
}

func TestStatus(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		env := newTestEnv(t, fakePinger{})

		rec := env.do(http.MethodGet, "/status")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	})

	t.Run("unhealthy", func(t *testing.T) {
		env := newTestEnv(t, fakePinger{err: errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")})

		rec := env.do(http.MethodGet, "/status")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"unhealthy"`)
		assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	})
}

func TestOpenAPISpec(t *testing.T) {
	env := newTestEnv(t, fakePinger{})

	rec := env.do(http.MethodGet, "/docs/openapi.json")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	var doc struct {
		Paths map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Contains(t, doc.Paths, "/accounts")
	assert.Contains(t, doc.Paths, "/status")
}

func TestSecureHeaders(t *testing.T) {
	env := newTestEnv(t, fakePinger{})

	rec := env.do(http.MethodGet, "/accounts?id=1")

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}
