// Package testutils provides helpers for handler tests: a fully wired Fiber
// app backed by repository mocks, plus request and token builders.
package testutils

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"
	"time"

	infracache "github.com/amirasaad/loantrack/infra/cache"
	"github.com/amirasaad/loantrack/internal/fixtures"
	"github.com/amirasaad/loantrack/pkg/app"
	"github.com/amirasaad/loantrack/pkg/config"
	"github.com/amirasaad/loantrack/pkg/dto"
	"github.com/amirasaad/loantrack/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestConfig returns an application config suitable for handler tests.
func TestConfig() *config.App {
	return &config.App{
		Env:    "test",
		Server: &config.Server{Scheme: "http", Host: "localhost", Port: 8000},
		Log:    &config.Log{},
		DB:     &config.DB{},
		Auth: &config.Auth{
			Strategy: "jwt",
			Jwt:      &config.Jwt{Secret: "test-secret", Expiry: time.Hour},
		},
		Redis: &config.Redis{},
		// High enough that tests never trip the limiter.
		RateLimit:    &config.RateLimit{MaxRequests: 10_000, Window: time.Minute},
		BalanceCache: &config.BalanceCache{TTL: 5 * time.Minute, Prefix: "loan:balance:"},
	}
}

// SetupApp builds the Fiber app on top of mocked repositories and an
// in-memory balance cache.
func SetupApp(t *testing.T) (*fiber.App, *fixtures.MockUnitOfWork, *app.App) {
	t.Helper()
	uow := fixtures.NewMockUnitOfWork()
	balances := infracache.NewMemoryBalanceCache()
	t.Cleanup(balances.Close)
	a := app.New(TestConfig(), uow, balances, slog.Default())
	return webapi.SetupApp(a), uow, a
}

// AuthToken issues a JWT for the given user ID, signed with the test secret.
func AuthToken(t *testing.T, a *app.App, userID uuid.UUID) string {
	t.Helper()
	token, err := a.AuthService.GenerateToken(&dto.UserRead{
		ID:       userID,
		Username: "janedoe",
		Email:    "jane@example.com",
	})
	require.NoError(t, err)
	return token
}

// NewJSONRequest builds an HTTP request with a JSON body. A non-empty token
// is sent as a Bearer credential.
func NewJSONRequest(t *testing.T, method, target, token string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, target, &buf)
	require.NoError(t, err)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return req
}

// DecodeResponse decodes a JSON response body into out.
func DecodeResponse(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
