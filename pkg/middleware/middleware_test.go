package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wedding-marketplace/pkg/token"
	"wedding-marketplace/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func TestAuthenticate(t *testing.T) {
	manager := token.NewManager("middleware-secret", "test", time.Hour)
	revocations := token.NewMemoryRevocationStore()

	var gotUser uuid.UUID
	var gotRole string
	handler := Authenticate(manager, revocations, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = utils.GetUserIDFromContext(r.Context())
		gotRole, _ = utils.GetRoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token sets the actor", func(t *testing.T) {
		userID := uuid.New()
		raw, _, err := manager.Issue(userID, "provider")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, gotUser)
		assert.Equal(t, "provider", gotRole)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "UNAUTHENTICATED", errorCode(t, rec))
	})

	t.Run("expired token", func(t *testing.T) {
		past := token.NewManager("middleware-secret", "test", time.Hour).
			WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
		raw, _, err := past.Issue(uuid.New(), "customer")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "TOKEN_EXPIRED", errorCode(t, rec))
	})

	t.Run("subject must be an account id", func(t *testing.T) {
		for _, subject := range []string{"not-a-uuid", uuid.Nil.String()} {
			claims := &token.Claims{
				Role: "customer",
				RegisteredClaims: jwt.RegisteredClaims{
					ID:        uuid.NewString(),
					Subject:   subject,
					Issuer:    "test",
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				},
			}
			raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("middleware-secret"))
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+raw)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code, "subject %q", subject)
			assert.Equal(t, "UNAUTHENTICATED", errorCode(t, rec))
		}
	})

	t.Run("query token only for websocket upgrades", func(t *testing.T) {
		raw, _, err := manager.Issue(uuid.New(), "customer")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/ws?token="+raw, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		req = httptest.NewRequest(http.MethodGet, "/ws?token="+raw, nil)
		req.Header.Set("Upgrade", "websocket")
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(zap.NewNop(), "admin")(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = req.WithContext(utils.SetUserContext(req.Context(), uuid.New(), "customer"))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, rec))

	req = req.WithContext(utils.SetUserContext(req.Context(), uuid.New(), "admin"))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSAllowed(t *testing.T) {
	cors := NewCORS(utils.CORSConfig{Origins: map[string][]string{
		"/api/":       {"https://app.example.com"},
		"/api/admin/": {"https://admin.example.com/"},
		"/ws":         {"*"},
	}})

	tests := []struct {
		path, origin string
		want         bool
	}{
		{"/api/services", "https://app.example.com", true},
		{"/api/services", "https://admin.example.com", false},
		{"/api/admin/stats", "https://admin.example.com", true},
		{"/api/admin/stats", "https://app.example.com", false},
		{"/ws", "https://anything.example.com", true},
		{"/health", "https://anything.example.com", true},
		{"/api/services", "", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cors.Allowed(tt.path, tt.origin), "%s from %s", tt.path, tt.origin)
	}
}

func TestRateLimiterPerClient(t *testing.T) {
	rl := NewRateLimiter(utils.RateLimitConfig{
		GlobalRPS: 1000, GlobalBurst: 1000,
		ClientRPS: 0.001, ClientBurst: 2,
	}, zap.NewNop())
	handler := rl.Handler(http.HandlerFunc(okHandler))

	call := func(remote string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:1111"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:2222"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:3333"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2:1111"), "other clients keep their own bucket")
	assert.Equal(t, 2, rl.Clients())
}

func TestRateLimiterGlobal(t *testing.T) {
	rl := NewRateLimiter(utils.RateLimitConfig{
		GlobalRPS: 0.001, GlobalBurst: 1,
		ClientRPS: 1000, ClientBurst: 1000,
	}, zap.NewNop())
	handler := rl.Handler(http.HandlerFunc(okHandler))

	steps := []struct {
		remote string
		want   int
	}{
		{"10.0.0.1:80", http.StatusOK},
		{"10.0.0.2:80", http.StatusTooManyRequests},
	}
	for _, step := range steps {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = step.remote
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, step.want, rec.Code)
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(utils.RateLimitConfig{GlobalRPS: 10, GlobalBurst: 10, ClientRPS: 10, ClientBurst: 10}, zap.NewNop())
	rl.now = func() time.Time { return now }

	rl.client("ip:10.0.0.1")
	now = now.Add(20 * time.Minute)
	rl.client("ip:10.0.0.2")

	assert.Equal(t, 1, rl.Cleanup(10*time.Minute))
	assert.Equal(t, 1, rl.Clients())
}

func TestRecover(t *testing.T) {
	handler := Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, rec))
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestLoggerRecordsStatus(t *testing.T) {
	var seen int
	handler := Logger(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
		seen = w.(*responseWriter).bytesWritten
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, len("short and stout"), seen)
}
