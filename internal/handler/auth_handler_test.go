package handler

import (
	"net/http"
	"testing"

	"github.com/gemforge/atelier/internal/testutil"
)

func setupAuthTest(t *testing.T) *testutil.Env {
	t.Helper()
	env := testutil.SetupEnv(t)
	h := NewHandlers(env.Services)

	env.Router.POST("/api/v1/auth/login", h.Auth.Login)
	env.Router.POST("/api/v1/auth/refresh", h.Auth.Refresh)
	api := env.AuthGroup("/api/v1")
	api.GET("/auth/me", h.Auth.Me)

	return env
}

// TestLoginIssuesTokenPair checks the happy path plus both rejection modes:
// bad credentials map to 401, a deactivated account to 403.
func TestLoginIssuesTokenPair(t *testing.T) {
	env := setupAuthTest(t)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/auth/login",
		map[string]interface{}{"email": env.User.Email, "password": "password123"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["access_token"].(string) == "" || data["refresh_token"].(string) == "" {
		t.Fatal("expected both tokens in response")
	}
	if _, ok := data["user"].(map[string]interface{})["password"]; ok {
		t.Fatal("password must not be serialized")
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/auth/login",
		map[string]interface{}{"email": env.User.Email, "password": "wrong-password"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", w.Code)
	}

	inactive := testutil.SeedUser(t, env.DB, "Gone", "gone@test.com", false)
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/auth/login",
		map[string]interface{}{"email": inactive.Email, "password": "password123"}, "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for deactivated account, got %d", w.Code)
	}
}

// TestRefreshRotatesToken verifies the refresh token is single-use.
func TestRefreshRotatesToken(t *testing.T) {
	env := setupAuthTest(t)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/auth/login",
		map[string]interface{}{"email": env.User.Email, "password": "password123"}, "")
	refresh := testutil.ParseResponse(w)["data"].(map[string]interface{})["refresh_token"].(string)

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/auth/refresh",
		map[string]interface{}{"refresh_token": refresh}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// the consumed token is gone
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/auth/refresh",
		map[string]interface{}{"refresh_token": refresh}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 reusing rotated token, got %d", w.Code)
	}
}

// TestAuthMiddlewareReChecksUser covers the per-request row check: a valid
// token for a missing user gets 401, for a deactivated user 403.
func TestAuthMiddlewareReChecksUser(t *testing.T) {
	env := setupAuthTest(t)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/auth/me", nil, env.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/auth/me", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	ghost := testutil.GenerateTestToken("00000000-0000-0000-0000-000000000000", "Ghost", "ghost@test.com", "", []string{"*"})
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/auth/me", nil, ghost)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown user, got %d", w.Code)
	}

	inactive := testutil.SeedUser(t, env.DB, "Idle", "idle@test.com", false)
	idleToken := testutil.GenerateTestToken(inactive.ID, inactive.Name, inactive.Email, "", []string{"*"})
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/auth/me", nil, idleToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for deactivated user, got %d", w.Code)
	}
}
