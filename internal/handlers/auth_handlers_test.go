package handlers

import (
	"net/http"
	"strings"
	"testing"
)

func TestSignupAndLogin(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("signup creates user with token and default avatar", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/auth/signup", map[string]any{
			"email":    "new@test.com",
			"password": "secret123",
			"fullName": "New User",
		}, nil)
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusCreated)

		data := body["data"].(map[string]any)
		if token, _ := data["token"].(string); token == "" {
			t.Fatalf("expected token in signup response")
		}
		user := data["user"].(map[string]any)
		if user["isOnboarded"] != false {
			t.Fatalf("expected fresh user to not be onboarded")
		}
		if pic, _ := user["profilePic"].(string); !strings.HasPrefix(pic, "https://avatar.iran.liara.run/public/") {
			t.Fatalf("expected generated avatar URL, got %q", pic)
		}
		if _, exists := user["passwordHash"]; exists {
			t.Fatalf("password hash must not be serialized")
		}
	})

	t.Run("signup rejects invalid email", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/auth/signup", map[string]any{
			"email":    "not-an-email",
			"password": "secret123",
			"fullName": "New User",
		}, nil)
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusBadRequest)
		assertEnvelopeError(t, body, "invalid email")
	})

	t.Run("signup rejects short password", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/auth/signup", map[string]any{
			"email":    "short@test.com",
			"password": "abc",
			"fullName": "Short Pass",
		}, nil)
		assertStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("signup rejects duplicate email", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/auth/signup", map[string]any{
			"email":    "new@test.com",
			"password": "secret123",
			"fullName": "Dup User",
		}, nil)
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusConflict)
		assertEnvelopeError(t, body, "email already registered")
	})

	t.Run("login succeeds with correct credentials", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "new@test.com",
			"password": "secret123",
		}, nil)
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusOK)
		data := body["data"].(map[string]any)
		if token, _ := data["token"].(string); token == "" {
			t.Fatalf("expected token in login response")
		}
	})

	t.Run("login rejects wrong password", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "new@test.com",
			"password": "wrong-password",
		}, nil)
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusUnauthorized)
		assertEnvelopeError(t, body, "invalid credentials")
	})
}

func TestMeAndOnboarding(t *testing.T) {
	env := setupTestEnv(t)
	user, token := createTestUser(t, env.db, "onboard@test.com", "On Board", false)

	t.Run("me requires auth", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/auth/me", nil, nil)
		assertStatus(t, resp, http.StatusUnauthorized)
	})

	t.Run("me returns current user", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/auth/me", nil, authHeaders(token))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusOK)
		data := body["data"].(map[string]any)
		if data["id"] != user.ID.String() {
			t.Fatalf("expected current user id, got %v", data["id"])
		}
	})

	t.Run("onboarding requires at least one favorite genre", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/auth/onboarding", map[string]any{
			"fullName": "On Board",
		}, authHeaders(token))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusBadRequest)
		assertEnvelopeError(t, body, "select at least one favorite genre")
	})

	t.Run("onboarding caps favorite genres at three", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/auth/onboarding", map[string]any{
			"fullName":       "On Board",
			"favoriteGenres": []string{"Action", "Drama", "Horror", "Comedy"},
		}, authHeaders(token))
		assertStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("onboarding caps secondary genres at two", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/auth/onboarding", map[string]any{
			"fullName":        "On Board",
			"favoriteGenres":  []string{"Action"},
			"secondaryGenres": []string{"Drama", "Horror", "Comedy"},
		}, authHeaders(token))
		assertStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("onboarding completes the profile", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/auth/onboarding", map[string]any{
			"fullName":        "On Board",
			"bio":             "movie nerd",
			"location":        "Berlin",
			"favoriteGenres":  []string{"Sci-Fi", "Thriller"},
			"secondaryGenres": []string{"Drama"},
			"favoriteMovies":  "Blade Runner, Alien",
			"movieMood":       "late night",
		}, authHeaders(token))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusOK)

		data := body["data"].(map[string]any)
		if data["isOnboarded"] != true {
			t.Fatalf("expected isOnboarded=true, got %v", data["isOnboarded"])
		}
		genres := data["favoriteGenres"].([]any)
		if len(genres) != 2 || genres[0] != "Sci-Fi" {
			t.Fatalf("expected stored genres, got %v", genres)
		}
	})

	t.Run("avatar upload without configured storage is unavailable", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodPut, "/api/auth/avatar", nil, authHeaders(token))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusServiceUnavailable)
		assertEnvelopeError(t, body, "avatar storage not configured")
	})
}
