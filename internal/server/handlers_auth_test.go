package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/truassets/truassets-server/internal/models"
)

func TestAuthLoginSuccess(t *testing.T) {
	srv := newTestServer(t)
	seedUser(t, srv, "user_alice", "alice@example.com", "secretpass", models.UserRoleInvestor)

	body := jsonBody(t, map[string]string{
		"email":    "alice@example.com",
		"password": "secretpass",
	})
	rec := doRequest(srv, http.MethodPost, "/api/auth/login", "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	data, ok := resp["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object, got %v", resp)
	}
	if data["token"] == "" || data["token"] == nil {
		t.Error("expected a token in login response")
	}

	user, ok := data["user"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected user object in login response")
	}
	if user["email"] != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %v", user["email"])
	}
	if _, exposed := user["password_hash"]; exposed {
		t.Error("password hash must not appear in responses")
	}
}

func TestAuthLoginWrongPassword(t *testing.T) {
	srv := newTestServer(t)
	seedUser(t, srv, "user_alice", "alice@example.com", "secretpass", models.UserRoleInvestor)

	body := jsonBody(t, map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	rec := doRequest(srv, http.MethodPost, "/api/auth/login", "", body)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthLoginUnknownEmail(t *testing.T) {
	srv := newTestServer(t)

	body := jsonBody(t, map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever",
	})
	rec := doRequest(srv, http.MethodPost, "/api/auth/login", "", body)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthGoogleCreatesUser(t *testing.T) {
	srv := newTestServer(t)

	body := jsonBody(t, map[string]string{
		"google_id":  "g-12345",
		"email":      "bob@example.com",
		"name":       "Bob",
		"avatar_url": "https://example.com/bob.png",
	})
	rec := doRequest(srv, http.MethodPost, "/api/auth/google", "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	data := resp["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	if user["role"] != models.UserRoleInvestor {
		t.Errorf("expected investor role for new Google user, got %v", user["role"])
	}

	// Second login resolves the same account
	body = jsonBody(t, map[string]string{
		"google_id": "g-12345",
		"email":     "bob@example.com",
		"name":      "Bob",
	})
	rec = doRequest(srv, http.MethodPost, "/api/auth/google", "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on second Google login, got %d", rec.Code)
	}
	resp = decodeResponse(t, rec)
	again := resp["data"].(map[string]interface{})["user"].(map[string]interface{})
	if again["id"] != user["id"] {
		t.Errorf("expected same user ID across Google logins, got %v and %v", user["id"], again["id"])
	}
}

func TestAuthGoogleLinksByEmail(t *testing.T) {
	srv := newTestServer(t)
	seedUser(t, srv, "user_carol", "carol@example.com", "secretpass", models.UserRoleInvestor)

	body := jsonBody(t, map[string]string{
		"google_id": "g-99",
		"email":     "carol@example.com",
		"name":      "Carol",
	})
	rec := doRequest(srv, http.MethodPost, "/api/auth/google", "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	user := resp["data"].(map[string]interface{})["user"].(map[string]interface{})
	if user["id"] != "user_carol" {
		t.Errorf("expected Google identity to link to existing account, got %v", user["id"])
	}
}

func TestAuthGoogleMissingFields(t *testing.T) {
	srv := newTestServer(t)

	body := jsonBody(t, map[string]string{"email": "x@example.com"})
	rec := doRequest(srv, http.MethodPost, "/api/auth/google", "", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthValidate(t *testing.T) {
	srv := newTestServer(t)
	token := adminToken(t, srv)

	rec := doRequest(srv, http.MethodGet, "/api/auth/validate", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	user := resp["data"].(map[string]interface{})["user"].(map[string]interface{})
	if user["role"] != models.UserRoleAdmin {
		t.Errorf("expected admin role, got %v", user["role"])
	}
}

func TestAuthValidateNoToken(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/api/auth/validate", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestUserCreateRequiresAdmin(t *testing.T) {
	srv := newTestServer(t)
	seedUser(t, srv, "user_iv", "investor@example.com", "secretpass", models.UserRoleInvestor)

	body := jsonBody(t, map[string]string{
		"email":    "new@example.com",
		"password": "newpass",
	})

	// Anonymous
	rec := doRequest(srv, http.MethodPost, "/api/users", "", body)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous create, got %d", rec.Code)
	}

	// Non-admin
	user, _ := srv.app.Storage.UserStore().Get(context.Background(), "user_iv")
	token, err := signJWT(user, "email", &srv.app.Config.Auth)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	body = jsonBody(t, map[string]string{
		"email":    "new@example.com",
		"password": "newpass",
	})
	rec = doRequest(srv, http.MethodPost, "/api/users", token, body)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for investor create, got %d", rec.Code)
	}
}

func TestUserCreateAndList(t *testing.T) {
	srv := newTestServer(t)
	token := adminToken(t, srv)

	body := jsonBody(t, map[string]string{
		"email":    "dana@example.com",
		"name":     "Dana",
		"password": "danapass",
		"role":     "investor",
	})
	rec := doRequest(srv, http.MethodPost, "/api/users", token, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// Duplicate email conflicts
	body = jsonBody(t, map[string]string{
		"email":    "dana@example.com",
		"password": "other",
	})
	rec = doRequest(srv, http.MethodPost, "/api/users", token, body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", rec.Code)
	}

	rec = doRequest(srv, http.MethodGet, "/api/users", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp["total"].(float64) != 2 {
		t.Errorf("expected 2 users (admin + dana), got %v", resp["total"])
	}
}

func TestUserUpdateAndDelete(t *testing.T) {
	srv := newTestServer(t)
	token := adminToken(t, srv)
	seedUser(t, srv, "user_erin", "erin@example.com", "erinpass", models.UserRoleInvestor)

	body := jsonBody(t, map[string]string{"role": "admin"})
	rec := doRequest(srv, http.MethodPut, "/api/users/user_erin", token, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	if resp["data"].(map[string]interface{})["role"] != "admin" {
		t.Errorf("expected updated role admin, got %v", resp["data"])
	}

	body = jsonBody(t, map[string]string{"role": "superuser"})
	rec = doRequest(srv, http.MethodPut, "/api/users/user_erin", token, body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid role, got %d", rec.Code)
	}

	rec = doRequest(srv, http.MethodDelete, "/api/users/user_erin", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = doRequest(srv, http.MethodGet, "/api/users/user_erin", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}
