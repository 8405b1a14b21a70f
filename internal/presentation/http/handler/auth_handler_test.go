package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e *testEnv) jsonRequest(t *testing.T, method, url string, body interface{}, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(method, url, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) registerAndLogin(t *testing.T, email, password string) (accessToken string, cookies []*http.Cookie) {
	t.Helper()

	w := e.jsonRequest(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"first_name":       "Anand",
		"last_name":        "Kumar",
		"email":            email,
		"password":         password,
		"password_confirm": password,
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d (body %s)", w.Code, w.Body.String())
	}

	w = e.jsonRequest(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d (body %s)", w.Code, w.Body.String())
	}

	var resp apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	var data struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode login data: %v", err)
	}
	if data.AccessToken == "" {
		t.Fatal("login returned no access token")
	}

	return data.AccessToken, w.Result().Cookies()
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	token, cookies := env.registerAndLogin(t, "anand@example.com", "changeme123")

	// The access token must work against the legacy invoice surface.
	resp := decodeEnvelope(t, env.invoiceRequest(t, http.MethodGet, token, "5", nil))
	if resp.Error {
		t.Errorf("v1 access token rejected by legacy surface")
	}

	// Login also sets the download cookie.
	var found bool
	for _, c := range cookies {
		if c.Name == "auth-token" && c.Value == token {
			found = true
		}
	}
	if !found {
		t.Error("login did not set the auth-token cookie")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndLogin(t, "anand@example.com", "changeme123")

	w := env.jsonRequest(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "anand@example.com",
		"password": "wrongpassword",
	}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndLogin(t, "anand@example.com", "changeme123")

	w := env.jsonRequest(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"first_name":       "Other",
		"last_name":        "Person",
		"email":            "anand@example.com",
		"password":         "changeme123",
		"password_confirm": "changeme123",
	}, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestProfileRequiresBearerToken(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestGetProfile(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.registerAndLogin(t, "anand@example.com", "changeme123")

	w := env.jsonRequest(t, http.MethodGet, "/api/v1/profile", nil,
		http.Header{"Authorization": []string{"Bearer " + token}})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
	}

	var resp apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	var data struct {
		User struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		} `json:"user"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode profile data: %v", err)
	}
	if data.User.Email != "anand@example.com" {
		t.Errorf("email = %q", data.User.Email)
	}
	if data.User.Password != "" {
		t.Error("password hash leaked in profile response")
	}
}

func TestRefreshTokenFlow(t *testing.T) {
	env := newTestEnv(t)

	w := env.jsonRequest(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"first_name":       "Anand",
		"last_name":        "Kumar",
		"email":            "anand@example.com",
		"password":         "changeme123",
		"password_confirm": "changeme123",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d", w.Code)
	}

	w = env.jsonRequest(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "anand@example.com",
		"password": "changeme123",
	}, nil)
	var resp apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	var loginData struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(resp.Data, &loginData); err != nil {
		t.Fatalf("decode login data: %v", err)
	}

	w = env.jsonRequest(t, http.MethodPost, "/api/v1/auth/refresh", map[string]string{
		"refresh_token": loginData.RefreshToken,
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("refresh status = %d (body %s)", w.Code, w.Body.String())
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode refresh response: %v", err)
	}
	var refreshData struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(resp.Data, &refreshData); err != nil {
		t.Fatalf("decode refresh data: %v", err)
	}
	if refreshData.AccessToken == "" {
		t.Fatal("refresh returned no access token")
	}

	// The refreshed token is accepted by the legacy surface too.
	legacy := decodeEnvelope(t, env.invoiceRequest(t, http.MethodGet, refreshData.AccessToken, "5", nil))
	if legacy.Error {
		t.Error("refreshed token rejected by legacy surface")
	}
}

func TestRefreshRejectsUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	// A well-formed refresh token for an account that no longer exists.
	refreshToken, err := env.jwtManager.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	w := env.jsonRequest(t, http.MethodPost, "/api/v1/auth/refresh", map[string]string{
		"refresh_token": refreshToken,
	}, nil)
	if w.Code == http.StatusOK {
		t.Error("refresh succeeded for a deleted account")
	}
}

func TestGoogleAuthUnconfigured(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}
