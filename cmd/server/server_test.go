package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"example.com/socialnet/internal/auth"
	appkafka "example.com/socialnet/internal/broker"
	"example.com/socialnet/internal/models"
	"example.com/socialnet/internal/store"
)

const testSecret = "test-secret"

//
// --- Setup test server ---
//

func setupTestServer(t *testing.T) (*Server, *store.MockStore, *appkafka.MockKafka, *httptest.Server) {
	t.Helper()

	authn, err := auth.New(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("auth.New failed: %v", err)
	}

	mockStore := store.NewMock()
	mockKafka := &appkafka.MockKafka{Store: mockStore}
	s := &Server{
		store:       mockStore,
		kafkaWriter: mockKafka,
		auth:        authn,
	}

	return s, mockStore, mockKafka, newTestServer(t, s)
}

// newTestServer serves the real route table over httptest.
func newTestServer(t *testing.T, s *Server) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(s.routes())
	t.Cleanup(ts.Close)
	return ts
}

//
// --- Helpers ---
//

// seedUser puts a user straight into the mock store and returns a valid token.
func seedUser(t *testing.T, s *Server, mockStore *store.MockStore, user models.User) string {
	t.Helper()
	if err := mockStore.CreateUser(user); err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	token, err := s.auth.IssueToken(user.ID)
	if err != nil {
		t.Fatalf("token issue failed: %v", err)
	}
	return token
}

// sendJSONRequest marshals body, attaches the token and checks the status.
func sendJSONRequest(t *testing.T, method, url string, body any, token string, expectedStatus int) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json.Marshal failed: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != expectedStatus {
		b, _ := io.ReadAll(resp.Body)
		defer resp.Body.Close()
		t.Fatalf("expected %d, got %d: %s", expectedStatus, resp.StatusCode, string(b))
	}
	return resp
}

// decodeBody decodes a response body into v and closes it.
func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
}

//
// --- Routing tests ---
//

// protected endpoints reject requests without a token
func TestProtectedRoutes_RequireToken(t *testing.T) {
	_, _, _, ts := setupTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/posts", nil)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

// a token signed with the wrong key is rejected
func TestProtectedRoutes_RejectForgedToken(t *testing.T) {
	s, mockStore, _, ts := setupTestServer(t)

	seedUser(t, s, mockStore, models.User{ID: "u1", Email: "u1@x.com"})

	wrongAuthn, err := auth.New("other-secret", time.Hour)
	if err != nil {
		t.Fatalf("auth.New failed: %v", err)
	}
	forged, err := wrongAuthn.IssueToken("u1")
	if err != nil {
		t.Fatalf("token issue failed: %v", err)
	}

	sendJSONRequest(t, http.MethodGet, ts.URL+"/users/u1", nil, forged, http.StatusUnauthorized)
}
