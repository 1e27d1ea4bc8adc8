package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
)

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func TestAPIRegisterAndLogin(t *testing.T) {
	ts, _ := startTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/register", RegisterRequest{Username: "alice", Password: "secret123"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected register status: %d", resp.StatusCode)
	}
	var created AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if created.Token == "" {
		t.Fatalf("expected non-empty token")
	}

	resp = postJSON(t, ts.URL+"/api/v1/register", RegisterRequest{Username: "alice", Password: "other456"})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("unexpected duplicate register status: %d", resp.StatusCode)
	}

	resp = postJSON(t, ts.URL+"/api/v1/login", LoginRequest{Username: "alice", Password: "wrong"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected wrong-password status: %d", resp.StatusCode)
	}

	resp = postJSON(t, ts.URL+"/api/v1/login", LoginRequest{Username: "alice", Password: "secret123"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status: %d", resp.StatusCode)
	}
}

func TestAPIConnectionRequiresToken(t *testing.T) {
	ts, _ := startTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/connection")
	if err != nil {
		t.Fatalf("get connection: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status without token: %d", resp.StatusCode)
	}

	reg := postJSON(t, ts.URL+"/api/v1/register", RegisterRequest{Username: "bob", Password: "secret123"})
	var created AuthResponse
	if err := json.NewDecoder(reg.Body).Decode(&created); err != nil {
		t.Fatalf("decode register response: %v", err)
	}

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/connection", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+created.Token)

	authed, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get connection with token: %v", err)
	}
	defer authed.Body.Close()

	// No saved connection yet for a fresh account.
	if authed.StatusCode != http.StatusNotFound {
		t.Fatalf("unexpected status with token: %d", authed.StatusCode)
	}
}
