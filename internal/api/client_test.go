package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// testClient builds a Client pointed at a httptest server.
func testClient(t *testing.T, token string, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	c, err := New(cfg, func() string { return token })
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestLogIn_SendsCredentialsAndReturnsSession(t *testing.T) {
	c := testClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("login must not send Authorization, got %q", got)
		}
		var creds Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if creds.Username != "ada" || creds.Password != "hunter22" {
			t.Errorf("unexpected credentials %+v", creds)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-123",
			"user":  map[string]any{"id": 1, "username": "ada", "email": "ada@example.com"},
		})
	}))

	session, err := c.LogIn(context.Background(), Credentials{Username: "ada", Password: "hunter22"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Token != "tok-123" {
		t.Errorf("token = %q, want tok-123", session.Token)
	}
	if session.User.Username != "ada" {
		t.Errorf("username = %q, want ada", session.User.Username)
	}
}

func TestLogIn_EmptyCredentialsRejectedLocally(t *testing.T) {
	called := false
	c := testClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := c.LogIn(context.Background(), Credentials{Username: "  ", Password: "x"})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if called {
		t.Error("request must not be sent for empty credentials")
	}
}

func TestProtectedEndpoint_PreemptedWithoutToken(t *testing.T) {
	called := false
	c := testClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := c.FetchProfile(context.Background())
	var authErr *AuthRequiredError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthRequiredError, got %v", err)
	}
	if authErr.Endpoint != "profile/" {
		t.Errorf("endpoint = %q, want profile/", authErr.Endpoint)
	}
	if called {
		t.Error("request must not be sent without a token")
	}
}

func TestProtectedEndpoint_SendsTokenHeader(t *testing.T) {
	c := testClient(t, "tok-abc", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Token tok-abc" {
			t.Errorf("Authorization = %q, want %q", got, "Token tok-abc")
		}
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "username": "ada"})
	}))

	if _, err := c.FetchProfile(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestErrorPayloadDecoded(t *testing.T) {
	c := testClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
	}))

	_, err := c.LogIn(context.Background(), Credentials{Username: "ada", Password: "wrong"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", apiErr.Status)
	}
	if apiErr.Message != "Invalid credentials" {
		t.Errorf("message = %q", apiErr.Message)
	}
	if apiErr.Retryable() {
		t.Error("401 must not be retryable")
	}
}

func TestFieldErrorsDecodedOn400(t *testing.T) {
	c := testClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string][]string{
			"username": {"A user with that username already exists."},
		})
	}))

	_, err := c.Register(context.Background(), RegisterInput{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "longenough",
	})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(valErr.Fields["username"]) != 1 {
		t.Fatalf("expected username field error, got %v", valErr.Fields)
	}
}

func TestRegister_LocalValidation(t *testing.T) {
	c := testClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent for invalid input")
	}))

	cases := []struct {
		name  string
		in    RegisterInput
		field string
	}{
		{"missing username", RegisterInput{Email: "a@b.c", Password: "longenough"}, "username"},
		{"bad email", RegisterInput{Username: "ada", Email: "not-an-email", Password: "longenough"}, "email"},
		{"short password", RegisterInput{Username: "ada", Email: "a@b.c", Password: "short"}, "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Register(context.Background(), tc.in)
			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := valErr.Fields[tc.field]; !ok {
				t.Errorf("expected %s field error, got %v", tc.field, valErr.Fields)
			}
		})
	}
}

func TestServerErrorRetryable(t *testing.T) {
	c := testClient(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"error": "overloaded"})
	}))

	_, err := c.FetchProfile(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if !apiErr.Retryable() {
		t.Error("503 must be retryable")
	}
}

func TestGenerateContent_ValidatesPayload(t *testing.T) {
	c := testClient(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Missing required "sections".
		json.NewEncoder(w).Encode(map[string]any{"topic": "Photosynthesis", "summary": "..."})
	}))

	_, err := c.GenerateContent(context.Background(), "Photosynthesis", DifficultyBeginner)
	var payloadErr *PayloadError
	if !errors.As(err, &payloadErr) {
		t.Fatalf("expected PayloadError, got %v", err)
	}
}

func TestGenerateContent_ReturnsDocument(t *testing.T) {
	c := testClient(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["topic"] != "Photosynthesis" || body["difficulty"] != "beginner" {
			t.Errorf("unexpected request body %v", body)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"topic":   "Photosynthesis",
			"summary": "How plants make food.",
			"sections": []map[string]any{
				{"title": "Overview", "content": "...", "key_points": []string{"chlorophyll"}},
			},
			"references":       []string{"Biology 101"},
			"difficulty_level": "beginner",
		})
	}))

	doc, err := c.GenerateContent(context.Background(), "  Photosynthesis  ", DifficultyBeginner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Topic != "Photosynthesis" || len(doc.Sections) != 1 {
		t.Errorf("unexpected document %+v", doc)
	}
}

func TestChat_RequiresQuestion(t *testing.T) {
	c := testClient(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent for an empty question")
	}))

	_, err := c.Chat(context.Background(), ChatRequest{Question: "   "})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestChat_ReturnsResponse(t *testing.T) {
	c := testClient(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["question"] != "What is osmosis?" {
			t.Errorf("unexpected question %v", body["question"])
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "Osmosis is..."})
	}))

	reply, err := c.Chat(context.Background(), ChatRequest{Question: "What is osmosis?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Osmosis is..." {
		t.Errorf("reply = %q", reply)
	}
}
