package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"authsvc/internal/models"
	"authsvc/internal/service"
)

// envelope mirrors authsvc.Response with a raw result for per-test decoding.
type envelope struct {
	Result       json.RawMessage `json:"result"`
	Type         string          `json:"type"`
	ErrorDetails *struct {
		ErrorCode string `json:"errorCode"`
		Message   string `json:"message"`
	} `json:"errorDetails"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v (body=%s)", err, w.Body.String())
	}
	return env
}

func doJSON(r http.Handler, method, path, body string, hdr http.Header) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vv := range hdr {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	return w
}

const registerBody = `{"name":"Alice","age":30,"company":"Acme","username":"alice","password":"s3cret"}`

func TestRegister_Created(t *testing.T) {
	auth := &mockAuth{registerUser: models.User{
		ID: "id-1", Username: "alice", PasswordHash: "$2a$hash",
		Name: "Alice", Age: 30, Company: "Acme",
	}}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := doJSON(r, http.MethodPost, "/auth/register", registerBody, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.Type != "success" || env.ErrorDetails != nil {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if bytes.Contains(w.Body.Bytes(), []byte("hash")) {
		t.Fatalf("password hash leaked: %s", w.Body.String())
	}

	var u map[string]any
	_ = json.Unmarshal(env.Result, &u)
	if u["username"] != "alice" || u["company"] != "Acme" {
		t.Fatalf("unexpected result: %v", u)
	}

	in := auth.lastRegister
	if in.Username != "alice" || in.Password != "s3cret" || in.Name != "Alice" || in.Age != 30 || in.Company != "Acme" {
		t.Fatalf("service got %+v", in)
	}
}

func TestRegister_BadRequests(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		svcErr   error
		wantCode string
		wantMsg  string
		calls    int
	}{
		{
			name:     "missing company and password",
			body:     `{"name":"Alice","age":30,"username":"alice"}`,
			wantCode: codeValidation,
			wantMsg:  "missing or invalid fields: company, password",
		},
		{
			name:     "zero age",
			body:     `{"name":"Alice","age":0,"company":"Acme","username":"alice","password":"p"}`,
			wantCode: codeValidation,
			wantMsg:  "missing or invalid fields: age",
		},
		{
			name:     "empty body",
			body:     "",
			wantCode: codeValidation,
			wantMsg:  "missing or invalid fields: name, age, company, username, password",
		},
		{
			name:     "age is a string",
			body:     `{"name":"Alice","age":"thirty","company":"Acme","username":"alice","password":"p"}`,
			wantCode: codeInvalidBody,
			wantMsg:  msgInvalidBody,
		},
		{
			name:     "user exists",
			body:     registerBody,
			svcErr:   service.ErrUserExists,
			wantCode: codeUserExists,
			wantMsg:  msgUserExists,
			calls:    1,
		},
		{
			name:     "service validation",
			body:     `{"name":"  ","age":30,"company":"Acme","username":"alice","password":"p"}`,
			svcErr:   &service.ValidationError{Fields: []string{"name"}},
			wantCode: codeValidation,
			wantMsg:  "missing or invalid fields: name",
			calls:    1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{registerErr: tc.svcErr}
			r := newTestRouter(&service.Service{Authorization: auth})

			w := doJSON(r, http.MethodPost, "/auth/register", tc.body, nil)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
			}
			env := decodeEnvelope(t, w)
			if env.Type != "error" || env.ErrorDetails == nil {
				t.Fatalf("unexpected envelope: %s", w.Body.String())
			}
			if env.ErrorDetails.ErrorCode != tc.wantCode || env.ErrorDetails.Message != tc.wantMsg {
				t.Fatalf("details=%+v, want %s/%q", *env.ErrorDetails, tc.wantCode, tc.wantMsg)
			}
			if auth.registerCalls != tc.calls {
				t.Fatalf("Register calls=%d, want %d", auth.registerCalls, tc.calls)
			}
		})
	}
}

func TestRegister_InternalErrorIsOpaque(t *testing.T) {
	auth := &mockAuth{registerErr: fmt.Errorf("%w: disk I/O error at /var/lib/db", service.ErrInternal)}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := doJSON(r, http.MethodPost, "/auth/register", registerBody, nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.ErrorDetails == nil || env.ErrorDetails.Message != msgInternal {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if bytes.Contains(w.Body.Bytes(), []byte("disk")) {
		t.Fatalf("internal detail leaked: %s", w.Body.String())
	}
}

func TestLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		auth := &mockAuth{loginToken: "tok123"}
		r := newTestRouter(&service.Service{Authorization: auth})

		w := doJSON(r, http.MethodPost, "/auth/login", `{"username":"alice","password":"s3cret"}`, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		var res struct {
			Token string `json:"token"`
		}
		_ = json.Unmarshal(decodeEnvelope(t, w).Result, &res)
		if res.Token != "tok123" {
			t.Fatalf("token=%q", res.Token)
		}
		if auth.lastLoginUsername != "alice" || auth.lastLoginPassword != "s3cret" {
			t.Fatalf("service got %q/%q", auth.lastLoginUsername, auth.lastLoginPassword)
		}
	})

	t.Run("invalid credentials", func(t *testing.T) {
		auth := &mockAuth{loginErr: service.ErrInvalidCredentials}
		r := newTestRouter(&service.Service{Authorization: auth})

		w := doJSON(r, http.MethodPost, "/auth/login", `{"username":"alice","password":"nope"}`, nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status=%d", w.Code)
		}
		env := decodeEnvelope(t, w)
		if env.ErrorDetails.ErrorCode != codeInvalidCredentials || env.ErrorDetails.Message != msgInvalidCredentials {
			t.Fatalf("details=%+v", *env.ErrorDetails)
		}
	})

	t.Run("missing password", func(t *testing.T) {
		auth := &mockAuth{}
		r := newTestRouter(&service.Service{Authorization: auth})

		w := doJSON(r, http.MethodPost, "/auth/login", `{"username":"alice"}`, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status=%d", w.Code)
		}
		if msg := decodeEnvelope(t, w).ErrorDetails.Message; msg != "missing or invalid fields: password" {
			t.Fatalf("message=%q", msg)
		}
	})

	t.Run("username is a number", func(t *testing.T) {
		r := newTestRouter(&service.Service{Authorization: &mockAuth{}})
		w := doJSON(r, http.MethodPost, "/auth/login", `{"username":1}`, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for bad body, got %d", w.Code)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		auth := &mockAuth{loginErr: fmt.Errorf("%w: %w", service.ErrInternal, errors.New("conn reset"))}
		r := newTestRouter(&service.Service{Authorization: auth})

		w := doJSON(r, http.MethodPost, "/auth/login", `{"username":"alice","password":"s3cret"}`, nil)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status=%d", w.Code)
		}
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("updates the token's user", func(t *testing.T) {
		auth := &mockAuth{
			parseUser:  "alice",
			updateUser: models.User{ID: "id-1", Username: "alice", Name: "Alicia", Age: 31, Company: "Initech"},
		}
		r := newTestRouter(&service.Service{Authorization: auth})

		w := doJSON(r, http.MethodPut, "/auth/update",
			`{"name":"Alicia","age":31,"company":"Initech","username":"mallory","password":"x"}`, authHeader("good"))
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		if auth.lastUpdateUsername != "alice" {
			t.Fatalf("updated %q, want token user", auth.lastUpdateUsername)
		}
		want := models.Profile{Name: "Alicia", Age: 31, Company: "Initech"}
		if auth.lastUpdateProfile != want {
			t.Fatalf("profile=%+v, want %+v", auth.lastUpdateProfile, want)
		}
		var u map[string]any
		_ = json.Unmarshal(decodeEnvelope(t, w).Result, &u)
		if u["name"] != "Alicia" || u["username"] != "alice" {
			t.Fatalf("result=%v", u)
		}
	})

	t.Run("missing field", func(t *testing.T) {
		auth := &mockAuth{parseUser: "alice"}
		r := newTestRouter(&service.Service{Authorization: auth})

		w := doJSON(r, http.MethodPut, "/auth/update", `{"name":"Alicia","age":31}`, authHeader("good"))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status=%d", w.Code)
		}
		if auth.updateCalls != 0 {
			t.Fatalf("UpdateProfile called on invalid input")
		}
	})

	t.Run("user gone", func(t *testing.T) {
		auth := &mockAuth{parseUser: "ghost", updateErr: service.ErrUserNotFound}
		r := newTestRouter(&service.Service{Authorization: auth})

		w := doJSON(r, http.MethodPut, "/auth/update", `{"name":"A","age":1,"company":"C"}`, authHeader("good"))
		if w.Code != http.StatusNotFound {
			t.Fatalf("status=%d", w.Code)
		}
		if code := decodeEnvelope(t, w).ErrorDetails.ErrorCode; code != codeUserNotFound {
			t.Fatalf("code=%s", code)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		auth := &mockAuth{parseErr: fmt.Errorf("%w: token is expired", service.ErrInvalidToken)}
		r := newTestRouter(&service.Service{Authorization: auth})

		w := doJSON(r, http.MethodPut, "/auth/update", `{"name":"A","age":1,"company":"C"}`, authHeader("stale"))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status=%d", w.Code)
		}
		if code := decodeEnvelope(t, w).ErrorDetails.ErrorCode; code != codeInvalidToken {
			t.Fatalf("code=%s", code)
		}
		if auth.updateCalls != 0 {
			t.Fatalf("UpdateProfile called with an expired token")
		}
	})

	t.Run("no token", func(t *testing.T) {
		auth := &mockAuth{}
		r := newTestRouter(&service.Service{Authorization: auth})

		w := doJSON(r, http.MethodPut, "/auth/update", `{"name":"A","age":1,"company":"C"}`, nil)
		if w.Code != http.StatusForbidden {
			t.Fatalf("status=%d", w.Code)
		}
		if auth.updateCalls != 0 {
			t.Fatalf("UpdateProfile called without token")
		}
	})
}

func TestProtected(t *testing.T) {
	auth := &mockAuth{parseUser: "alice"}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := doJSON(r, http.MethodGet, "/auth/protected", "", authHeader("good"))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var msg struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(decodeEnvelope(t, w).Result, &msg)
	if msg.Message != msgProtected {
		t.Fatalf("message=%q", msg.Message)
	}
}
