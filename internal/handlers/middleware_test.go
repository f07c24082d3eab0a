package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookstore/internal/models"
	"bookstore/internal/service"

	"github.com/gin-gonic/gin"
)

// bearerFor issues a real token for username so requests exercise the full
// filter + policy path.
func bearerFor(t *testing.T, codec *service.TokenCodec, username string) string {
	t.Helper()
	token, err := codec.Issue(username)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return "Bearer " + token
}

func doRequest(r *gin.Engine, method, path, authHeader, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

var (
	adminPrincipal = &models.User{ID: 1, Username: "admin", Role: models.RoleAdmin}
	userPrincipal  = &models.User{ID: 2, Username: "user", Role: models.RoleUser}
)

// The filter must pass anonymous and bad-token requests through untouched;
// only the policy table decides whether anonymity is acceptable.
func TestAuthenticateFilter_PassThrough(t *testing.T) {
	cases := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "non-bearer scheme", header: "Token abc"},
		{name: "bearer with garbage token", header: "Bearer not-a-jwt"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{}
			s := &service.Service{
				Authorization: auth,
				Reviews:       &mockReviews{stats: service.ReviewStats{}},
			}
			r := newTestRouter(s, newTestCodec())

			// Public route: anonymous requests must succeed.
			w := doRequest(r, http.MethodGet, "/api/cv-reviews/stats", tc.header, "")
			if w.Code != http.StatusOK {
				t.Fatalf("public route: got %d, want %d (body=%s)", w.Code, http.StatusOK, w.Body.String())
			}

			// Protected route: the same request is rejected by the policy, not the filter.
			w = doRequest(r, http.MethodGet, "/api/auth/me", tc.header, "")
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("protected route: got %d, want %d", w.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestAuthenticateFilter_AttachesPrincipal(t *testing.T) {
	codec := newTestCodec()
	auth := &mockAuth{lookupUser: userPrincipal}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s, codec)

	w := doRequest(r, http.MethodGet, "/api/auth/me", bearerFor(t, codec, "user"), "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body=%s)", w.Code, http.StatusOK, w.Body.String())
	}
	if auth.lastLookupUsername != "user" {
		t.Fatalf("lookup username: got %q, want %q", auth.lastLookupUsername, "user")
	}

	var resp struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Username != "user" || resp.Role != "USER" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

// A syntactically valid token whose subject no longer resolves to a stored
// principal must not authenticate the request.
func TestAuthenticateFilter_UnresolvableSubject(t *testing.T) {
	codec := newTestCodec()
	auth := &mockAuth{lookupErr: errors.New("unknown principal")}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s, codec)

	w := doRequest(r, http.MethodGet, "/api/auth/me", bearerFor(t, codec, "deleted-user"), "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

// A token signed under a different secret never authenticates.
func TestAuthenticateFilter_ForeignSecret(t *testing.T) {
	foreign := service.NewTokenCodec("some-other-secret", 0)
	auth := &mockAuth{lookupUser: adminPrincipal}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s, newTestCodec())

	w := doRequest(r, http.MethodGet, "/api/auth/me", bearerFor(t, foreign, "admin"), "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if auth.lastLookupUsername != "" {
		t.Fatal("principal lookup must not run for an invalid token")
	}
}

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	s := &service.Service{Reviews: &mockReviews{}}
	r := newTestRouter(s, newTestCodec())

	w := doRequest(r, http.MethodGet, "/api/cv-reviews/stats", "", "")
	if got := w.Header().Get("X-Request-ID"); got == "" {
		t.Fatal("expected a generated X-Request-ID header")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/cv-reviews/stats", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "fixed-id" {
		t.Fatalf("X-Request-ID: got %q, want %q", got, "fixed-id")
	}
}

func TestCORS_PreflightIsPublic(t *testing.T) {
	s := &service.Service{}
	r := newTestRouter(s, newTestCodec())

	req := httptest.NewRequest(http.MethodOptions, "/api/books", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusNoContent)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("allow-origin: got %q", got)
	}
}
