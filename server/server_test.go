package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/pawtalk/pawtalk-web/backend"
	"github.com/pawtalk/pawtalk-web/server"
	"github.com/pawtalk/pawtalk-web/session"
)

const (
	testSecret     = "test-secret-0123456789-0123456789-0123456789"
	testCookieName = "pawtalk_session"
)

// testConfig satisfies config.Config without touching the environment.
type testConfig struct {
	backendURL string
}

func (testConfig) GetPort() string               { return ":0" }
func (testConfig) GetAppName() string            { return "PawTalk" }
func (testConfig) GetBaseURL() string            { return "http://localhost:8080" }
func (c testConfig) GetBackendURL() string       { return c.backendURL }
func (testConfig) GetAutocertDomain() string     { return "" }
func (testConfig) GetAutocertCacheDir() string   { return "" }
func (testConfig) GetEnv() string                { return "TEST" }
func (c testConfig) GetAllowedOrigins() []string { return []string{c.GetBaseURL()} }
func (testConfig) GetAllowedMethods() []string   { return []string{"GET", "POST", "DELETE"} }
func (testConfig) GetAllowedHeaders() []string   { return []string{"Content-Type"} }
func (testConfig) GetSessionSecret() []byte      { return []byte(testSecret) }
func (testConfig) GetSessionCookieName() string  { return testCookieName }
func (testConfig) GetSessionTTL() time.Duration  { return time.Hour }
func (testConfig) GetOIDCIssuer() string         { return "" }
func (testConfig) GetOIDCClientID() string       { return "" }
func (testConfig) GetOIDCClientSecret() string   { return "" }
func (testConfig) GetOIDCRedirectURL() string    { return "" }
func (testConfig) OIDCEnabled() bool             { return false }

// newTestServer wires a Server against a stub backend API.
func newTestServer(t *testing.T, backendHandler http.Handler) *server.Server {
	t.Helper()

	if backendHandler == nil {
		backendHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte("[]"))
		})
	}
	backendServer := httptest.NewServer(backendHandler)
	t.Cleanup(backendServer.Close)

	client, err := backend.NewClient(backendServer.URL, backend.WithMaxTries(1))
	require.NoError(t, err)

	srv, err := server.New(testConfig{backendURL: backendServer.URL}, client,
		server.WithMetricsRegistry(prometheus.NewRegistry()))
	require.NoError(t, err)
	return srv
}

func validCookie(t *testing.T) *http.Cookie {
	t.Helper()
	manager, err := session.NewManager([]byte(testSecret), time.Hour)
	require.NoError(t, err)
	token, err := manager.Issue("user-1", "jo@example.com", "Jo")
	require.NoError(t, err)
	return &http.Cookie{Name: testCookieName, Value: token}
}

func doRequest(t *testing.T, srv *server.Server, method, target string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestPublicPagesNeedNoSession(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, path := range []string{"/", "/about", "/pricing", "/privacy", "/terms", "/contact", "/subscription"} {
		t.Run(path, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodGet, path, nil)
			require.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestProtectedPageRedirectsAnonymousToLogin(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/talk", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "/login", location.Path)
	require.Equal(t, "/talk", location.Query().Get("redirect"))
}

func TestProtectedPageRedirectPreservesNestedPath(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/talk/conversation/42", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "/login", location.Path)
	require.Equal(t, "/talk/conversation/42", location.Query().Get("redirect"))
}

func TestProtectedPageAllowsValidSession(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/talk", validCookie(t))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Talk about your pet")
}

func TestProtectedPageFailsClosedOnBadToken(t *testing.T) {
	srv := newTestServer(t, nil)

	bad := &http.Cookie{Name: testCookieName, Value: "not-a-real-token"}
	rec := doRequest(t, srv, http.MethodGet, "/gallery", bad)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Contains(t, rec.Header().Get("Location"), "/login?")
}

func TestSubscriptionNestedPagesAreProtected(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/subscription/manage", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Contains(t, rec.Header().Get("Location"), "redirect=%2Fsubscription%2Fmanage")
}

func TestLoginPageBouncesSignedInVisitorsHome(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/login", validCookie(t))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))
}

func TestLoginPageFailsOpenOnBadToken(t *testing.T) {
	srv := newTestServer(t, nil)

	bad := &http.Cookie{Name: testCookieName, Value: "expired-or-garbage"}
	rec := doRequest(t, srv, http.MethodGet, "/login", bad)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Sign in")
}

func TestLoginPageWithMessageNeverRedirects(t *testing.T) {
	srv := newTestServer(t, nil)

	// Even a valid session stays on the page when a notice is displayed
	rec := doRequest(t, srv, http.MethodGet, "/login?message=Signed+out", validCookie(t))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Signed out")
}

func TestLoginSubmissionSetsCookieAndRedirects(t *testing.T) {
	backendHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(backend.User{ID: "user-1", Email: "jo@example.com", Name: "Jo"})
	})
	srv := newTestServer(t, backendHandler)

	form := url.Values{}
	form.Set("email", "jo@example.com")
	form.Set("password", "hunter22")
	form.Set("redirect", "/talk")

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/talk", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	require.Equal(t, testCookieName, cookies[0].Name)
	require.NotEmpty(t, cookies[0].Value)
	require.True(t, cookies[0].HttpOnly)
}

func TestLoginSubmissionRejectsBadCredentials(t *testing.T) {
	backendHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"bad credentials"}`))
	})
	srv := newTestServer(t, backendHandler)

	form := url.Values{}
	form.Set("email", "jo@example.com")
	form.Set("password", "wrong")

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "/login", location.Path)
	require.Equal(t, "Invalid email or password", location.Query().Get("message"))
	require.Equal(t, "jo@example.com", location.Query().Get("email"))
	require.Empty(t, rec.Result().Cookies())
}

func TestLogoutClearsCookie(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(validCookie(t))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	require.Equal(t, testCookieName, cookies[0].Name)
	require.Empty(t, cookies[0].Value)
	require.Negative(t, cookies[0].MaxAge)
}

func TestBookPageRedirectsAnonymousFromHandler(t *testing.T) {
	srv := newTestServer(t, nil)

	// /book is not in the route table; the handler enforces the session
	rec := doRequest(t, srv, http.MethodGet, "/book", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Contains(t, rec.Header().Get("Location"), "/login?redirect=%2Fbook")

	rec = doRequest(t, srv, http.MethodGet, "/book", validCookie(t))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestStaticAssetsBypassGate(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/css/site.css", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/css")

	rec = doRequest(t, srv, http.MethodGet, "/js/talk.js", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestContactSubmissionRendersInlineValidationError(t *testing.T) {
	srv := newTestServer(t, nil)

	form := url.Values{}
	form.Set("name", "Jo")
	form.Set("email", "not-an-email")
	form.Set("message", "hello")

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	// Failures render on the form, the visitor is never redirected away
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid email format")
	require.Contains(t, rec.Body.String(), "not-an-email")
}

func TestRemindersCreateRedirectsBack(t *testing.T) {
	backendHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(backend.Reminder{ID: "rem-1", Title: "Vet visit"})
			return
		}
		w.Write([]byte("[]"))
	})
	srv := newTestServer(t, backendHandler)

	form := url.Values{}
	form.Set("title", "Vet visit")
	form.Set("due_at", "2026-09-01T09:00")

	req := httptest.NewRequest(http.MethodPost, "/reminders", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(validCookie(t))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/reminders", rec.Header().Get("Location"))
}

func TestOIDCLoginDisabledReturnsNotFound(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/auth/oidc", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
