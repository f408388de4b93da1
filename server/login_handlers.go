package server

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	errs "github.com/pawtalk/pawtalk-web/internal/errors"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName     string
	Error       string
	Message     string
	Email       string // Preserve email on error
	Redirect    string // Path to resume after sign-in
	OIDCEnabled bool
}

// LoginPageHandler displays the login page (GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("login.html")
	if err != nil {
		panic("Failed to parse login template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := LoginPageData{
			AppName:     s.config.GetAppName(),
			Error:       r.URL.Query().Get("error"),
			Message:     r.URL.Query().Get(QueryParamMessage),
			Email:       r.URL.Query().Get("email"),
			Redirect:    safeReturnPath(r.URL.Query().Get(QueryParamRedirect)),
			OIDCEnabled: s.config.OIDCEnabled(),
		}
		s.renderTemplate(w, tmpl, data)
	}
}

// LoginSubmissionHandler processes the login form submission
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := r.FormValue("email")
		password := r.FormValue("password")
		returnPath := safeReturnPath(r.FormValue(QueryParamRedirect))

		if err := s.forms.ValidateLogin(email, password); err != nil {
			s.redirectLoginMessage(w, r, err.Error(), email, returnPath)
			return
		}

		user, err := s.backend.Login(r.Context(), email, password)
		if err != nil {
			if errors.Is(err, errs.ErrInvalidCredentials) {
				s.redirectLoginMessage(w, r, "Invalid email or password", email, returnPath)
				return
			}
			log.Err(err).Msg("Login failed against backend")
			s.redirectLoginMessage(w, r, "Sign-in is temporarily unavailable", email, returnPath)
			return
		}

		token, err := s.sessions.Issue(user.ID, user.Email, user.Name)
		if err != nil {
			log.Err(err).Msg("Failed to issue session token")
			s.redirectLoginMessage(w, r, "Sign-in is temporarily unavailable", email, returnPath)
			return
		}

		s.SetSessionCookie(w, r, token)
		http.Redirect(w, r, returnPath, http.StatusSeeOther)
	}
}

// SignupPageHandler renders the signup page
func (s *Server) SignupPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("signup.html")
	if err != nil {
		panic("Failed to parse signup template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := LoginPageData{
			AppName:     s.config.GetAppName(),
			Error:       r.URL.Query().Get("error"),
			Email:       r.URL.Query().Get("email"),
			OIDCEnabled: s.config.OIDCEnabled(),
		}
		s.renderTemplate(w, tmpl, data)
	}
}

// SignupSubmissionHandler processes the signup form and signs the new
// account straight in on success.
func (s *Server) SignupSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		name := r.FormValue("name")
		email := r.FormValue("email")
		password := r.FormValue("password")

		redirectSignupError := func(msg string) {
			target := RouteSignup + "?error=" + url.QueryEscape(msg)
			if email != "" {
				target += "&email=" + url.QueryEscape(email)
			}
			http.Redirect(w, r, target, http.StatusSeeOther)
		}

		if err := s.forms.ValidateSignup(name, email, password); err != nil {
			redirectSignupError(err.Error())
			return
		}

		user, err := s.backend.Signup(r.Context(), name, email, password)
		if err != nil {
			if errors.Is(err, errs.ErrEmailTaken) {
				redirectSignupError("An account with this email already exists")
				return
			}
			log.Err(err).Msg("Signup failed against backend")
			redirectSignupError("Sign-up is temporarily unavailable")
			return
		}

		token, err := s.sessions.Issue(user.ID, user.Email, user.Name)
		if err != nil {
			log.Err(err).Msg("Failed to issue session token")
			redirectSignupError("Sign-up is temporarily unavailable")
			return
		}

		s.SetSessionCookie(w, r, token)
		http.Redirect(w, r, RouteTalk, http.StatusSeeOther)
	}
}

// LogoutHandler clears the session cookie. The token itself stays valid
// until it expires; there is no server-side session to revoke.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.ClearSessionCookie(w, r)
		http.Redirect(w, r, RouteHome, http.StatusSeeOther)
	}
}

// redirectLoginMessage sends the browser back to the login page with a
// notice. The message parameter doubles as the gatekeeper's loop-guard:
// its presence keeps an expired session from bouncing the login page to
// itself.
func (s *Server) redirectLoginMessage(w http.ResponseWriter, r *http.Request, msg, email, returnPath string) {
	params := url.Values{}
	params.Set(QueryParamMessage, msg)
	if email != "" {
		params.Set("email", email)
	}
	if returnPath != "" && returnPath != RouteHome {
		params.Set(QueryParamRedirect, returnPath)
	}
	http.Redirect(w, r, RouteLogin+"?"+params.Encode(), http.StatusSeeOther)
}
