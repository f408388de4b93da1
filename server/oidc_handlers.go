package server

import (
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/pawtalk/pawtalk-web/internal/errors"
	"github.com/pawtalk/pawtalk-web/server/authflow"
)

// getOIDCProvider discovers the issuer lazily and caches the result.
// Discovery happens on first use rather than at startup so the frontend
// still boots when the identity provider is briefly unreachable.
func (s *Server) getOIDCProvider(r *http.Request) (*OidcProvider, error) {
	if !s.config.OIDCEnabled() {
		return nil, errors.Wrapf(errors.ErrUnsupported, "[Server getOIDCProvider] social sign-in is not configured")
	}

	s.oidcLock.Lock()
	defer s.oidcLock.Unlock()
	if s.oidc != nil {
		return s.oidc, nil
	}

	provider, err := oidc.NewProvider(r.Context(), s.config.GetOIDCIssuer())
	if err != nil {
		return nil, errors.Wrapf(err, "[Server getOIDCProvider] issuer discovery failed")
	}

	s.oidc = &OidcProvider{
		Provider: provider,
		OAuth2Config: &oauth2.Config{
			ClientID:     s.config.GetOIDCClientID(),
			ClientSecret: s.config.GetOIDCClientSecret(),
			RedirectURL:  s.config.GetOIDCRedirectURL(),
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}
	return s.oidc, nil
}

// OIDCLoginHandler starts the social sign-in flow (GET /auth/oidc)
func (s *Server) OIDCLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		op, err := s.getOIDCProvider(r)
		if err != nil {
			log.Err(err).Msg("Social sign-in unavailable")
			http.NotFound(w, r)
			return
		}

		state, err := generateRandomString(32)
		if err != nil {
			http.Error(w, "Failed to start sign-in", http.StatusInternalServerError)
			return
		}
		nonce, err := generateRandomString(32)
		if err != nil {
			http.Error(w, "Failed to start sign-in", http.StatusInternalServerError)
			return
		}
		verifier, err := generateRandomString(48)
		if err != nil {
			http.Error(w, "Failed to start sign-in", http.StatusInternalServerError)
			return
		}

		if err := s.authState.Put(state, authflow.State{
			Nonce:        nonce,
			CodeVerifier: verifier,
			ReturnPath:   safeReturnPath(r.URL.Query().Get(QueryParamRedirect)),
		}); err != nil {
			http.Error(w, "Failed to start sign-in", http.StatusInternalServerError)
			return
		}

		authURL := op.OAuth2Config.AuthCodeURL(state,
			oidc.Nonce(nonce),
			oauth2.SetAuthURLParam("code_challenge", generateCodeChallenge(verifier)),
			oauth2.SetAuthURLParam("code_challenge_method", "S256"),
		)
		http.Redirect(w, r, authURL, http.StatusSeeOther)
	}
}

// OIDCCallbackHandler completes the social sign-in flow (GET /auth/callback)
func (s *Server) OIDCCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// r.FormValue works for both query params and POST form data
		state := r.FormValue("state")
		code := r.FormValue("code")
		errorParam := r.FormValue("error")

		if errorParam != "" {
			log.Warn().Str("error", errorParam).Str("description", r.FormValue("error_description")).Msg("Social sign-in denied")
			s.redirectLoginMessage(w, r, "Sign-in was cancelled", "", RouteHome)
			return
		}

		if code == "" || state == "" {
			http.Error(w, "Missing code or state parameter", http.StatusBadRequest)
			return
		}

		// Take removes the state so it can never be replayed
		flowState, ok := s.authState.Take(state)
		if !ok {
			http.Error(w, "Invalid state parameter", http.StatusBadRequest)
			return
		}

		op, err := s.getOIDCProvider(r)
		if err != nil {
			log.Err(err).Msg("Social sign-in unavailable during callback")
			s.redirectLoginMessage(w, r, "Sign-in is temporarily unavailable", "", RouteHome)
			return
		}

		oauth2Token, err := op.OAuth2Config.Exchange(
			r.Context(),
			code,
			oauth2.SetAuthURLParam("code_verifier", flowState.CodeVerifier),
		)
		if err != nil {
			log.Err(err).Msg("Token exchange failed")
			s.redirectLoginMessage(w, r, "Sign-in failed", "", RouteHome)
			return
		}

		rawIDToken, ok := oauth2Token.Extra("id_token").(string)
		if !ok {
			http.Error(w, "No ID token in response", http.StatusInternalServerError)
			return
		}

		// Verify the ID token signature and claims (including nonce)
		idToken, err := op.Provider.Verifier(&oidc.Config{
			ClientID: op.OAuth2Config.ClientID,
		}).Verify(r.Context(), rawIDToken)
		if err != nil {
			log.Err(err).Msg("ID token verification failed")
			http.Error(w, "ID token verification failed", http.StatusUnauthorized)
			return
		}

		var claims struct {
			Nonce string `json:"nonce"`
			Sub   string `json:"sub"`
			Email string `json:"email"`
			Name  string `json:"name"`
		}
		if err := idToken.Claims(&claims); err != nil {
			http.Error(w, "Failed to extract claims", http.StatusInternalServerError)
			return
		}

		// Validate nonce to prevent replay attacks
		if claims.Nonce != flowState.Nonce {
			http.Error(w, "Invalid nonce", http.StatusUnauthorized)
			return
		}

		user, err := s.backend.UpsertOIDCUser(r.Context(), claims.Sub, claims.Email, claims.Name)
		if err != nil {
			log.Err(err).Msg("Failed to record social sign-in with backend")
			s.redirectLoginMessage(w, r, "Sign-in is temporarily unavailable", "", RouteHome)
			return
		}

		token, err := s.sessions.Issue(user.ID, user.Email, user.Name)
		if err != nil {
			log.Err(err).Msg("Failed to issue session token")
			s.redirectLoginMessage(w, r, "Sign-in is temporarily unavailable", "", RouteHome)
			return
		}

		s.SetSessionCookie(w, r, token)
		http.Redirect(w, r, safeReturnPath(flowState.ReturnPath), http.StatusSeeOther)
	}
}
