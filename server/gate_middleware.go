package server

import (
	"net/http"

	"github.com/pawtalk/pawtalk-web/gate"
	"github.com/pawtalk/pawtalk-web/session"
)

// GateMiddleware applies the redirect policy before any page handler
// runs. Allowed requests that carry a valid session get the claims
// attached to the request context so handlers can render the signed-in
// state without re-reading the cookie.
func (s *Server) GateMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := gate.FromHTTP(r, s.config.GetSessionCookieName())
		decision := s.gatekeeper.Gate(req)

		if decision.Kind != gate.Allow {
			http.Redirect(w, r, decision.Target, http.StatusSeeOther)
			return
		}

		if req.Token != "" {
			if result := s.sessions.Validate(req.Token); result.Valid {
				r = r.WithContext(session.WithClaims(r.Context(), result.Claims))
			}
		}
		next(w, r)
	}
}
