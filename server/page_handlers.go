package server

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/pawtalk/pawtalk-web/session"
)

const contentTypeHTML = "text/html; charset=utf-8"

// PageData is the common template model for rendered pages. User is nil
// for anonymous visitors.
type PageData struct {
	AppName string
	User    *session.Claims
	Error   string
	Message string
}

func (s *Server) pageData(r *http.Request) PageData {
	return PageData{
		AppName: s.config.GetAppName(),
		User:    session.ClaimsFrom(r.Context()),
	}
}

// sessionClaims returns the validated claims attached by the gate
// middleware, nil for anonymous requests.
func sessionClaims(r *http.Request) *session.Claims {
	return session.ClaimsFrom(r.Context())
}

func (s *Server) renderTemplate(w http.ResponseWriter, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", contentTypeHTML)
	if err := tmpl.Execute(w, data); err != nil {
		log.Err(err).Str("template", tmpl.Name()).Msg("Failed to render template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// IndexHandler renders the home page
func (s *Server) IndexHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("index.html")
	if err != nil {
		panic("Failed to parse index template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		s.renderTemplate(w, tmpl, s.pageData(r))
	}
}

// staticPageHandler renders a content-only page with no handler logic
// beyond the shared page model.
func (s *Server) staticPageHandler(templateName string) http.HandlerFunc {
	tmpl, err := ParseTemplate(templateName)
	if err != nil {
		panic("Failed to parse " + templateName + " template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		s.renderTemplate(w, tmpl, s.pageData(r))
	}
}
