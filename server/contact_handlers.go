package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/pawtalk/pawtalk-web/backend"
)

// ContactPageData contains data for rendering the contact page
type ContactPageData struct {
	PageData
	Name         string
	Email        string
	ContactEmail string
	Body         string
	Sent         bool
}

// ContactPageHandler displays the contact form (GET /contact)
func (s *Server) ContactPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("contact.html")
	if err != nil {
		panic("Failed to parse contact template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := ContactPageData{PageData: s.pageData(r)}
		if claims := sessionClaims(r); claims != nil {
			data.Name = claims.Name
			data.ContactEmail = claims.Email
		}
		s.renderTemplate(w, tmpl, data)
	}
}

// ContactSubmissionHandler processes the contact form. Failures render
// inline on the form with the submitted fields preserved; the visitor is
// never bounced elsewhere.
func (s *Server) ContactSubmissionHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("contact.html")
	if err != nil {
		panic("Failed to parse contact template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		data := ContactPageData{
			PageData:     s.pageData(r),
			Name:         r.FormValue("name"),
			ContactEmail: r.FormValue("email"),
			Body:         r.FormValue("message"),
		}

		if err := s.forms.ValidateContact(data.Name, data.ContactEmail, data.Body); err != nil {
			data.Error = err.Error()
			s.renderTemplate(w, tmpl, data)
			return
		}

		msg := backend.ContactMessage{
			Name:    data.Name,
			Email:   data.ContactEmail,
			Message: data.Body,
		}
		if err := s.backend.SubmitContact(r.Context(), msg); err != nil {
			log.Err(err).Msg("Failed to forward contact message")
			data.Error = "Your message could not be sent right now. Please try again later."
			s.renderTemplate(w, tmpl, data)
			return
		}

		s.renderTemplate(w, tmpl, ContactPageData{PageData: s.pageData(r), Sent: true})
	}
}
