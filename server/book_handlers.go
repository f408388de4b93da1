package server

import (
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/pawtalk/pawtalk-web/backend"
)

// BookPageData contains data for rendering the book pages
type BookPageData struct {
	PageData
	PetName string
	Theme   string
	Job     *backend.BookJob
}

// requireSession covers routes the redirect policy leaves unclassified.
// The book pages are reachable anonymously as far as the gatekeeper is
// concerned, so the handler sends visitors to sign in itself.
func (s *Server) requireSession(w http.ResponseWriter, r *http.Request) bool {
	if sessionClaims(r) != nil {
		return true
	}
	params := url.Values{}
	params.Set(QueryParamRedirect, r.URL.Path)
	http.Redirect(w, r, RouteLogin+"?"+params.Encode(), http.StatusSeeOther)
	return false
}

// BookPageHandler displays the book-generation form (GET /book)
func (s *Server) BookPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("book.html")
	if err != nil {
		panic("Failed to parse book template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if !s.requireSession(w, r) {
			return
		}
		data := BookPageData{PageData: s.pageData(r)}
		data.Error = r.URL.Query().Get("error")
		s.renderTemplate(w, tmpl, data)
	}
}

// BookSubmissionHandler starts a book-generation job and sends the
// browser to its status page (POST /book)
func (s *Server) BookSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.requireSession(w, r) {
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		req := backend.BookRequest{
			PetName: r.FormValue("pet_name"),
			Theme:   r.FormValue("theme"),
			Notes:   r.FormValue("notes"),
		}

		redirectError := func(msg string) {
			http.Redirect(w, r, RouteBook+"?error="+url.QueryEscape(msg), http.StatusSeeOther)
		}

		if err := s.forms.ValidateBookRequest(req.PetName, req.Theme); err != nil {
			redirectError(err.Error())
			return
		}

		job, err := s.backend.GenerateBook(r.Context(), sessionClaims(r).UserID(), req)
		if err != nil {
			log.Err(err).Msg("Failed to start book generation")
			redirectError("Book generation is unavailable right now.")
			return
		}

		http.Redirect(w, r, "/book/status/"+url.PathEscape(job.ID), http.StatusSeeOther)
	}
}

// BookStatusHandler polls a book-generation job (GET /book/status/{id}).
// The page refreshes itself until the job settles.
func (s *Server) BookStatusHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("book_status.html")
	if err != nil {
		panic("Failed to parse book status template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if !s.requireSession(w, r) {
			return
		}

		jobID := r.PathValue("id")
		job, err := s.backend.BookStatus(r.Context(), jobID)
		if err != nil {
			log.Err(err).Str("job_id", jobID).Msg("Failed to poll book job")
			http.NotFound(w, r)
			return
		}

		data := BookPageData{PageData: s.pageData(r), Job: job}
		s.renderTemplate(w, tmpl, data)
	}
}
