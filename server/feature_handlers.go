package server

import (
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pawtalk/pawtalk-web/backend"
)

// reminderTimeLayout matches the value of an HTML datetime-local input.
const reminderTimeLayout = "2006-01-02T15:04"

// GalleryPageData contains data for rendering the gallery page
type GalleryPageData struct {
	PageData
	Items []backend.GalleryItem
}

// GalleryPageHandler displays the visitor's media gallery (GET /gallery)
func (s *Server) GalleryPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("gallery.html")
	if err != nil {
		panic("Failed to parse gallery template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := GalleryPageData{PageData: s.pageData(r)}

		items, err := s.backend.ListGallery(r.Context(), sessionClaims(r).UserID())
		if err != nil {
			log.Err(err).Msg("Failed to list gallery items")
			data.Error = "Your gallery is unavailable right now."
		} else {
			data.Items = items
		}
		s.renderTemplate(w, tmpl, data)
	}
}

// EventsPageData contains data for rendering the events page
type EventsPageData struct {
	PageData
	Events []backend.Event
}

// EventsPageHandler displays upcoming pet-care events (GET /events)
func (s *Server) EventsPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("events.html")
	if err != nil {
		panic("Failed to parse events template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := EventsPageData{PageData: s.pageData(r)}

		events, err := s.backend.ListEvents(r.Context())
		if err != nil {
			log.Err(err).Msg("Failed to list events")
			data.Error = "Events are unavailable right now."
		} else {
			data.Events = events
		}
		s.renderTemplate(w, tmpl, data)
	}
}

// AccountPageData contains data for rendering the account page
type AccountPageData struct {
	PageData
	Account *backend.Account
}

// AccountPageHandler displays the account overview (GET /account)
func (s *Server) AccountPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("account.html")
	if err != nil {
		panic("Failed to parse account template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := AccountPageData{PageData: s.pageData(r)}

		account, err := s.backend.GetAccount(r.Context(), sessionClaims(r).UserID())
		if err != nil {
			log.Err(err).Msg("Failed to load account")
			data.Error = "Your account details are unavailable right now."
		} else {
			data.Account = account
		}
		s.renderTemplate(w, tmpl, data)
	}
}

// RemindersPageData contains data for rendering the reminders page
type RemindersPageData struct {
	PageData
	Reminders []backend.Reminder
}

// RemindersPageHandler displays the visitor's care reminders (GET /reminders)
func (s *Server) RemindersPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("reminders.html")
	if err != nil {
		panic("Failed to parse reminders template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := RemindersPageData{PageData: s.pageData(r)}
		data.Error = r.URL.Query().Get("error")

		reminders, err := s.backend.ListReminders(r.Context(), sessionClaims(r).UserID())
		if err != nil {
			log.Err(err).Msg("Failed to list reminders")
			data.Error = "Your reminders are unavailable right now."
		} else {
			data.Reminders = reminders
		}
		s.renderTemplate(w, tmpl, data)
	}
}

// ReminderCreateHandler schedules a new reminder (POST /reminders)
func (s *Server) ReminderCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		title := r.FormValue("title")
		dueAt := r.FormValue("due_at")
		repeat := r.FormValue("repeat")

		redirectError := func(msg string) {
			http.Redirect(w, r, RouteReminders+"?error="+url.QueryEscape(msg), http.StatusSeeOther)
		}

		if err := s.forms.ValidateReminder(title, dueAt); err != nil {
			redirectError(err.Error())
			return
		}

		due, err := time.ParseInLocation(reminderTimeLayout, dueAt, time.Local)
		if err != nil {
			redirectError("invalid due date")
			return
		}

		reminder := backend.Reminder{Title: title, DueAt: due, Repeat: repeat}
		if _, err := s.backend.CreateReminder(r.Context(), sessionClaims(r).UserID(), reminder); err != nil {
			log.Err(err).Msg("Failed to create reminder")
			redirectError("Your reminder could not be saved right now.")
			return
		}

		http.Redirect(w, r, RouteReminders, http.StatusSeeOther)
	}
}

// ReminderDeleteHandler removes a reminder (POST /reminders/{id}/delete)
func (s *Server) ReminderDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reminderID := r.PathValue("id")

		if err := s.backend.DeleteReminder(r.Context(), sessionClaims(r).UserID(), reminderID); err != nil {
			log.Err(err).Str("reminder_id", reminderID).Msg("Failed to delete reminder")
			http.Redirect(w, r, RouteReminders+"?error="+url.QueryEscape("Your reminder could not be removed right now."), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, RouteReminders, http.StatusSeeOther)
	}
}

// SubscriptionPageData contains data for rendering the subscription pages
type SubscriptionPageData struct {
	PageData
	Subscription *backend.Subscription
}

// SubscriptionPageHandler displays the plans landing page (GET /subscription).
// The page is public marketing; a signed-in visitor additionally sees
// their current plan.
func (s *Server) SubscriptionPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("subscription.html")
	if err != nil {
		panic("Failed to parse subscription template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := SubscriptionPageData{PageData: s.pageData(r)}

		if claims := sessionClaims(r); claims != nil {
			sub, err := s.backend.GetSubscription(r.Context(), claims.UserID())
			if err != nil {
				log.Err(err).Msg("Failed to load subscription")
			} else {
				data.Subscription = sub
			}
		}
		s.renderTemplate(w, tmpl, data)
	}
}

// SubscriptionManageHandler displays the billing management page
// (GET /subscription/manage). Nested billing pages require a session.
func (s *Server) SubscriptionManageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("subscription_manage.html")
	if err != nil {
		panic("Failed to parse subscription manage template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := SubscriptionPageData{PageData: s.pageData(r)}

		sub, err := s.backend.GetSubscription(r.Context(), sessionClaims(r).UserID())
		if err != nil {
			log.Err(err).Msg("Failed to load subscription")
			data.Error = "Your billing details are unavailable right now."
		} else {
			data.Subscription = sub
		}
		s.renderTemplate(w, tmpl, data)
	}
}

// SubscriptionUpgradeHandler forwards a plan change to the backend
// (POST /subscription/upgrade)
func (s *Server) SubscriptionUpgradeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		plan := r.FormValue("plan")
		if err := s.backend.ChangePlan(r.Context(), sessionClaims(r).UserID(), plan); err != nil {
			log.Err(err).Str("plan", plan).Msg("Failed to change plan")
			http.Redirect(w, r, RouteSubscriptionManage+"?error="+url.QueryEscape("Your plan could not be changed right now."), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, RouteSubscriptionManage, http.StatusSeeOther)
	}
}
