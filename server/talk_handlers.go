package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/pawtalk/pawtalk-web/backend"
)

// TalkPageData contains data for rendering the talk page
type TalkPageData struct {
	PageData
	Conversations []backend.Conversation
}

// ConversationPageData contains data for rendering a single chat thread
type ConversationPageData struct {
	PageData
	ConversationID string
	Messages       []backend.ChatMessage
}

// TalkPageHandler displays the chat landing page with the visitor's
// conversation history (GET /talk)
func (s *Server) TalkPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("talk.html")
	if err != nil {
		panic("Failed to parse talk template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := TalkPageData{PageData: s.pageData(r)}

		claims := sessionClaims(r)
		conversations, err := s.backend.ListConversations(r.Context(), claims.UserID())
		if err != nil {
			log.Err(err).Msg("Failed to list conversations")
			data.Error = "Your conversation history is unavailable right now."
		} else {
			data.Conversations = conversations
		}
		s.renderTemplate(w, tmpl, data)
	}
}

// ConversationPageHandler displays one chat thread (GET /talk/conversation/{id})
func (s *Server) ConversationPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("conversation.html")
	if err != nil {
		panic("Failed to parse conversation template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conversationID := r.PathValue("id")
		claims := sessionClaims(r)

		messages, err := s.backend.GetConversation(r.Context(), claims.UserID(), conversationID)
		if err != nil {
			log.Err(err).Str("conversation_id", conversationID).Msg("Failed to load conversation")
			http.NotFound(w, r)
			return
		}

		data := ConversationPageData{
			PageData:       s.pageData(r),
			ConversationID: conversationID,
			Messages:       messages,
		}
		s.renderTemplate(w, tmpl, data)
	}
}

// TalkStreamHandler proxies a chat turn to the backend and relays the
// token stream to the browser as server-sent events (POST /talk/stream).
// The response ends with a [DONE] frame so the page script knows the
// reply is complete.
func (s *Server) TalkStreamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := sessionClaims(r)

		var req backend.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		// The identity always comes from the session, never the payload
		req.UserID = claims.UserID()

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		err := s.backend.StreamChat(r.Context(), req, func(ev backend.ChatEvent) error {
			encoded, err := json.Marshal(ev)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", encoded); err != nil {
				return err
			}
			flusher.Flush()
			return nil
		})
		if err != nil {
			// The browser hanging up is normal teardown, not a failure
			if errors.Is(err, context.Canceled) {
				return
			}
			log.Err(err).Msg("Chat stream failed")
			fmt.Fprint(w, "data: {\"error\":\"stream interrupted\"}\n\n")
			flusher.Flush()
			return
		}

		fmt.Fprint(w, "data: [DONE]\n\n")
		flusher.Flush()
	}
}
