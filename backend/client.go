// Package backend is the HTTP client for the PawTalk backend API. The web
// frontend owns no data of its own: chat, books, gallery media, events,
// reminders, account and subscription state all live behind this service
// and are consumed over plain HTTP/JSON plus an SSE stream for chat.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	errs "github.com/pawtalk/pawtalk-web/internal/errors"
)

const defaultTimeout = 30 * time.Second

// Client is a thin, stateless client for the backend API. It is safe for
// concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	// streamClient has no overall timeout: chat streams stay open for as
	// long as the model is generating. Cancellation comes from the request
	// context instead.
	streamClient *http.Client
	maxTries     uint
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for JSON calls.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithMaxTries sets how many attempts retryable calls make before giving up.
func WithMaxTries(n uint) Option {
	return func(c *Client) { c.maxTries = n }
}

// NewClient creates a backend API client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("backend base URL is required")
	}
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: defaultTimeout},
		streamClient: &http.Client{},
		maxTries:     3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Login verifies credentials with the backend. Wrong credentials surface as
// ErrInvalidCredentials; the password never persists in this process.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var user User
	body := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Signup registers a new account. A duplicate email surfaces as
// ErrEmailTaken.
func (c *Client) Signup(ctx context.Context, name, email, password string) (*User, error) {
	var user User
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/signup", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertOIDCUser records a social sign-in with the backend and returns the
// linked account, creating it on first sign-in.
func (c *Client) UpsertOIDCUser(ctx context.Context, subject, email, name string) (*User, error) {
	var user User
	body := map[string]string{"subject": subject, "email": email, "name": name}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/oidc", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SubmitContact forwards a contact-form submission. Transient backend
// failures are retried; the message is small and the endpoint idempotent
// enough that a duplicate is preferable to a silent drop.
func (c *Client) SubmitContact(ctx context.Context, msg ContactMessage) error {
	return c.doJSONRetry(ctx, http.MethodPost, "/api/contact", msg, nil)
}

// GenerateBook starts an asynchronous book-generation job.
func (c *Client) GenerateBook(ctx context.Context, userID string, req BookRequest) (*BookJob, error) {
	var job BookJob
	path := "/api/users/" + url.PathEscape(userID) + "/books"
	if err := c.doJSON(ctx, http.MethodPost, path, req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// BookStatus polls a book-generation job.
func (c *Client) BookStatus(ctx context.Context, jobID string) (*BookJob, error) {
	var job BookJob
	path := "/api/books/" + url.PathEscape(jobID)
	if err := c.doJSONRetry(ctx, http.MethodGet, path, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// ListConversations returns the user's chat threads, newest first.
func (c *Client) ListConversations(ctx context.Context, userID string) ([]Conversation, error) {
	var conversations []Conversation
	path := "/api/users/" + url.PathEscape(userID) + "/conversations"
	if err := c.doJSONRetry(ctx, http.MethodGet, path, nil, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

// GetConversation returns the messages of one chat thread.
func (c *Client) GetConversation(ctx context.Context, userID, conversationID string) ([]ChatMessage, error) {
	var messages []ChatMessage
	path := "/api/users/" + url.PathEscape(userID) + "/conversations/" + url.PathEscape(conversationID)
	if err := c.doJSONRetry(ctx, http.MethodGet, path, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// ListGallery returns the user's gallery items.
func (c *Client) ListGallery(ctx context.Context, userID string) ([]GalleryItem, error) {
	var items []GalleryItem
	path := "/api/users/" + url.PathEscape(userID) + "/gallery"
	if err := c.doJSONRetry(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListEvents returns upcoming pet-care events.
func (c *Client) ListEvents(ctx context.Context) ([]Event, error) {
	var events []Event
	if err := c.doJSONRetry(ctx, http.MethodGet, "/api/events", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// ListReminders returns the user's reminders.
func (c *Client) ListReminders(ctx context.Context, userID string) ([]Reminder, error) {
	var reminders []Reminder
	path := "/api/users/" + url.PathEscape(userID) + "/reminders"
	if err := c.doJSONRetry(ctx, http.MethodGet, path, nil, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

// CreateReminder schedules a new reminder.
func (c *Client) CreateReminder(ctx context.Context, userID string, reminder Reminder) (*Reminder, error) {
	var created Reminder
	path := "/api/users/" + url.PathEscape(userID) + "/reminders"
	if err := c.doJSON(ctx, http.MethodPost, path, reminder, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteReminder removes a reminder.
func (c *Client) DeleteReminder(ctx context.Context, userID, reminderID string) error {
	path := "/api/users/" + url.PathEscape(userID) + "/reminders/" + url.PathEscape(reminderID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// GetAccount returns the account page payload.
func (c *Client) GetAccount(ctx context.Context, userID string) (*Account, error) {
	var account Account
	path := "/api/users/" + url.PathEscape(userID) + "/account"
	if err := c.doJSONRetry(ctx, http.MethodGet, path, nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// GetSubscription returns the user's billing state.
func (c *Client) GetSubscription(ctx context.Context, userID string) (*Subscription, error) {
	var sub Subscription
	path := "/api/users/" + url.PathEscape(userID) + "/subscription"
	if err := c.doJSONRetry(ctx, http.MethodGet, path, nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// ChangePlan switches the user's subscription plan.
func (c *Client) ChangePlan(ctx context.Context, userID, plan string) error {
	path := "/api/users/" + url.PathEscape(userID) + "/subscription"
	return c.doJSON(ctx, http.MethodPost, path, map[string]string{"plan": plan}, nil)
}

// doJSON performs a single JSON request/response round trip.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", errs.ErrBackendUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp, method, path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// doJSONRetry retries doJSON with exponential backoff. Only transport
// failures and 5xx responses are retried; everything else is permanent.
func (c *Client) doJSONRetry(ctx context.Context, method, path string, body, out any) error {
	operation := func() (struct{}, error) {
		err := c.doJSON(ctx, method, path, body, out)
		if err != nil && !errors.Is(err, errs.ErrBackendUnavailable) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(c.maxTries),
	)
	return err
}

// statusError maps a non-2xx response to the error taxonomy.
func statusError(resp *http.Response, method, path string) error {
	// Backends report a human-readable reason as {"detail": "..."}.
	var payload struct {
		Detail string `json:"detail"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&payload)
	detail := payload.Detail
	if detail == "" {
		detail = resp.Status
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", errs.ErrInvalidCredentials, detail)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", errs.ErrNotFound, method, path)
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s", errs.ErrEmailTaken, detail)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %s %s: %s", errs.ErrBackendUnavailable, method, path, detail)
	default:
		return fmt.Errorf("%w: %s %s: %s", errs.ErrBackendRejected, method, path, detail)
	}
}
