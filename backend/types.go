package backend

import "time"

// User is the backend's view of an authenticated account holder.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// ContactMessage is a contact-form submission forwarded to the backend.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ChatMessage is a single turn in a conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest asks the backend to continue a conversation.
type ChatRequest struct {
	UserID         string        `json:"user_id"`
	ConversationID string        `json:"conversation_id,omitempty"`
	Messages       []ChatMessage `json:"messages"`
}

// ChatEvent is one server-sent chunk of an assistant reply.
type ChatEvent struct {
	ConversationID string `json:"conversation_id,omitempty"`
	Delta          string `json:"delta,omitempty"`
}

// Conversation is a chat thread summary for the talk page listing.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookRequest asks the backend to generate a storybook about a pet.
type BookRequest struct {
	PetName string `json:"pet_name"`
	Theme   string `json:"theme"`
	Notes   string `json:"notes,omitempty"`
}

// BookJob tracks an asynchronous book-generation job.
type BookJob struct {
	ID          string `json:"id"`
	Status      string `json:"status"` // "pending", "generating", "done", "failed"
	DownloadURL string `json:"download_url,omitempty"`
}

// GalleryItem is a single media entry on the gallery page.
type GalleryItem struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Caption   string    `json:"caption,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Event is a pet-care event (vet visit, meetup, vaccination window).
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	StartsAt    time.Time `json:"starts_at"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
}

// Reminder is a scheduled care reminder.
type Reminder struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	DueAt  time.Time `json:"due_at"`
	Repeat string    `json:"repeat,omitempty"` // "", "daily", "weekly", "monthly"
	Done   bool      `json:"done"`
}

// Account is the account page payload.
type Account struct {
	User      User      `json:"user"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
}

// Subscription is the billing state shown on the subscription pages.
type Subscription struct {
	Plan     string    `json:"plan"` // "free", "plus", "family"
	Status   string    `json:"status"`
	RenewsAt time.Time `json:"renews_at"`
}
