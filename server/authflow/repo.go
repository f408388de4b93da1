// Package authflow stores the short-lived state of an in-flight social
// sign-in: the anti-forgery state value, the ID token nonce, the PKCE
// verifier and the path to resume after the callback.
package authflow

import "time"

type State struct {
	Nonce        string
	CodeVerifier string
	ReturnPath   string
	CreatedAt    time.Time
}

// Repo is a one-shot store keyed by the OAuth2 state parameter. Take
// removes the entry so a state value can never be replayed.
type Repo interface {
	Put(state string, value State) error
	Take(state string) (State, bool)
}
