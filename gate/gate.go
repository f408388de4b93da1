// Package gate implements the request gatekeeper that runs before every
// page render. Each incoming navigation is classified against a route table
// and combined with session-token validity to produce exactly one decision:
// allow, redirect to login, or redirect home.
//
// The gatekeeper is a pure function of (request, route table, validator).
// It performs no I/O, holds no mutable state between requests, and never
// panics outward: a malformed token must never crash navigation and must
// never grant access to a protected resource.
package gate

import (
	"net/http"
	"net/url"
	"strings"
)

// Result is the tagged outcome of validating a session token. Validation is
// error-free by contract: absent, malformed, expired and badly signed
// tokens all normalize to Valid == false.
type Result struct {
	Valid bool
}

// TokenValidator verifies a raw session cookie value. Implementations must
// not panic and must treat every verification failure as invalid rather
// than reporting it as an error.
type TokenValidator interface {
	Validate(token string) Result
}

// ValidatorFunc adapts a plain function to the TokenValidator interface.
type ValidatorFunc func(token string) Result

func (f ValidatorFunc) Validate(token string) Result {
	return f(token)
}

// Request is the read-only slice of an incoming navigation the gatekeeper
// inspects. Token holds the raw session cookie value; empty means absent.
type Request struct {
	Path  string
	Query url.Values
	Token string
}

// FromHTTP builds a gatekeeper request from an incoming HTTP request.
func FromHTTP(r *http.Request, cookieName string) Request {
	req := Request{Path: r.URL.Path, Query: r.URL.Query()}
	if cookie, err := r.Cookie(cookieName); err == nil {
		req.Token = cookie.Value
	}
	return req
}

// Gatekeeper decides, per navigation, whether to pass through or redirect.
type Gatekeeper struct {
	table     RouteTable
	validator TokenValidator
}

// New builds a gatekeeper from an immutable route table and a token
// validator. The table is copied by value; callers cannot mutate it after
// construction.
func New(table RouteTable, validator TokenValidator) *Gatekeeper {
	return &Gatekeeper{table: table, validator: validator}
}

// Gate produces the decision for a single navigation.
//
// The loop-guard runs before any classification: the login page displaying
// a notice is always allowed, otherwise a redirect to login could itself
// redirect to login indefinitely. Token validation runs only for classes
// that need it; public and unclassified paths never touch the token.
//
// Protected routes fail closed (invalid token redirects to login) and
// auth-only routes fail open (invalid token still shows the sign-in form,
// since denial there would lock legitimate users out).
func (g *Gatekeeper) Gate(req Request) Decision {
	if strings.HasPrefix(req.Path, g.table.LoginPath) && req.Query.Get(g.table.MessageParam) != "" {
		return allowDecision()
	}

	switch g.table.Classify(req.Path) {
	case ClassPublic:
		return allowDecision()
	case ClassAuthOnly:
		if g.validator.Validate(req.Token).Valid {
			return homeDecision(g.table)
		}
		return allowDecision()
	case ClassProtected:
		if g.validator.Validate(req.Token).Valid {
			return allowDecision()
		}
		return loginDecision(g.table, req.Path)
	default:
		return allowDecision()
	}
}
