package gate

import "net/url"

// DecisionKind enumerates the possible gatekeeper outcomes.
type DecisionKind int

const (
	// Allow passes the navigation through untouched.
	Allow DecisionKind = iota
	// RedirectToLogin sends the browser to the login page with the original
	// path attached, so the UI can resume after sign-in.
	RedirectToLogin
	// RedirectToHome sends an already signed-in user away from an auth-only
	// page.
	RedirectToHome
)

func (k DecisionKind) String() string {
	switch k {
	case RedirectToLogin:
		return "redirect-to-login"
	case RedirectToHome:
		return "redirect-to-home"
	default:
		return "allow"
	}
}

// Decision is the per-request outcome of the gatekeeper. Redirect decisions
// carry the fully constructed target URL; Allow carries nothing. Decisions
// are produced fresh per request and never stored.
type Decision struct {
	Kind   DecisionKind
	Target string
}

func allowDecision() Decision {
	return Decision{Kind: Allow}
}

func loginDecision(t RouteTable, returnPath string) Decision {
	q := url.Values{}
	q.Set(t.RedirectParam, returnPath)
	return Decision{Kind: RedirectToLogin, Target: t.LoginPath + "?" + q.Encode()}
}

func homeDecision(t RouteTable) Decision {
	return Decision{Kind: RedirectToHome, Target: t.HomePath}
}
