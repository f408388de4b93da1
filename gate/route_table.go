package gate

import "strings"

// RouteClass is the access-control category assigned to a URL path.
type RouteClass int

const (
	// ClassUnclassified is a path outside every table. Unclassified paths
	// are allowed through untouched.
	ClassUnclassified RouteClass = iota
	// ClassPublic paths are reachable with or without a session.
	ClassPublic
	// ClassAuthOnly paths (login, signup) only make sense without a session.
	ClassAuthOnly
	// ClassProtected paths require a valid session.
	ClassProtected
)

func (c RouteClass) String() string {
	switch c {
	case ClassPublic:
		return "public"
	case ClassAuthOnly:
		return "auth-only"
	case ClassProtected:
		return "protected"
	default:
		return "unclassified"
	}
}

// RouteTable is the immutable route configuration a Gatekeeper is built
// with. All application routes are listed here rather than hard-coded into
// the classification logic, so tests can supply their own tables.
//
// Matching rules per list:
//
//   - Public, AuthOnly: exact match, or nested sub-path (path == route or
//     path starts with route + "/").
//   - PublicExact: exact match only. Sub-paths fall through to the later
//     tables, which is how the subscription landing page stays public while
//     its nested billing pages are protected.
//   - Protected: exact, nested, or query-prefix (route + "?") for paths
//     that retained a dangling query string.
//   - ProtectedNested: sub-paths only, never the bare path itself.
type RouteTable struct {
	Public          []string
	PublicExact     []string
	AuthOnly        []string
	Protected       []string
	ProtectedNested []string

	// LoginPath receives redirected unauthenticated navigations and is the
	// subject of the loop-guard. HomePath receives authenticated users who
	// land on an auth-only page.
	LoginPath string
	HomePath  string

	// MessageParam is the query parameter the login page carries when it is
	// displaying a notice. Its presence short-circuits the gate so that a
	// redirect to the login page can never trigger another redirect.
	MessageParam string

	// RedirectParam carries the originally requested path through the login
	// redirect so the UI can resume navigation after sign-in.
	RedirectParam string
}

// Classify maps a request path to its route class. Precedence is fixed:
// public before auth-only before protected, first match wins. Path prefixes
// overlap between the tables, so the order matters. A path outside every
// table classifies as Unclassified.
func (t RouteTable) Classify(path string) RouteClass {
	for _, route := range t.PublicExact {
		if path == route {
			return ClassPublic
		}
	}
	for _, route := range t.Public {
		if matchNested(path, route) {
			return ClassPublic
		}
	}
	for _, route := range t.AuthOnly {
		if matchNested(path, route) {
			return ClassAuthOnly
		}
	}
	for _, route := range t.Protected {
		if matchNested(path, route) || strings.HasPrefix(path, route+"?") {
			return ClassProtected
		}
	}
	for _, route := range t.ProtectedNested {
		if strings.HasPrefix(path, route+"/") {
			return ClassProtected
		}
	}
	return ClassUnclassified
}

func matchNested(path, route string) bool {
	return path == route || strings.HasPrefix(path, route+"/")
}
