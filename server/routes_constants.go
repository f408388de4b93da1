package server

import "github.com/pawtalk/pawtalk-web/gate"

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Marketing / informational
	RouteHome    = "/"
	RouteAbout   = "/about"
	RoutePricing = "/pricing"
	RouteContact = "/contact"
	RoutePrivacy = "/privacy"
	RouteTerms   = "/terms"

	// Auth
	RouteLogin        = "/login"
	RouteSignup       = "/signup"
	RouteLogout       = "/logout"
	RouteOIDCLogin    = "/auth/oidc"
	RouteOIDCCallback = "/auth/callback"

	// Features (session required)
	RouteTalk             = "/talk"
	RouteTalkStream       = "/talk/stream"
	RouteTalkConversation = "/talk/conversation/{id}"
	RouteGallery          = "/gallery"
	RouteEvents           = "/events"
	RouteAccount          = "/account"
	RouteReminders        = "/reminders"
	RouteReminderDelete   = "/reminders/{id}/delete"

	// Billing: the landing page is public, everything beneath it is not
	RouteSubscription        = "/subscription"
	RouteSubscriptionManage  = "/subscription/manage"
	RouteSubscriptionUpgrade = "/subscription/upgrade"

	// Book generation
	RouteBook       = "/book"
	RouteBookStatus = "/book/status/{id}"

	// Operational
	RouteMetrics = "/metrics"

	// Static asset routes (patterns)
	RouteStaticCSS = "/css/{file}"
	RouteStaticJS  = "/js/{file}"
)

// Query parameters understood by the gatekeeper and the login page
const (
	// QueryParamMessage marks the login page as displaying a notice. Its
	// presence engages the gatekeeper's loop-guard.
	QueryParamMessage = "message"
	// QueryParamRedirect carries the path to resume after sign-in.
	QueryParamRedirect = "redirect"
)

// NewRouteTable builds the gatekeeper's route table from the route
// constants. The table is the single source of truth for which pages are
// public, auth-only and protected.
func NewRouteTable() gate.RouteTable {
	return gate.RouteTable{
		Public:          []string{RouteHome, RouteAbout, RoutePricing, RouteContact, RoutePrivacy, RouteTerms},
		PublicExact:     []string{RouteSubscription},
		AuthOnly:        []string{RouteLogin, RouteSignup},
		Protected:       []string{RouteTalk, RouteGallery, RouteEvents, RouteAccount, RouteReminders},
		ProtectedNested: []string{RouteSubscription},
		LoginPath:       RouteLogin,
		HomePath:        RouteHome,
		MessageParam:    QueryParamMessage,
		RedirectParam:   QueryParamRedirect,
	}
}
