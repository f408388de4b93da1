package server

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initRoutes() {
	// Marketing pages
	s.RegisterRouteFunc("GET /{$}", ChainMiddleware(s.IndexHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteAbout, ChainMiddleware(s.staticPageHandler("about.html"), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("GET "+RoutePricing, ChainMiddleware(s.staticPageHandler("pricing.html"), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("GET "+RoutePrivacy, ChainMiddleware(s.staticPageHandler("privacy.html"), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteTerms, ChainMiddleware(s.staticPageHandler("terms.html"), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteContact, ChainMiddleware(s.ContactPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteContact, ChainMiddleware(s.ContactSubmissionHandler(), s.HTMLMiddleware()...))

	// Auth
	s.RegisterRouteFunc("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteSignup, ChainMiddleware(s.SignupPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteSignup, ChainMiddleware(s.SignupSubmissionHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteOIDCLogin, ChainMiddleware(s.OIDCLoginHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteOIDCCallback, ChainMiddleware(s.OIDCCallbackHandler(), s.HTMLMiddleware()...))

	// Chat
	s.RegisterRouteFunc("GET "+RouteTalk, ChainMiddleware(s.TalkPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteTalkConversation, ChainMiddleware(s.ConversationPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteTalkStream, ChainMiddleware(s.TalkStreamHandler(), s.APIMiddleware()...))

	// Member features
	s.RegisterRouteFunc("GET "+RouteGallery, ChainMiddleware(s.GalleryPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteEvents, ChainMiddleware(s.EventsPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteAccount, ChainMiddleware(s.AccountPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteReminders, ChainMiddleware(s.RemindersPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteReminders, ChainMiddleware(s.ReminderCreateHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteReminderDelete, ChainMiddleware(s.ReminderDeleteHandler(), s.HTMLMiddleware()...))

	// Billing
	s.RegisterRouteFunc("GET "+RouteSubscription, ChainMiddleware(s.SubscriptionPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteSubscriptionManage, ChainMiddleware(s.SubscriptionManageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteSubscriptionUpgrade, ChainMiddleware(s.SubscriptionUpgradeHandler(), s.HTMLMiddleware()...))

	// Book generation
	s.RegisterRouteFunc("GET "+RouteBook, ChainMiddleware(s.BookPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteBook, ChainMiddleware(s.BookSubmissionHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteBookStatus, ChainMiddleware(s.BookStatusHandler(), s.HTMLMiddleware()...))

	// Operational
	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.Handler())

	// Static assets
	s.RegisterRouteFunc("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteStaticJS, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))
	s.RegisterRouteFunc("GET /favicon.ico", ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))
	s.RegisterRouteHandler("GET /img/", s.fileServer)
}
