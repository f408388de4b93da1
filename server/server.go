package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	"golang.org/x/oauth2"

	"github.com/pawtalk/pawtalk-web/backend"
	"github.com/pawtalk/pawtalk-web/forms"
	"github.com/pawtalk/pawtalk-web/gate"
	"github.com/pawtalk/pawtalk-web/internal/config"
	"github.com/pawtalk/pawtalk-web/server/authflow"
	"github.com/pawtalk/pawtalk-web/session"
)

// OidcProvider bundles the discovered issuer metadata with the oauth2
// configuration used for the social sign-in flow.
type OidcProvider struct {
	Provider     *oidc.Provider
	OAuth2Config *oauth2.Config
}

type Server struct {
	env        string // Environment (e.g., "DEV", "production")
	mux        *http.ServeMux
	routes     []string
	fileServer http.Handler
	config     config.Config

	sessions   *session.Manager
	gatekeeper *gate.Gatekeeper
	backend    *backend.Client
	forms      *forms.Validator
	authState  authflow.Repo
	cors       *cors.Cors
	metrics    *metrics

	oidc     *OidcProvider
	oidcLock sync.Mutex
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithMetricsRegistry overrides the Prometheus registry, which tests use
// to avoid duplicate registration on the default one.
func WithMetricsRegistry(reg prometheus.Registerer) Option {
	return func(s *Server) { s.metrics = newMetrics(reg) }
}

func New(cfg config.Config, backendClient *backend.Client, opts ...Option) (*Server, error) {
	sessions, err := session.NewManager(cfg.GetSessionSecret(), cfg.GetSessionTTL())
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create session manager: %w", err)
	}

	s := &Server{
		mux:       http.NewServeMux(),
		config:    cfg,
		sessions:  sessions,
		backend:   backendClient,
		forms:     forms.NewValidator(),
		authState: authflow.NewInMemoryRepo(),
		cors: cors.New(cors.Options{
			AllowedOrigins:   cfg.GetAllowedOrigins(),
			AllowedMethods:   cfg.GetAllowedMethods(),
			AllowedHeaders:   cfg.GetAllowedHeaders(),
			AllowCredentials: true,
		}),
	}
	s.env = cfg.GetEnv()
	s.fileServer = FileServerHandler()
	s.gatekeeper = gate.New(NewRouteTable(), gate.ValidatorFunc(func(token string) gate.Result {
		return gate.Result{Valid: sessions.Validate(token).Valid}
	}))

	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = newMetrics(prometheus.DefaultRegisterer)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
