// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"healthapp/internal/app"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// OIDCConfig carries the optional SSO provider wiring.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config *oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	insights *app.InsightService
	settings *app.SettingsService
	authSvc  *app.AuthService

	oidcConfig  OIDCConfig
	disableAuth bool
}

// New creates a Server wired to the given application services.
func New(is *app.InsightService, ss *app.SettingsService, as *app.AuthService, oidcConfig OIDCConfig) *Server {
	return &Server{insights: is, settings: ss, authSvc: as, oidcConfig: oidcConfig}
}

// WithoutAuth disables the auth middleware (for tests).
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/auth/register", s.handleRegister)
	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)
	api.HandleFunc("/config", s.handleConfig)

	api.Handle("/coaching/insight", s.authMiddleware(http.HandlerFunc(s.handleCoachingInsight)))
	api.Handle("/settings", s.authMiddleware(http.HandlerFunc(s.handleSettings)))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	return s.loggingMiddleware(withNoCache(root))
}
