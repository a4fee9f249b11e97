package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	"healthapp/internal/adapter/gemini"
	adapthttp "healthapp/internal/adapter/http"
	"healthapp/internal/adapter/postgres"
	"healthapp/internal/app"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

func main() {
	addr := env("ADDR", ":8080")

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := postgres.Open(connStr)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()

	generator, err := gemini.New(ctx, gemini.Config{
		APIKey: os.Getenv("GEMINI_API_KEY"),
		Model:  env("GEMINI_MODEL", ""),
	})
	if err != nil {
		log.Fatalf("gemini: %v", err)
	}
	if !generator.Configured() {
		log.Print("GEMINI_API_KEY not set; coaching insights disabled")
	}

	sessionRepo := postgres.NewSessionRepo(db)

	settingsSvc := app.NewSettingsService(db)
	digestSvc := app.NewDigestService(db, db, db, db)
	insightSvc := app.NewInsightService(settingsSvc, db, digestSvc, generator)
	authSvc := app.NewAuthService(db, sessionRepo)

	oidcConfig := buildOIDC(ctx)

	h := adapthttp.New(insightSvc, settingsSvc, authSvc, oidcConfig).Handler()
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func buildOIDC(ctx context.Context) adapthttp.OIDCConfig {
	issuer := os.Getenv("OIDC_ISSUER")
	clientID := os.Getenv("OIDC_CLIENT_ID")
	if issuer == "" || clientID == "" {
		return adapthttp.OIDCConfig{}
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		log.Printf("oidc provider %s unavailable, sso disabled: %v", issuer, err)
		return adapthttp.OIDCConfig{}
	}

	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
			RedirectURL:  env("OIDC_REDIRECT_URL", "/api/auth/sso/callback"),
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
