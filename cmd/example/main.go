package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	facebook "github.com/tino/facebook2"
	"github.com/tino/facebook2/pkg/types"
)

func main() {
	// Credentials come from the environment; a local .env file is honored
	// for development.
	_ = godotenv.Load()

	appID := os.Getenv("FACEBOOK_APP_ID")
	appSecret := os.Getenv("FACEBOOK_SECRET")
	if appID == "" || appSecret == "" {
		log.Fatal("FACEBOOK_APP_ID and FACEBOOK_SECRET environment variables are required")
	}

	// Route structured logs to stdout; adjust the level as needed.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	auth, err := facebook.NewAuth(&facebook.AuthConfig{
		AppID:       appID,
		AppSecret:   appSecret,
		RedirectURI: "https://localhost/facebook/callback/",
	})
	if err != nil {
		log.Fatalf("Failed to create auth helper: %v", err)
	}

	fmt.Println("Send users to:", auth.AuthURL("", []string{"email"}, nil))

	ctx := context.Background()
	token, err := auth.GetAppAccessToken(ctx)
	if err != nil {
		log.Fatalf("Failed to get app access token: %v", err)
	}

	api, err := facebook.NewGraphAPI(&facebook.Config{
		AccessToken: token,
		Logger:      logger,
	})
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	version, err := api.GetVersion(ctx)
	if err != nil {
		log.Fatalf("Failed to probe API version: %v", err)
	}
	fmt.Println("Graph API version:", version)

	app, err := api.GetObject(ctx, appID, types.Params{"fields": "name,link"})
	if err != nil {
		log.Fatalf("Failed to fetch app object: %v", err)
	}
	fmt.Printf("App %q: %s\n", app.String("name"), app.String("link"))
}
