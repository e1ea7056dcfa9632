// Command mint-token issues a signed access token for local use, standing in
// for the identity provider that shares JWT_SECRET with the server.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmynk/pocketbook/internal/auth"
	"github.com/mmynk/pocketbook/pkg/logging"
)

func main() {
	logging.Setup()

	userID := flag.String("user", "", "user ID to put in the token (required)")
	email := flag.String("email", "", "email to put in the token")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Error("Failed to load .env", "error", err)
		os.Exit(1)
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	token, err := auth.NewJWTManager(secret, *ttl).Generate(*userID, *email)
	if err != nil {
		slog.Error("Failed to generate token", "error", err)
		flag.Usage()
		os.Exit(2)
	}
	fmt.Println(token)
}
