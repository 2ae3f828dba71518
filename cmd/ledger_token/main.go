// Command ledger_token mints a bearer token for the ledger API using the
// configured JWT secret, issuer and expiry.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/shop_ledger/internal/platform/config"
	"github.com/SscSPs/shop_ledger/internal/utils"
	"github.com/SscSPs/shop_ledger/pkg/logging"
)

func main() {
	subject := flag.String("subject", "", "subject (owner ID) the token is issued to")
	expiry := flag.Duration("expiry", 0, "token lifetime; defaults to JWT_EXPIRY_DURATION")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := logging.Setup(os.Stderr, cfg.LogLevel, cfg.IsProduction)

	if *subject == "" {
		logger.Error("A -subject is required")
		flag.Usage()
		os.Exit(2)
	}
	if cfg.JWTSecret == "" {
		logger.Error("JWT_SECRET is not set; the API accepts requests without tokens")
		os.Exit(1)
	}

	lifetime := cfg.JWTExpiryDuration
	if *expiry > 0 {
		lifetime = *expiry
	}

	token, err := utils.GenerateJWT(*subject, cfg.JWTSecret, lifetime, cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Token issued", slog.String("subject", *subject), slog.Duration("expires_in", lifetime))
	fmt.Println(token)
}
