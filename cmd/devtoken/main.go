// Command devtoken mints an access token for a wallet address using the
// configured JWT secret. Wallet login is handled outside this service, so
// this is how local clients get a token.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"fashionswap-backend/internal/config"
	"fashionswap-backend/internal/security"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	address := flag.String("address", "", "Wallet address to issue the token for")
	ttl := flag.Duration("ttl", 0, "Token lifetime (defaults to jwt.access_token_expiry_minutes)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	lifetime := cfg.AccessTokenTTL()
	if *ttl > 0 {
		lifetime = *ttl
	}

	token, err := security.NewTokenManager(cfg.JWT.Secret).GenerateAccessToken(*address, lifetime)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}
	fmt.Println(token)
	log.Printf("token for %s expires at %s", security.NormalizeAddress(*address), time.Now().Add(lifetime).UTC().Format(time.RFC3339))
}
