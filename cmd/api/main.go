package main

import (
	"log"
	"net/http"

	"assetflow-api/internal"
	"assetflow-api/internal/config"
)

func main() {
	// Load and validate configuration
	cfg, err := config.LoadAndValidate()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	// Create and start server
	srv := internal.NewServer(cfg.DBDSN, cfg)

	log.Println("Starting AssetFlow API server...")
	log.Printf("JWT Issuer: %s", cfg.JWTIssuer)
	log.Printf("JWT Audience: %s", cfg.JWTAudience)
	log.Printf("JWT Expiry: %v", cfg.JWTExpiry)
	log.Printf("Listening on %s", cfg.HTTPAddr)

	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, srv.Router))
}
