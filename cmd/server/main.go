package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dynfw/firewall-sync/internal/api"
	"github.com/dynfw/firewall-sync/internal/auth"
	"github.com/dynfw/firewall-sync/internal/config"
	"github.com/dynfw/firewall-sync/internal/firewall"
	"github.com/dynfw/firewall-sync/internal/publicip"
	"github.com/dynfw/firewall-sync/internal/service"
	"github.com/dynfw/firewall-sync/internal/storage/sql"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create data directory if needed (for SQLite)
	if cfg.Database.Driver == "sqlite3" {
		dir := "data"
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
	}

	// Initialize storage
	store, err := sql.New(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	// Initialize firewall client (or file shim for testing)
	var ruleClient firewall.RuleClient
	if cfg.UseFileShim() {
		log.Printf("Using file shim for firewall API: %s", cfg.Firewall.FileShim)
		ruleClient = firewall.NewFileShim(cfg.Firewall.FileShim)
	} else {
		issuer := auth.NewClientCredentials(
			cfg.Auth.TokenURL(),
			cfg.Auth.ClientID,
			cfg.Auth.ClientSecret,
			cfg.Auth.Scope,
		)
		ruleClient = firewall.New(firewall.Target{
			BaseURL:        cfg.Firewall.BaseURL,
			SubscriptionID: cfg.Firewall.SubscriptionID,
			ResourceGroup:  cfg.Firewall.ResourceGroup,
			Provider:       cfg.Firewall.Provider,
			ResourceName:   cfg.Firewall.ResourceName,
			APIVersion:     cfg.Firewall.APIVersion,
		}, issuer)
	}

	// Initialize sync service
	syncService := service.NewSyncService(store, ruleClient, cfg.Sync.RecordTag)

	// Public IP discovery for the observer endpoint
	fetcher := publicip.New(cfg.Sync.PublicIP)

	// Create router
	router := api.NewRouter(store, syncService, fetcher, cfg.Server.TriggerKey, cfg.Sync.RecordTag)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting Firewall Allow-List Sync on http://%s", cfg.Server.Addr())
	log.Printf("Press Ctrl+C to stop")

	// Start server in goroutine
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
