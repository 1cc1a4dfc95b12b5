package config

import (
	"fmt"

	"github.com/caarlos0/env/v9"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Firewall FirewallConfig
	Auth     AuthConfig
	Sync     SyncConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host       string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port       int    `env:"SERVER_PORT" envDefault:"8080"`
	TriggerKey string `env:"TRIGGER_API_KEY"`
}

// DatabaseConfig holds record-store configuration.
type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER" envDefault:"sqlite3"`
	DSN    string `env:"DB_DSN" envDefault:"data/firewall-sync.db"`
}

// FirewallConfig identifies the protected resource on the management API.
type FirewallConfig struct {
	BaseURL        string `env:"FW_MANAGEMENT_URL" envDefault:"https://management.azure.com"`
	SubscriptionID string `env:"FW_SUBSCRIPTION_ID"`
	ResourceGroup  string `env:"FW_RESOURCE_GROUP"`
	Provider       string `env:"FW_RESOURCE_PROVIDER" envDefault:"Microsoft.Storage/storageAccounts"`
	ResourceName   string `env:"FW_RESOURCE_NAME"`
	APIVersion     string `env:"FW_API_VERSION" envDefault:"2022-07-01"`
	FileShim       string `env:"FW_FILE_SHIM"` // Path to file for testing shim (disables real API)
}

// AuthConfig holds the service-principal credentials for the management API.
type AuthConfig struct {
	TenantID     string `env:"AUTH_TENANT_ID"`
	ClientID     string `env:"AUTH_CLIENT_ID"`
	ClientSecret string `env:"AUTH_CLIENT_SECRET"`
	AuthorityURL string `env:"AUTH_AUTHORITY_URL" envDefault:"https://login.microsoftonline.com"`
	Scope        string `env:"AUTH_SCOPE" envDefault:"https://management.azure.com/.default"`
}

// SyncConfig holds sync behavior configuration.
type SyncConfig struct {
	RecordTag string `env:"SYNC_RECORD_TAG" envDefault:"FirewallUpdate"`
	PublicIP  string `env:"PUBLIC_IP_ENDPOINT"` // Override for the public-IP echo service
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(&cfg.Server); err != nil {
		return nil, fmt.Errorf("parsing server config: %w", err)
	}
	if err := env.Parse(&cfg.Database); err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	if err := env.Parse(&cfg.Firewall); err != nil {
		return nil, fmt.Errorf("parsing firewall config: %w", err)
	}
	if err := env.Parse(&cfg.Auth); err != nil {
		return nil, fmt.Errorf("parsing auth config: %w", err)
	}
	if err := env.Parse(&cfg.Sync); err != nil {
		return nil, fmt.Errorf("parsing sync config: %w", err)
	}

	return cfg, nil
}

// Addr returns the server address in host:port format.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TokenURL returns the tenant-scoped token endpoint.
func (c *AuthConfig) TokenURL() string {
	return fmt.Sprintf("%s/%s/oauth2/v2.0/token", c.AuthorityURL, c.TenantID)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.TriggerKey == "" {
		return fmt.Errorf("TRIGGER_API_KEY is required")
	}

	// If using the file shim, management API coordinates are not required
	if c.Firewall.FileShim == "" {
		if c.Firewall.SubscriptionID == "" {
			return fmt.Errorf("FW_SUBSCRIPTION_ID is required (or set FW_FILE_SHIM for testing)")
		}
		if c.Firewall.ResourceGroup == "" {
			return fmt.Errorf("FW_RESOURCE_GROUP is required (or set FW_FILE_SHIM for testing)")
		}
		if c.Firewall.ResourceName == "" {
			return fmt.Errorf("FW_RESOURCE_NAME is required (or set FW_FILE_SHIM for testing)")
		}
		if c.Auth.TenantID == "" {
			return fmt.Errorf("AUTH_TENANT_ID is required (or set FW_FILE_SHIM for testing)")
		}
		if c.Auth.ClientID == "" {
			return fmt.Errorf("AUTH_CLIENT_ID is required (or set FW_FILE_SHIM for testing)")
		}
		if c.Auth.ClientSecret == "" {
			return fmt.Errorf("AUTH_CLIENT_SECRET is required (or set FW_FILE_SHIM for testing)")
		}
	}

	return nil
}

// UseFileShim returns true if the file shim should be used instead of the real API.
func (c *Config) UseFileShim() bool {
	return c.Firewall.FileShim != ""
}
