package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Service names, one per binary under cmd/
const (
	ServiceJobs          = "jobs"
	ServiceApplications  = "applications"
	ServiceCV            = "cv"
	ServiceNotifications = "notifications"
)

// defaultPorts are the ports each service listens on when PORT/SERVER_PORT are unset
var defaultPorts = map[string]int{
	ServiceCV:            5001,
	ServiceJobs:          5002,
	ServiceApplications:  5005,
	ServiceNotifications: 5008,
}

// Config represents the complete application configuration
type Config struct {
	Service       string
	Server        ServerConfig
	Database      DatabaseConfig
	Cognito       CognitoConfig
	Auth          AuthConfig
	Storage       StorageConfig
	CORS          CORSConfig
	Observability ObservabilityConfig
	Environment   string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
}

// DatabaseConfig holds PostgreSQL database configuration.
// When ConnectionString (from DATABASE_URL) is set, it takes precedence over individual fields.
type DatabaseConfig struct {
	ConnectionString string
	Host             string
	Port             int
	User             string
	Password         string
	Database         string
	SSLMode          string
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  time.Duration
	InitSchema       bool
}

// CognitoConfig holds the identity provider configuration
type CognitoConfig struct {
	Region     string
	UserPoolID string
	ClientID   string
	// JWKSURL and Issuer override the values derived from Region and UserPoolID
	JWKSURL  string
	Issuer   string
	CacheTTL time.Duration
	// RoleAttribute is the user pool custom attribute holding the caller's role
	RoleAttribute string
}

// AuthConfig holds settings of the authentication and authorization gate
type AuthConfig struct {
	PrivilegedRole    string
	VerifyTimeout     time.Duration
	RoleLookupTimeout time.Duration
}

// StorageConfig holds CV file storage configuration
type StorageConfig struct {
	UploadDir     string
	MaxUploadSize int64
}

// CORSConfig holds allowed cross-origin settings
type CORSConfig struct {
	AllowedOrigins []string
	MaxAge         int
}

// ObservabilityConfig holds logging configuration
type ObservabilityConfig struct {
	LogLevel  string
	LogFormat string // json or text
}

// New creates a new Config instance for the named service by loading environment variables
func New(ctx context.Context, service string) (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		Service:     service,
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getPort(service),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			RequestTimeout:  getEnvAsDuration("SERVER_REQUEST_TIMEOUT", 60*time.Second),
		},
		Database: loadDatabaseConfig(),
		Cognito: CognitoConfig{
			Region:        getEnv("COGNITO_REGION", "us-east-1"),
			UserPoolID:    getEnv("COGNITO_USER_POOL_ID", ""),
			ClientID:      getEnv("COGNITO_CLIENT_ID", ""),
			JWKSURL:       getEnv("COGNITO_JWKS_URL", ""),
			Issuer:        getEnv("COGNITO_ISSUER", ""),
			CacheTTL:      getEnvAsDuration("COGNITO_JWKS_CACHE_TTL", time.Hour),
			RoleAttribute: getEnv("COGNITO_ROLE_ATTRIBUTE", "custom:role"),
		},
		Auth: AuthConfig{
			PrivilegedRole:    getEnv("AUTH_PRIVILEGED_ROLE", "recruiter"),
			VerifyTimeout:     getEnvAsDuration("AUTH_VERIFY_TIMEOUT", 5*time.Second),
			RoleLookupTimeout: getEnvAsDuration("AUTH_ROLE_LOOKUP_TIMEOUT", 3*time.Second),
		},
		Storage: StorageConfig{
			UploadDir:     getEnv("CV_UPLOAD_DIR", "uploads"),
			MaxUploadSize: int64(getEnvAsInt("CV_MAX_UPLOAD_BYTES", 10<<20)),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
			MaxAge:         getEnvAsInt("CORS_MAX_AGE", 300),
		},
		Observability: ObservabilityConfig{
			LogLevel:  getEnv("LOG_LEVEL", "info"),
			LogFormat: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if all required configuration fields are set
func (c *Config) Validate() error {
	if _, ok := defaultPorts[c.Service]; !ok {
		return fmt.Errorf("unknown service %q", c.Service)
	}

	if c.Database.ConnectionString == "" && c.Database.Host == "" {
		return fmt.Errorf("database configuration required: set DATABASE_URL or DB_HOST")
	}
	if c.Database.ConnectionString == "" {
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
	}

	// The jobs service gates writes behind the identity provider
	if c.IsProduction() && c.Service == ServiceJobs {
		if c.Cognito.UserPoolID == "" {
			return fmt.Errorf("cognito user pool ID is required in production")
		}
		if c.Cognito.ClientID == "" {
			return fmt.Errorf("cognito client ID is required in production")
		}
	}

	if c.Auth.PrivilegedRole == "" {
		return fmt.Errorf("privileged role is required")
	}
	if c.Auth.VerifyTimeout <= 0 || c.Auth.RoleLookupTimeout <= 0 {
		return fmt.Errorf("auth timeouts must be positive")
	}

	if c.Service == ServiceCV && c.Storage.UploadDir == "" {
		return fmt.Errorf("CV upload directory is required")
	}

	if c.Observability.LogLevel == "" {
		return fmt.Errorf("log level is required")
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// AuthEnabled reports whether the identity provider is configured
func (c *CognitoConfig) AuthEnabled() bool {
	return c.UserPoolID != "" && c.ClientID != ""
}

// IssuerURL returns the expected token issuer
func (c *CognitoConfig) IssuerURL() string {
	if c.Issuer != "" {
		return c.Issuer
	}
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", c.Region, c.UserPoolID)
}

// KeySetURL returns the JWKS endpoint used to verify token signatures
func (c *CognitoConfig) KeySetURL() string {
	if c.JWKSURL != "" {
		return c.JWKSURL
	}
	return c.IssuerURL() + "/.well-known/jwks.json"
}

// DSN returns the PostgreSQL connection string.
// Uses ConnectionString (from DATABASE_URL) when set; otherwise builds from individual fields.
func (c *DatabaseConfig) DSN() string {
	if c.ConnectionString != "" {
		return c.ConnectionString
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// LogString returns a safe string for logging (no password)
func (c *DatabaseConfig) LogString() string {
	if c.ConnectionString != "" {
		u, err := url.Parse(c.ConnectionString)
		if err == nil {
			port := u.Port()
			if port == "" {
				port = "5432"
			}
			return fmt.Sprintf("host=%s port=%s database=%s", u.Hostname(), port, strings.TrimPrefix(u.Path, "/"))
		}
		return "host=<from DATABASE_URL>"
	}
	return fmt.Sprintf("host=%s port=%d database=%s", c.Host, c.Port, c.Database)
}

func loadDatabaseConfig() DatabaseConfig {
	cfg := DatabaseConfig{
		MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		InitSchema:      getEnvAsBool("DB_INIT_SCHEMA", false),
	}
	if dbURL := getEnv("DATABASE_URL", ""); dbURL != "" {
		cfg.ConnectionString = dbURL
		return cfg
	}
	cfg.Host = getEnv("DB_HOST", "localhost")
	cfg.Port = getEnvAsInt("DB_PORT", 5432)
	cfg.User = getEnv("DB_USER", "dev")
	cfg.Password = getEnv("DB_PASSWORD", "")
	cfg.Database = getEnv("DB_NAME", "recruitment")
	cfg.SSLMode = getEnv("DB_SSLMODE", "disable")
	return cfg
}

// Address returns the HTTP server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Helper functions

// getPort returns the server port from PORT or SERVER_PORT, falling back to the service default
func getPort(service string) int {
	for _, key := range []string{"PORT", "SERVER_PORT"} {
		if value := os.Getenv(key); value != "" {
			if p, err := strconv.Atoi(value); err == nil {
				return p
			}
		}
	}
	if p, ok := defaultPorts[service]; ok {
		return p
	}
	return 8080
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated variable, dropping empty entries
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
