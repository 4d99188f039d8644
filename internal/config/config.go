// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int

	// DBDriver is the database driver to use ("postgres" or "mysql").
	DBDriver string
	// DBConnectionString is the connection string for the database.
	DBConnectionString string
	// DBMaxOpenConnections is the maximum number of open connections to the database.
	DBMaxOpenConnections int
	// DBMaxIdleConnections is the maximum number of idle connections in the database pool.
	DBMaxIdleConnections int
	// DBConnMaxLifetime is the maximum amount of time a connection may be reused.
	DBConnMaxLifetime time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// DIDMethod is the DID method name used for generated identifiers
	// (e.g., "bio" produces did:bio:<id>).
	DIDMethod string

	// KeystoreDir is the directory holding the service keypair files.
	KeystoreDir string
	// KeystorePassphrase, when set, encrypts secret key files at rest.
	KeystorePassphrase string
	// SigningAlgorithm selects the signature scheme for new keys
	// ("ml-dsa-87" or "ed25519").
	SigningAlgorithm string

	// ContentBucketURL is the gocloud.dev/blob URL for the content store
	// (e.g., "file:///var/lib/bio-did-seq/content", "mem://", "s3://bucket").
	ContentBucketURL string
	// ContentMaxBytes is the maximum accepted payload size for uploads.
	ContentMaxBytes int64
	// ContentCallTimeout bounds every content store call.
	ContentCallTimeout time.Duration

	// CapabilityDefaultTTL is the expiry applied to issued tokens when the
	// request carries none. Zero means tokens without expiry.
	CapabilityDefaultTTL time.Duration

	// RevocationRetroactive controls whether revoking a key invalidates
	// tokens signed while the key was still active. Default false: a token
	// correctly signed by a then-active key stays valid unless the token
	// itself is revoked.
	RevocationRetroactive bool

	// RateLimitEnabled indicates whether rate limiting is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per client.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for rate limiting.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Database configuration
		DBDriver: env.GetString("DB_DRIVER", "mysql"),
		DBConnectionString: env.GetString(
			"DB_CONNECTION_STRING",
			"bio:bio@tcp(localhost:3306)/bio_did_seq?parseTime=true",
		),
		DBMaxOpenConnections: env.GetInt("DB_MAX_OPEN_CONNECTIONS", 25),
		DBMaxIdleConnections: env.GetInt("DB_MAX_IDLE_CONNECTIONS", 5),
		DBConnMaxLifetime:    env.GetDuration("DB_CONN_MAX_LIFETIME", 5, time.Minute),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Identity
		DIDMethod:          env.GetString("DID_METHOD", "bio"),
		KeystoreDir:        env.GetString("KEYSTORE_DIR", "keys"),
		KeystorePassphrase: env.GetString("KEYSTORE_PASSPHRASE", ""),
		SigningAlgorithm:   env.GetString("SIGNING_ALGORITHM", "ml-dsa-87"),

		// Content store
		ContentBucketURL:   env.GetString("CONTENT_BUCKET_URL", "file://./content"),
		ContentMaxBytes:    env.GetInt64("CONTENT_MAX_BYTES", 256<<20),
		ContentCallTimeout: env.GetDuration("CONTENT_CALL_TIMEOUT_SECONDS", 30, time.Second),

		// Capabilities
		CapabilityDefaultTTL:  env.GetDuration("CAPABILITY_DEFAULT_TTL_SECONDS", 86400, time.Second),
		RevocationRetroactive: env.GetBool("REVOCATION_RETROACTIVE", false),

		// Rate Limiting
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 10.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 20),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "bio_did_seq"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
