package config

import (
	"fmt"  // Error wrapping
	"time" // Durations

	"github.com/caarlos0/env/v11" // Struct-tag based env parsing
	"github.com/joho/godotenv"    // For loading .env files
)

// Supported database drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the application configuration
type Config struct {
	AppPort            string        `env:"APP_PORT" envDefault:"8080"`                                       // Application port
	DBDriver           string        `env:"DB_DRIVER" envDefault:"mysql"`                                     // mysql, postgres or sqlite
	DBUser             string        `env:"DB_USER"`                                                          // Database user
	DBPassword         string        `env:"DB_PASSWORD"`                                                      // Database password
	DBHost             string        `env:"DB_HOST" envDefault:"127.0.0.1"`                                   // Database host
	DBPort             string        `env:"DB_PORT"`                                                          // Database port, driver default when empty
	DBName             string        `env:"DB_NAME" envDefault:"game_api"`                                    // Database name
	DBPath             string        `env:"DB_PATH" envDefault:"game_api.db"`                                 // SQLite file path
	JWTSecret          string        `env:"JWT_SECRET,required,notEmpty"`                                     // JWT secret key
	JWTIssuer          string        `env:"JWT_ISSUER"`                                                       // Optional iss claim
	JWTAudience        string        `env:"JWT_AUDIENCE"`                                                     // Optional aud claim
	JWTExpiryMinutes   int           `env:"JWT_EXPIRY_MINUTES" envDefault:"60"`                               // Token lifetime
	RedisAddr          string        `env:"REDIS_ADDR"`                                                       // Redis server address, empty disables redis
	RedisPass          string        `env:"REDIS_PASS"`                                                       // Redis password
	RedisDB            int           `env:"REDIS_DB" envDefault:"0"`                                          // Redis database number
	RedisPoolSize      int           `env:"REDIS_POOL_SIZE" envDefault:"10"`                                  // Redis connection pool size
	ScoreLockTTL       time.Duration `env:"SCORE_LOCK_TTL" envDefault:"5s"`                                   // Expiry of a score submission lock
	UnownedItemsShared bool          `env:"UNOWNED_ITEMS_SHARED" envDefault:"false"`                          // Let any user touch unowned items
	CORSOrigins        []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"` // Allowed dashboard origins
	IsProd             bool          `env:"IS_PROD" envDefault:"false"`                                       // Is production environment
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`                                      // logrus level
	SeedData           bool          `env:"SEED_DATA" envDefault:"false"`                                     // Load demo data on migrate
}

// LoadConfig loads configuration from the environment, reading .env first if present
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.JWTExpiryMinutes <= 0 {
		cfg.JWTExpiryMinutes = 60
	}
	switch cfg.DBDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}

// TokenTTL returns the session token lifetime
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpiryMinutes) * time.Minute
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	switch c.DBDriver {
	case DriverPostgres:
		port := c.DBPort
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, port)
	case DriverSQLite:
		return c.DBPath + "?_foreign_keys=on"
	default:
		port := c.DBPort
		if port == "" {
			port = "3306"
		}
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + port + ")/" + c.DBName + "?parseTime=true&loc=UTC"
	}
}
