package config

import (
	"errors"  // For config validation errors
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// Supported store backends
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

// Config holds the application configuration
type Config struct {
	AppPort    string        // Application port
	DBDriver   string        // Store backend: mysql, sqlite or mongo
	DBUser     string        // Database user
	DBPassword string        // Database password
	DBHost     string        // Database host
	DBPort     string        // Database port
	DBName     string        // Database name
	SQLitePath string        // SQLite database file
	MongoURI   string        // MongoDB connection string
	MongoDB    string        // MongoDB database name
	JWTSecret  string        // JWT secret key
	TokenTTL   time.Duration // Lifetime of issued tokens
	BcryptCost int           // Bcrypt work factor
	RedisAddr  string        // Redis server address, empty disables caching
	RedisPass  string        // Redis password
	RedisDB    int           // Redis database number
	CacheTTL   time.Duration // Lifetime of cached task lists
	LogLevel   string        // Logrus level name
	LogFormat  string        // text or json
	IsProd     bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:    getEnv("APP_PORT", "8080"),               // Application port
		DBDriver:   getEnv("DB_DRIVER", DriverMySQL),         // Store backend
		DBUser:     os.Getenv("DB_USER"),                     // Database user
		DBPassword: os.Getenv("DB_PASSWORD"),                 // Database password
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),           // Database host
		DBPort:     getEnv("DB_PORT", "3306"),                // Database port
		DBName:     os.Getenv("DB_NAME"),                     // Database name
		SQLitePath: getEnv("SQLITE_PATH", "taskboard.db"),    // SQLite database file
		MongoURI:   os.Getenv("MONGO_URI"),                   // MongoDB connection string
		MongoDB:    getEnv("MONGO_DB", "taskboard"),          // MongoDB database name
		JWTSecret:  os.Getenv("JWT_SECRET"),                  // JWT secret key
		TokenTTL:   getDuration("TOKEN_TTL", 24*time.Hour),   // Token lifetime
		BcryptCost: getInt("BCRYPT_COST", 10),                // Bcrypt work factor
		RedisAddr:  os.Getenv("REDIS_ADDR"),                  // Redis server address
		RedisPass:  os.Getenv("REDIS_PASS"),                  // Redis password
		RedisDB:    getInt("REDIS_DB", 0),                    // Redis database number
		CacheTTL:   getDuration("CACHE_TTL", 60*time.Second), // Cache lifetime
		LogLevel:   getEnv("LOG_LEVEL", "info"),              // Log level
		LogFormat:  getEnv("LOG_FORMAT", "text"),             // Log format
		IsProd:     os.Getenv("IS_PROD") == "true",           // Is production environment
	}
}

// Validate reports settings the server cannot start without
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.DBDriver {
	case DriverMySQL:
		if c.DBName == "" {
			return errors.New("DB_NAME is required for the mysql driver")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite driver")
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required for the mongo driver")
		}
	default:
		return errors.New("DB_DRIVER must be one of mysql, sqlite, mongo")
	}
	return nil
}

// MySQLDSN builds the Data Source Name for the MySQL driver.
// clientFoundRows makes an update that changes nothing still report its matched row.
func (c *Config) MySQLDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&charset=utf8mb4&clientFoundRows=true"
}

// getEnv returns the variable or fallback when unset
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getInt parses an integer variable, keeping fallback on absence or bad input
func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

// getDuration parses a Go duration variable such as 24h
func getDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}
