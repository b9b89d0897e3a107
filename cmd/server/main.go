package main

import (
	"context"                       // context package is needed for store and Redis startup
	"taskboard/internal/api"        // Custom package for API handlers
	"taskboard/internal/config"     // Custom package for configuration
	"taskboard/internal/repository" // Store backends
	"taskboard/internal/service"    // Business services
	"taskboard/internal/utils"      // Cache and logger helpers
	"time"                          // Startup timeout

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	utils.SetupLogger(cfg.LogFormat, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Connect to the configured store
	stores, err := repository.Open(ctx, cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	defer stores.Close(context.Background())

	// Setup Redis cache when an address is configured
	var cache utils.Cache = utils.NoopCache{}
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(ctx).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		cache = utils.NewRedisCache(redisClient)
	} else {
		logrus.Info("REDIS_ADDR not set, caching disabled")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := api.NewRouter(api.Services{
		Auth:  service.NewAuthService(stores.Users, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost),
		Tasks: service.NewTaskService(stores.Tasks, cache, cfg.CacheTTL),
		Admin: service.NewAdminService(stores.Users, stores.Tasks, cache, cfg.CacheTTL),
	})
	if err != nil {
		logrus.Fatalf("failed to set up router: %v", err)
	}

	logrus.WithField("port", cfg.AppPort).Info("Server running") // Log server start

	// Start the server on port cfg.AppPort
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
