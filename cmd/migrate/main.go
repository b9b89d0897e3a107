package main

import (
	"context"                       // Store operations
	"flag"                          // Command line flags
	"taskboard/internal/config"     // Custom import path (Config)
	"taskboard/internal/domain"     // Roles
	"taskboard/internal/repository" // Custom import path (Stores)
	"taskboard/internal/service"    // Admin service
	"taskboard/internal/utils"      // Logger setup
	"time"                          // Timeout

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for migration
func main() {
	promote := flag.String("promote", "", "email of a user to grant the admin role")
	flag.Parse()

	cfg := config.LoadConfig() // Load configuration
	utils.SetupLogger(cfg.LogFormat, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// Opening the store migrates the SQL schema or creates the Mongo indexes
	stores, err := repository.Open(ctx, cfg)
	if err != nil {
		logrus.Fatalf("failed to prepare store: %v", err)
	}
	defer stores.Close(context.Background())

	if *promote == "" {
		return
	}
	admin := service.NewAdminService(stores.Users, stores.Tasks, utils.NoopCache{}, cfg.CacheTTL)
	user, err := admin.SetRole(ctx, *promote, domain.RoleAdmin)
	if err != nil {
		logrus.Fatalf("failed to promote %s: %v", *promote, err)
	}
	logrus.WithField("user_id", user.ID).Info("User promoted to admin")
}
