package repository

import (
	"context"                                  // Startup deadline for the store
	"fmt"                                      // Error wrapping
	"taskboard/internal/config"                // Application configuration
	"taskboard/internal/db"                    // SQL connection and migrations
	"taskboard/internal/domain"                // Repository interfaces
	"taskboard/internal/repository/mongostore" // Document backend
	"taskboard/internal/repository/sqlstore"   // GORM backend

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Stores holds the repositories of the configured backend
type Stores struct {
	Users domain.UserRepository
	Tasks domain.TaskRepository
	close func(ctx context.Context) error
}

// Close releases the backend connection
func (s *Stores) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects to the backend named by cfg.DBDriver and prepares its schema
func Open(ctx context.Context, cfg *config.Config) (*Stores, error) {
	if cfg.DBDriver == config.DriverMongo {
		store, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = store.Close(ctx)
			return nil, err
		}
		logrus.WithField("database", cfg.MongoDB).Info("Connected to MongoDB")
		return &Stores{Users: store.Users(), Tasks: store.Tasks(), close: store.Close}, nil
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(gdb); err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	logrus.WithField("driver", cfg.DBDriver).Info("Connected to database")
	return &Stores{
		Users: sqlstore.NewUserRepository(gdb),
		Tasks: sqlstore.NewTaskRepository(gdb),
		close: func(context.Context) error { return sqlDB.Close() },
	}, nil
}
