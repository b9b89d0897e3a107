package service_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"taskboard/internal/db"
	"taskboard/internal/repository/sqlstore"
	"taskboard/internal/service"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

// memoryCache is an in-process stand-in for the Redis cache
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memoryCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	if b, ok := c.data[key]; ok {
		if err := json.Unmarshal(b, &n); err != nil {
			return 0, err
		}
	}
	n++
	b, err := json.Marshal(n)
	if err != nil {
		return 0, err
	}
	c.data[key] = b
	return n, nil
}

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

type testEnv struct {
	auth     *service.AuthService
	tasks    *service.TaskService
	admin    *service.AdminService
	users    *sqlstore.UserRepository
	taskRepo *sqlstore.TaskRepository
	cache    *memoryCache
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb, err := db.OpenDialector(sqlite.Open(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	users := sqlstore.NewUserRepository(gdb)
	tasks := sqlstore.NewTaskRepository(gdb)
	cache := newMemoryCache()
	return &testEnv{
		// Use cost 4 for fast tests.
		auth:     service.NewAuthService(users, testJWTSecret, time.Hour, 4),
		tasks:    service.NewTaskService(tasks, cache, time.Minute),
		admin:    service.NewAdminService(users, tasks, cache, time.Minute),
		users:    users,
		taskRepo: tasks,
		cache:    cache,
	}
}

// signup registers a user and returns its id
func (e *testEnv) signup(t *testing.T, email string) string {
	t.Helper()
	res, err := e.auth.Signup(context.Background(), "Test User", email, "secret123")
	require.NoError(t, err)
	return res.User.ID
}

func strPtr(s string) *string { return &s }
