package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "DB_DRIVER", "TOKEN_TTL", "BCRYPT_COST", "CACHE_TTL", "REDIS_ADDR", "IS_PROD"} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, DriverMySQL, cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 60*time.Second, cfg.CacheTTL)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.IsProd)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverSQLite)
	t.Setenv("SQLITE_PATH", "/tmp/tasks.db")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IS_PROD", "true")

	cfg := LoadConfig()

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "/tmp/tasks.db", cfg.SQLitePath)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.IsProd)
}

func TestLoadConfig_BadNumbersFallBack(t *testing.T) {
	t.Setenv("BCRYPT_COST", "lots")
	t.Setenv("TOKEN_TTL", "-5m")

	cfg := LoadConfig()

	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"missing secret", Config{DBDriver: DriverSQLite, SQLitePath: "x.db"}, true},
		{"sqlite ok", Config{JWTSecret: "s", DBDriver: DriverSQLite, SQLitePath: "x.db"}, false},
		{"mysql without name", Config{JWTSecret: "s", DBDriver: DriverMySQL}, true},
		{"mysql ok", Config{JWTSecret: "s", DBDriver: DriverMySQL, DBName: "tasks"}, false},
		{"mongo without uri", Config{JWTSecret: "s", DBDriver: DriverMongo}, true},
		{"mongo ok", Config{JWTSecret: "s", DBDriver: DriverMongo, MongoURI: "mongodb://localhost"}, false},
		{"unknown driver", Config{JWTSecret: "s", DBDriver: "postgres"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	cfg := Config{DBUser: "app", DBPassword: "pw", DBHost: "db", DBPort: "3306", DBName: "tasks"}
	assert.Equal(t, "app:pw@tcp(db:3306)/tasks?parseTime=true&charset=utf8mb4&clientFoundRows=true", cfg.MySQLDSN())
}
