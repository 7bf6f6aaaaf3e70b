package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aidar/taskhive/internal/app"
	"github.com/aidar/taskhive/internal/config"
)

const (
	dbName     = "taskhive_test"
	dbUser     = "test_user"
	dbPassword = "test_password"
)

// Env поднимает PostgreSQL с примененной схемой и приложение поверх него
type Env struct {
	Server *httptest.Server
	DB     *pgxpool.Pool
	ctx    context.Context
}

// NewEnv запускает контейнер, приложение и регистрирует их остановку через t.Cleanup
func NewEnv(t *testing.T) *Env {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()

	migrations := filepath.Join(projectRoot(t), "migrations")

	// Схема применяется скриптом инициализации контейнера
	pg, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.WithInitScripts(filepath.Join(migrations, "000001_init_schema.up.sql")),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	host, err := pg.Host(ctx)
	require.NoError(t, err)
	port, err := pg.MappedPort(ctx, "5432")
	require.NoError(t, err)

	application, err := app.New(&config.Config{
		Server:  config.ServerConfig{Host: "127.0.0.1", Port: "0"},
		Storage: config.StorageConfig{Driver: config.StorageDriverPostgres},
		Database: config.DatabaseConfig{
			Host:     host,
			Port:     port.Port(),
			User:     dbUser,
			Password: dbPassword,
			Name:     dbName,
			SSLMode:  "disable",
			MaxConns: 10,
			MinConns: 1,
		},
		JWT:  config.JWTConfig{Secret: "integration-secret", ExpirationHours: 1},
		Auth: config.AuthConfig{BcryptCost: 4},
	})
	require.NoError(t, err)
	require.NoError(t, application.Initialize(ctx), "Failed to initialize application")

	server := httptest.NewServer(application.Handler())

	env := &Env{Server: server, DB: application.Pool(), ctx: ctx}

	t.Cleanup(func() {
		server.Close()
		// Down-миграция должна проходить на заполненной схеме
		env.exec(t, filepath.Join(migrations, "000001_init_schema.down.sql"))

		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		_ = application.Shutdown(shutdownCtx)
	})

	return env
}

func (e *Env) exec(t *testing.T, path string) {
	t.Helper()

	script, err := os.ReadFile(path)
	require.NoError(t, err)

	// Без аргументов pgx использует простой протокол, поэтому скрипт может содержать несколько команд
	_, err = e.DB.Exec(e.ctx, string(script))
	require.NoError(t, err, "Failed to run %s", filepath.Base(path))
}

// Count выполняет SELECT COUNT(*) запрос
func (e *Env) Count(t *testing.T, query string, args ...interface{}) int {
	t.Helper()

	var n int
	require.NoError(t, e.DB.QueryRow(e.ctx, query, args...).Scan(&n))
	return n
}

// Do отправляет JSON запрос и декодирует JSON ответ в out (если out != nil)
func (e *Env) Do(t *testing.T, method, path, token string, body, out interface{}) int {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}

	req, err := http.NewRequest(method, e.Server.URL+path, &payload)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.Server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// projectRoot поднимается по директориям до go.mod
func projectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("go.mod not found")
		}
		dir = parent
	}
}
