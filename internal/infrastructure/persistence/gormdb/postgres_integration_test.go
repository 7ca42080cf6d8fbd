//go:build integration

package gormdb

import (
	"context"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	domainerrors "github.com/rafabene/usuarios-backend/internal/domain/errors"
	"github.com/rafabene/usuarios-backend/internal/domain/repositories"
	"github.com/rafabene/usuarios-backend/internal/infrastructure/config"
	"github.com/rafabene/usuarios-backend/internal/infrastructure/logging"
)

func newPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("usuarios_test"),
		tcpostgres.WithUsername("usuarios"),
		tcpostgres.WithPassword("usuarios"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	parsed, err := url.Parse(connStr)
	require.NoError(t, err)
	port, err := strconv.Atoi(parsed.Port())
	require.NoError(t, err)
	password, _ := parsed.User.Password()

	cfg := &config.DatabaseConfig{
		Driver:      config.DriverPostgres,
		Host:        parsed.Hostname(),
		Port:        port,
		User:        parsed.User.Username(),
		Password:    password,
		DBName:      "usuarios_test",
		SSLMode:     "disable",
		MaxConns:    5,
		MinConns:    1,
		MaxIdleTime: 60,
		AutoMigrate: true,
		LogLevel:    "silent",
	}

	db, err := NewDatabaseConnection(cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	return db
}

func TestPostgres_UserRepository(t *testing.T) {
	repo := NewUserRepository(newPostgresDB(t))
	ctx := context.Background()

	ana := newUser("Ana", "ana@example.com", time.Time{})
	require.NoError(t, repo.Create(ctx, ana))

	err := repo.Create(ctx, newUser("Ana 2", "ana@example.com", time.Time{}))
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyExists)

	// LIKE no postgres diferencia maiúsculas
	users, err := repo.List(ctx, repositories.UserFilters{Status: true, Name: strPtr("ana")})
	require.NoError(t, err)
	assert.Empty(t, users)

	users, err = repo.List(ctx, repositories.UserFilters{Status: true, Name: strPtr("An")})
	require.NoError(t, err)
	assert.Len(t, users, 1)

	require.NoError(t, repo.SoftDelete(ctx, ana.ID))
	found, err := repo.FindByID(ctx, ana.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}
