// Package integration runs the sale and stock flows end to end against a
// PostgreSQL container started with testcontainers.
package integration

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/jewelry/backend/internal/infrastructure/config"
	"github.com/jewelry/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB represents a migrated test database
type TestDB struct {
	DB        *gorm.DB
	SqlDB     *sql.DB
	Container testcontainers.Container
	DSN       string
}

// NewTestDB starts a fresh PostgreSQL container and applies the embedded
// migrations. The container is terminated on test cleanup.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("integration tests need docker; skipped in -short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("jewelry_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("admin123"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	db, sqlDB := connectToDatabase(t, dsn)
	runMigrations(t, dsn)

	return &TestDB{DB: db, SqlDB: sqlDB, Container: container, DSN: dsn}
}

// CleanTables empties every application table, keeping the schema version
func (tdb *TestDB) CleanTables(t *testing.T) {
	t.Helper()

	var tables []string
	err := tdb.DB.Raw(`
		SELECT tablename FROM pg_tables
		WHERE schemaname = 'public'
		AND tablename != 'schema_migrations'
	`).Scan(&tables).Error
	require.NoError(t, err, "Failed to list tables")

	for _, table := range tables {
		require.NoError(t, tdb.DB.Exec("TRUNCATE TABLE "+table+" CASCADE").Error, table)
	}
}

func connectToDatabase(t *testing.T, dsn string) (*gorm.DB, *sql.DB) {
	t.Helper()

	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), gormConfig)
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := db.DB()
	require.NoError(t, err, "Failed to get underlying SQL DB")
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db, sqlDB
}

// runMigrations applies the embedded postgres migrations over a dedicated
// connection, since closing the migrator closes its connection
func runMigrations(t *testing.T, dsn string) {
	t.Helper()

	conn, err := sql.Open("postgres", dsn)
	require.NoError(t, err)

	m, err := migration.New(conn, config.DriverPostgres, zap.NewNop())
	require.NoError(t, err, "Failed to create migrator")
	defer func() { _ = m.Close() }()

	require.NoError(t, m.Up(), "Failed to run migrations")
}
