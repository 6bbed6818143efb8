// Package database provides the MySQL connection and the data services
// built on top of it. Schema management is handled by embedded
// sql-migrate migrations applied on connect.
package database

import (
	"context"
	"embed"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	migrate "github.com/rubenv/sql-migrate"

	_ "github.com/go-sql-driver/mysql"

	"github.com/voidswithin/cipher/pkg/logger"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Database manages the MySQL connection
type Database struct {
	db          *sqlx.DB
	mu          sync.RWMutex
	isConnected bool
}

var (
	database *Database
	dbOnce   sync.Once
)

// Init initializes the global database instance
func Init(dsn string) (*Database, error) {
	var err error
	dbOnce.Do(func() {
		database = &Database{}
		err = database.Connect(dsn)
	})
	return database, err
}

// Get returns the global database instance
func Get() *Database {
	return database
}

// Connect opens the MySQL pool, verifies it and applies pending migrations
func (d *Database) Connect(dsn string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.isConnected {
		return nil
	}

	logger.System("Connecting to MySQL...", "DB")

	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return errors.Wrap(err, "opening mysql pool")
	}

	// Same pool size the original deployment ran with
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		logger.Critical("Failed to verify MySQL connection.", "DB")
		db.Close()
		return errors.Wrap(err, "pinging mysql")
	}

	n, err := migrate.Exec(db.DB, "mysql", &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFS,
		Root:       "migrations",
	}, migrate.Up)
	if err != nil {
		db.Close()
		return errors.Wrap(err, "applying migrations")
	}
	if n > 0 {
		logger.Info(fmt.Sprintf("Applied %d schema migrations", n), "DB")
	}

	d.db = db
	d.isConnected = true

	logger.Success("Connected to MySQL.", "DB")
	return nil
}

// Close closes the connection pool
func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}
	d.isConnected = false
	logger.Warn("Database connection closed", "DB")
	return d.db.Close()
}

// Ping measures the database response time
func (d *Database) Ping() (time.Duration, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.isConnected || d.db == nil {
		return 0, errors.New("not connected to database")
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := d.db.PingContext(ctx)
	return time.Since(start), err
}

// GetStatus returns the database connection status
func (d *Database) GetStatus() (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.db == nil {
		return "Disconnected", false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.db.PingContext(ctx); err != nil {
		return "Disconnected", false
	}
	return "Online", true
}

// DB returns the underlying sqlx pool
func (d *Database) DB() *sqlx.DB {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.db
}
