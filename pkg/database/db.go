package database

import (
	"context"
	"database/sql"
	"time"

	"artwork-dedup/internal/constants"
	"artwork-dedup/pkg/config"
	errs "artwork-dedup/pkg/errors"

	_ "github.com/go-sql-driver/mysql"
)

// DB wraps the sql connection pool with application timeouts.
type DB struct {
	conn         *sql.DB
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func New(databaseURL string) (*DB, error) {
	conn, err := sql.Open("mysql", databaseURL)
	if err != nil {
		return nil, errs.NewStorage("database.New", "failed to open connection", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(10)
	conn.SetConnMaxLifetime(10 * time.Minute)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	if err := conn.Ping(); err != nil {
		return nil, errs.NewStorage("database.New", "failed to ping database", err)
	}

	return &DB{
		conn:         conn,
		readTimeout:  constants.DBReadTimeoutDefault,
		writeTimeout: constants.DBWriteTimeoutDefault,
	}, nil
}

// NewWithConfig creates a database connection with custom pool settings.
func NewWithConfig(databaseURL string, cfg *config.Config) (*DB, error) {
	conn, err := sql.Open("mysql", databaseURL)
	if err != nil {
		return nil, errs.NewStorage("database.NewWithConfig", "failed to open connection", err)
	}

	conn.SetMaxOpenConns(cfg.DBMaxOpenConns)
	conn.SetMaxIdleConns(cfg.DBMaxIdleConns)
	conn.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetime) * time.Minute)
	conn.SetConnMaxIdleTime(time.Duration(cfg.DBConnMaxIdleTime) * time.Minute)

	if err := conn.Ping(); err != nil {
		return nil, errs.NewStorage("database.NewWithConfig", "failed to ping database", err)
	}

	rt := cfg.DBReadTimeout
	if rt == 0 {
		rt = constants.DBReadTimeoutDefault
	}
	wt := cfg.DBWriteTimeout
	if wt == 0 {
		wt = constants.DBWriteTimeoutDefault
	}

	return &DB{conn: conn, readTimeout: rt, writeTimeout: wt}, nil
}

// ReadContext derives a context bounded by the configured read timeout.
func (db *DB) ReadContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, db.readTimeout)
}

// WriteContext derives a context bounded by the configured write timeout.
func (db *DB) WriteContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, db.writeTimeout)
}

// Conn exposes the underlying pool for query execution.
func (db *DB) Conn() *sql.DB { return db.conn }

func (db *DB) Ping() error { return db.conn.Ping() }

func (db *DB) Close() error { return db.conn.Close() }
