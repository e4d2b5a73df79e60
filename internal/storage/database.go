package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"PhraseAudioService/internal/config"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// ErrNotConnected is returned when no connection to the store could be established.
var ErrNotConnected = errors.New("database not connected")

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open creates the connection pool for the configured driver and checks that it is reachable.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, dataSourceName(cfg))
	if err != nil {
		return nil, fmt.Errorf("storage.Open(): failed to open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.Open(): %w: %v", ErrNotConnected, err)
	}
	return db, nil
}

func dataSourceName(cfg config.DatabaseConfig) string {
	if cfg.Driver == config.DriverSQLite {
		dsn := cfg.SQLitePath
		if !strings.Contains(dsn, "?") {
			// 동시 upsert 시 SQLITE_BUSY 방지
			dsn += "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
		}
		return dsn
	}

	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.DBName = cfg.Name
	mc.ParseTime = true
	return mc.FormatDSN()
}

// Accessor hands out one dedicated connection per request.
type Accessor struct {
	db *sql.DB
}

func NewAccessor(db *sql.DB) *Accessor {
	return &Accessor{db: db}
}

// WithConn acquires a connection, runs fn with it and always releases it afterwards,
// including when fn returns early or panics.
func (a *Accessor) WithConn(ctx context.Context, fn func(q Querier) error) error {
	if a == nil || a.db == nil {
		return ErrNotConnected
	}
	conn, err := a.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotConnected, err)
	}
	defer conn.Close()

	if err := conn.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrNotConnected, err)
	}
	return fn(conn)
}
