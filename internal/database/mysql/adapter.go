package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/eklix/mysql-faker/internal/config"
	gomysql "github.com/go-sql-driver/mysql"
)

// DefaultCharset is the character set new databases are created with.
const DefaultCharset = "utf8"

// Adapter pins a single connection from the pool so that session state such
// as the selected database survives across statements.
type Adapter struct {
	db        *sql.DB
	conn      *sql.Conn
	qb        squirrel.StatementBuilderType
	currentDB string
}

// DSN builds a driver DSN that is not bound to any database.
func DSN(cfg *config.Config) string {
	c := gomysql.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = cfg.Addr()
	c.ParseTime = true
	c.Timeout = 10 * time.Second
	return c.FormatDSN()
}

// Open opens a pool against the server and verifies it with a ping. It is the
// opener the connector retries.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(15 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func New(db *sql.DB) *Adapter {
	return &Adapter{
		db: db,
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// Acquire pins the connection every later statement runs on.
func (m *Adapter) Acquire(ctx context.Context) error {
	if m.conn != nil {
		return nil
	}
	conn, err := m.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	m.conn = conn
	return nil
}

func (m *Adapter) UseDatabase(ctx context.Context, name string) error {
	quoted, err := QuoteIdentifier(name)
	if err != nil {
		return err
	}
	if err := m.Acquire(ctx); err != nil {
		return err
	}
	if _, err := m.conn.ExecContext(ctx, "USE "+quoted); err != nil {
		return fmt.Errorf("failed to use database %s: %w", name, err)
	}
	m.currentDB = name
	return nil
}

func (m *Adapter) CreateDatabase(ctx context.Context, name string) error {
	quoted, err := QuoteIdentifier(name)
	if err != nil {
		return err
	}
	if err := m.Acquire(ctx); err != nil {
		return err
	}
	query := fmt.Sprintf("CREATE DATABASE %s DEFAULT CHARACTER SET '%s'", quoted, DefaultCharset)
	if _, err := m.conn.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}
	return nil
}

// Begin starts the transaction the seeder writes through.
func (m *Adapter) Begin(ctx context.Context) (*sql.Tx, error) {
	if err := m.Acquire(ctx); err != nil {
		return nil, err
	}
	tx, err := m.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CountRows reports how many rows table holds in the selected database.
func (m *Adapter) CountRows(ctx context.Context, table string) (int64, error) {
	if err := m.Acquire(ctx); err != nil {
		return 0, err
	}
	query, args, err := m.qb.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, err
	}
	var count int64
	if err := m.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return count, nil
}

func (m *Adapter) CurrentDatabase() string {
	return m.currentDB
}

func (m *Adapter) Close() error {
	if m.conn != nil {
		m.conn.Close()
		m.conn = nil
	}
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
