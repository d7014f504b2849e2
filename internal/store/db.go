package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrUnknownDriver = errors.New("unknown database driver")
)

// Scanner is a single result row.
type Scanner interface {
	Scan(dest ...any) error
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// DB is the slice of a SQL database the collections need. Postgres and
// SQLite differ only in placeholders and the id column type.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Scanner
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	Placeholder(n int) string
	IDColumn() string
	Close()
}

// Open connects to driver "postgres" (pgx) or "sqlite" (modernc).
func Open(ctx context.Context, driver, source string) (DB, error) {
	switch driver {
	case "postgres":
		return NewPostgres(ctx, source)
	case "sqlite":
		return NewSQLite(source)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
}

type Postgres struct {
	Pool *pgxpool.Pool
}

func NewPostgres(ctx context.Context, connString string) (*Postgres, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return &Postgres{Pool: pool}, nil
}

func (p *Postgres) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return p.Pool.Query(ctx, sql, args...)
}

func (p *Postgres) QueryRow(ctx context.Context, sql string, args ...any) Scanner {
	return noRows{p.Pool.QueryRow(ctx, sql, args...)}
}

func (p *Postgres) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := p.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (p *Postgres) Placeholder(n int) string { return "$" + strconv.Itoa(n) }
func (p *Postgres) IDColumn() string         { return "BIGSERIAL PRIMARY KEY" }
func (p *Postgres) Close()                   { p.Pool.Close() }

type SQLite struct {
	DB *sql.DB
}

// NewSQLite opens the database file at path, creating it if needed.
func NewSQLite(path string) (*SQLite, error) {
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &SQLite{DB: db}, nil
}

func (s *SQLite) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return sqlRows{rows}, nil
}

func (s *SQLite) QueryRow(ctx context.Context, query string, args ...any) Scanner {
	return noRows{s.DB.QueryRowContext(ctx, query, args...)}
}

func (s *SQLite) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQLite) Placeholder(int) string { return "?" }
func (s *SQLite) IDColumn() string       { return "INTEGER PRIMARY KEY AUTOINCREMENT" }
func (s *SQLite) Close()                 { s.DB.Close() }

type sqlRows struct{ *sql.Rows }

func (r sqlRows) Close() { r.Rows.Close() }

// noRows maps both drivers' empty-result errors to ErrNotFound.
type noRows struct{ row Scanner }

func (n noRows) Scan(dest ...any) error {
	err := n.row.Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
