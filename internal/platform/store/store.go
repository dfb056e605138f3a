// Package store opens the optional backends linetrack can run against:
// postgres for production state and clickhouse for the report archive.
// The file backend needs neither, so an empty Config yields an empty Store
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"linetrack/internal/platform/logger"
)

type (
	// Config picks the backends to open
	Config struct {
		// AppName shows up as application_name / client info on the server side
		AppName string
		PG      PGConfig
		CH      CHConfig
	}

	PGConfig struct {
		Enabled     bool
		URL         string
		MaxConns    int32
		LogSQL      bool
		SlowQueryMs int
		// ConnectRetries and PingTimeout shape the boot wait; zero picks 20 tries of 3s
		ConnectRetries int
		PingTimeout    time.Duration
	}

	CHConfig struct {
		Enabled bool
		URL     string
		Tag     string
	}
)

// Option adjusts the Store before any backend is opened
type Option func(*Store) error

// WithLogger routes backend logs (sql traces, boot retries) to log
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error { s.Log = log; return nil }
}

// Store holds whichever backends were opened. Unopened ones stay nil
type Store struct {
	Log logger.Logger
	PG  TxRunner
	CH  Clickhouse
}

type (
	Row interface {
		Scan(dest ...any) error
	}

	Rows interface {
		Next() bool
		Scan(dest ...any) error
		Err() error
		Close()
	}

	CommandTag interface {
		String() string
		RowsAffected() int64
	}

	// RowQuerier is the sql surface repos write against, pool or tx alike
	RowQuerier interface {
		Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
		Query(ctx context.Context, sql string, args ...any) (Rows, error)
		QueryRow(ctx context.Context, sql string, args ...any) Row
	}

	TxRunner interface {
		RowQuerier
		// Tx commits when fn returns nil and rolls back otherwise
		Tx(ctx context.Context, fn func(q RowQuerier) error) error
	}

	// Clickhouse is the append side of the archive. Insert takes [][]any in column order
	Clickhouse interface {
		Insert(ctx context.Context, table string, data any) error
		Query(ctx context.Context, sql string, args ...any) (Rows, error)
		Ping(ctx context.Context) error
		Close() error
	}

	Pinger interface{ Ping(context.Context) error }
)

// Open applies opts then dials every enabled backend, failing on the first that will not come up
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, apply := range opts {
		if err := apply(s); err != nil {
			return nil, err
		}
	}
	s.Log = s.Log.With().Logger()

	var err error
	if cfg.PG.Enabled {
		if s.PG, err = openPG(ctx, cfg, s); err != nil {
			return nil, err
		}
	}
	if cfg.CH.Enabled {
		if s.CH, err = openCH(ctx, cfg, s); err != nil {
			if s.PG != nil {
				_ = s.Close(ctx)
			}
			return nil, err
		}
	}
	return s, nil
}

// Guard pings each open backend and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	if p, ok := s.PG.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("pg: %w", err))
		}
	}
	if s.CH != nil {
		if err := s.CH.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("ch: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Close releases every open backend
func (s *Store) Close(context.Context) error {
	var errs []error
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
