package store

import (
	"context"
	"errors"

	"linetrack/internal/platform/store/ch"
)

// ErrInsertShape rejects archive inserts that are not [][]any
var ErrInsertShape = errors.New("store: clickhouse insert wants [][]any")

type chAdapter struct{ c *ch.CH }

func newCHAdapter(c *ch.CH) Clickhouse { return &chAdapter{c: c} }

func (a *chAdapter) Insert(ctx context.Context, table string, data any) error {
	if rows, ok := data.([][]any); ok {
		return a.c.Insert(ctx, table, rows)
	}
	return ErrInsertShape
}

func (a *chAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := a.c.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{rs}, nil
}

func (a *chAdapter) Ping(ctx context.Context) error {
	if a == nil || a.c == nil {
		return errors.New("store: clickhouse not open")
	}
	return a.c.Ping(ctx)
}

func (a *chAdapter) Close() error { return a.c.Close() }

// chRows drops the error from driver Rows.Close to fit Rows
type chRows struct{ ch.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }
