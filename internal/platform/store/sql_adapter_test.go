package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"linetrack/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type recTracer struct{ events []pg.QueryEvent }

func (r *recTracer) OnQuery(_ context.Context, ev pg.QueryEvent) { r.events = append(r.events, ev) }

type fakeRow struct{ err error }

func (r fakeRow) Scan(dst ...any) error {
	if r.err != nil {
		return r.err
	}
	*dst[0].(*string) = `{"running":false}`
	return nil
}

type fakeRows struct {
	pgx.Rows
	n      int
	closed bool
}

func (r *fakeRows) Next() bool          { r.n--; return r.n >= 0 }
func (r *fakeRows) Scan(dst ...any) error { *dst[0].(*int) = r.n; return nil }
func (r *fakeRows) Err() error          { return nil }
func (r *fakeRows) Close()              { r.closed = true }

type fakePgx struct {
	delay   time.Duration
	execErr error
	rowErr  error
	rows    *fakeRows
	sqls    []string
}

func (f *fakePgx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.sqls = append(f.sqls, sql)
	time.Sleep(f.delay)
	return pgconn.NewCommandTag("INSERT 0 1"), f.execErr
}

func (f *fakePgx) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	f.sqls = append(f.sqls, sql)
	if f.rows == nil {
		return nil, errors.New("relation does not exist")
	}
	return f.rows, nil
}

func (f *fakePgx) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	f.sqls = append(f.sqls, sql)
	return fakeRow{err: f.rowErr}
}

func TestTraced_Exec(t *testing.T) {
	rec := &recTracer{}
	db := &fakePgx{delay: 2 * time.Millisecond}
	q := traced{db: db, tracer: rec, slow: time.Millisecond}

	tag, err := q.Exec(context.Background(), "insert into linetrack_state values ($1)", 1)
	if err != nil || tag.RowsAffected() != 1 || tag.String() != "INSERT 0 1" {
		t.Fatalf("Exec = %v, %v", tag, err)
	}
	if len(rec.events) != 1 || !rec.events[0].Slow || rec.events[0].ElapsedUS < 1000 {
		t.Fatalf("events = %+v", rec.events)
	}

	db.execErr = errors.New("deadlock detected")
	q.slow = 0
	if _, err := q.Exec(context.Background(), "update"); err == nil {
		t.Fatalf("exec error swallowed")
	}
	if ev := rec.events[1]; ev.Err == nil || ev.Slow {
		t.Fatalf("error event = %+v", ev)
	}
}

func TestTraced_QueryRowReportsAfterScan(t *testing.T) {
	rec := &recTracer{}
	db := &fakePgx{rowErr: pgx.ErrNoRows}
	q := traced{db: db, tracer: rec}

	row := q.QueryRow(context.Background(), "select doc::text from linetrack_state where id = $1", 1)
	if len(rec.events) != 0 {
		t.Fatalf("reported before Scan")
	}
	var doc string
	if err := row.Scan(&doc); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("Scan = %v", err)
	}
	if len(rec.events) != 1 || !errors.Is(rec.events[0].Err, pgx.ErrNoRows) {
		t.Fatalf("events = %+v", rec.events)
	}
}

func TestTraced_Query(t *testing.T) {
	db := &fakePgx{rows: &fakeRows{n: 2}}
	q := traced{db: db}

	rs, err := q.Query(context.Background(), "select n from t")
	if err != nil {
		t.Fatal(err)
	}
	var got []int
	for rs.Next() {
		var n int
		_ = rs.Scan(&n)
		got = append(got, n)
	}
	rs.Close()
	if len(got) != 2 || got[0] != 1 || got[1] != 0 || !db.rows.closed || rs.Err() != nil {
		t.Fatalf("rows = %v closed=%v", got, db.rows.closed)
	}

	db.rows = nil
	if rs, err := q.Query(context.Background(), "select"); err == nil || rs != nil {
		t.Fatalf("Query error = %v, rows = %v", err, rs)
	}
}

type fakeTxn struct{ committed, rolledBack bool }

func (f *fakeTxn) Commit(context.Context) error   { f.committed = true; return nil }
func (f *fakeTxn) Rollback(context.Context) error { f.rolledBack = true; return nil }

func TestRunTx(t *testing.T) {
	ctx := context.Background()
	q := traced{db: &fakePgx{}}

	ok := &fakeTxn{}
	if err := runTx(ctx, ok, q, func(q RowQuerier) error {
		_, err := q.Exec(ctx, "set local lock_timeout = '2s'")
		return err
	}); err != nil || !ok.committed || ok.rolledBack {
		t.Fatalf("commit path = %v %+v", err, ok)
	}

	boom := errors.New("boom")
	bad := &fakeTxn{}
	if err := runTx(ctx, bad, q, func(RowQuerier) error { return boom }); !errors.Is(err, boom) || bad.committed || !bad.rolledBack {
		t.Fatalf("rollback path = %v %+v", err, bad)
	}
}

func TestNewPGAdapter_SlowThreshold(t *testing.T) {
	a := newPGAdapter(&pg.PG{SlowMs: 250})
	if a.slow != 250*time.Millisecond || a.p == nil {
		t.Fatalf("adapter = %+v", a.traced)
	}
	var nilAdapter *pgAdapter
	if nilAdapter.Ping(context.Background()) == nil {
		t.Fatalf("nil adapter ping should fail")
	}
}
