package repo

import (
	"context"
	"encoding/json"
	"time"

	"linetrack/internal/modkit/repokit"
	perr "linetrack/internal/platform/errors"
	"linetrack/internal/platform/store"
	"linetrack/internal/services/production/domain"
)

// Repo is the minimal sql surface for the production document
type Repo interface {
	EnsureSchema(ctx context.Context) error
	Get(ctx context.Context) (doc []byte, ok bool, err error)
	Put(ctx context.Context, doc []byte, at time.Time) error
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const (
	// the line has exactly one document, kept in row 1
	stateRowID = 1

	// serialization failures, deadlocks and lock timeouts are retried
	saveAttempts = 3
)

// boundLockWait stops a save from queueing behind a stuck writer; the
// resulting 55P03 is retryable
func boundLockWait(ctx context.Context, q repokit.Queryer) error {
	_, err := q.Exec(ctx, `set local lock_timeout = '2s'`)
	return err
}

func (r *queries) EnsureSchema(ctx context.Context) error {
	const sql = `
create table if not exists linetrack_state (
	id smallint primary key,
	doc jsonb not null,
	updated_at timestamptz not null
)
`
	_, err := r.q.Exec(ctx, sql)
	return err
}

func (r *queries) Get(ctx context.Context) ([]byte, bool, error) {
	const sql = `select doc::text from linetrack_state where id = $1`
	doc, err := store.Scalar[string](ctx, r.q, sql, stateRowID)
	if perr.IsNoRows(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(doc), true, nil
}

func (r *queries) Put(ctx context.Context, doc []byte, at time.Time) error {
	const sql = `
insert into linetrack_state (id, doc, updated_at)
values ($1, $2::jsonb, $3)
on conflict (id) do update set doc = excluded.doc, updated_at = excluded.updated_at
`
	return store.ExecOne(ctx, r.q, sql, stateRowID, string(doc), at)
}

// PGStore keeps the document as a single jsonb row
type PGStore struct {
	db     repokit.TxRunner
	binder repokit.Binder[Repo]
	now    func() time.Time
}

var _ domain.StateStore = (*PGStore)(nil)

// NewPGStore returns a StateStore over db
func NewPGStore(db repokit.TxRunner, binder repokit.Binder[Repo]) *PGStore {
	if db == nil {
		panic("production.PGStore requires a non nil TxRunner")
	}
	if binder == nil {
		panic("production.PGStore requires a non nil Repo binder")
	}
	return &PGStore{db: repokit.WithBeginHooks(db, boundLockWait), binder: binder, now: time.Now}
}

// EnsureSchema creates the state table when missing
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	return perr.FromPostgres(repokit.MustBind(s.binder, s.db).EnsureSchema(ctx), "ensure linetrack_state")
}

// Load reads row 1, no row is the default document
func (s *PGStore) Load(ctx context.Context) (domain.Document, error) {
	b, ok, err := repokit.MustBind(s.binder, s.db).Get(ctx)
	if err != nil {
		return domain.DefaultDocument(), perr.FromPostgres(err, "load production state")
	}
	if !ok {
		return domain.DefaultDocument(), nil
	}
	return domain.DecodeDocument(b)
}

// Save upserts row 1 inside a transaction
func (s *PGStore) Save(ctx context.Context, doc domain.Document) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "encode production state")
	}
	for attempt := 1; ; attempt++ {
		err = repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
			return s.binder.Bind(q).Put(ctx, b, s.now().UTC())
		})
		if err == nil || attempt == saveAttempts || !perr.IsRetryable(err) {
			break
		}
	}
	return perr.FromPostgres(err, "save production state")
}
