package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"linetrack/internal/core/shift"
	perr "linetrack/internal/platform/errors"
	ptime "linetrack/internal/platform/time"
	"linetrack/internal/services/production/domain"

	"github.com/rs/zerolog"
)

var t0 = time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

// memStore keeps the last saved document and can be told to fail
type memStore struct {
	mu      sync.Mutex
	doc     domain.Document
	loadErr error
	saveErr error
	saves   int
}

func (m *memStore) Load(context.Context) (domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return domain.DefaultDocument(), m.loadErr
	}
	if m.doc.Reports == nil {
		return domain.DefaultDocument(), nil
	}
	return m.doc.Clone(), nil
}

func (m *memStore) Save(_ context.Context, d domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.doc = d.Clone()
	return nil
}

type recordSink struct {
	mu  sync.Mutex
	got []domain.Report
	err error
}

func (r *recordSink) Archive(_ context.Context, rep domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, rep)
	return r.err
}

func newSvc(t *testing.T, st *memStore, opts ...Option) (*Svc, *ptime.Manual) {
	t.Helper()
	clk := ptime.NewManual(t0)
	nop := zerolog.Nop()
	base := []Option{WithClock(clk), WithLocation(time.UTC), WithLogger(&nop)}
	return New(st, append(base, opts...)...), clk
}

func add(t *testing.T, s *Svc, name string, secs, target int) {
	t.Helper()
	if _, err := s.AddItem(context.Background(), domain.AddItemInput{Name: name, CycleSeconds: secs, TargetCount: target}); err != nil {
		t.Fatalf("AddItem(%s): %v", name, err)
	}
}

func TestNew_PanicsOnNilStore(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	New(nil)
}

func TestAddItem_DefaultsAndPersists(t *testing.T) {
	st := &memStore{}
	s, _ := newSvc(t, st)
	ctx := context.Background()

	v, err := s.AddItem(ctx, domain.AddItemInput{Name: "  Ｂｒａｃｋｅｔ \t 7 ", CycleSeconds: 10, TargetCount: 5})
	if err != nil {
		t.Fatal(err)
	}
	if v.CurrentItem != "Bracket 7" || v.Running || len(v.Queue) != 1 {
		t.Fatalf("view = %+v", v)
	}
	if v.Queue[0].Shift != shift.A {
		t.Fatalf("default shift = %q, want A", v.Queue[0].Shift)
	}
	if st.saves != 1 || st.doc.Production.CurrentItem != "Bracket 7" {
		t.Fatalf("not persisted: saves=%d doc=%+v", st.saves, st.doc.Production)
	}

	_, err = s.AddItem(ctx, domain.AddItemInput{Name: " \u200B ", CycleSeconds: 10})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("blank name err = %v", err)
	}
	if e, ok := perr.As(err); !ok || e.Field() != "item" {
		t.Fatalf("blank name field = %v", err)
	}
}

func TestPoll_ProgressThenFinish(t *testing.T) {
	st := &memStore{}
	sink := &recordSink{}
	s, clk := newSvc(t, st, WithSinks(sink))
	ctx := context.Background()

	add(t, s, "bracket", 10, 5)
	add(t, s, "hinge", 5, 2)
	if _, err := s.Start(ctx); err != nil {
		t.Fatal(err)
	}
	saves := st.saves

	clk.Advance(49 * time.Second)
	p, err := s.Poll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if p.Item != "bracket" || p.Count != 4 || !p.Running || p.ElapsedSeconds != 49 {
		t.Fatalf("progress = %+v", p)
	}
	if st.saves != saves {
		t.Fatalf("progress-only poll should not persist")
	}

	clk.Advance(time.Second)
	p, err = s.Poll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if p.Item != "hinge" || p.Count != 0 || !p.Running {
		t.Fatalf("after finish = %+v", p)
	}
	if st.saves != saves+1 || len(st.doc.Reports) != 1 {
		t.Fatalf("finish not persisted: saves=%d reports=%d", st.saves, len(st.doc.Reports))
	}
	if len(sink.got) != 1 || sink.got[0].Item != "bracket" || sink.got[0].Count != 5 {
		t.Fatalf("sink = %+v", sink.got)
	}

	h, _ := s.History(ctx)
	if len(h) != 1 || h[0].Shift != shift.B || h[0].StartTime != "2024-01-15 08:00:00" {
		t.Fatalf("history = %+v", h)
	}
}

func TestPoll_SaveFailureKeepsPreviousState(t *testing.T) {
	st := &memStore{}
	s, clk := newSvc(t, st)
	ctx := context.Background()

	add(t, s, "bracket", 10, 1)
	if _, err := s.Start(ctx); err != nil {
		t.Fatal(err)
	}

	st.saveErr = errors.New("disk full")
	clk.Advance(15 * time.Second)
	p, err := s.Poll(ctx)
	if err != nil {
		t.Fatalf("poll should degrade, got %v", err)
	}
	if !p.Running || p.Item != "bracket" {
		t.Fatalf("uncommitted finish leaked into the view: %+v", p)
	}
	if h, _ := s.History(ctx); len(h) != 0 {
		t.Fatalf("history = %+v", h)
	}

	st.saveErr = nil
	p, _ = s.Poll(ctx)
	if p.Running || p.Count != 1 {
		t.Fatalf("retry did not finish: %+v", p)
	}
	if h, _ := s.History(ctx); len(h) != 1 {
		t.Fatalf("history len = %d", len(h))
	}
}

func TestMutate_SaveFailureIsUnavailable(t *testing.T) {
	st := &memStore{}
	s, _ := newSvc(t, st)
	st.saveErr = errors.New("read only")

	_, err := s.AddItem(context.Background(), domain.AddItemInput{Name: "a", CycleSeconds: 1, TargetCount: 1})
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err = %v", err)
	}
	v, _ := s.State(context.Background())
	if len(v.Queue) != 0 {
		t.Fatalf("failed save was committed: %+v", v)
	}
}

func TestLoad_MalformedFallsBackToDefault(t *testing.T) {
	st := &memStore{loadErr: domain.ErrMalformedState}
	s, _ := newSvc(t, st)
	v, err := s.State(context.Background())
	if err != nil {
		t.Fatalf("malformed state should be recovered, got %v", err)
	}
	if v.CurrentItem != "" || len(v.Queue) != 0 {
		t.Fatalf("view = %+v", v)
	}
}

func TestLoad_OtherErrorsSurfaceAndRetry(t *testing.T) {
	st := &memStore{loadErr: errors.New("connection refused")}
	s, _ := newSvc(t, st)
	if err := s.Load(context.Background()); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err = %v", err)
	}
	st.loadErr = nil
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("second load: %v", err)
	}
}

func TestItemEditDelete(t *testing.T) {
	st := &memStore{}
	s, _ := newSvc(t, st)
	ctx := context.Background()
	add(t, s, "a", 10, 5)
	add(t, s, "b", 10, 5)

	if _, err := s.Item(ctx, 5); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("Item(5) err = %v", err)
	}
	if _, err := s.EditItem(ctx, 9, domain.EditItemInput{Name: "x", CycleSeconds: 1}); !errors.Is(err, domain.ErrInvalidIndex) {
		t.Fatalf("EditItem(9) err = %v", err)
	}

	v, err := s.EditItem(ctx, 1, domain.EditItemInput{Name: "b2", CycleSeconds: 3, TargetCount: 1})
	if err != nil {
		t.Fatal(err)
	}
	if v.Queue[1] != (domain.QueuedItem{Name: "b2", CycleSeconds: 3, TargetCount: 1}) {
		t.Fatalf("edited = %+v", v.Queue[1])
	}

	saves := st.saves
	v, err = s.DeleteItem(ctx, 7)
	if err != nil || len(v.Queue) != 2 || st.saves != saves {
		t.Fatalf("out of range delete changed something: %+v %v", v, err)
	}

	s.DeleteItem(ctx, 0)
	v, _ = s.DeleteItem(ctx, 0)
	if v.CurrentItem != "" || len(v.Queue) != 0 || v.Running {
		t.Fatalf("empty queue not reset: %+v", v)
	}
}

func TestStopTwice(t *testing.T) {
	st := &memStore{}
	s, _ := newSvc(t, st)
	ctx := context.Background()
	add(t, s, "a", 10, 5)
	s.Start(ctx)

	v1, _ := s.Stop(ctx)
	saves := st.saves
	v2, _ := s.Stop(ctx)
	if v1.Running || v2.Running || v1.StartedAt != v2.StartedAt || st.saves != saves {
		t.Fatalf("stop not idempotent: %+v %+v", v1, v2)
	}
}

func TestPeek_DoesNotCommit(t *testing.T) {
	st := &memStore{}
	s, clk := newSvc(t, st)
	ctx := context.Background()
	add(t, s, "a", 1, 1)
	s.Start(ctx)
	clk.Advance(time.Minute)

	p, _ := s.Peek(ctx)
	if p.Running || p.Count != 1 {
		t.Fatalf("peek = %+v", p)
	}
	if h, _ := s.History(ctx); len(h) != 0 {
		t.Fatalf("peek committed a report")
	}
}

func TestCurrentShift(t *testing.T) {
	s, clk := newSvc(t, &memStore{})
	clk.Set(time.Date(2024, 1, 15, 0, 10, 0, 0, time.UTC))
	v, _ := s.CurrentShift(context.Background())
	if v.Shift != shift.C || v.At != "2024-01-15 00:10:00" {
		t.Fatalf("shift view = %+v", v)
	}
}

func TestConcurrentPollsFinishOnce(t *testing.T) {
	st := &memStore{}
	sink := &recordSink{}
	s, clk := newSvc(t, st, WithSinks(sink))
	ctx := context.Background()
	add(t, s, "a", 1, 3)
	s.Start(ctx)
	clk.Advance(10 * time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Poll(ctx)
		}()
	}
	wg.Wait()

	if h, _ := s.History(ctx); len(h) != 1 {
		t.Fatalf("history len = %d, want exactly one finish", len(h))
	}
	if len(sink.got) != 1 {
		t.Fatalf("sink calls = %d", len(sink.got))
	}
}
