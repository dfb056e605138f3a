// Package service owns the live production document and serializes every operation on it
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"linetrack/internal/core/normalize"
	"linetrack/internal/core/shift"
	perr "linetrack/internal/platform/errors"
	"linetrack/internal/platform/logger"
	pnet "linetrack/internal/platform/net"
	ptime "linetrack/internal/platform/time"
	"linetrack/internal/services/production/domain"
	"linetrack/internal/services/production/engine"
)

// Service defines the production service contract
type Service interface {
	domain.ServicePort
	domain.HistoryPort
}

// Svc implements the production service
// one mutex guards the document; committed documents are never written in place,
// every change is applied to a clone, saved, then swapped in
type Svc struct {
	mu     sync.Mutex
	doc    domain.Document
	loaded bool

	store domain.StateStore
	sinks []domain.ReportSink
	clock ptime.Clock
	loc   *time.Location
	eng   engine.Engine
	log   *logger.Logger
}

// Option configures a Svc
type Option func(*Svc)

// WithClock overrides the wall clock
func WithClock(c ptime.Clock) Option { return func(s *Svc) { s.clock = c } }

// WithLocation sets the zone used for report timestamps and shift attribution
func WithLocation(loc *time.Location) Option { return func(s *Svc) { s.loc = loc } }

// WithSinks adds archive sinks called after each committed finish
func WithSinks(sinks ...domain.ReportSink) Option {
	return func(s *Svc) {
		for _, k := range sinks {
			if k != nil {
				s.sinks = append(s.sinks, k)
			}
		}
	}
}

// WithLogger overrides the component logger
func WithLogger(l *logger.Logger) Option { return func(s *Svc) { s.log = l } }

// New constructs a production service, the document is loaded on first use
func New(store domain.StateStore, opts ...Option) *Svc {
	if store == nil {
		panic("production.Service requires a non nil StateStore")
	}
	s := &Svc{store: store, clock: ptime.System{}, loc: time.Local}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = logger.Named("production")
	}
	s.eng = engine.New(s.loc)
	return s
}

// Load reads the persisted document if it has not been read yet
func (s *Svc) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLoaded(ctx)
}

// ensureLoaded must be called with mu held
func (s *Svc) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	doc, err := s.store.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrMalformedState):
		s.log.Warn().Err(err).Msg("persisted state is malformed, starting from defaults")
		doc = domain.DefaultDocument()
	case err != nil:
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "load production state")
	}
	s.doc = doc
	s.loaded = true
	return nil
}

// mutate applies fn to a clone and commits it only once it is saved
// fn reports whether it changed anything; unchanged documents are not rewritten
func (s *Svc) mutate(ctx context.Context, op string, fn func(d *domain.Document) (bool, error)) (domain.StateView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.StateView{}, err
	}

	next := s.doc.Clone()
	changed, err := fn(&next)
	if err != nil {
		return domain.StateView{}, err
	}
	if !changed {
		return s.view(s.doc), nil
	}
	if err := s.store.Save(ctx, next); err != nil {
		s.log.Error().Err(err).Str("op", op).Msg("persist failed, change discarded")
		return domain.StateView{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "production state not saved")
	}
	s.doc = next
	s.log.Info().Str("op", op).Str("operator", pnet.Operator(ctx)).Str("request_id", pnet.RequestID(ctx)).
		Str("current_item", next.Production.CurrentItem).Bool("running", next.Production.Running).
		Int("queued", len(next.Production.Queue)).Msg("production state changed")
	return s.view(s.doc), nil
}

func (s *Svc) view(d domain.Document) domain.StateView {
	p := d.Production
	v := domain.StateView{
		CurrentItem:  p.CurrentItem,
		CycleSeconds: p.CycleSeconds,
		Count:        p.Count,
		TargetCount:  p.TargetCount,
		Running:      p.Running,
		Queue:        append([]domain.QueuedItem{}, p.Queue...),
	}
	if p.StartTime != nil {
		v.StartedAt = p.StartTime.In(s.loc).Format(domain.ReportTimeLayout)
	}
	return v
}

// Poll recomputes progress at the current time
// a finish-and-advance is persisted before it becomes visible; progress alone stays in memory
func (s *Svc) Poll(ctx context.Context) (domain.Progress, error) {
	s.mu.Lock()
	if err := s.ensureLoaded(ctx); err != nil {
		s.mu.Unlock()
		return domain.Progress{}, err
	}

	next := s.doc.Clone()
	view, out := s.eng.Poll(&next, s.clock.Now())

	var finished *domain.Report
	switch {
	case out.Finished != nil:
		if err := s.store.Save(ctx, next); err != nil {
			s.log.Error().Err(err).Str("item", out.Finished.Item).Msg("persist failed, finish deferred to the next poll")
			view = engine.Project(s.doc.Production, out.ElapsedSeconds)
			break
		}
		s.doc = next
		finished = out.Finished
	case out.Changed:
		s.doc = next
	}
	s.mu.Unlock()

	if finished != nil {
		s.log.Info().
			Str("item", finished.Item).
			Int("count", finished.Count).
			Str("shift", string(finished.Shift)).
			Str("next", next.Production.CurrentItem).
			Bool("running", next.Production.Running).
			Msg("item finished")
		s.archive(ctx, *finished)
	}
	return view, nil
}

// Peek projects the display view at the current time without committing anything
func (s *Svc) Peek(ctx context.Context) (domain.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Progress{}, err
	}
	next := s.doc.Clone()
	view, _ := s.eng.Poll(&next, s.clock.Now())
	return view, nil
}

func (s *Svc) archive(ctx context.Context, r domain.Report) {
	ctx = context.WithoutCancel(ctx)
	for _, k := range s.sinks {
		if err := k.Archive(ctx, r); err != nil {
			s.log.Warn().Err(err).Str("report_id", r.ID).Msg("archive failed")
		}
	}
}

// Start begins timing the current item
func (s *Svc) Start(ctx context.Context) (domain.StateView, error) {
	return s.mutate(ctx, "start", func(d *domain.Document) (bool, error) {
		if !engine.Start(&d.Production, s.clock.Now()) {
			return false, nil
		}
		s.log.Debug().Str("item", d.Production.CurrentItem).Msg("line started")
		return true, nil
	})
}

// Stop halts the timer
func (s *Svc) Stop(ctx context.Context) (domain.StateView, error) {
	return s.mutate(ctx, "stop", func(d *domain.Document) (bool, error) {
		if !engine.Stop(&d.Production) {
			return false, nil
		}
		s.log.Debug().Str("item", d.Production.CurrentItem).Int("count", d.Production.Count).Msg("line stopped")
		return true, nil
	})
}

// AddItem appends an item to the queue, the shift hint defaults to A
func (s *Svc) AddItem(ctx context.Context, in domain.AddItemInput) (domain.StateView, error) {
	name, err := s.itemName(in.Name)
	if err != nil {
		return domain.StateView{}, err
	}
	hint := shift.Shift(in.Shift)
	if hint == "" {
		hint = shift.A
	}
	it := domain.QueuedItem{Name: name, CycleSeconds: in.CycleSeconds, TargetCount: in.TargetCount, Shift: hint}

	return s.mutate(ctx, "add_item", func(d *domain.Document) (bool, error) {
		engine.Enqueue(&d.Production, it)
		s.log.Debug().Str("item", it.Name).Int("seconds", it.CycleSeconds).Int("target", it.TargetCount).
			Int("queue_len", len(d.Production.Queue)).Msg("item queued")
		return true, nil
	})
}

// Item returns the queue entry at idx
func (s *Svc) Item(ctx context.Context, idx int) (domain.QueuedItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.QueuedItem{}, err
	}
	return engine.Item(s.doc.Production, idx)
}

// EditItem replaces the queue entry at idx, the shift hint is not carried over
func (s *Svc) EditItem(ctx context.Context, idx int, in domain.EditItemInput) (domain.StateView, error) {
	name, err := s.itemName(in.Name)
	if err != nil {
		return domain.StateView{}, err
	}
	it := domain.QueuedItem{Name: name, CycleSeconds: in.CycleSeconds, TargetCount: in.TargetCount}

	return s.mutate(ctx, "edit_item", func(d *domain.Document) (bool, error) {
		if err := engine.Edit(&d.Production, idx, it); err != nil {
			return false, err
		}
		s.log.Debug().Int("index", idx).Str("item", it.Name).Msg("item edited")
		return true, nil
	})
}

// DeleteItem removes the queue entry at idx, an unknown idx changes nothing
func (s *Svc) DeleteItem(ctx context.Context, idx int) (domain.StateView, error) {
	return s.mutate(ctx, "delete_item", func(d *domain.Document) (bool, error) {
		if !engine.Delete(&d.Production, idx) {
			return false, nil
		}
		s.log.Debug().Int("index", idx).Int("queue_len", len(d.Production.Queue)).Msg("item deleted")
		return true, nil
	})
}

// State returns the production record and its queue
func (s *Svc) State(ctx context.Context) (domain.StateView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.StateView{}, err
	}
	return s.view(s.doc), nil
}

// CurrentShift classifies the current wall clock
func (s *Svc) CurrentShift(_ context.Context) (domain.ShiftView, error) {
	now := s.clock.Now().In(s.loc)
	return domain.ShiftView{Shift: shift.At(now), At: now.Format(domain.ReportTimeLayout)}, nil
}

// History returns the committed report history in completion order
func (s *Svc) History(ctx context.Context) ([]domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	r := s.doc.Reports
	return r[:len(r):len(r)], nil
}

func (s *Svc) itemName(raw string) (string, error) {
	name := normalize.ItemName(raw)
	if name == "" {
		return "", perr.WithField(perr.Validationf("item name is empty"), "item")
	}
	return name, nil
}
