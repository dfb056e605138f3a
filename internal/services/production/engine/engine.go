// Package engine implements the production line state machine
//
// Everything here is a pure transition over domain values. Callers own locking, the clock and
// persistence; the engine never reads time.Now and never performs I/O
package engine

import (
	"time"

	"linetrack/internal/core/shift"
	"linetrack/internal/services/production/domain"

	"github.com/google/uuid"
)

// newID is a seam for tests
var newID = uuid.NewString

// Engine carries the settings the finish transition needs
type Engine struct {
	// Loc renders report timestamps and classifies the shift, nil means time.Local
	Loc *time.Location
}

// New returns an Engine rendering reports in loc
func New(loc *time.Location) Engine { return Engine{Loc: loc} }

func (e Engine) loc() *time.Location {
	if e.Loc == nil {
		return time.Local
	}
	return e.Loc
}

// Outcome is the result of one tick
type Outcome struct {
	// ElapsedSeconds is measured against the segment that was running when the tick began
	ElapsedSeconds int
	// Finished is set when the tick closed out an item
	Finished *domain.Report
	// Changed reports whether the tick mutated the production record
	Changed bool
}

// Tick recomputes progress from the wall clock and fires finish-and-advance once the target is met
// a stopped line, a degenerate cycle time or a missing start time is a zero progress no-op
func (e Engine) Tick(doc *domain.Document, now time.Time) Outcome {
	p := &doc.Production
	if !p.Running || p.CycleSeconds <= 0 || p.StartTime == nil {
		return Outcome{}
	}

	elapsed := int(now.Sub(p.StartTime.Time) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	completed := elapsed / p.CycleSeconds

	if completed < p.TargetCount {
		changed := p.Count != completed
		p.Count = completed
		return Outcome{ElapsedSeconds: elapsed, Changed: changed}
	}

	r := e.finish(doc, now)
	return Outcome{ElapsedSeconds: elapsed, Finished: &r, Changed: true}
}

// finish closes out the current item at its target count and promotes the next one
// overshoot past the target is discarded and the next item starts a fresh segment at now
func (e Engine) finish(doc *domain.Document, now time.Time) domain.Report {
	p := &doc.Production
	loc := e.loc()
	started := p.StartTime.In(loc)

	r := domain.Report{
		ID:             newID(),
		Item:           p.CurrentItem,
		SecondsPerItem: p.CycleSeconds,
		Count:          p.TargetCount,
		StartTime:      started.Format(domain.ReportTimeLayout),
		StopTime:       now.In(loc).Format(domain.ReportTimeLayout),
		TotalSeconds:   p.TargetCount * p.CycleSeconds,
		Shift:          shift.At(started),
	}
	doc.Reports = append(doc.Reports, r)

	if len(p.Queue) > 0 {
		p.Queue = append([]domain.QueuedItem{}, p.Queue[1:]...)
	}
	if len(p.Queue) > 0 {
		promote(p, p.Queue[0])
		p.StartTime = domain.EpochOf(now)
		return r
	}

	// exhausted: keep the finished item on display at its full count
	p.Running = false
	p.Count = p.TargetCount
	return r
}

func promote(p *domain.ProductionState, it domain.QueuedItem) {
	p.CurrentItem = it.Name
	p.CycleSeconds = it.CycleSeconds
	p.TargetCount = it.TargetCount
	p.Count = 0
}
