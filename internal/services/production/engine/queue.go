package engine

import (
	"time"

	"linetrack/internal/services/production/domain"
)

// Enqueue appends it to the queue
// the front is promoted when the queue was empty or nothing is loaded; running is left alone
func Enqueue(p *domain.ProductionState, it domain.QueuedItem) {
	wasEmpty := len(p.Queue) == 0
	p.Queue = append(p.Queue, it)
	if wasEmpty || !p.HasCurrent() {
		promote(p, p.Queue[0])
	}
}

// Start begins a run segment at now
// it is a no-op when already running, when nothing is loaded or when the queue is exhausted
func Start(p *domain.ProductionState, now time.Time) bool {
	if p.Running || !p.HasCurrent() || len(p.Queue) == 0 {
		return false
	}
	p.StartTime = domain.EpochOf(now)
	p.Running = true
	return true
}

// Stop halts the timer and keeps the start time and progress
func Stop(p *domain.ProductionState) bool {
	was := p.Running
	p.Running = false
	return was
}

// Edit replaces the queue entry at idx wholesale
// the live current item is not resynchronized when idx is the active front
func Edit(p *domain.ProductionState, idx int, it domain.QueuedItem) error {
	if idx < 0 || idx >= len(p.Queue) {
		return domain.ErrInvalidIndex
	}
	p.Queue[idx] = it
	return nil
}

// Delete removes the queue entry at idx, an invalid idx is ignored
// emptying the queue clears the current item and stops the line
func Delete(p *domain.ProductionState, idx int) bool {
	if idx < 0 || idx >= len(p.Queue) {
		return false
	}
	p.Queue = append(p.Queue[:idx:idx], p.Queue[idx+1:]...)
	if len(p.Queue) == 0 {
		p.CurrentItem = ""
		p.CycleSeconds = 0
		p.TargetCount = 0
		p.Count = 0
		p.Running = false
	}
	return true
}

// Item returns the queue entry at idx
func Item(p domain.ProductionState, idx int) (domain.QueuedItem, error) {
	if idx < 0 || idx >= len(p.Queue) {
		return domain.QueuedItem{}, domain.ErrInvalidIndex
	}
	return p.Queue[idx], nil
}
