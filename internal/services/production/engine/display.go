package engine

import (
	"time"

	"linetrack/internal/services/production/domain"
)

// Resolve picks the record a live viewer sees
// an idle line with a non-empty queue previews the LAST queued item at zero progress,
// anything else shows the current item
func Resolve(p domain.ProductionState) domain.Source {
	if !p.Running && len(p.Queue) > 0 {
		return domain.SourceLastQueued
	}
	return domain.SourceCurrent
}

// Project builds the display view of p for a tick that measured elapsed seconds
func Project(p domain.ProductionState, elapsed int) domain.Progress {
	src := Resolve(p)
	if src == domain.SourceLastQueued {
		last := p.Queue[len(p.Queue)-1]
		return domain.Progress{
			Item:           last.Name,
			CycleSeconds:   last.CycleSeconds,
			TargetCount:    last.TargetCount,
			ElapsedSeconds: elapsed,
			Running:        false,
			Source:         src,
		}
	}
	return domain.Progress{
		Item:           p.CurrentItem,
		CycleSeconds:   p.CycleSeconds,
		Count:          p.Count,
		TargetCount:    p.TargetCount,
		ElapsedSeconds: elapsed,
		Running:        p.Running,
		Source:         src,
	}
}

// Poll ticks doc at now and projects the display view
func (e Engine) Poll(doc *domain.Document, now time.Time) (domain.Progress, Outcome) {
	out := e.Tick(doc, now)
	return Project(doc.Production, out.ElapsedSeconds), out
}
