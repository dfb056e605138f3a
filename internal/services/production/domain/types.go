// Package domain holds the production line state, report records and the contracts around them
package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"

	"linetrack/internal/core/shift"
	perr "linetrack/internal/platform/errors"
)

// ReportTimeLayout is the layout used for report start and stop timestamps
const ReportTimeLayout = "2006-01-02 15:04:05"

// Epoch is a point in time persisted as fractional unix seconds
type Epoch struct{ time.Time }

// EpochOf returns a pointer to an Epoch wrapping t
func EpochOf(t time.Time) *Epoch { return &Epoch{Time: t} }

// MarshalJSON writes unix seconds with sub second precision
func (e Epoch) MarshalJSON() ([]byte, error) {
	secs := float64(e.UnixNano()) / 1e9
	return strconv.AppendFloat(nil, secs, 'f', -1, 64), nil
}

// UnmarshalJSON accepts integer or fractional unix seconds
func (e *Epoch) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "start_time %s is not unix seconds", string(b))
	}
	sec, frac := math.Modf(f)
	e.Time = time.Unix(int64(sec), int64(math.Round(frac*1e9)))
	return nil
}

// QueuedItem is one scheduled item, replaced wholesale on edit
type QueuedItem struct {
	Name         string      `json:"item" example:"bracket-7"`
	CycleSeconds int         `json:"seconds" example:"10"`
	TargetCount  int         `json:"target_count" example:"5"`
	Shift        shift.Shift `json:"shift,omitempty" example:"A"`
}

// ProductionState is the single live record of the line
// current item fields are duplicated from the queue front for fast access
type ProductionState struct {
	CurrentItem  string       `json:"current_item"`
	CycleSeconds int          `json:"time_in_sec"`
	Count        int          `json:"count"`
	StartTime    *Epoch       `json:"start_time"`
	Running      bool         `json:"running"`
	TargetCount  int          `json:"target_count"`
	Queue        []QueuedItem `json:"items_queue"`
}

// HasCurrent reports whether an item is loaded
func (p ProductionState) HasCurrent() bool { return p.CurrentItem != "" }

// Report is an immutable record of one finished item
type Report struct {
	ID             string      `json:"id,omitempty" example:"1f0c8a52-3d0e-4c3b-9a55-0b1c7c2f8e11"`
	Item           string      `json:"item" example:"bracket-7"`
	SecondsPerItem int         `json:"seconds_per_item" example:"10"`
	Count          int         `json:"count" example:"5"`
	StartTime      string      `json:"start_time" example:"2024-01-15 08:00:00"`
	StopTime       string      `json:"stop_time" example:"2024-01-15 08:00:50"`
	TotalSeconds   int         `json:"total_seconds" example:"50"`
	Shift          shift.Shift `json:"shift" example:"B"`
}

// Date returns the YYYY-MM-DD prefix of the start time
func (r Report) Date() string { return prefix(r.StartTime, 10) }

// Month returns the YYYY-MM prefix of the start time
func (r Report) Month() string { return prefix(r.StartTime, 7) }

// ShiftOrFallback returns the recorded shift, or the fallback shift when absent
func (r Report) ShiftOrFallback() shift.Shift {
	if r.Shift == "" {
		return shift.Fallback
	}
	return r.Shift
}

func prefix(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

// Document is the whole persisted record
type Document struct {
	Production ProductionState `json:"production_data"`
	Reports    []Report        `json:"report_history"`
}

// DefaultDocument is the idle line with an empty queue and no history
func DefaultDocument() Document {
	return Document{
		Production: ProductionState{Queue: []QueuedItem{}},
		Reports:    []Report{},
	}
}

// DecodeDocument parses a persisted document
// empty input is the default document; anything undecodable is ErrMalformedState
func DecodeDocument(b []byte) (Document, error) {
	doc := DefaultDocument()
	if len(bytes.TrimSpace(b)) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return DefaultDocument(), perr.Wrapf(ErrMalformedState, perr.ErrorCodeStorage, "decode state: %v", err)
	}
	if doc.Production.Queue == nil {
		doc.Production.Queue = []QueuedItem{}
	}
	if doc.Reports == nil {
		doc.Reports = []Report{}
	}
	return doc, nil
}

// Clone returns a copy that shares no mutable memory with d
// report entries are immutable so the history only gets its capacity clipped
func (d Document) Clone() Document {
	out := d
	out.Production.Queue = append([]QueuedItem(nil), d.Production.Queue...)
	if out.Production.Queue == nil {
		out.Production.Queue = []QueuedItem{}
	}
	if d.Production.StartTime != nil {
		st := *d.Production.StartTime
		out.Production.StartTime = &st
	}
	out.Reports = d.Reports[:len(d.Reports):len(d.Reports)]
	return out
}
