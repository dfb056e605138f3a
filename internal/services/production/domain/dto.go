package domain

import "linetrack/internal/core/shift"

// AddItemInput schedules an item at the back of the queue
type AddItemInput struct {
	Name         string `json:"item" validate:"required,max=200" example:"bracket-7"`
	CycleSeconds int    `json:"seconds" validate:"required,min=1" example:"10"`
	TargetCount  int    `json:"target_count" validate:"min=0" example:"5"`
	Shift        string `json:"shift,omitempty" validate:"omitempty,oneof=A B C" example:"A"`
}

// EditItemInput replaces one queue entry
type EditItemInput struct {
	Name         string `json:"item" validate:"required,max=200" example:"bracket-7"`
	CycleSeconds int    `json:"seconds" validate:"required,min=1" example:"12"`
	TargetCount  int    `json:"target_count" validate:"min=0" example:"8"`
}

// Source tells which record a display view was projected from
type Source string

const (
	// SourceCurrent is the live current item
	SourceCurrent Source = "current"
	// SourceLastQueued is the preview of the last queued item while idle
	SourceLastQueued Source = "last_queued"
)

// Progress is what a live viewer polls for
type Progress struct {
	Item           string `json:"current_item" example:"bracket-7"`
	CycleSeconds   int    `json:"time_in_sec" example:"10"`
	Count          int    `json:"count" example:"4"`
	TargetCount    int    `json:"target_count" example:"5"`
	ElapsedSeconds int    `json:"elapsed_seconds" example:"49"`
	Running        bool   `json:"running" example:"true"`
	Source         Source `json:"source" example:"current"`
}

// StateView is the production record with its queue
type StateView struct {
	CurrentItem  string       `json:"current_item" example:"bracket-7"`
	CycleSeconds int          `json:"time_in_sec" example:"10"`
	Count        int          `json:"count" example:"0"`
	TargetCount  int          `json:"target_count" example:"5"`
	Running      bool         `json:"running" example:"false"`
	StartedAt    string       `json:"started_at,omitempty" example:"2024-01-15 08:00:00"`
	Queue        []QueuedItem `json:"items_queue"`
}

// ShiftView is the shift for the current wall clock
type ShiftView struct {
	Shift shift.Shift `json:"shift" example:"B"`
	At    string      `json:"at" example:"2024-01-15 08:00:00"`
}
