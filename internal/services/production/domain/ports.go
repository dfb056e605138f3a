package domain

import "context"

// StateStore persists the whole document and overwrites it atomically
type StateStore interface {
	Load(ctx context.Context) (Document, error)
	Save(ctx context.Context, doc Document) error
}

// ReportSink receives finished reports after they are committed
type ReportSink interface {
	Archive(ctx context.Context, r Report) error
}

// ServicePort is consumed by handlers and the CLI
type ServicePort interface {
	Poll(ctx context.Context) (Progress, error)
	Peek(ctx context.Context) (Progress, error)
	Start(ctx context.Context) (StateView, error)
	Stop(ctx context.Context) (StateView, error)
	AddItem(ctx context.Context, in AddItemInput) (StateView, error)
	Item(ctx context.Context, idx int) (QueuedItem, error)
	EditItem(ctx context.Context, idx int, in EditItemInput) (StateView, error)
	DeleteItem(ctx context.Context, idx int) (StateView, error)
	State(ctx context.Context) (StateView, error)
	CurrentShift(ctx context.Context) (ShiftView, error)
}

// HistoryPort exposes the report history to other modules
// the returned slice is a snapshot and must not be mutated
type HistoryPort interface {
	History(ctx context.Context) ([]Report, error)
}
