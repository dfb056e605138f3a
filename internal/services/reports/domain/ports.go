package domain

import "context"

// HistorySource yields the report history in completion order
type HistorySource interface {
	History(ctx context.Context) ([]Report, error)
}

// ServicePort is consumed by handlers and the CLI
type ServicePort interface {
	List(ctx context.Context, q Query) ([]Report, error)
	Totals(ctx context.Context) ([]ShiftTotal, error)
	Export(ctx context.Context, q Query) (Export, error)
}
