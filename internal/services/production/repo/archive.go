package repo

import (
	"context"

	perr "linetrack/internal/platform/errors"
	"linetrack/internal/platform/store"
	"linetrack/internal/services/production/domain"
)

// DefaultArchiveTable receives finished reports when no table is configured
const DefaultArchiveTable = "production_reports"

// ArchiveColumns is the column order of every archived row
var ArchiveColumns = []string{
	"id", "item", "seconds_per_item", "count", "start_time", "stop_time", "total_seconds", "shift",
}

// NoopSink drops every report
type NoopSink struct{}

// Archive does nothing
func (NoopSink) Archive(context.Context, domain.Report) error { return nil }

// CHSink appends finished reports to a ClickHouse table
type CHSink struct {
	ch    store.Clickhouse
	table string
}

var _ domain.ReportSink = (*CHSink)(nil)

// NewCHSink returns a sink writing to table
func NewCHSink(ch store.Clickhouse, table string) *CHSink {
	if ch == nil {
		panic("production.CHSink requires a non nil Clickhouse")
	}
	if table == "" {
		table = DefaultArchiveTable
	}
	return &CHSink{ch: ch, table: table}
}

// Archive inserts a single row batch
func (s *CHSink) Archive(ctx context.Context, r domain.Report) error {
	row := []any{
		r.ID,
		r.Item,
		int32(r.SecondsPerItem),
		int32(r.Count),
		r.StartTime,
		r.StopTime,
		int64(r.TotalSeconds),
		string(r.ShiftOrFallback()),
	}
	if err := s.ch.Insert(ctx, s.table, [][]any{row}); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "archive report %s", r.ID)
	}
	return nil
}
