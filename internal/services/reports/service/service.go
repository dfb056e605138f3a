// Package service answers report queries over the production history
package service

import (
	"context"

	"linetrack/internal/adapters/xlsx"
	"linetrack/internal/core/shift"
	"linetrack/internal/platform/logger"
	"linetrack/internal/services/reports/domain"
)

// ExportSheet is the sheet name inside the export workbook
const ExportSheet = "Report"

// ExportColumns is the header row of the export workbook
var ExportColumns = []string{"item", "seconds_per_item", "count", "start_time", "stop_time", "total_seconds", "shift"}

// Renderer turns a table into workbook bytes
type Renderer func(xlsx.Table) ([]byte, error)

// Service defines the reports service contract
type Service = domain.ServicePort

// Svc implements the reports service
type Svc struct {
	src    domain.HistorySource
	render Renderer
	log    *logger.Logger
}

// Option configures a Svc
type Option func(*Svc)

// WithRenderer overrides the workbook renderer
func WithRenderer(r Renderer) Option { return func(s *Svc) { s.render = r } }

// WithLogger overrides the component logger
func WithLogger(l *logger.Logger) Option { return func(s *Svc) { s.log = l } }

// New constructs a reports service reading from src
func New(src domain.HistorySource, opts ...Option) *Svc {
	if src == nil {
		panic("reports.Service requires a non nil HistorySource")
	}
	s := &Svc{src: src, render: xlsx.Render}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = logger.Named("reports")
	}
	return s
}

// List returns the filtered history, empty until a filter is chosen
func (s *Svc) List(ctx context.Context, q domain.Query) ([]domain.Report, error) {
	h, err := s.src.History(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(h, q, domain.ModeList), nil
}

// Totals sums count and seconds per shift over the whole history
func (s *Svc) Totals(ctx context.Context) ([]domain.ShiftTotal, error) {
	h, err := s.src.History(ctx)
	if err != nil {
		return nil, err
	}
	return Totals(h), nil
}

// Totals is the pure form of Svc.Totals, always one row per shift in A B C order
// a report without a shift counts toward the fallback shift
func Totals(history []domain.Report) []domain.ShiftTotal {
	out := []domain.ShiftTotal{{Shift: shift.A}, {Shift: shift.B}, {Shift: shift.C}}
	idx := map[shift.Shift]int{shift.A: 0, shift.B: 1, shift.C: 2}
	for _, r := range history {
		i, ok := idx[r.ShiftOrFallback()]
		if !ok {
			continue
		}
		out[i].Count += r.Count
		out[i].TotalSeconds += r.TotalSeconds
	}
	return out
}

// Export renders the filtered history, the whole history when no filter is chosen
func (s *Svc) Export(ctx context.Context, q domain.Query) (domain.Export, error) {
	h, err := s.src.History(ctx)
	if err != nil {
		return domain.Export{}, err
	}
	rows := Filter(h, q, domain.ModeExport)
	if len(rows) == 0 {
		logger.C(ctx).Debug().Msg("export matched no reports")
		return domain.Export{NoData: true}, nil
	}

	body, err := s.render(Table(rows))
	if err != nil {
		s.log.Error().Err(err).Int("rows", len(rows)).Msg("export render failed")
		return domain.Export{}, err
	}
	logger.C(ctx).Info().Int("rows", len(rows)).Int("bytes", len(body)).Msg("report exported")
	return domain.Export{
		FileName:    domain.ExportFileName,
		ContentType: xlsx.ContentType,
		Body:        body,
		Rows:        len(rows),
	}, nil
}

// Table lays reports out in export column order
func Table(reports []domain.Report) xlsx.Table {
	t := xlsx.Table{Sheet: ExportSheet, Header: ExportColumns, Rows: make([][]any, len(reports))}
	for i, r := range reports {
		t.Rows[i] = []any{r.Item, r.SecondsPerItem, r.Count, r.StartTime, r.StopTime, r.TotalSeconds, string(r.Shift)}
	}
	return t
}
