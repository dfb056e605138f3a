package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"linetrack/internal/adapters/xlsx"
	"linetrack/internal/core/shift"
	perr "linetrack/internal/platform/errors"
	"linetrack/internal/services/reports/domain"
)

type fixedHistory struct {
	reports []domain.Report
	err     error
}

func (f fixedHistory) History(context.Context) ([]domain.Report, error) { return f.reports, f.err }

func TestNew_PanicsOnNilSource(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	New(nil)
}

func TestList_EmptyByDefault(t *testing.T) {
	s := New(fixedHistory{reports: history})
	got, err := s.List(context.Background(), domain.Query{})
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("List = %v, %v", got, err)
	}
	got, _ = s.List(context.Background(), domain.Query{ReportType: domain.TypeShift, Shift: "A"})
	if items(got) != "c" {
		t.Fatalf("List shift A = %q", items(got))
	}
}

func TestExport_WholeHistoryWorkbook(t *testing.T) {
	s := New(fixedHistory{reports: history[:2]})
	out, err := s.Export(context.Background(), domain.Query{})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if out.NoData || out.Rows != 2 || out.FileName != "production_report.xlsx" || out.ContentType != xlsx.ContentType {
		t.Fatalf("Export = %+v", out)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out.Body))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows("Report")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %v", rows)
	}
	for i, col := range ExportColumns {
		if rows[0][i] != col {
			t.Fatalf("header[%d] = %q want %q", i, rows[0][i], col)
		}
	}
	if rows[2][0] != "b" || rows[2][3] != "2024-01-01 08:00:00" || rows[2][6] != string(shift.B) {
		t.Fatalf("row 2 = %v", rows[2])
	}
}

func TestExport_NoData(t *testing.T) {
	rendered := false
	s := New(fixedHistory{reports: history}, WithRenderer(func(xlsx.Table) ([]byte, error) {
		rendered = true
		return nil, nil
	}))
	out, err := s.Export(context.Background(), domain.Query{ReportType: domain.TypeMonth, Month: "1999-01"})
	if err != nil || !out.NoData || out.Body != nil {
		t.Fatalf("Export = %+v, %v", out, err)
	}
	if rendered {
		t.Fatalf("renderer called for an empty export")
	}

	out, _ = New(fixedHistory{}).Export(context.Background(), domain.Query{})
	if !out.NoData {
		t.Fatalf("empty history should export no data")
	}
}

func TestExport_RenderError(t *testing.T) {
	boom := errors.New("disk full")
	s := New(fixedHistory{reports: history}, WithRenderer(func(xlsx.Table) ([]byte, error) { return nil, boom }))
	if _, err := s.Export(context.Background(), domain.Query{}); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestSourceErrorsPassThrough(t *testing.T) {
	boom := perr.New(perr.ErrorCodeUnavailable, "load production state")
	s := New(fixedHistory{err: boom})
	if _, err := s.List(context.Background(), domain.Query{FromDate: "2024-01-01"}); !errors.Is(err, boom) {
		t.Fatalf("List err = %v", err)
	}
	if _, err := s.Totals(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Totals err = %v", err)
	}
	if _, err := s.Export(context.Background(), domain.Query{}); !errors.Is(err, boom) {
		t.Fatalf("Export err = %v", err)
	}
}

func TestTable_ColumnOrder(t *testing.T) {
	tb := Table([]domain.Report{{Item: "x", SecondsPerItem: 10, Count: 5, StartTime: "s", StopTime: "e", TotalSeconds: 50}})
	row := tb.Rows[0]
	if tb.Sheet != "Report" || row[0] != "x" || row[1] != 10 || row[2] != 5 || row[5] != 50 || row[6] != "" {
		t.Fatalf("table = %+v", tb)
	}
}
