// Package domain holds report queries, shift totals and the export contract
package domain

import (
	"linetrack/internal/core/shift"
	proddomain "linetrack/internal/services/production/domain"
)

// Report is a finished item as recorded by the production line
type Report = proddomain.Report

// Report type selectors for Query.ReportType
const (
	TypeMonth = "month"
	TypeShift = "shift"
)

// Query narrows the report history
// dates compare on the YYYY-MM-DD prefix of start_time and apply only as a pair
type Query struct {
	FromDate   string `json:"from_date,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2024-01-01"`
	ToDate     string `json:"to_date,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2024-01-31"`
	ReportType string `json:"report_type,omitempty" validate:"omitempty,oneof=month shift" example:"month"`
	Month      string `json:"month,omitempty" validate:"omitempty,datetime=2006-01" example:"2024-01"`
	Shift      string `json:"shift,omitempty" validate:"omitempty,oneof=A B C" example:"B"`
}

// Active reports whether any parameter that switches filtering on was given
func (q Query) Active() bool {
	return q.FromDate != "" || q.ToDate != "" || q.ReportType != ""
}

// Mode picks the default applied when a query is not active
type Mode int

const (
	// ModeList yields nothing until a filter is chosen
	ModeList Mode = iota
	// ModeExport yields the whole history when no filter is chosen
	ModeExport
)

// ShiftTotal sums finished work for one shift
type ShiftTotal struct {
	Shift        shift.Shift `json:"shift" example:"B"`
	Count        int         `json:"count" example:"120"`
	TotalSeconds int         `json:"total_seconds" example:"1200"`
}

// NoDataMessage is shown when an export matches nothing
const NoDataMessage = "No data to export"

// ExportFileName is the download name of the export workbook
const ExportFileName = "production_report.xlsx"

// Export is a rendered workbook, or the no data marker when nothing matched
type Export struct {
	NoData      bool
	FileName    string
	ContentType string
	Body        []byte
	Rows        int
}

// NoDataView is the body returned instead of an empty workbook
type NoDataView struct {
	Message string `json:"message" example:"No data to export"`
}
