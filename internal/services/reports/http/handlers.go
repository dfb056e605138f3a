// Package http provides http transport for report queries and export
package http

import (
	stdhttp "net/http"
	"strings"

	"linetrack/internal/modkit/httpkit"
	"linetrack/internal/platform/net/http/bind"
	"linetrack/internal/services/reports/domain"
)

// Register mounts report endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	// empty until a filter is chosen
	httpkit.Get(r, "/", h.list)

	httpkit.Get(r, "/totals", h.totals)

	// whole history when no filter is chosen
	httpkit.Get(r, "/export", h.export)
}

type handlers struct{ svc domain.ServicePort }

// queryOf reads and validates the filter parameters from the url
func queryOf(r *stdhttp.Request) (domain.Query, error) {
	v := r.URL.Query()
	q := domain.Query{
		FromDate:   strings.TrimSpace(v.Get("from_date")),
		ToDate:     strings.TrimSpace(v.Get("to_date")),
		ReportType: strings.TrimSpace(v.Get("report_type")),
		Month:      strings.TrimSpace(v.Get("month")),
		Shift:      strings.TrimSpace(v.Get("shift")),
	}
	if err := bind.Validate(q); err != nil {
		return domain.Query{}, err
	}
	return q, nil
}

// swagger:route GET /reports Reports reportsList
// @Summary Filtered report history
// @Description Filtering switches on when from_date, to_date or report_type is given; otherwise
// @Description the list is empty. Dates apply only as a pair, month only with report_type=month
// @Description and shift only with report_type=shift.
// @Tags Reports
// @Produce json
// @Param from_date query string false "YYYY-MM-DD, inclusive"
// @Param to_date query string false "YYYY-MM-DD, inclusive"
// @Param report_type query string false "month or shift"
// @Param month query string false "YYYY-MM"
// @Param shift query string false "A, B or C"
// @Success 200 {array} domain.Report "ok"
// @Failure 400 {object} httpkit.Envelope "bad filter"
// @Router /reports [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	q, err := queryOf(r)
	if err != nil {
		return nil, err
	}
	return h.svc.List(r.Context(), q)
}

// swagger:route GET /reports/totals Reports reportsTotals
// @Summary Units and seconds per shift over the whole history
// @Tags Reports
// @Produce json
// @Success 200 {array} domain.ShiftTotal "ok"
// @Router /reports/totals [get]
func (h *handlers) totals(r *stdhttp.Request) (any, error) {
	return h.svc.Totals(r.Context())
}

// swagger:route GET /reports/export Reports reportsExport
// @Summary Download reports as a spreadsheet
// @Description Takes the same filters as the list but exports the whole history when none is
// @Description given. Returns a message instead of a file when nothing matches.
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce json
// @Param from_date query string false "YYYY-MM-DD, inclusive"
// @Param to_date query string false "YYYY-MM-DD, inclusive"
// @Param report_type query string false "month or shift"
// @Param month query string false "YYYY-MM"
// @Param shift query string false "A, B or C"
// @Success 200 {file} file "production_report.xlsx"
// @Failure 400 {object} httpkit.Envelope "bad filter"
// @Router /reports/export [get]
func (h *handlers) export(r *stdhttp.Request) (any, error) {
	q, err := queryOf(r)
	if err != nil {
		return nil, err
	}
	out, err := h.svc.Export(r.Context(), q)
	if err != nil {
		return nil, err
	}
	if out.NoData {
		return domain.NoDataView{Message: domain.NoDataMessage}, nil
	}
	return httpkit.File(out.FileName, out.ContentType, out.Body), nil
}
