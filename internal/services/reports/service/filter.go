package service

import "linetrack/internal/services/reports/domain"

// Filter returns the reports matching q in history order
// an inactive query yields nothing in list mode and the whole history in export mode.
// The shift filter compares the recorded label, so a report without one never matches
func Filter(history []domain.Report, q domain.Query, mode domain.Mode) []domain.Report {
	if !q.Active() {
		if mode == domain.ModeExport {
			return append([]domain.Report{}, history...)
		}
		return []domain.Report{}
	}

	byDate := q.FromDate != "" && q.ToDate != ""
	byMonth := q.ReportType == domain.TypeMonth && q.Month != ""
	byShift := q.ReportType == domain.TypeShift && q.Shift != ""

	out := make([]domain.Report, 0, len(history))
	for _, r := range history {
		if byDate {
			d := r.Date()
			if d < q.FromDate || d > q.ToDate {
				continue
			}
		}
		if byMonth && r.Month() != q.Month {
			continue
		}
		if byShift && string(r.Shift) != q.Shift {
			continue
		}
		out = append(out, r)
	}
	return out
}
