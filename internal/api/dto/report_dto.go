package dto

import (
	"github.com/spec-kit/cdce-console/internal/export"
	"github.com/spec-kit/cdce-console/internal/report"
)

// ReportResponse carries a composed report and its display lines.
type ReportResponse struct {
	report.Report
	Lines []string `json:"lines"`
}

func NewReportResponse(r report.Report) ReportResponse {
	return ReportResponse{Report: r, Lines: r.Lines()}
}

// ReportStatus tells the client whether a generation is running and
// whether a report is ready to show.
type ReportStatus struct {
	Generating bool `json:"generating"`
	Available  bool `json:"available"`
}

// ShareResponse is a link the client opens to hand off content.
type ShareResponse struct {
	Format export.Format `json:"format"`
	URL    string        `json:"url"`
}
