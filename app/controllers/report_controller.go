package controllers

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/vitrine/app/services"
	"github.com/shashiranjanraj/vitrine/pkg/logger"
	"github.com/shashiranjanraj/vitrine/pkg/response"
)

// ReportController serves the superadmin sales reports. The routes sit
// behind the JWT auth middleware with the superadmin role required.
type ReportController struct {
	reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{reports: reports}
}

// parseRange reads from/to query params (YYYY-MM-DD), defaulting to the
// last 30 days.
func parseRange(r *http.Request) (time.Time, time.Time, bool) {
	q := r.URL.Query()
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	if s := q.Get("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
		from = t
	}
	if s := q.Get("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
		to = t
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// Sales handles GET /api/admin/reports/sales?from=...&to=...
func (c *ReportController) Sales(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseRange(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid date range")
		return
	}

	report, err := c.reports.Sales(r.Context(), from, to)
	if err != nil {
		logger.WithCtx(r.Context()).Error("reports: sales", "error", err)
		response.Error(w, http.StatusBadGateway, "order data is unavailable")
		return
	}
	response.Success(w, report)
}

// Export handles POST /api/admin/reports/sales/export: builds the
// report, writes the CSV to storage and returns its URL.
func (c *ReportController) Export(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseRange(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid date range")
		return
	}

	report, err := c.reports.Sales(r.Context(), from, to)
	if err != nil {
		logger.WithCtx(r.Context()).Error("reports: export", "error", err)
		response.Error(w, http.StatusBadGateway, "order data is unavailable")
		return
	}

	url, err := c.reports.ExportCSV(report)
	if err != nil {
		logger.WithCtx(r.Context()).Error("reports: export csv", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not store export")
		return
	}
	response.Created(w, map[string]string{"url": url})
}
