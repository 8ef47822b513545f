package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/anud18/scholarship-system-sub000/internal/audit"
	"github.com/anud18/scholarship-system-sub000/internal/metrics"
	"github.com/anud18/scholarship-system-sub000/internal/quota"
)

// GET /quotas/{code}
func GetQuotaMatrixHandler(store quota.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := store.Matrix(r.Context(), chi.URLParam(r, "code"))
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

type cellSummary struct {
	SubType string      `json:"sub_type"`
	College string      `json:"college"`
	Cell    quota.Cell  `json:"cell"`
	Usage   int         `json:"usage_percentage"`
	Color   quota.Color `json:"color"`
}

type quotaSummary struct {
	ScholarshipCode string        `json:"scholarship_code"`
	TotalQuota      int           `json:"total_quota"`
	TotalUsed       int           `json:"total_used"`
	Usage           int           `json:"usage_percentage"`
	Color           quota.Color   `json:"color"`
	Cells           []cellSummary `json:"cells"`
}

// GET /quotas/{code}/summary
//
// The dashboard payload: grand totals plus per-cell usage and severity
// bucket, all derived with the pure aggregation helpers.
func QuotaSummaryHandler(store quota.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		m, err := store.Matrix(r.Context(), code)
		if err != nil {
			httpError(w, err)
			return
		}
		total := quota.CalculateTotalQuota(m)
		used := quota.CalculateTotalUsed(m)
		usage := quota.CalculateUsagePercentage(used, total)
		out := quotaSummary{
			ScholarshipCode: code,
			TotalQuota:      total,
			TotalUsed:       used,
			Usage:           usage,
			Color:           quota.StatusColor(usage),
		}
		for subType, colleges := range m.PhdQuotas {
			for college, c := range colleges {
				u := quota.CalculateUsagePercentage(c.UsedQuota, c.TotalQuota)
				out.Cells = append(out.Cells, cellSummary{
					SubType: subType,
					College: college,
					Cell:    c,
					Usage:   u,
					Color:   quota.StatusColor(u),
				})
			}
		}
		metrics.QuotaUsagePercent.WithLabelValues(code).Set(float64(usage))
		writeJSON(w, http.StatusOK, out)
	}
}

type putCellRequest struct {
	TotalQuota int `json:"total_quota" validate:"min=0"`
	UsedQuota  int `json:"used_quota" validate:"min=0"`
}

// PUT /admin/quotas/{code}/{subType}/{college}
func PutQuotaCellHandler(store quota.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req putCellRequest
		if err := decodeValid(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		err := store.PutCell(r.Context(),
			chi.URLParam(r, "code"),
			chi.URLParam(r, "subType"),
			chi.URLParam(r, "college"),
			quota.Cell{TotalQuota: req.TotalQuota, UsedQuota: req.UsedQuota})
		if err != nil {
			httpError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /admin/audit?after=0&limit=100
func AuditListHandler(log *audit.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		after, _ := strconv.ParseInt(r.URL.Query().Get("after"), 10, 64)
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		events, err := log.List(r.Context(), after, limit)
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, events)
	}
}
