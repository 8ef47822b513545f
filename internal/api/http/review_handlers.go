package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/anud18/scholarship-system-sub000/internal/application"
	"github.com/anud18/scholarship-system-sub000/internal/audit"
	"github.com/anud18/scholarship-system-sub000/internal/auth"
	"github.com/anud18/scholarship-system-sub000/internal/metrics"
	"github.com/anud18/scholarship-system-sub000/internal/quota"
	"github.com/anud18/scholarship-system-sub000/internal/scholarship"
)

// GET /review/applications?status=submitted
func ListForReviewHandler(store application.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := application.Status(r.URL.Query().Get("status"))
		if status == "" {
			status = application.StatusSubmitted
		}
		apps, err := store.ListByStatus(r.Context(), status)
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, apps)
	}
}

// POST /review/applications/{appID}/claim
func ClaimHandler(store application.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := store.SetStatus(r.Context(),
			chi.URLParam(r, "appID"),
			application.StatusUnderReview,
			auth.SubjectFromContext(r.Context()), "")
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

type decisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
	Note     string `json:"note" validate:"max=2000"`
}

// POST /review/applications/{appID}/decision
//
// Approval consumes one quota slot for the applicant's college row of the
// first selected sub-type (the sentinel row when nothing is selectable).
func DecideHandler(store application.Store, quotas quota.Store, log *audit.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req decisionRequest
		if err := decodeValid(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		to := application.StatusApproved
		if req.Decision == "reject" {
			to = application.StatusRejected
		}
		a, err := store.SetStatus(r.Context(),
			chi.URLParam(r, "appID"), to,
			auth.SubjectFromContext(r.Context()), req.Note)
		if err != nil {
			httpError(w, err)
			return
		}
		metrics.Reviews.WithLabelValues(req.Decision).Inc()
		_ = log.Append(r.Context(), audit.TypeStatusChanged, a.ID, map[string]any{
			"status":      a.Status,
			"reviewed_by": a.ReviewedBy,
			"note":        a.ReviewNote,
		})
		if to == application.StatusApproved {
			subType := scholarship.GeneralSubType
			if len(a.SubTypes) > 0 {
				subType = a.SubTypes[0]
			}
			if err := quotas.IncrementUsed(r.Context(), a.ScholarshipCode, subType, a.College); err != nil {
				httpError(w, err)
				return
			}
			_ = log.Append(r.Context(), audit.TypeQuotaConsumed, a.ID, map[string]any{
				"scholarship_code": a.ScholarshipCode,
				"sub_type":         subType,
				"college":          a.College,
			})
		}
		writeJSON(w, http.StatusOK, a)
	}
}
