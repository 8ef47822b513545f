package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/anud18/scholarship-system-sub000/internal/application"
	"github.com/anud18/scholarship-system-sub000/internal/audit"
	"github.com/anud18/scholarship-system-sub000/internal/auth"
	"github.com/anud18/scholarship-system-sub000/internal/metrics"
	"github.com/anud18/scholarship-system-sub000/internal/rbac"
	"github.com/anud18/scholarship-system-sub000/internal/scholarship"
)

type createApplicationRequest struct {
	ScholarshipCode string `json:"scholarship_code" validate:"required,max=64"`
}

// POST /applications
func CreateApplicationHandler(store application.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createApplicationRequest
		if err := decodeValid(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		a, err := store.CreateDraft(r.Context(),
			auth.SubjectFromContext(r.Context()),
			auth.CollegeFromContext(r.Context()),
			req.ScholarshipCode)
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, a)
	}
}

// GET /applications
func ListMyApplicationsHandler(store application.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apps, err := store.ListByUser(r.Context(), auth.SubjectFromContext(r.Context()))
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, apps)
	}
}

func canView(r *http.Request, a application.Application) bool {
	if a.UserID == auth.SubjectFromContext(r.Context()) {
		return true
	}
	return rbac.HasPermission(rbac.RoleFromContext(r.Context()), "application:view-all")
}

// GET /applications/{appID}
func GetApplicationHandler(store application.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := store.Get(r.Context(), chi.URLParam(r, "appID"))
		if err != nil {
			httpError(w, err)
			return
		}
		if !canView(r, a) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

// GET /applications/{appID}/progress
func ProgressHandler(store application.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := store.Get(r.Context(), chi.URLParam(r, "appID"))
		if err != nil {
			httpError(w, err)
			return
		}
		if !canView(r, a) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"progress": a.Progress})
	}
}

type saveFormRequest struct {
	FormValues scholarship.FormValues `json:"form_values"`
	AgreeTerms bool                   `json:"agree_terms"`
}

// PUT /applications/{appID}/form
func SaveFormHandler(store application.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saveFormRequest
		if err := decodeValid(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		a, err := requireOwnDraft(r, store)
		if err != nil {
			httpError(w, err)
			return
		}
		a, err = store.SaveForm(r.Context(), a.ID, req.FormValues, req.AgreeTerms)
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

// POST /applications/{appID}/subtypes/{value}
//
// Out-of-order hierarchical toggles return 200 with the unchanged
// selection; the wizard treats them as no-ops, never as errors.
func ToggleSubTypeHandler(store application.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := requireOwnDraft(r, store)
		if err != nil {
			httpError(w, err)
			return
		}
		a, err = store.ToggleSubType(r.Context(), a.ID, chi.URLParam(r, "value"))
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

type changeScholarshipRequest struct {
	ScholarshipCode string `json:"scholarship_code" validate:"required,max=64"`
}

// PUT /applications/{appID}/scholarship
func ChangeScholarshipHandler(store application.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req changeScholarshipRequest
		if err := decodeValid(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		a, err := requireOwnDraft(r, store)
		if err != nil {
			httpError(w, err)
			return
		}
		a, err = store.ChangeScholarship(r.Context(), a.ID, req.ScholarshipCode)
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

// POST /applications/{appID}/submit
func SubmitHandler(store application.Store, log *audit.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := requireOwnDraft(r, store)
		if err != nil {
			httpError(w, err)
			return
		}
		a, err = store.Submit(r.Context(), a.ID)
		if err != nil {
			httpError(w, err)
			return
		}
		metrics.ApplicationsSubmitted.Inc()
		_ = log.Append(r.Context(), audit.TypeApplicationSubmitted, a.ID, map[string]any{
			"user_id":          a.UserID,
			"scholarship_code": a.ScholarshipCode,
			"sub_types":        a.SubTypes,
		})
		writeJSON(w, http.StatusOK, a)
	}
}

// requireOwnDraft loads the application and checks the requester owns it.
func requireOwnDraft(r *http.Request, store application.Store) (application.Application, error) {
	a, err := store.Get(r.Context(), chi.URLParam(r, "appID"))
	if err != nil {
		return application.Application{}, err
	}
	if a.UserID != auth.SubjectFromContext(r.Context()) {
		return application.Application{}, application.ErrNotFound
	}
	return a, nil
}
