package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/anud18/scholarship-system-sub000/internal/scholarship"
)

// GET /scholarships
func ListScholarshipsHandler(cat scholarship.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		types, err := cat.ListTypes(r.Context())
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, types)
	}
}

// GET /scholarships/{code}
func GetScholarshipHandler(cat scholarship.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := cat.GetType(r.Context(), chi.URLParam(r, "code"))
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

// GET /scholarships/{code}/schema
//
// 404 until the admin configures a schema; the wizard shows progress 0
// in that window.
func GetSchemaHandler(cat scholarship.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		if _, err := cat.GetType(r.Context(), code); err != nil {
			httpError(w, err)
			return
		}
		s, err := cat.GetSchema(r.Context(), code)
		if err != nil {
			httpError(w, err)
			return
		}
		if s == nil {
			http.Error(w, "schema not configured", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

type putScholarshipRequest struct {
	Name                 string                      `json:"name" validate:"required"`
	NameEN               string                      `json:"name_en"`
	EligibleSubTypes     []scholarship.SubTypeOption `json:"eligible_sub_types"`
	SubTypeSelectionMode scholarship.SelectionMode   `json:"sub_type_selection_mode"`
}

// PUT /admin/scholarships/{code}
func PutScholarshipHandler(cat scholarship.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req putScholarshipRequest
		if err := decodeValid(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		t := scholarship.ScholarshipType{
			Code:                 chi.URLParam(r, "code"),
			Name:                 req.Name,
			NameEN:               req.NameEN,
			EligibleSubTypes:     req.EligibleSubTypes,
			SubTypeSelectionMode: req.SubTypeSelectionMode.Normalize(),
		}
		if err := cat.PutType(r.Context(), t); err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

// PUT /admin/scholarships/{code}/schema
func PutSchemaHandler(cat scholarship.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var s scholarship.FormSchema
		if err := decodeValid(r, &s); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := cat.PutSchema(r.Context(), chi.URLParam(r, "code"), s); err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}
