package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/anud18/scholarship-system-sub000/internal/api/http"
	"github.com/anud18/scholarship-system-sub000/internal/application"
	"github.com/anud18/scholarship-system-sub000/internal/auth"
	"github.com/anud18/scholarship-system-sub000/internal/quota"
	"github.com/anud18/scholarship-system-sub000/internal/rbac"
	"github.com/anud18/scholarship-system-sub000/internal/scholarship"
)

// asUser injects the identity that the JWT middleware would have set.
func asUser(sub, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := auth.WithSubject(r.Context(), sub)
			ctx = rbac.WithRole(ctx, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newRouter(store application.Store, sub, role string) chi.Router {
	r := chi.NewRouter()
	r.Use(asUser(sub, role))
	r.Post("/applications", api.CreateApplicationHandler(store))
	r.Get("/applications/{appID}", api.GetApplicationHandler(store))
	r.Get("/applications/{appID}/progress", api.ProgressHandler(store))
	r.Put("/applications/{appID}/form", api.SaveFormHandler(store))
	r.Post("/applications/{appID}/subtypes/{value}", api.ToggleSubTypeHandler(store))
	return r
}

func seed(t *testing.T) (scholarship.Catalog, application.Store) {
	t.Helper()
	ctx := context.Background()
	cat := scholarship.NewMemoryCatalog()
	require.NoError(t, cat.PutType(ctx, scholarship.ScholarshipType{
		Code: "phd",
		Name: "PhD Scholarship",
		EligibleSubTypes: []scholarship.SubTypeOption{
			{Value: "nstc", Label: "NSTC"},
			{Value: "moe", Label: "MOE"},
		},
		SubTypeSelectionMode: scholarship.SelectionHierarchical,
	}))
	require.NoError(t, cat.PutSchema(ctx, "phd", scholarship.FormSchema{
		Fields: []scholarship.Field{{Name: "advisor", IsActive: true, IsRequired: true}},
	}))
	return cat, application.NewMemoryStore(cat)
}

func doJSON(t *testing.T, r chi.Router, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWizardFlow(t *testing.T) {
	_, store := seed(t)
	r := newRouter(store, "u1", "student")

	w := doJSON(t, r, http.MethodPost, "/applications", map[string]string{"scholarship_code": "phd"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var a application.Application
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &a))
	// required: advisor, selection, terms = 3
	assert.Equal(t, 0, a.Progress)

	// out-of-order hierarchical toggle: 200, selection unchanged
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/applications/%s/subtypes/moe", a.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &a))
	assert.Empty(t, a.SubTypes)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/applications/%s/subtypes/nstc", a.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &a))
	assert.Equal(t, []string{"nstc"}, a.SubTypes)
	assert.Equal(t, 33, a.Progress)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/applications/%s/form", a.ID), map[string]any{
		"form_values": map[string]any{"advisor": "Prof. Hsu"},
		"agree_terms": true,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &a))
	assert.Equal(t, 100, a.Progress)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/applications/%s/progress", a.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"progress":100}`, w.Body.String())
}

func TestOwnershipIsEnforced(t *testing.T) {
	_, store := seed(t)
	owner := newRouter(store, "u1", "student")

	w := doJSON(t, owner, http.MethodPost, "/applications", map[string]string{"scholarship_code": "phd"})
	require.Equal(t, http.StatusCreated, w.Code)
	var a application.Application
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &a))

	stranger := newRouter(store, "u2", "student")
	w = doJSON(t, stranger, http.MethodGet, "/applications/"+a.ID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(t, stranger, http.MethodPut, fmt.Sprintf("/applications/%s/form", a.ID), map[string]any{"agree_terms": true})
	assert.Equal(t, http.StatusNotFound, w.Code, "edits by non-owners must not leak existence")

	reviewer := newRouter(store, "r1", "reviewer")
	w = doJSON(t, reviewer, http.MethodGet, "/applications/"+a.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code, "view-all roles may read")
}

func TestCreateUnknownScholarship(t *testing.T) {
	_, store := seed(t)
	r := newRouter(store, "u1", "student")
	w := doJSON(t, r, http.MethodPost, "/applications", map[string]string{"scholarship_code": "nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuotaSummaryHandler(t *testing.T) {
	ctx := context.Background()
	quotas := quota.NewMemoryStore()
	require.NoError(t, quotas.PutCell(ctx, "phd", "nstc", "C", quota.Cell{TotalQuota: 5, UsedQuota: 5}))
	require.NoError(t, quotas.PutCell(ctx, "phd", "nstc", "E", quota.Cell{TotalQuota: 4, UsedQuota: 0}))

	r := chi.NewRouter()
	r.Get("/quotas/{code}/summary", api.QuotaSummaryHandler(quotas))
	w := doJSON(t, r, http.MethodGet, "/quotas/phd/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		TotalQuota int         `json:"total_quota"`
		TotalUsed  int         `json:"total_used"`
		Usage      int         `json:"usage_percentage"`
		Color      quota.Color `json:"color"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 9, got.TotalQuota)
	assert.Equal(t, 5, got.TotalUsed)
	assert.Equal(t, 56, got.Usage)
	assert.Equal(t, quota.ColorYellow, got.Color)
}
