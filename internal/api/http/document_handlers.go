package http

import (
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/anud18/scholarship-system-sub000/internal/application"
	"github.com/anud18/scholarship-system-sub000/internal/metrics"
	"github.com/anud18/scholarship-system-sub000/internal/scholarship"
	"github.com/anud18/scholarship-system-sub000/internal/storage"
)

const maxUploadBytes = 20 << 20 // 20 MiB per file

// POST /applications/{appID}/documents/{name}  (multipart field "file")
func UploadDocumentHandler(store application.Store, blobs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := requireOwnDraft(r, store)
		if err != nil {
			httpError(w, err)
			return
		}
		docName := chi.URLParam(r, "name")

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "multipart field 'file' required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		fileID := uuid.NewString()
		key := path.Join("applications", a.ID, docName, fileID)
		if _, err := blobs.Put(key, f); err != nil {
			httpError(w, err)
			return
		}
		a, err = store.AttachFile(r.Context(), a.ID, docName, scholarship.UploadedFile{
			ID:   fileID,
			Name: hdr.Filename,
			Key:  key,
			Size: hdr.Size,
		})
		if err != nil {
			// keep the store authoritative: drop the orphaned blob
			_ = blobs.Delete(key)
			httpError(w, err)
			return
		}
		metrics.DocumentsUploaded.Inc()
		writeJSON(w, http.StatusCreated, a)
	}
}

// DELETE /applications/{appID}/documents/{name}/{fileID}
func DeleteDocumentHandler(store application.Store, blobs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := requireOwnDraft(r, store)
		if err != nil {
			httpError(w, err)
			return
		}
		docName := chi.URLParam(r, "name")
		fileID := chi.URLParam(r, "fileID")
		a, err = store.RemoveFile(r.Context(), a.ID, docName, fileID)
		if err != nil {
			httpError(w, err)
			return
		}
		_ = blobs.Delete(path.Join("applications", a.ID, docName, fileID))
		writeJSON(w, http.StatusOK, a)
	}
}

// GET /applications/{appID}/documents/{name}/{fileID}
func DownloadDocumentHandler(store application.Store, blobs storage.BlobStore) http.HandlerFunc {
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
		docName := chi.URLParam(r, "name")
		fileID := chi.URLParam(r, "fileID")
		var meta *scholarship.UploadedFile
		for i := range a.FileValues[docName] {
			if a.FileValues[docName][i].ID == fileID {
				meta = &a.FileValues[docName][i]
				break
			}
		}
		if meta == nil {
			http.Error(w, "file not found", http.StatusNotFound)
			return
		}
		rc, err := blobs.Get(meta.Key)
		if err != nil {
			http.Error(w, "file not found", http.StatusNotFound)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", meta.Name))
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = io.Copy(w, rc)
	}
}
