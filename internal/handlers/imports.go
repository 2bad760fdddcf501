// Package handlers holds HTTP handlers that sit apart from the core server
// methods, currently the CSV import endpoints.
package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"assetflow-api/pkg/importer"
)

// ImportsHandler handles CSV import operations
type ImportsHandler struct {
	Store    importer.AssetCreator
	MaxBytes int64
}

// NewImportsHandler creates a new imports handler
func NewImportsHandler(store importer.AssetCreator) *ImportsHandler {
	return &ImportsHandler{
		Store:    store,
		MaxBytes: 20 << 20, // 20 MB
	}
}

// ImportCSV handles CSV file uploads for asset import
func (h *ImportsHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	// Limit body size
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)

	// Require multipart
	if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
		http.Error(w, "content-type must be multipart/form-data", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		http.Error(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	t := importer.TemplateType(r.FormValue("template"))
	if !importer.ValidTemplate(t) {
		http.Error(w, "template is required and must be one of: "+strings.Join(templateNames(), ", "), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !isCSV(header.Filename) {
		http.Error(w, "only .csv files are accepted", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read file: "+err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := importer.Run(r.Context(), h.Store, string(data), t)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// DownloadTemplate serves the example CSV for one template type
func (h *ImportsHandler) DownloadTemplate(w http.ResponseWriter, r *http.Request) {
	t := importer.TemplateType(chi.URLParam(r, "type"))
	filename, content, err := importer.TemplateCSV(t)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write([]byte(content)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func isCSV(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".csv")
}

func templateNames() []string {
	types := importer.TemplateTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}
