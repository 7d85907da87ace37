package http

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/pro-finder-service/internal/domain"
)

const (
	serviceName    = "API Pro Finder en cours d'exécution"
	serviceVersion = "1.0.0"
)

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": serviceName,
		"version": serviceVersion,
	})
}

func (s *Server) handleSuggestions(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, domain.Suggestions())
}

// handleSearchQuery serves GET /api/recherche-google. Every failure is a 400.
func (s *Server) handleSearchQuery(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q, err := buildQuery(
		searchParams{Keyword: params.Get("keyword"), City: params.Get("city")},
		func() (float64, error) { return parseRadius(params.Get("radius")) },
		s.opts.GeocodeCountry,
	)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	records, err := s.svc.Search(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeRecords(w, records)
}

// handleSearchJSON serves POST /search.
func (s *Server) handleSearchJSON(w http.ResponseWriter, r *http.Request) {
	var body searchBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	q, err := buildQuery(body.searchParams, func() (float64, error) { return parseJSONRadius(body.Radius) }, "")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	records, err := s.svc.Search(r.Context(), q)
	if err != nil {
		status := http.StatusInternalServerError
		switch domain.KindOf(err) {
		case domain.KindValidation, domain.KindNotFound:
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	writeRecords(w, records)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeExport(w, r)
	if !ok {
		return
	}
	file, err := s.svc.ExportCSV(r.Context(), body.Results, body.Keyword)
	if err != nil {
		writeError(w, exportStatus(err), err)
		return
	}
	writeFile(w, file)
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeExport(w, r)
	if !ok {
		return
	}
	file, err := s.svc.ExportXLSX(r.Context(), body.Results, body.Keyword)
	if err != nil {
		writeError(w, exportStatus(err), err)
		return
	}
	writeFile(w, file)
}

func (s *Server) handleExportWorkspace(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeExport(w, r)
	if !ok {
		return
	}
	created, err := s.svc.ExportWorkspace(r.Context(), body.Results, body.Keyword)
	if err != nil {
		status := exportStatus(err)
		if domain.KindOf(err) == domain.KindNotConfigured {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("%d entreprise(s) exportée(s) vers Notion", created),
	})
}

func (s *Server) handleExportSheets(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeExport(w, r)
	if !ok {
		return
	}
	url, err := s.svc.ExportSpreadsheet(r.Context(), body.Results, body.Keyword, body.City)
	if err != nil {
		writeError(w, exportStatus(err), err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"url":     url,
	})
}

func (s *Server) handleTestWorkspace(w http.ResponseWriter, r *http.Request) {
	info, err := s.svc.DescribeWorkspace(r.Context())
	if err != nil {
		s.logger.Warn("workspace probe failed", "error", err)
		sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   publicMessage(err),
		})
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"database_info": info,
	})
}

// buildQuery reports missing fields ahead of a bad radius.
func buildQuery(p searchParams, radius func() (float64, error), country string) (domain.SearchQuery, error) {
	if err := p.normalize(); err != nil {
		return domain.SearchQuery{}, err
	}
	km, err := radius()
	if err != nil {
		return domain.SearchQuery{}, err
	}
	return p.query(km, country), nil
}

func decodeExport(w http.ResponseWriter, r *http.Request) (exportBody, bool) {
	var body exportBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return exportBody{}, false
	}
	return body, true
}

func exportStatus(err error) int {
	if domain.KindOf(err) == domain.KindValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeRecords(w http.ResponseWriter, records []domain.BusinessRecord) {
	if records == nil {
		records = []domain.BusinessRecord{}
	}
	sharedobs.WriteJSON(w, http.StatusOK, records)
}

func writeFile(w http.ResponseWriter, file domain.ExportFile) {
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": publicMessage(err)})
}

// publicMessage picks the caller-facing text for err. Classified errors expose
// only their message; wrapped causes stay in the logs.
func publicMessage(err error) string {
	var e *domain.Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	return e.Message
}
