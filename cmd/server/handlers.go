package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Simplici0/heatquote/internal/estimate"
	"github.com/Simplici0/heatquote/internal/export"
	"github.com/Simplici0/heatquote/internal/projectfile"
	"github.com/Simplici0/heatquote/internal/store"
)

const maxBodyBytes = 1 << 20

type estimateResponse struct {
	Summary estimate.Summary `json:"summary"`
	Table   estimate.Table   `json:"table"`
}

type saveEstimateRequest struct {
	Title    string               `json:"title"`
	Notes    string               `json:"notes"`
	Document projectfile.Document `json:"document"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleNorms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Norms())
}

func (s *server) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Settings(r.Context())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusOK, estimate.DefaultProject())
			return
		}
		s.log.Error("load settings", zap.Error(err))
		http.Error(w, "failed to load settings", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *server) handleSettingsSave(w http.ResponseWriter, r *http.Request) {
	var p estimate.Project
	if err := decodeJSON(r, &p); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.validateProject(p); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.store.SaveSettings(r.Context(), p); err != nil {
		s.log.Error("save settings", zap.Error(err))
		http.Error(w, "failed to save settings", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	in, ok := s.readInput(w, r)
	if !ok {
		return
	}
	sum := s.evaluate(in)
	writeJSON(w, http.StatusOK, estimateResponse{Summary: sum, Table: s.engine.BuildTable(in.Project, sum)})
}

func (s *server) handleEstimateText(w http.ResponseWriter, r *http.Request) {
	in, ok := s.readInput(w, r)
	if !ok {
		return
	}
	sum := s.evaluate(in)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, s.engine.TextReport(in.Project, sum))
}

func (s *server) handleEstimatePlan(w http.ResponseWriter, r *http.Request) {
	in, ok := s.readInput(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.engine.InstallPlan(in))
}

func (s *server) handleEstimatePDF(w http.ResponseWriter, r *http.Request) {
	s.writeExport(w, r, export.GeneratePDF, "application/pdf", "pdf")
}

func (s *server) handleEstimateExcel(w http.ResponseWriter, r *http.Request) {
	s.writeExport(w, r, export.GenerateExcel, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx")
}

func (s *server) writeExport(w http.ResponseWriter, r *http.Request, generate func(export.Report) ([]byte, error), contentType, ext string) {
	in, ok := s.readInput(w, r)
	if !ok {
		return
	}
	data, err := generate(s.report(in, s.evaluate(in)))
	if err != nil {
		s.log.Error("export", zap.String("format", ext), zap.Error(err))
		http.Error(w, "failed to generate document", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="estimate.%s"`, ext))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *server) handleEstimatesCreate(w http.ResponseWriter, r *http.Request) {
	var req saveEstimateRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	in, err := s.documentInput(r, req.Document)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = in.Project.Title
	}
	// The resolved document carries the project and IDs the figures were
	// computed with.
	resolved := projectfile.FromInput(in)
	snap, err := s.store.SaveEstimate(r.Context(), title, strings.TrimSpace(req.Notes), resolved, s.evaluate(in))
	if err != nil {
		s.log.Error("save estimate", zap.Error(err))
		http.Error(w, "failed to save estimate", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (s *server) handleEstimatesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	items, err := s.store.ListEstimates(r.Context(), query)
	if err != nil {
		s.log.Error("list estimates", zap.Error(err))
		http.Error(w, "failed to load estimates", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *server) handleEstimateDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.store.Estimate(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.log.Error("load estimate", zap.String("id", id), zap.Error(err))
		http.Error(w, "failed to load estimate", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// readInput decodes the request body as a project document. On failure it
// has already written the response.
func (s *server) readInput(w http.ResponseWriter, r *http.Request) (estimate.Input, bool) {
	var doc projectfile.Document
	if err := decodeJSON(r, &doc); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return estimate.Input{}, false
	}
	in, err := s.documentInput(r, doc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return estimate.Input{}, false
	}
	return in, true
}

// documentInput converts doc; a document without a project block is
// evaluated with the stored settings.
func (s *server) documentInput(r *http.Request, doc projectfile.Document) (estimate.Input, error) {
	in, err := doc.Input()
	if err != nil {
		return estimate.Input{}, err
	}
	if doc.Project == nil {
		p, err := s.store.Settings(r.Context())
		switch {
		case err == nil:
			in.Project = p
		case errors.Is(err, store.ErrNotFound):
		default:
			s.log.Warn("load settings, using defaults", zap.Error(err))
		}
	}
	return in, nil
}

func (s *server) evaluate(in estimate.Input) estimate.Summary {
	sum := s.engine.Aggregate(in)
	for _, w := range sum.Warnings {
		s.log.Warn("unknown coefficient key",
			zap.String("entity", w.Entity),
			zap.String("field", w.Field),
			zap.String("key", w.Key),
		)
	}
	for _, a := range sum.Advisories {
		s.log.Warn("advisory", zap.String("code", a.Code), zap.String("system", a.SystemID), zap.String("message", a.Message))
	}
	return sum
}

func (s *server) report(in estimate.Input, sum estimate.Summary) export.Report {
	notes := make([]string, 0, len(sum.Advisories))
	for _, a := range sum.Advisories {
		notes = append(notes, a.Message)
	}
	return export.Report{
		Table:       s.engine.BuildTable(in.Project, sum),
		CreatedDate: time.Now().Format("02.01.2006"),
		Notes:       notes,
	}
}

func (s *server) validateProject(p estimate.Project) error {
	rates := []struct {
		field string
		value float64
	}{
		{"hourly_rates.expert", p.Rates.Expert},
		{"hourly_rates.master", p.Rates.Master},
		{"hourly_rates.assistant", p.Rates.Assistant},
		{"factors.distance_km", p.Factors.DistanceKm},
	}
	for _, r := range rates {
		if err := nonNegative(r.value, r.field); err != nil {
			return err
		}
	}
	t := s.engine.Norms()
	if _, ok := t.Wall(p.Factors.Wall); !ok {
		return fmt.Errorf("factors.wall: unknown value %q", p.Factors.Wall)
	}
	if _, ok := t.Congestion(p.Factors.Congestion); !ok {
		return fmt.Errorf("factors.congestion: unknown value %q", p.Factors.Congestion)
	}
	return nil
}

func nonNegative(value float64, field string) error {
	if value < 0 {
		return fmt.Errorf("%s must be greater than or equal to 0", field)
	}
	return nil
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
