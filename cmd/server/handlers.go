package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Simplici0/marsloop/internal/balance"
	"github.com/Simplici0/marsloop/internal/regional"
	"github.com/Simplici0/marsloop/internal/regolith"
	"github.com/Simplici0/marsloop/internal/sources"
	"github.com/Simplici0/marsloop/internal/store"
)

const maxBodyBytes = 1 << 20

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "regolith api running"})
}

// handleRegolithProfile never fails on a missing site: clients get the
// marked fallback profile instead.
func (s *server) handleRegolithProfile(w http.ResponseWriter, r *http.Request) {
	site, err := regolith.NormalizeSite(r.URL.Query().Get("site"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.regolith.Profile(r.Context(), site)
	if err != nil {
		if !errors.Is(err, regolith.ErrNotFound) {
			s.logger.Warn("regolith profile lookup failed", zap.String("site", site), zap.Error(err))
		}
		p = regolith.Fallback()
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *server) handleRegolithSites(w http.ResponseWriter, r *http.Request) {
	sites, err := s.store.Sites(r.Context())
	if err != nil {
		s.logger.Error("list regolith sites", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load regolith sites")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sites": sites})
}

func (s *server) handleRegolithUpsert(w http.ResponseWriter, r *http.Request) {
	site, err := regolith.NormalizeSite(chi.URLParam(r, "site"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var p balance.RegolithProfile
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid regolith profile payload")
		return
	}
	if strings.TrimSpace(p.Site) == "" {
		writeError(w, http.StatusBadRequest, "site name is required")
		return
	}

	if err := s.store.UpsertProfile(r.Context(), site, p); err != nil {
		s.logger.Error("upsert regolith profile", zap.String("site", site), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save regolith profile")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *server) handleFilament(w http.ResponseWriter, r *http.Request) {
	f, err := s.store.Filament(r.Context())
	if err != nil {
		s.logger.Error("load filament store", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load filament store")
		return
	}
	writeJSON(w, http.StatusOK, filamentView(f))
}

func (s *server) handleFilamentUpdate(w http.ResponseWriter, r *http.Request) {
	var f balance.FilamentStore
	if err := decodeJSON(w, r, &f); err != nil {
		writeError(w, http.StatusBadRequest, "invalid filament payload")
		return
	}
	if err := validateFilament(f); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stored, err := s.store.SetFilament(r.Context(), f)
	if err != nil {
		s.logger.Error("update filament store", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to update filament store")
		return
	}
	writeJSON(w, http.StatusOK, filamentView(stored))
}

type filamentResponse struct {
	balance.FilamentStore
	HeadroomKg float64 `json:"headroom_kg"`
	Saturated  bool    `json:"saturated"`
}

func filamentView(f balance.FilamentStore) filamentResponse {
	return filamentResponse{FilamentStore: f, HeadroomKg: f.HeadroomKg(), Saturated: f.Saturated()}
}

func validateFilament(f balance.FilamentStore) error {
	if !isFinite(f.CurrentKg) || f.CurrentKg < 0 {
		return errors.New("current_kg must be a number >= 0")
	}
	if !isFinite(f.CapacityKg) || f.CapacityKg <= 0 {
		return errors.New("capacity_kg must be a number > 0")
	}
	return nil
}

// evaluateRequest overlays the request body on the default inputs. A
// missing filament or profile is resolved from storage.
type evaluateRequest struct {
	balance.Inputs
	Filament *balance.FilamentStore `json:"filament"`
	Save     bool                   `json:"save"`
	Title    string                 `json:"title"`
	Notes    string                 `json:"notes"`
}

type evaluateResponse struct {
	RunID  string         `json:"run_id,omitempty"`
	Inputs balance.Inputs `json:"inputs"`
	Result balance.Result `json:"result"`
}

func (s *server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	req := evaluateRequest{Inputs: balance.DefaultInputs()}
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid evaluation payload")
		return
	}

	t, err := balance.ParseRegolithType(string(req.RegolithType))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in := req.Inputs
	in.RegolithType = t
	if req.Filament != nil {
		in.Filament = *req.Filament
	}

	in, err = s.gatherer.Resolve(r.Context(), in, sources.Request{
		Profile:  true,
		Filament: req.Filament == nil,
	})
	if err != nil {
		s.logger.Error("resolve evaluation inputs", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to resolve evaluation inputs")
		return
	}

	resp := evaluateResponse{Inputs: in, Result: balance.Evaluate(in)}
	if _, err := json.Marshal(resp.Result); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "inputs are too large to produce finite results")
		return
	}
	if req.Save {
		id, err := s.store.SaveRun(r.Context(), strings.TrimSpace(req.Title), strings.TrimSpace(req.Notes), in, resp.Result)
		if err != nil {
			s.logger.Error("save evaluation run", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save evaluation run")
			return
		}
		resp.RunID = id
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleRunsList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	runs, err := s.store.ListRuns(r.Context(), query)
	if err != nil {
		s.logger.Error("list evaluation runs", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load runs")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"query": query, "runs": runs})
}

func (s *server) handleRunDetail(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.Run(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		s.logger.Error("load evaluation run", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load run")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

type regionalResponse struct {
	Latitude      float64          `json:"latitude"`
	Longitude     float64          `json:"longitude"`
	MeasuredSolar bool             `json:"measured_solar"`
	Inputs        regional.Inputs  `json:"inputs"`
	Metrics       regional.Metrics `json:"metrics"`
}

func (s *server) handleRegional(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := parseQueryFloat(q.Get("lat"), "lat", regional.DefaultLatitude)
	if err == nil && (lat < -90 || lat > 90) {
		err = errors.New("lat must be between -90 and 90")
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	lon, err := parseQueryFloat(q.Get("lon"), "lon", regional.DefaultLongitude)
	if err == nil && (lon < -180 || lon > 180) {
		err = errors.New("lon must be between -180 and 180")
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	intake, err := parseQueryFloat(q.Get("intake"), "intake", regional.DefaultIntakeKgDay)
	if err == nil && intake < 0 {
		err = errors.New("intake must be >= 0")
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	days := regional.DefaultProjectionDays
	if raw := q.Get("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil || days < 1 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
	}

	irradiance, measured := s.gatherer.Irradiance(r.Context(), lat, lon)
	in := regional.Inputs{
		WasteIntakeKgDay:   intake,
		ProjectionDays:     days,
		IrradianceKWhM2Day: irradiance,
	}
	writeJSON(w, http.StatusOK, regionalResponse{
		Latitude:      lat,
		Longitude:     lon,
		MeasuredSolar: measured,
		Inputs:        in,
		Metrics:       regional.Calculate(in),
	})
}

func parseQueryFloat(raw, field string, fallback float64) (float64, error) {
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || !isFinite(value) {
		return 0, fmt.Errorf("%s must be numeric", field)
	}
	return value, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeJSON encodes v before writing the status so an unencodable value
// becomes a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		buf.WriteString(`{"error":"failed to encode response"}` + "\n")
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
