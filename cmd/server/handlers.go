package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/cours-de-latin/scansion"
	"github.com/cours-de-latin/scansion/internal/config"
)

// app holds what the handlers share.
type app struct {
	scanner  *scansion.Scanner
	defaults config.ScanConfig
	maxBody  int64
	logger   *slog.Logger
}

// ---- JSON response types ------------------------------------------------

type lineResultJSON struct {
	Index int             `json:"index"`
	Line  string          `json:"line"`
	Verse *scansion.Verse `json:"verse,omitempty"`
	Error string          `json:"error,omitempty"`
}

type scanTextResponse struct {
	Meter   string           `json:"meter"`
	Valid   int              `json:"valid"`
	Results []lineResultJSON `json:"results"`
}

type meterJSON struct {
	Name         string   `json:"name"`
	MinSyllables int      `json:"min_syllables"`
	MaxSyllables int      `json:"max_syllables"`
	Templates    []string `json:"templates"`
}

type metersResponse struct {
	Meters []meterJSON `json:"meters"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func (a *app) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("encode response", slog.Any("error", err))
	}
}

func (a *app) writeError(w http.ResponseWriter, status int, msg string) {
	a.writeJSON(w, status, errorResponse{Error: msg})
}

// scanStatus maps a scan error to its HTTP status.
func scanStatus(err error) int {
	switch {
	case errors.Is(err, scansion.ErrUnknownMeter):
		return http.StatusBadRequest
	case errors.Is(err, scansion.ErrUnscannable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// options reads optional_transform and dactyl_smoothing from the query,
// falling back to the configured defaults.
func (a *app) options(r *http.Request) scansion.Options {
	opts := scansion.Options{
		OptionalTransform: a.defaults.OptionalTransform,
		DactylSmoothing:   a.defaults.DactylSmoothing,
	}
	q := r.URL.Query()
	if b, err := strconv.ParseBool(q.Get("optional_transform")); err == nil {
		opts.OptionalTransform = b
	}
	if b, err := strconv.ParseBool(q.Get("dactyl_smoothing")); err == nil {
		opts.DactylSmoothing = b
	}
	return opts
}

func (a *app) meter(name string) string {
	if name == "" {
		return a.defaults.Meter
	}
	return strings.ToLower(name)
}

// splitLines returns the non-blank lines of text.
func splitLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// ---- handlers -----------------------------------------------------------

func handleScan(a *app) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			a.writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		line := r.URL.Query().Get("line")
		if strings.TrimSpace(line) == "" {
			a.writeError(w, http.StatusBadRequest, "missing 'line' query parameter")
			return
		}

		verse, err := a.scanner.Scan(line, a.meter(r.URL.Query().Get("meter")), a.options(r))
		if err != nil {
			a.writeError(w, scanStatus(err), err.Error())
			return
		}
		a.writeJSON(w, http.StatusOK, verse)
	}
}

func handleScanText(a *app) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			a.writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var body struct {
			Text              string `json:"text"`
			Meter             string `json:"meter"`
			OptionalTransform *bool  `json:"optional_transform"`
			DactylSmoothing   *bool  `json:"dactyl_smoothing"`
		}
		r.Body = http.MaxBytesReader(w, r.Body, a.maxBody)
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Text) == "" {
			a.writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'text' field")
			return
		}
		lines := splitLines(body.Text)
		if len(lines) > a.defaults.MaxLines {
			a.writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("too many lines: %d > %d", len(lines), a.defaults.MaxLines))
			return
		}

		opts := a.options(r)
		if body.OptionalTransform != nil {
			opts.OptionalTransform = *body.OptionalTransform
		}
		if body.DactylSmoothing != nil {
			opts.DactylSmoothing = *body.DactylSmoothing
		}
		meter := a.meter(body.Meter)

		results, err := a.scanner.ScanLines(r.Context(), lines, meter, opts, a.defaults.Workers)
		if err != nil {
			a.writeError(w, scanStatus(err), err.Error())
			return
		}
		resp := scanTextResponse{Meter: meter, Results: make([]lineResultJSON, 0, len(results))}
		for _, res := range results {
			lr := lineResultJSON{Index: res.Index, Line: lines[res.Index], Verse: res.Verse}
			if res.Err != nil {
				lr.Error = res.Err.Error()
			} else if res.Verse.Valid {
				resp.Valid++
			}
			resp.Results = append(resp.Results, lr)
		}
		a.writeJSON(w, http.StatusOK, resp)
	}
}

func handleMeters(a *app) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			a.writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		meters := a.scanner.Meters()
		out := make([]meterJSON, 0, len(meters))
		for _, m := range meters {
			out = append(out, meterJSON{
				Name:         m.Name,
				MinSyllables: m.MinSyllables,
				MaxSyllables: m.MaxSyllables,
				Templates:    m.Templates(),
			})
		}
		a.writeJSON(w, http.StatusOK, metersResponse{Meters: out})
	}
}

func handleHealth(a *app) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func newRouter(a *app) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/scan/text", handleScanText(a))
	mux.HandleFunc("/api/scan", handleScan(a))
	mux.HandleFunc("/api/meters", handleMeters(a))
	mux.HandleFunc("/healthz", handleHealth(a))
	return mux
}
