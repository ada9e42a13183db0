package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cours-de-latin/scansion"
	"github.com/cours-de-latin/scansion/internal/config"
)

const (
	seedLine    = "olli respondit rex Albai longai"
	brokenLine  = "tā tā tā tā tā tā tā tā tā tā tā tā tā tā"
	catullusOne = "Cui dono lepidum novum libellum"
)

func newTestRouter() http.Handler {
	return newRouter(&app{
		scanner:  scansion.New(),
		defaults: config.ScanConfig{Meter: scansion.Hexameter, Workers: 2, MaxLines: 10},
		maxBody:  1 << 20,
		logger:   slog.New(slog.DiscardHandler),
	})
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleScan(t *testing.T) {
	h := newTestRouter()

	rec := do(t, h, http.MethodGet, "/api/scan?line="+url.QueryEscape(seedLine), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var v scansion.Verse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.True(t, v.Valid)
	assert.Equal(t, scansion.Hexameter, v.Meter)
	assert.Equal(t, seedLine, v.Original)
	assert.Equal(t, 12, v.SyllableCount)
	assert.Equal(t, []string{scansion.NoteAllSpondees}, v.ScansionNotes)
}

func TestHandleScan_Hendecasyllable(t *testing.T) {
	h := newTestRouter()

	rec := do(t, h, http.MethodGet, "/api/scan?meter=Hendecasyllable&line="+url.QueryEscape(catullusOne), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var v scansion.Verse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.True(t, v.Valid)
	assert.Equal(t, scansion.Hendecasyllable, v.Meter)
	assert.Equal(t, 11, v.SyllableCount)
}

func TestHandleScan_Errors(t *testing.T) {
	h := newTestRouter()

	tests := []struct {
		name   string
		method string
		target string
		status int
		errMsg string
	}{
		{"missing line", http.MethodGet, "/api/scan", http.StatusBadRequest, "missing 'line'"},
		{"blank line", http.MethodGet, "/api/scan?line=%20%20", http.StatusBadRequest, "missing 'line'"},
		{"unknown meter", http.MethodGet, "/api/scan?meter=sapphic&line=arma", http.StatusBadRequest, "unknown meter"},
		{"no vowel", http.MethodGet, "/api/scan?line=brr%20pst", http.StatusUnprocessableEntity, ""},
		{"wrong method", http.MethodPost, "/api/scan?line=arma", http.StatusMethodNotAllowed, "GET required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.target, "")
			assert.Equal(t, tt.status, rec.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
			if tt.errMsg != "" {
				assert.Contains(t, resp.Error, tt.errMsg)
			}
		})
	}
}

func TestHandleScan_Options(t *testing.T) {
	h := newTestRouter()

	target := "/api/scan?optional_transform=true&line=" + url.QueryEscape(seedLine)
	rec := do(t, h, http.MethodGet, target, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var v scansion.Verse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Contains(t, v.ScansionNotes, scansion.NoteOptionalTransform)
}

func TestHandleScanText(t *testing.T) {
	h := newTestRouter()

	body, err := json.Marshal(map[string]string{
		"text": seedLine + "\n\n" + brokenLine + "\nbrr pst\n",
	})
	require.NoError(t, err)

	rec := do(t, h, http.MethodPost, "/api/scan/text", string(body))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp scanTextResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, scansion.Hexameter, resp.Meter)
	assert.Equal(t, 1, resp.Valid)
	require.Len(t, resp.Results, 3)

	assert.Equal(t, seedLine, resp.Results[0].Line)
	require.NotNil(t, resp.Results[0].Verse)
	assert.True(t, resp.Results[0].Verse.Valid)

	require.NotNil(t, resp.Results[1].Verse)
	assert.False(t, resp.Results[1].Verse.Valid)
	assert.Equal(t, 1, resp.Results[1].Index)

	assert.Nil(t, resp.Results[2].Verse)
	assert.NotEmpty(t, resp.Results[2].Error)
}

func TestHandleScanText_Errors(t *testing.T) {
	h := newTestRouter()

	tooMany := strings.Repeat(seedLine+"\n", 11)
	tooManyBody, err := json.Marshal(map[string]string{"text": tooMany})
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		body   string
		status int
	}{
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed},
		{"not json", http.MethodPost, "arma virumque", http.StatusBadRequest},
		{"empty text", http.MethodPost, `{"text":"  "}`, http.StatusBadRequest},
		{"unknown meter", http.MethodPost, `{"text":"arma","meter":"sapphic"}`, http.StatusBadRequest},
		{"too many lines", http.MethodPost, string(tooManyBody), http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, "/api/scan/text", tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandleMeters(t *testing.T) {
	h := newTestRouter()

	rec := do(t, h, http.MethodGet, "/api/meters", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp metersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Meters, 2)
	assert.Equal(t, scansion.Hendecasyllable, resp.Meters[0].Name)
	assert.Equal(t, 11, resp.Meters[0].MinSyllables)
	assert.Len(t, resp.Meters[0].Templates, 3)
	assert.Equal(t, scansion.Hexameter, resp.Meters[1].Name)
	assert.Equal(t, 12, resp.Meters[1].MinSyllables)
	assert.Equal(t, 17, resp.Meters[1].MaxSyllables)
	assert.Len(t, resp.Meters[1].Templates, 32)
}

func TestHandleHealth(t *testing.T) {
	rec := do(t, newTestRouter(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSplitLines(t *testing.T) {
	got := splitLines("  arma virumque \n\n\t\ncano\r\n")
	assert.Equal(t, []string{"arma virumque", "cano"}, got)
	assert.Nil(t, splitLines(" \n "))
}
