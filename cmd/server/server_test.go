package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Simplici0/heatquote/internal/db"
	"github.com/Simplici0/heatquote/internal/estimate"
	"github.com/Simplici0/heatquote/internal/migrations"
	"github.com/Simplici0/heatquote/internal/norms"
	"github.com/Simplici0/heatquote/internal/projectfile"
	"github.com/Simplici0/heatquote/internal/seed"
	"github.com/Simplici0/heatquote/internal/store"
)

const goldenDocument = `{
  "systems": [{
    "id": "sys-1",
    "name": "Отопление",
    "default_laying": "floor",
    "default_pipe_material": "PEX-AL-PEX",
    "default_diameter": "16",
    "hubs": [{"id": "hub-1", "name": "К1", "mode": "manifold", "outputs": 8, "loop_length_m": 20,
              "laying": "floor", "material": "PEX-AL-PEX", "diameter": "25"}]
  }],
  "units": [{"id": "r-1", "room": "Гостиная", "type": "panel", "connection": "bottom", "supply_len_m": 20,
             "laying": "floor", "options": {"bottom_unit": true, "wall_connection": true}}],
  "commissioning": false
}`

func newTestServer(t *testing.T) *server {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, migrations.Up(database))
	_, err = seed.Run(database)
	require.NoError(t, err)

	return &server{
		store:  store.New(database),
		engine: estimate.New(nil),
		log:    zap.NewNop(),
	}
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealthz(t *testing.T) {
	rr := do(t, newTestServer(t).routes(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestEstimate_GoldenDocument(t *testing.T) {
	rr := do(t, newTestServer(t).routes(), http.MethodPost, "/estimate", goldenDocument)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Summary struct {
			Total estimate.Result `json:"total"`
			Hubs  []struct {
				Hours float64 `json:"hours"`
				Hub   struct {
					Mode string `json:"mode"`
				} `json:"hub"`
			} `json:"hubs"`
		} `json:"summary"`
		Table estimate.Table `json:"table"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.InDelta(t, 13.32, resp.Summary.Total.Hours, 1e-9)
	assert.InDelta(t, 19980, resp.Summary.Total.Cost, 1e-6)
	require.Len(t, resp.Summary.Hubs, 1)
	assert.Equal(t, "manifold", resp.Summary.Hubs[0].Hub.Mode)
	assert.Equal(t, "Итого", resp.Table.Totals[0])
}

func TestEstimate_UsesStoredSettingsWithoutProjectBlock(t *testing.T) {
	srv := newTestServer(t)
	h := srv.routes()

	rr := do(t, h, http.MethodPost, "/settings",
		`{"title":"Дом","hourly_rates":{"expert":2000,"master":1500,"assistant":1000},"factors":{"wall":"concrete","congestion":"none","distance_km":0}}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(t, h, http.MethodPost, "/estimate", goldenDocument)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp estimateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	// Concrete is 1.3 instead of brick's 1.2.
	assert.InDelta(t, 13.32/1.2*1.3, resp.Summary.Total.Hours, 1e-9)
	assert.Equal(t, "Дом", resp.Table.Title)
}

func TestEstimate_BadRequests(t *testing.T) {
	h := newTestServer(t).routes()

	cases := map[string]string{
		"not json":      `{`,
		"unknown field": `{"systemz": []}`,
		"unknown mode":  `{"systems":[{"hubs":[{"mode":"ring"}]}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/estimate", body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestEstimateTextReturnsPlainText(t *testing.T) {
	rr := do(t, newTestServer(t).routes(), http.MethodPost, "/estimate/text", goldenDocument)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/plain")
	body := rr.Body.String()
	for _, expected := range []string{"Коллектор К1", "Отопительный прибор (Гостиная)", "Итого: 13 ч 19 мин"} {
		assert.Contains(t, body, expected)
	}
}

func TestEstimatePlan(t *testing.T) {
	rr := do(t, newTestServer(t).routes(), http.MethodPost, "/estimate/plan", goldenDocument)
	require.Equal(t, http.StatusOK, rr.Code)

	var plan estimate.Plan
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &plan))
	assert.Len(t, plan.Steps, 5)
	assert.Equal(t, 1, plan.Units)
}

func TestEstimateExports(t *testing.T) {
	h := newTestServer(t).routes()

	rr := do(t, h, http.MethodPost, "/estimate/pdf", goldenDocument)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rr.Body.String(), "%PDF-"))

	rr = do(t, h, http.MethodPost, "/estimate/xlsx", goldenDocument)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "estimate.xlsx")
	assert.True(t, strings.HasPrefix(rr.Body.String(), "PK"))
}

func TestSettings(t *testing.T) {
	h := newTestServer(t).routes()

	rr := do(t, h, http.MethodGet, "/settings", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var p estimate.Project
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, estimate.DefaultProject(), p)

	invalid := []string{
		`{"hourly_rates":{"expert":-1},"factors":{"wall":"brick","congestion":"none"}}`,
		`{"factors":{"wall":"adobe","congestion":"none"}}`,
		`{"factors":{"wall":"brick","congestion":"extreme"}}`,
		`{"factors":{"wall":"brick","congestion":"none","distance_km":-3}}`,
	}
	for _, body := range invalid {
		rr := do(t, h, http.MethodPost, "/settings", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
	}
}

func TestEstimatesSaveListAndDetail(t *testing.T) {
	srv := newTestServer(t)
	h := srv.routes()

	body := `{"title":"Коттедж","notes":"вариант А","document":` + goldenDocument + `}`
	rr := do(t, h, http.MethodPost, "/estimates", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created store.Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	rr = do(t, h, http.MethodGet, "/estimates?q="+url.QueryEscape("вариант"), "")
	require.Equal(t, http.StatusOK, rr.Code)
	var items []store.SnapshotItem
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.InDelta(t, 19980, items[0].Total.Cost, 1e-6)

	rr = do(t, h, http.MethodGet, "/estimates?q=nothing", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	// Detail handler reads the snapshot as stored.
	req := httptest.NewRequest(http.MethodGet, "/estimates/"+created.ID, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", created.ID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()
	srv.handleEstimateDetail(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var detail store.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "Коттедж", detail.Title)
	assert.Equal(t, "вариант А", detail.Notes)

	var totals store.Totals
	require.NoError(t, json.Unmarshal(detail.Totals, &totals))
	assert.InDelta(t, 13.32, totals.Total.Hours, 1e-9)
}

func TestEstimatesSaveStoresResolvedDocument(t *testing.T) {
	srv := newTestServer(t)
	h := srv.routes()

	rr := do(t, h, http.MethodPost, "/settings",
		`{"title":"Дом","hourly_rates":{"expert":3000,"master":2000,"assistant":1000},"factors":{"wall":"concrete","congestion":"medium","distance_km":25}}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	withoutIDs := `{"systems":[{"name":"Отопление","default_laying":"floor","hubs":[{"name":"К1","mode":"manifold","outputs":2,"loop_length_m":5}]}],` +
		`"units":[{"room":"Спальня","type":"panel","connection":"side","supply_len_m":4}]}`
	rr = do(t, h, http.MethodPost, "/estimates", `{"title":"Без ID","document":`+withoutIDs+`}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var snap store.Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))

	var doc projectfile.Document
	require.NoError(t, json.Unmarshal(snap.Document, &doc))
	require.NotNil(t, doc.Project)
	assert.Equal(t, norms.WallConcrete, doc.Project.Factors.Wall)
	assert.InDelta(t, 25, doc.Project.Factors.DistanceKm, 1e-9)
	require.Len(t, doc.Systems, 1)
	assert.NotEmpty(t, doc.Systems[0].ID)
	assert.NotEmpty(t, doc.Systems[0].Hubs[0].ID)
	require.Len(t, doc.Units, 1)
	assert.NotEmpty(t, doc.Units[0].ID)

	// Re-evaluating the stored document alone gives the stored totals.
	in, err := doc.Input()
	require.NoError(t, err)
	var totals store.Totals
	require.NoError(t, json.Unmarshal(snap.Totals, &totals))
	assert.Equal(t, totals.Total, srv.engine.Aggregate(in).Total)

	var breakdown estimate.Summary
	require.NoError(t, json.Unmarshal(snap.Breakdown, &breakdown))
	require.Len(t, breakdown.Units, 1)
	assert.Equal(t, doc.Units[0].ID, breakdown.Units[0].Unit.ID)
}

func TestEstimateDetailNotFound(t *testing.T) {
	rr := do(t, newTestServer(t).routes(), http.MethodGet, "/estimates/missing", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
