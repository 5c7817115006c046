package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/analyzer"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/catalog"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/linkparse"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/metrics"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/model"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/saved"
)

type stubAnalyzer struct {
	results []model.PartAnalysis

	vehicle model.Vehicle
	parts   []string
}

func (s *stubAnalyzer) Report(ctx context.Context, vehicle model.Vehicle, partNames []string) model.Report {
	s.vehicle = vehicle
	s.parts = partNames
	return model.Report{
		ID:          "test-report",
		Vehicle:     vehicle,
		GeneratedAt: time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC),
		Results:     s.results,
		Summary: model.ReportSummary{
			TotalParts:  len(s.results),
			VehicleInfo: vehicle.Info(),
		},
	}
}

type stubParser struct {
	res linkparse.Result
	err error
}

func (p stubParser) Parse(ctx context.Context, listingURL string) (*linkparse.Result, error) {
	if p.err != nil {
		return nil, p.err
	}
	res := p.res
	res.URL = listingURL
	return &res, nil
}

func newTestServer(t *testing.T) *apiServer {
	t.Helper()

	store, err := saved.Open(filepath.Join(t.TempDir(), "saved.json"))
	require.NoError(t, err)

	return &apiServer{
		analyzer: &stubAnalyzer{},
		parser:   stubParser{},
		catalog: catalog.New([]catalog.Entry{
			{Name: "headlight", Price: 40},
			{Name: "hood", Price: 85},
			{Name: "radio", Price: 25},
		}),
		store:   store,
		lists:   analyzer.DefaultPartLists(),
		metrics: metrics.New(),
	}
}

func doJSON(t *testing.T, h http.Handler, method, target string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if raw, ok := body.([]byte); ok {
		reader = bytes.NewReader(raw)
	} else if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var resp map[string]any
	if rr.Body.Len() > 0 && rr.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	}
	return rr, resp
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	rr, resp := doJSON(t, newTestServer(t).router(), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", resp["status"])
}

func TestRouter_Analyze(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	stub := &stubAnalyzer{results: []model.PartAnalysis{
		{PartName: "headlight", SoldCount: 12, Tier: model.TierHigh},
	}}
	srv.analyzer = stub

	rr, resp := doJSON(t, srv.router(), http.MethodPost, "/api/analyze", map[string]any{
		"year":  "2013",
		"make":  "Honda",
		"model": "Accord",
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, resp["success"])
	assert.Len(t, resp["results"], 1)
	assert.Equal(t, "2013 Honda Accord", resp["summary"].(map[string]any)["vehicle_info"])

	// Default filter narrows the catalog in priority-table order.
	assert.Equal(t, []string{"radio", "headlight", "hood"}, stub.parts)
	assert.Equal(t, model.VehicleTypeCar, stub.vehicle.Type)
}

func TestRouter_Analyze_ExplicitParts(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	stub := &stubAnalyzer{}
	srv.analyzer = stub

	rr, _ := doJSON(t, srv.router(), http.MethodPost, "/api/analyze", map[string]any{
		"year":  "2015",
		"make":  "Ford",
		"model": "F-150",
		"parts": []string{"tailgate", "mirror"},
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"tailgate", "mirror"}, stub.parts)
}

func TestRouter_Analyze_MissingVehicle(t *testing.T) {
	t.Parallel()

	rr, resp := doJSON(t, newTestServer(t).router(), http.MethodPost, "/api/analyze", map[string]any{
		"year": "2013",
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, false, resp["success"])
	assert.Contains(t, resp["error"], "required")
}

func TestRouter_Analyze_InvalidJSON(t *testing.T) {
	t.Parallel()

	rr, resp := doJSON(t, newTestServer(t).router(), http.MethodPost, "/api/analyze", []byte("not json"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid request body", resp["error"])
}

func TestRouter_FilterResults(t *testing.T) {
	t.Parallel()

	fv := func(v float64) *float64 { return &v }
	results := []model.PartAnalysis{
		{PartName: "headlight", ROI: fv(7.5), SoldCount: 3},
		{PartName: "hood", ROI: fv(2.0), SoldCount: 9},
		{PartName: "radio", SoldCount: 1},
	}

	t.Run("roi filter uses default floor", func(t *testing.T) {
		t.Parallel()

		rr, resp := doJSON(t, newTestServer(t).router(), http.MethodPost, "/api/results/filter", map[string]any{
			"results":     results,
			"filter_type": "roi_filter",
		})

		require.Equal(t, http.StatusOK, rr.Code)
		out := resp["results"].([]any)
		require.Len(t, out, 1)
		assert.Equal(t, "headlight", out[0].(map[string]any)["part_name"])
	})

	t.Run("roi filter honors min_roi", func(t *testing.T) {
		t.Parallel()

		rr, resp := doJSON(t, newTestServer(t).router(), http.MethodPost, "/api/results/filter", map[string]any{
			"results":     results,
			"filter_type": "roi_filter",
			"min_roi":     2.0,
		})

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, resp["results"], 2)
	})

	t.Run("sort frequency orders by sold count", func(t *testing.T) {
		t.Parallel()

		rr, resp := doJSON(t, newTestServer(t).router(), http.MethodPost, "/api/results/filter", map[string]any{
			"results":     results,
			"filter_type": "sort_frequency",
		})

		require.Equal(t, http.StatusOK, rr.Code)
		out := resp["results"].([]any)
		require.Len(t, out, 3)
		assert.Equal(t, "hood", out[0].(map[string]any)["part_name"])
	})

	t.Run("unknown filter passes through", func(t *testing.T) {
		t.Parallel()

		rr, resp := doJSON(t, newTestServer(t).router(), http.MethodPost, "/api/results/filter", map[string]any{
			"results":     results,
			"filter_type": "none",
		})

		require.Equal(t, http.StatusOK, rr.Code)
		out := resp["results"].([]any)
		require.Len(t, out, 3)
		assert.Equal(t, "headlight", out[0].(map[string]any)["part_name"])
	})
}

func TestRouter_JunkyardList(t *testing.T) {
	t.Parallel()

	rr, resp := doJSON(t, newTestServer(t).router(), http.MethodGet, "/api/junkyard", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, resp["success"])
	assert.Len(t, resp["parts"], 3)
}

func TestRouter_JunkyardSearch(t *testing.T) {
	t.Parallel()

	router := newTestServer(t).router()

	rr, resp := doJSON(t, router, http.MethodGet, "/api/junkyard/search?q=head", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	parts := resp["parts"].([]any)
	require.Len(t, parts, 1)
	assert.Equal(t, "headlight", parts[0].(map[string]any)["name"])

	rr, resp = doJSON(t, router, http.MethodGet, "/api/junkyard/search", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "q is required", resp["error"])
}

func TestRouter_SavedLifecycle(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	router := srv.router()

	rr, resp := doJSON(t, router, http.MethodPost, "/api/saved/manual", map[string]any{
		"part_name":      "Tailgate",
		"junkyard_price": 50.0,
		"ebay_sold_price": 275.0,
		"vehicle_type":   "truck",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	part := resp["part"].(map[string]any)
	assert.InDelta(t, 5.5, part["roi"].(float64), 1e-9)
	assert.Equal(t, "high", part["roi_rating"])

	rr, resp = doJSON(t, router, http.MethodGet, "/api/saved", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, resp["parts"], 1)

	rr, _ = doJSON(t, router, http.MethodPut, "/api/saved/tailgate", map[string]any{
		"youtube_link": "https://youtu.be/x",
		"notes":        "rust free",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	got := srv.store.List()
	require.Len(t, got, 1)
	assert.Equal(t, "https://youtu.be/x", got[0].YouTubeLink)
	assert.Equal(t, "rust free", got[0].Notes)

	rr, _ = doJSON(t, router, http.MethodDelete, "/api/saved/Tailgate", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, srv.store.Len())

	rr, resp = doJSON(t, router, http.MethodDelete, "/api/saved/Tailgate", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "part not found", resp["error"])
}

func TestRouter_SavedUpdate_NotFound(t *testing.T) {
	t.Parallel()

	rr, _ := doJSON(t, newTestServer(t).router(), http.MethodPut, "/api/saved/ghost", map[string]any{
		"notes": "x",
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_ManualAdd_Invalid(t *testing.T) {
	t.Parallel()

	rr, resp := doJSON(t, newTestServer(t).router(), http.MethodPost, "/api/saved/manual", map[string]any{
		"part_name":       "Hood",
		"junkyard_price":  -5.0,
		"ebay_sold_price": 100.0,
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, false, resp["success"])
}

func TestRouter_SavedAdd_FromAnalysis(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rr, resp := doJSON(t, srv.router(), http.MethodPost, "/api/saved", map[string]any{
		"part_name":       "Headlight",
		"ebay_title":      "2013 Honda Accord Headlight OEM",
		"junkyard_price":  40.0,
		"ebay_sold_price": 299.99,
		"roi":             7.5,
		"year":            "2013",
		"make":            "Honda",
		"model":           "Accord",
	})

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Saved: Headlight", resp["message"])

	got := srv.store.List()
	require.Len(t, got, 1)
	// Tier is filled in from the ROI when the payload leaves it out.
	assert.Equal(t, model.TierHigh, got[0].Tier)
	assert.Equal(t, model.VehicleTypeCar, got[0].VehicleType)
}

func TestRouter_SavedAdd_MissingName(t *testing.T) {
	t.Parallel()

	rr, resp := doJSON(t, newTestServer(t).router(), http.MethodPost, "/api/saved", map[string]any{
		"junkyard_price": 40.0,
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "part_name is required", resp["error"])
}

func TestRouter_LinkAdd(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	srv.parser = stubParser{res: linkparse.Result{
		Title: "2013 Honda Accord Headlight Assembly OEM",
		Price: 125.99,
		Year:  "2013",
		Make:  "Honda",
	}}

	rr, resp := doJSON(t, srv.router(), http.MethodPost, "/api/saved/link", map[string]any{
		"ebay_url":       "https://www.ebay.com/itm/334455",
		"junkyard_parts": []string{"headlight"},
	})

	require.Equal(t, http.StatusOK, rr.Code)
	part := resp["part"].(map[string]any)
	assert.Equal(t, "headlight", part["part_name"])
	assert.Equal(t, 40.0, part["junkyard_price"])
	assert.Equal(t, "medium", part["roi_rating"])
	assert.Equal(t, "https://www.ebay.com/itm/334455", part["ebay_url"])
	assert.Equal(t, 1, srv.store.Len())
}

func TestRouter_LinkAdd_MissingURL(t *testing.T) {
	t.Parallel()

	rr, resp := doJSON(t, newTestServer(t).router(), http.MethodPost, "/api/saved/link", map[string]any{})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "ebay_url is required", resp["error"])
}

func TestRouter_LinkAdd_FetchError(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	srv.parser = stubParser{err: eris.New("listing unreachable")}

	rr, resp := doJSON(t, srv.router(), http.MethodPost, "/api/saved/link", map[string]any{
		"ebay_url": "https://www.ebay.com/itm/1",
	})

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Equal(t, "fetch listing failed", resp["error"])
}

func TestRouter_SavedClear(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	part, err := saved.NewManualEntry("Hood", 85, 300, model.VehicleTypeCar, "", "")
	require.NoError(t, err)
	require.NoError(t, srv.store.Add(part))

	rr, resp := doJSON(t, srv.router(), http.MethodPost, "/api/saved/clear", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "All parts cleared", resp["message"])
	assert.Equal(t, 0, srv.store.Len())
}

func TestRouter_ExportCSV(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	part, err := saved.NewManualEntry("Tailgate", 50, 275, model.VehicleTypeTruck, "", "")
	require.NoError(t, err)
	require.NoError(t, srv.store.Add(part))

	req := httptest.NewRequest(http.MethodGet, "/api/export/csv", nil)
	rr := httptest.NewRecorder()
	srv.router().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "parts_list.csv")
	assert.Contains(t, rr.Body.String(), "Part Name")
	assert.Contains(t, rr.Body.String(), "Tailgate")
}

func TestRouter_ExportHTML(t *testing.T) {
	t.Parallel()

	router := newTestServer(t).router()

	req := httptest.NewRequest(http.MethodGet, "/api/export/html", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Empty(t, rr.Header().Get("Content-Disposition"))
	assert.Contains(t, rr.Body.String(), "<html")

	req = httptest.NewRequest(http.MethodGet, "/api/export/html?download=1", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Contains(t, rr.Header().Get("Content-Disposition"), "my-parts-list.html")
}

func TestRouter_ExportXLSX(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/export/xlsx", nil)
	rr := httptest.NewRecorder()
	newTestServer(t).router().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotZero(t, rr.Body.Len())
}

func TestRouter_ExportUnknownFormat(t *testing.T) {
	t.Parallel()

	rr, resp := doJSON(t, newTestServer(t).router(), http.MethodGet, "/api/export/pdf", nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, resp["error"], "unknown export format")
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	router := newTestServer(t).router()

	// A first request seeds the HTTP counter so the family shows up.
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "carparts_http_requests_total")
}
