package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/analyzer"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/catalog"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/export"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/linkparse"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/metrics"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/model"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/roi"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/saved"
)

// reportRunner is the slice of the analyzer the API needs; tests swap
// in a stub so handlers run without touching eBay.
type reportRunner interface {
	Report(ctx context.Context, vehicle model.Vehicle, partNames []string) model.Report
}

// listingParser fetches one eBay listing page.
type listingParser interface {
	Parse(ctx context.Context, listingURL string) (*linkparse.Result, error)
}

type apiServer struct {
	analyzer reportRunner
	parser   listingParser
	catalog  *catalog.Catalog
	store    *saved.Store
	lists    analyzer.PartLists
	metrics  *metrics.Metrics
}

func newAPIServer(env *analysisEnv) *apiServer {
	return &apiServer{
		analyzer: env.Analyzer,
		parser:   env.Parser,
		catalog:  env.Catalog,
		store:    env.Store,
		lists:    analyzer.DefaultPartLists(),
		metrics:  env.Metrics,
	}
}

func (s *apiServer) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/results/filter", s.handleFilterResults)
		r.Get("/junkyard", s.handleJunkyardList)
		r.Get("/junkyard/search", s.handleJunkyardSearch)
		r.Route("/saved", func(r chi.Router) {
			r.Get("/", s.handleSavedList)
			r.Post("/", s.handleSavedAdd)
			r.Post("/manual", s.handleManualAdd)
			r.Post("/link", s.handleLinkAdd)
			r.Post("/clear", s.handleSavedClear)
			r.Put("/{name}", s.handleSavedUpdate)
			r.Delete("/{name}", s.handleSavedRemove)
		})
		r.Get("/export/{format}", s.handleExport)
	})

	return r
}

// instrument logs each request and feeds the per-route counters. It
// runs outside Recoverer so panics still get a 500 recorded.
func (s *apiServer) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		s.metrics.IncHTTP(route, strconv.Itoa(ww.Status()))
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type analyzeRequest struct {
	Year        string   `json:"year"`
	Make        string   `json:"make"`
	Model       string   `json:"model"`
	Trim        string   `json:"trim"`
	VehicleType string   `json:"vehicle_type"`
	FilterType  string   `json:"filter_type"`
	Parts       []string `json:"parts"`
}

type analyzeResponse struct {
	Success bool `json:"success"`
	model.Report
}

func (s *apiServer) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Year) == "" || strings.TrimSpace(req.Make) == "" || strings.TrimSpace(req.Model) == "" {
		writeError(w, http.StatusBadRequest, "year, make, and model are required")
		return
	}
	if req.VehicleType == "" {
		req.VehicleType = string(model.VehicleTypeCar)
	}
	if req.FilterType == "" {
		req.FilterType = string(analyzer.FilterHighPriority)
	}

	vehicle := model.Vehicle{
		Year:  req.Year,
		Make:  req.Make,
		Model: req.Model,
		Trim:  req.Trim,
		Type:  model.VehicleType(req.VehicleType),
	}

	parts := req.Parts
	if len(parts) == 0 {
		parts = s.lists.Select(s.catalog.Parts(), analyzer.PartFilter(req.FilterType))
	}
	if len(parts) == 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("no parts matched filter %q", req.FilterType))
		return
	}

	report := s.analyzer.Report(r.Context(), vehicle, parts)
	writeJSON(w, http.StatusOK, analyzeResponse{Success: true, Report: report})
}

type filterRequest struct {
	Results    []model.PartAnalysis `json:"results"`
	FilterType string               `json:"filter_type"`
	MinROI     *float64             `json:"min_roi"`
}

func (s *apiServer) handleFilterResults(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	minROI := 5.0
	if req.MinROI != nil {
		minROI = *req.MinROI
	}

	results := req.Results
	switch req.FilterType {
	case "roi_filter":
		results = analyzer.FilterByMinROI(results, minROI)
	case "sort_frequency":
		results = analyzer.SortBySoldCount(results)
	}
	if results == nil {
		results = []model.PartAnalysis{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "results": results})
}

func (s *apiServer) handleJunkyardList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "parts": s.catalog.Entries()})
}

func (s *apiServer) handleJunkyardSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	entries := s.catalog.Search(q)
	if entries == nil {
		entries = []catalog.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "parts": entries})
}

func (s *apiServer) handleSavedList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "parts": s.store.List()})
}

func (s *apiServer) handleSavedAdd(w http.ResponseWriter, r *http.Request) {
	var part model.SavedPart
	if err := decodeJSON(r, &part); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(part.PartName) == "" {
		writeError(w, http.StatusBadRequest, "part_name is required")
		return
	}
	if part.VehicleType == "" {
		part.VehicleType = model.VehicleTypeCar
	}
	if part.Tier == "" {
		part.Tier = model.TierUnknown
		if part.ROI > 0 {
			part.Tier = roi.TierFor(part.ROI)
		}
	}

	if err := s.store.Add(part); err != nil {
		writeError(w, http.StatusInternalServerError, "save part failed")
		zap.L().Error("save part", zap.Error(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Saved: %s", part.PartName),
	})
}

type manualAddRequest struct {
	PartName      string  `json:"part_name"`
	JunkyardPrice float64 `json:"junkyard_price"`
	EbaySoldPrice float64 `json:"ebay_sold_price"`
	VehicleType   string  `json:"vehicle_type"`
	YouTubeLink   string  `json:"youtube_link"`
	Notes         string  `json:"notes"`
}

func (s *apiServer) handleManualAdd(w http.ResponseWriter, r *http.Request) {
	var req manualAddRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.VehicleType == "" {
		req.VehicleType = string(model.VehicleTypeCar)
	}

	part, err := saved.NewManualEntry(req.PartName, req.JunkyardPrice, req.EbaySoldPrice,
		model.VehicleType(req.VehicleType), req.YouTubeLink, req.Notes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.Add(part); err != nil {
		writeError(w, http.StatusInternalServerError, "save part failed")
		zap.L().Error("manual add", zap.Error(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "part": part})
}

type linkAddRequest struct {
	EbayURL        string   `json:"ebay_url"`
	CustomPartName string   `json:"custom_part_name"`
	JunkyardParts  []string `json:"junkyard_parts"`
	VehicleType    string   `json:"vehicle_type"`
	YouTubeLink    string   `json:"youtube_link"`
	Notes          string   `json:"notes"`
}

func (s *apiServer) handleLinkAdd(w http.ResponseWriter, r *http.Request) {
	var req linkAddRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.EbayURL) == "" {
		writeError(w, http.StatusBadRequest, "ebay_url is required")
		return
	}

	res, err := s.parser.Parse(r.Context(), req.EbayURL)
	if err != nil {
		writeError(w, http.StatusBadGateway, "fetch listing failed")
		zap.L().Error("parse listing", zap.String("url", req.EbayURL), zap.Error(err))
		return
	}

	part := saved.NewFromListing(*res, s.catalog, saved.ListingOptions{
		CustomName:    req.CustomPartName,
		SelectedParts: req.JunkyardParts,
		VehicleType:   model.VehicleType(req.VehicleType),
		YouTubeLink:   req.YouTubeLink,
		Notes:         req.Notes,
	})
	if err := s.store.Add(part); err != nil {
		writeError(w, http.StatusInternalServerError, "save part failed")
		zap.L().Error("link add", zap.Error(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "part": part})
}

type updateRequest struct {
	YouTubeLink string `json:"youtube_link"`
	Notes       string `json:"notes"`
}

func (s *apiServer) handleSavedUpdate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req updateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.store.Update(name, req.YouTubeLink, req.Notes); err != nil {
		if eris.Is(err, saved.ErrNotFound) {
			writeError(w, http.StatusNotFound, "part not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "update part failed")
		zap.L().Error("update part", zap.String("name", name), zap.Error(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *apiServer) handleSavedRemove(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	removed, err := s.store.Remove(name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "remove part failed")
		zap.L().Error("remove part", zap.String("name", name), zap.Error(err))
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "part not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *apiServer) handleSavedClear(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(); err != nil {
		writeError(w, http.StatusInternalServerError, "clear parts failed")
		zap.L().Error("clear parts", zap.Error(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "All parts cleared"})
}

func (s *apiServer) handleExport(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	parts := s.store.List()

	// Rendered into memory first so a mid-render failure can still
	// return a clean error status.
	var buf bytes.Buffer
	var contentType, filename string
	var err error
	switch format {
	case "csv":
		err = export.WriteCSV(&buf, parts)
		contentType, filename = "text/csv; charset=utf-8", "parts_list.csv"
	case "xlsx":
		err = export.WriteXLSX(&buf, parts)
		contentType, filename = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "parts_list.xlsx"
	case "html":
		err = export.WriteHTML(&buf, parts, time.Now())
		contentType, filename = "text/html; charset=utf-8", "my-parts-list.html"
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown export format %q", format))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "export failed")
		zap.L().Error("export", zap.String("format", format), zap.Error(err))
		return
	}

	w.Header().Set("Content-Type", contentType)
	// The HTML page renders inline unless a download is asked for;
	// spreadsheets always download.
	if format != "html" || r.URL.Query().Get("download") != "" {
		w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	}
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return eris.Wrap(err, "decode body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}
