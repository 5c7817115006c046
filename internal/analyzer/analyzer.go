// Package analyzer drives per-part marketplace lookups: build the
// search query, pull listing records, aggregate them, match the
// junkyard catalog, and classify the return multiple. Batches run
// concurrently with per-part failure isolation.
package analyzer

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/catalog"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/market"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/metrics"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/model"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/roi"
)

// MarketSource streams listing records for a search query. Both active
// and historical-sold records come back in one sequence; an empty
// result is not an error.
type MarketSource interface {
	Search(ctx context.Context, query string) ([]model.Listing, error)
}

// Analyzer combines a market source, the junkyard catalog, and the
// classification rules into per-part analyses.
type Analyzer struct {
	source       MarketSource
	catalog      *catalog.Catalog
	windowDays   int
	concurrency  int
	trimOutliers bool
	m            *metrics.Metrics
	now          func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithWindowDays sets the trailing sold window.
func WithWindowDays(days int) Option {
	return func(a *Analyzer) {
		if days > 0 {
			a.windowDays = days
		}
	}
}

// WithConcurrency bounds how many parts are analyzed at once. The
// market source's rate limiter still bounds effective request rate.
func WithConcurrency(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// WithOutlierTrim enables statistical outlier trimming in aggregation.
func WithOutlierTrim() Option {
	return func(a *Analyzer) {
		a.trimOutliers = true
	}
}

// WithMetrics records per-part and batch counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Analyzer) {
		a.m = m
	}
}

// New creates an Analyzer with a 30-day window and concurrency 3.
func New(source MarketSource, cat *catalog.Catalog, opts ...Option) *Analyzer {
	a := &Analyzer{
		source:      source,
		catalog:     cat,
		windowDays:  30,
		concurrency: 3,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeOne looks up and classifies a single part. Failures surface in
// the result's Error field, never as a returned error, so one bad part
// cannot abort a batch.
func (a *Analyzer) AnalyzeOne(ctx context.Context, vehicle model.Vehicle, partName string) model.PartAnalysis {
	res := model.PartAnalysis{PartName: partName, Tier: model.TierUnknown}

	if price, ok := a.catalog.Lookup(partName); ok {
		res.JunkyardPrice = &price
	}

	records, err := a.source.Search(ctx, vehicle.Query(partName))
	if err != nil {
		res.Error = err.Error()
		a.m.IncPart("error")
		zap.L().Warn("analyze: part failed",
			zap.String("part", partName),
			zap.Error(err),
		)
		return res
	}

	var aggOpts []market.Option
	if a.trimOutliers {
		aggOpts = append(aggOpts, market.WithOutlierTrim())
	}
	sum := market.Summarize(a.now(), records, a.windowDays, aggOpts...)

	res.MedianSoldPrice = sum.Median
	res.AverageSoldPrice = sum.Average
	res.SoldCount = sum.SoldCount
	res.ActiveListingCount = sum.ActiveCount
	res.BestListing = sum.Best
	res.ROI, res.Tier = roi.Classify(res.JunkyardPrice, sum.Median)

	a.m.IncPart("ok")
	return res
}

// Analyze runs every part concurrently, bounded by the configured
// limit. The result slice always matches partNames in length and
// order; failed parts carry their error in place.
func (a *Analyzer) Analyze(ctx context.Context, vehicle model.Vehicle, partNames []string) []model.PartAnalysis {
	start := time.Now()
	results := make([]model.PartAnalysis, len(partNames))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	var succeeded, failed atomic.Int64

	for i, name := range partNames {
		g.Go(func() error {
			res := a.AnalyzeOne(gCtx, vehicle, name)
			if res.Errored() {
				failed.Add(1)
			} else {
				succeeded.Add(1)
			}
			results[i] = res
			return nil
		})
	}

	_ = g.Wait()

	zap.L().Info("analyze: batch complete",
		zap.String("vehicle", vehicle.Info()),
		zap.Int("total", len(partNames)),
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	a.m.ObserveAnalysis(time.Since(start))

	return results
}
