package main

import (
	"os"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/analyzer"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/catalog"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/linkparse"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/market"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/metrics"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/saved"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/pkg/ebay"
)

// analysisEnv holds the initialized clients and stores a command needs.
// Build it with initEnv once per invocation; the fields are safe to
// share across goroutines.
type analysisEnv struct {
	Metrics  *metrics.Metrics
	Catalog  *catalog.Catalog
	Store    *saved.Store
	Source   *market.Source
	Analyzer *analyzer.Analyzer
	Parser   *linkparse.Parser
}

// initEnv validates the loaded config for the given command mode and
// wires the full environment: price catalog, saved-parts store, eBay
// market source, analyzer, and listing parser.
func initEnv(mode string) (*analysisEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	env := &analysisEnv{Metrics: metrics.New()}

	cat, err := openCatalog()
	if err != nil {
		return nil, err
	}
	env.Catalog = cat

	env.Store, err = saved.Open(cfg.Saved.Path)
	if err != nil {
		return nil, eris.Wrap(err, "init saved store")
	}

	env.Source = market.NewSource(newEbayClient(),
		market.WithWindow(cfg.Analysis.WindowDays),
		market.WithCache(cfg.Cache.Size, time.Duration(cfg.Cache.TTLMinutes)*time.Minute),
		market.WithSourceMetrics(env.Metrics),
	)

	analyzerOpts := []analyzer.Option{
		analyzer.WithWindowDays(cfg.Analysis.WindowDays),
		analyzer.WithConcurrency(cfg.Analysis.Concurrency),
		analyzer.WithMetrics(env.Metrics),
	}
	if cfg.Analysis.TrimOutliers {
		analyzerOpts = append(analyzerOpts, analyzer.WithOutlierTrim())
	}
	env.Analyzer = analyzer.New(env.Source, env.Catalog, analyzerOpts...)

	env.Parser = linkparse.New(
		linkparse.WithUserAgent(cfg.Scrape.UserAgent),
		linkparse.WithTimeout(time.Duration(cfg.Scrape.TimeoutSecs)*time.Second),
	)

	if !cfg.EbayConfigured() {
		zap.L().Warn("EBAY_APP_ID not set; market analysis will fail until it is configured")
	}

	zap.L().Info("environment initialized",
		zap.Int("catalog_parts", env.Catalog.Len()),
		zap.Int("saved_parts", env.Store.Len()),
		zap.String("ebay_env", cfg.Ebay.Environment),
	)

	return env, nil
}

// openCatalog loads the junkyard price list. A missing file is an empty
// catalog so list and save commands keep working before any prices are
// imported; any other read error is fatal.
func openCatalog() (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		if eris.Is(err, os.ErrNotExist) {
			zap.L().Warn("catalog: price file missing, starting empty",
				zap.String("path", cfg.Catalog.Path))
			return catalog.New(nil), nil
		}
		return nil, eris.Wrapf(err, "init catalog %s", cfg.Catalog.Path)
	}
	return cat, nil
}

func newEbayClient() ebay.Client {
	opts := []ebay.Option{
		ebay.WithEntriesPerPage(cfg.Ebay.EntriesPerPage),
		ebay.WithRateLimit(cfg.Ebay.RatePerSec, cfg.Ebay.RateBurst),
		ebay.WithTimeout(time.Duration(cfg.Ebay.TimeoutSecs) * time.Second),
	}
	if cfg.Ebay.Environment == "sandbox" {
		opts = append(opts, ebay.WithSandbox())
	}
	return ebay.NewClient(cfg.Ebay.AppID, opts...)
}
