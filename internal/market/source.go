package market

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/metrics"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/model"
	"github.com/Davazzzz/eBay-car-parts-automation-tool/pkg/ebay"
)

// Source adapts the Finding API client to the analyzer's record stream.
// One Search fans out to the completed and active searches and merges
// both sides into listing records. Sold records carry the listing end
// time as their sold date.
type Source struct {
	client ebay.Client
	window int
	cache  *expirable.LRU[string, []model.Listing]
	m      *metrics.Metrics
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithWindow sets how many days back the completed search reaches.
func WithWindow(days int) SourceOption {
	return func(s *Source) {
		if days > 0 {
			s.window = days
		}
	}
}

// WithCache caches merged records per query, so re-analyzing the same
// part inside the TTL does not re-hit the API.
func WithCache(size int, ttl time.Duration) SourceOption {
	return func(s *Source) {
		s.cache = expirable.NewLRU[string, []model.Listing](size, nil, ttl)
	}
}

// WithSourceMetrics records search and cache counters.
func WithSourceMetrics(m *metrics.Metrics) SourceOption {
	return func(s *Source) {
		s.m = m
	}
}

// NewSource wraps a Finding API client. The default window is 30 days
// and no cache.
func NewSource(client ebay.Client, opts ...SourceOption) *Source {
	s := &Source{client: client, window: 30}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search returns sold and active listing records for the query.
func (s *Source) Search(ctx context.Context, query string) ([]model.Listing, error) {
	if s.cache != nil {
		if records, ok := s.cache.Get(query); ok {
			s.m.IncCache("hit")
			return records, nil
		}
		s.m.IncCache("miss")
	}

	s.m.IncSearch()

	from := time.Now().AddDate(0, 0, -s.window)
	completed, err := s.client.FindCompleted(ctx, query, ebay.WithEndTimeFrom(from))
	if err != nil {
		return nil, err
	}
	active, err := s.client.FindActive(ctx, query)
	if err != nil {
		return nil, err
	}

	records := make([]model.Listing, 0, len(completed.Items)+len(active.Items))
	for _, it := range completed.Items {
		records = append(records, model.Listing{
			Title:    it.Title,
			Price:    it.Price,
			SoldDate: it.EndTime,
			ImageURL: it.ImageURL,
			URL:      it.URL,
		})
	}
	for _, it := range active.Items {
		records = append(records, model.Listing{
			Title:    it.Title,
			Price:    it.Price,
			IsActive: true,
			ImageURL: it.ImageURL,
			URL:      it.URL,
		})
	}

	if s.cache != nil {
		s.cache.Add(query, records)
	}

	zap.L().Debug("marketplace search",
		zap.String("query", query),
		zap.Int("sold", len(completed.Items)),
		zap.Int("active", len(active.Items)))

	return records, nil
}
