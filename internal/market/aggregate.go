// Package market turns raw marketplace listing records into the
// aggregate statistics the analyzer reports: median and average sold
// price over a trailing window, partition counts, and a representative
// "best" listing.
package market

import (
	"math"
	"sort"
	"time"

	"github.com/Davazzzz/eBay-car-parts-automation-tool/internal/model"
)

// Summary is the aggregated view of one part's listing records.
type Summary struct {
	// Median and Average are nil when no sold records fall inside the
	// window. Zero would read as a real price, so absence stays nil.
	Median  *float64
	Average *float64

	SoldCount   int
	ActiveCount int

	// Best is the sold record whose price sits closest to the median,
	// ties going to the earliest sold date. A representative example
	// rather than the single highest sale.
	Best *model.Listing
}

// Option adjusts how Summarize computes its statistics.
type Option func(*options)

type options struct {
	trimOutliers bool
}

// WithOutlierTrim drops sold prices farther than three standard
// deviations from the mean before computing the median and average,
// when more than three sold records exist. Counts and the best listing
// always see the full sold partition.
func WithOutlierTrim() Option {
	return func(o *options) { o.trimOutliers = true }
}

// Summarize partitions records as of the given time and aggregates the
// sold side over a trailing window of windowDays. Sold records are the
// inactive ones whose sold date falls inside [asOf-windowDays, asOf];
// inactive records outside that window are dropped entirely. Active
// records are counted regardless of date.
func Summarize(asOf time.Time, records []model.Listing, windowDays int, opts ...Option) Summary {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cutoff := asOf.AddDate(0, 0, -windowDays)

	var sold []model.Listing
	active := 0
	for _, r := range records {
		if r.IsActive {
			active++
			continue
		}
		if r.SoldDate.Before(cutoff) || r.SoldDate.After(asOf) {
			continue
		}
		sold = append(sold, r)
	}

	s := Summary{SoldCount: len(sold), ActiveCount: active}
	if len(sold) == 0 {
		return s
	}

	prices := make([]float64, 0, len(sold))
	for _, r := range sold {
		prices = append(prices, r.Price)
	}
	if o.trimOutliers {
		prices = trimOutliers(prices)
	}

	med := median(prices)
	avg := mean(prices)
	s.Median = &med
	s.Average = &avg
	s.Best = bestListing(sold, med)
	return s
}

// median sorts a copy and takes the middle element, or the mean of the
// two middle elements for an even count.
func median(vals []float64) float64 {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// trimOutliers keeps prices within three sample standard deviations of
// the mean. At least one price always survives, so the caller never
// sees an empty slice.
func trimOutliers(prices []float64) []float64 {
	if len(prices) <= 3 {
		return prices
	}

	m := mean(prices)
	var sumSq float64
	for _, p := range prices {
		d := p - m
		sumSq += d * d
	}
	sd := math.Sqrt(sumSq / float64(len(prices)-1))
	if sd == 0 {
		return prices
	}

	kept := make([]float64, 0, len(prices))
	for _, p := range prices {
		if math.Abs(p-m) <= 3*sd {
			kept = append(kept, p)
		}
	}
	return kept
}

func bestListing(sold []model.Listing, med float64) *model.Listing {
	best := sold[0]
	bestDiff := math.Abs(best.Price - med)
	for _, r := range sold[1:] {
		diff := math.Abs(r.Price - med)
		if diff < bestDiff || (diff == bestDiff && r.SoldDate.Before(best.SoldDate)) {
			best = r
			bestDiff = diff
		}
	}
	return &best
}
