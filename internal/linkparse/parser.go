// Package linkparse fetches a single eBay listing page and extracts the
// fields needed to save it as a part: title, price, and whatever vehicle
// info the title gives away.
package linkparse

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/rotisserie/eris"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	defaultTimeout   = 10 * time.Second
)

// Result holds the fields scraped from one listing page. Year and Make
// are best-effort reads of the title and may be empty.
type Result struct {
	Title string
	Price float64
	Year  string
	Make  string
	URL   string
}

// Parser scrapes listing pages. Safe for concurrent use; each Parse call
// runs its own collector.
type Parser struct {
	userAgent string
	timeout   time.Duration
	transport http.RoundTripper
}

// Option configures a Parser.
type Option func(*Parser)

// WithUserAgent overrides the User-Agent sent with page fetches.
func WithUserAgent(ua string) Option {
	return func(p *Parser) {
		p.userAgent = ua
	}
}

// WithTimeout bounds each page fetch.
func WithTimeout(d time.Duration) Option {
	return func(p *Parser) {
		p.timeout = d
	}
}

// WithTransport swaps the HTTP transport, used by tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(p *Parser) {
		p.transport = rt
	}
}

// New returns a Parser with default fetch settings.
func New(opts ...Option) *Parser {
	p := &Parser{
		userAgent: defaultUserAgent,
		timeout:   defaultTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse fetches the listing page at listingURL and extracts its title,
// price, and any vehicle year/make the title carries. A page that loads
// but yields no title still parses; the Title comes back "Unknown".
func (p *Parser) Parse(ctx context.Context, listingURL string) (*Result, error) {
	if strings.TrimSpace(listingURL) == "" {
		return nil, eris.New("linkparse: listing url is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "linkparse: parse listing")
	}

	c := colly.NewCollector(colly.UserAgent(p.userAgent))
	c.SetRequestTimeout(p.timeout)
	c.IgnoreRobotsTxt = true
	if p.transport != nil {
		c.WithTransport(p.transport)
	}

	var title, price capture
	// Current listing markup first, legacy element ids as fallback.
	c.OnHTML("h1.x-item-title__mainTitle", func(e *colly.HTMLElement) { title.record(0, e.Text) })
	c.OnHTML("h1#itemTitle", func(e *colly.HTMLElement) { title.record(1, e.Text) })
	c.OnHTML("div.x-price-primary", func(e *colly.HTMLElement) { price.record(0, e.Text) })
	c.OnHTML("span#prcIsum", func(e *colly.HTMLElement) { price.record(1, e.Text) })
	c.OnHTML("span.notranslate", func(e *colly.HTMLElement) { price.record(2, e.Text) })

	var fetchErr error
	c.OnError(func(_ *colly.Response, err error) {
		fetchErr = eris.Wrapf(err, "linkparse: fetch %s", listingURL)
	})

	if err := c.Visit(listingURL); err != nil {
		return nil, eris.Wrapf(err, "linkparse: fetch %s", listingURL)
	}
	if fetchErr != nil {
		return nil, fetchErr
	}

	res := &Result{Title: "Unknown", URL: listingURL}
	if title.set {
		res.Title = title.text
		res.Year = extractYear(title.text)
		res.Make = extractMake(title.text)
	}
	if price.set {
		res.Price = parseListingPrice(price.text)
	}
	return res, nil
}

// capture keeps the best text seen across several selectors. Lower rank
// wins regardless of document order.
type capture struct {
	text string
	rank int
	set  bool
}

func (c *capture) record(rank int, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if c.set && c.rank <= rank {
		return
	}
	c.text = text
	c.rank = rank
	c.set = true
}

var (
	listingPriceRe = regexp.MustCompile(`\$?([\d,]+\.?\d*)`)
	titleYearRe    = regexp.MustCompile(`\b(19\d{2}|20[0-2]\d)\b`)
)

// knownMakes is scanned in order; the first entry found anywhere in the
// title wins, not the one appearing earliest.
var knownMakes = []string{
	"Honda", "Toyota", "Ford", "Chevy", "Chevrolet", "Dodge",
	"Nissan", "BMW", "Mercedes", "Audi", "Volkswagen", "VW",
	"Mazda", "Subaru", "Kia", "Hyundai", "Jeep", "GMC", "RAM",
}

type makeMatcher struct {
	name string
	re   *regexp.Regexp
}

var makeMatchers = buildMakeMatchers()

func buildMakeMatchers() []makeMatcher {
	out := make([]makeMatcher, 0, len(knownMakes))
	for _, name := range knownMakes {
		out = append(out, makeMatcher{
			name: name,
			re:   regexp.MustCompile(`(?i)\b` + name + `\b`),
		})
	}
	return out
}

func parseListingPrice(text string) float64 {
	m := listingPriceRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

func extractYear(title string) string {
	if m := titleYearRe.FindStringSubmatch(title); m != nil {
		return m[1]
	}
	return ""
}

func extractMake(title string) string {
	for _, mm := range makeMatchers {
		if mm.re.MatchString(title) {
			return mm.name
		}
	}
	return ""
}
