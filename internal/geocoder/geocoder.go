package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"subastas-ingest/internal/assert"
	"subastas-ingest/internal/auction"
	"subastas-ingest/internal/telemetry"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"
)

const (
	report_geocoder_search  = "geocoder.search"
	report_geocoder_resolve = "geocoder.resolve"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org/"
	DefaultCountry   = "España"
	DefaultCacheSize = 4096
	DefaultCacheTTL  = 24 * time.Hour
)

var tracer = otel.Tracer("subastas.internal.geocoder")

// Address is what is known of the location of a property, fields may hold
// auction.NotApplicable.
type Address struct {
	Street     string
	City       string
	Province   string
	PostalCode string
}

func AddressOf(p *auction.Property) Address {
	province := ""
	if p.Province != auction.ProvinceUnknown {
		province = p.Province.String()
	}
	return Address{
		Street:     p.Address,
		City:       p.City,
		Province:   province,
		PostalCode: p.PostalCode,
	}
}

type Options struct {
	BaseURL   string
	Country   string
	UserAgent string
	// RequestsPerSecond is shared by every caller of the geocoder, the
	// public service allows a single request per second.
	RequestsPerSecond float64
	CacheSize         int
	CacheTTL          time.Duration
	Timeout           time.Duration
}

func (o Options) withDefaults() Options {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.Country == "" {
		o.Country = DefaultCountry
	}
	if o.UserAgent == "" {
		o.UserAgent = "subastas-ingest/1.0"
	}
	if o.RequestsPerSecond <= 0 {
		o.RequestsPerSecond = 1
	}
	if o.CacheSize <= 0 {
		o.CacheSize = DefaultCacheSize
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	return o
}

// Geocoder resolves addresses to coordinates with a Nominatim server.
type Geocoder struct {
	http    *resty.Client
	country string
	// results of previous searches, a nil value is a search without results
	cache *expirable.LRU[string, *auction.Coordinates]
	tel   telemetry.API
}

func New(opts Options, tel telemetry.API) *Geocoder {
	assert.NotNil(tel)
	tel = telemetry.NewScopedAPI("geocoder", tel)
	opts = opts.withDefaults()

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseURL)
	httpClient.SetHeader("user-agent", opts.UserAgent)
	httpClient.SetHeader("accept", "application/json")
	httpClient.SetTimeout(opts.Timeout)

	limiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, tel)

	return &Geocoder{
		http:    httpClient,
		country: opts.Country,
		cache:   expirable.NewLRU[string, *auction.Coordinates](opts.CacheSize, nil, opts.CacheTTL),
		tel:     tel,
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func known(value string) bool {
	value = strings.TrimSpace(value)
	return value != "" && value != auction.NotApplicable
}

func (g *Geocoder) streetQuery(addr Address) (url.Values, bool) {
	if !known(addr.Street) || !known(addr.City) {
		return nil, false
	}
	q := url.Values{}
	q.Set("street", strings.TrimSpace(addr.Street))
	q.Set("city", strings.TrimSpace(addr.City))
	if known(addr.Province) {
		q.Set("state", addr.Province)
	}
	q.Set("country", g.country)
	if known(addr.PostalCode) {
		q.Set("postalcode", strings.TrimSpace(addr.PostalCode))
	}
	return q, true
}

func (g *Geocoder) cityQuery(addr Address) (url.Values, bool) {
	if !known(addr.City) {
		return nil, false
	}
	q := url.Values{}
	q.Set("city", strings.TrimSpace(addr.City))
	if known(addr.Province) {
		q.Set("state", addr.Province)
	}
	q.Set("country", g.country)
	return q, true
}

// Resolve returns the coordinates of addr or nil when it cannot be found.
// The street is tried first, then the city. Failures are reported and
// resolve to nil.
func (g *Geocoder) Resolve(ctx context.Context, addr Address) *auction.Coordinates {
	ctx, span := tracer.Start(ctx, "Resolve")
	defer span.End()

	if q, ok := g.streetQuery(addr); ok {
		if coords := g.search(ctx, q); coords != nil {
			span.SetAttributes(attribute.String("tier", "street"))
			return coords
		}
	}
	if q, ok := g.cityQuery(addr); ok {
		if coords := g.search(ctx, q); coords != nil {
			span.SetAttributes(attribute.String("tier", "city"))
			return coords
		}
	}

	g.tel.ReportWarning(report_geocoder_resolve, fmt.Errorf("no result"), addr.City, addr.Province)
	return nil
}

func (g *Geocoder) search(ctx context.Context, q url.Values) *auction.Coordinates {
	q.Set("format", "jsonv2")
	q.Set("countrycodes", "es")
	q.Set("limit", "1")
	key := q.Encode()

	if cached, hit := g.cache.Get(key); hit {
		return cached
	}

	res, err := g.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(q).
		Get("search")
	if err != nil {
		g.tel.ReportWarning(report_geocoder_search, fmt.Errorf("request: %w", err), key)
		return nil
	}
	if !res.IsSuccess() {
		g.tel.ReportWarning(report_geocoder_search, fmt.Errorf("status %d", res.StatusCode()), key)
		return nil
	}

	coords, err := parseSearch(res.Body())
	if err != nil {
		g.tel.ReportWarning(report_geocoder_search, err, key)
		return nil
	}
	g.cache.Add(key, coords)
	return coords
}

func parseSearch(body []byte) (*auction.Coordinates, error) {
	var results []searchResult
	err := json.Unmarshal(body, &results)
	if err != nil {
		return nil, fmt.Errorf("decode search results: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse lat %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse lon %q: %w", results[0].Lon, err)
	}
	return &auction.Coordinates{Latitude: lat, Longitude: lon}, nil
}
