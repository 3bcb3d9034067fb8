package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"subastas-ingest/internal/assert"
	"subastas-ingest/internal/auction"
	"subastas-ingest/internal/chrono"
	"subastas-ingest/internal/geocoder"
	"subastas-ingest/internal/scrapers/boe"
	"subastas-ingest/internal/telemetry"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

const (
	report_pipeline_discover        = "pipeline.discover"
	report_pipeline_process_auction = "pipeline.process-auction"
	report_pipeline_persist         = "pipeline.persist"
	report_pipeline_update          = "pipeline.update"
	report_pipeline_enrich          = "pipeline.enrich"
	report_pipeline_export          = "pipeline.export"
	report_pipeline_record_run      = "pipeline.record-run"
)

// DefaultConcurrency is how many auctions are processed at once.
const DefaultConcurrency = 6

var tracer = otel.Tracer("subastas.internal.pipeline")

// Fetcher returns the body of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Resolver geocodes addresses, nil means the address could not be resolved.
type Resolver interface {
	Resolve(ctx context.Context, addr geocoder.Address) *auction.Coordinates
}

type Options struct {
	Concurrency int
	// Time defaults to the system clock.
	Time chrono.TimeAPI
}

type Pipeline struct {
	fetcher     Fetcher
	store       Store
	resolver    Resolver
	parser      auction.Parser
	base        *url.URL
	concurrency int
	time        chrono.TimeAPI
	tel         telemetry.API
}

// New creates a pipeline, resolver may be nil to skip geocoding.
func New(fetcher Fetcher, store Store, resolver Resolver, base *url.URL, opts Options, tel telemetry.API) *Pipeline {
	assert.NotNil(fetcher)
	assert.NotNil(base)
	assert.NotNil(tel)

	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Time == nil {
		opts.Time = chrono.NewStandardTime()
	}

	return &Pipeline{
		fetcher:     fetcher,
		store:       store,
		resolver:    resolver,
		parser:      auction.NewParser(tel),
		base:        base,
		concurrency: opts.Concurrency,
		time:        opts.Time,
		tel:         telemetry.NewScopedAPI("pipeline", tel),
	}
}

// BaseURL is the root of the auction portal listings are resolved against.
func (p *Pipeline) BaseURL() *url.URL {
	u := *p.base
	return &u
}

// Pass names the kind of run a Report belongs to.
type Pass string

const (
	PassDiscover Pass = "discover"
	PassInit     Pass = "init"
	PassUpdate   Pass = "update"
	PassEnrich   Pass = "enrich"
	PassExport   Pass = "export"
)

// Report is the outcome of a pass, OK + Failed + Skipped always adds up to
// Total.
type Report struct {
	ID         string
	Pass       Pass
	StartedAt  time.Time
	FinishedAt time.Time
	OK         int64
	Failed     int64
	Skipped    int64
	Total      int64
}

func (r Report) String() string {
	return fmt.Sprintf(
		"%s: ok=%d err=%d skipped=%d total=%d (%s)",
		r.Pass, r.OK, r.Failed, r.Skipped, r.Total,
		r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond),
	)
}

type counters struct {
	ok, failed, skipped atomic.Int64
}

func (p *Pipeline) report(pass Pass, started time.Time, c *counters) Report {
	r := Report{
		ID:         ulid.MustNew(ulid.Timestamp(started), ulid.DefaultEntropy()).String(),
		Pass:       pass,
		StartedAt:  started,
		FinishedAt: p.time.Now(),
		OK:         c.ok.Load(),
		Failed:     c.failed.Load(),
		Skipped:    c.skipped.Load(),
	}
	r.Total = r.OK + r.Failed + r.Skipped
	return r
}

// finish records the run and reports its counters.
func (p *Pipeline) finish(ctx context.Context, r Report) Report {
	p.tel.ReportCount(fmt.Sprintf("%s-ok", r.Pass), r.OK)
	p.tel.ReportCount(fmt.Sprintf("%s-err", r.Pass), r.Failed)
	p.tel.ReportCount(fmt.Sprintf("%s-skipped", r.Pass), r.Skipped)
	p.tel.ReportCount(fmt.Sprintf("%s-total", r.Pass), r.Total)

	// the run is recorded even when the pass was cancelled
	err := p.store.RecordRun(context.WithoutCancel(ctx), r)
	if err != nil {
		p.tel.ReportBroken(report_pipeline_record_run, err, r.String())
	}
	return r
}

// Discover collects the auctions of a listing and of every extra page it
// links to. The report counts listing pages, a page that could not be
// fetched or parsed is a failure. Auctions listed twice are returned once.
func (p *Pipeline) Discover(ctx context.Context, listingURL string) ([]boe.ResultLink, Report) {
	ctx, span := tracer.Start(ctx, "Discover")
	defer span.End()

	started := p.time.Now()
	c := &counters{}

	page, first, err := p.listingPage(ctx, listingURL)
	if err != nil {
		c.failed.Add(1)
		return nil, p.report(PassDiscover, started, c)
	}
	c.ok.Add(1)

	extra, err := boe.ExtraPages(ctx, p.base, page)
	if err != nil {
		p.tel.ReportBroken(report_pipeline_discover, err, listingURL)
	}
	span.SetAttributes(attribute.Int("extra_pages", len(extra)))

	pages := make([][]boe.ResultLink, len(extra))
	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for i, pageURL := range extra {
		g.Go(func() error {
			_, links, err := p.listingPage(ctx, pageURL)
			if err != nil {
				c.failed.Add(1)
				return nil
			}
			c.ok.Add(1)
			pages[i] = links
			return nil
		})
	}
	g.Wait()

	seen := map[string]struct{}{}
	var out []boe.ResultLink
	for _, links := range append([][]boe.ResultLink{first}, pages...) {
		for _, link := range links {
			if _, dup := seen[link.AuctionID]; dup {
				continue
			}
			seen[link.AuctionID] = struct{}{}
			out = append(out, link)
		}
	}
	return out, p.report(PassDiscover, started, c)
}

func (p *Pipeline) listingPage(ctx context.Context, pageURL string) (string, []boe.ResultLink, error) {
	page, err := p.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		p.tel.ReportBroken(report_pipeline_discover, err, pageURL)
		return "", nil, err
	}
	links, err := boe.ResultLinks(ctx, p.base, page)
	if err != nil {
		p.tel.ReportBroken(report_pipeline_discover, err, pageURL)
		return "", nil, err
	}
	for _, link := range links {
		if link.State == auction.StateUnknown && link.StateText != "" {
			p.parser.State(link.StateText)
		}
	}
	return page, links, nil
}

// ProcessAuction fetches every page of the auction behind link and builds
// its records. The state of the auction is the one shown in the listing.
func (p *Pipeline) ProcessAuction(ctx context.Context, link boe.ResultLink) (auction.Auction, []auction.Asset, error) {
	ctx, span := tracer.Start(ctx, "ProcessAuction")
	defer span.End()
	span.SetAttributes(attribute.String("auction_id", link.AuctionID))

	page, err := p.fetcher.Fetch(ctx, link.URL)
	if err != nil {
		return auction.Auction{}, nil, err
	}
	managementURL, assetsURL, err := boe.AuctionLinks(ctx, p.base, page)
	if err != nil {
		return auction.Auction{}, nil, err
	}
	auctionData, err := boe.ExtractAuction(ctx, page)
	if err != nil {
		return auction.Auction{}, nil, err
	}

	managementPage, err := p.fetcher.Fetch(ctx, managementURL)
	if err != nil {
		return auction.Auction{}, nil, err
	}
	managementData, err := boe.ExtractManagement(ctx, managementPage)
	if err != nil {
		return auction.Auction{}, nil, err
	}

	a := p.parser.Auction(auctionData, p.parser.Management(managementData), link.State)
	if a.ID == auction.NotApplicable && link.AuctionID != "" {
		a.ID = link.AuctionID
	}

	assetsPage, err := p.fetcher.Fetch(ctx, assetsURL)
	if err != nil {
		return auction.Auction{}, nil, err
	}

	var assets []auction.Asset
	switch a.LotKind {
	case auction.LotNotApplicable:
		data, err := boe.ExtractAsset(ctx, assetsPage)
		if err != nil {
			return auction.Auction{}, nil, err
		}
		asset, err := p.parser.Asset(a.ID, 0, &a.BidInfo, data)
		if err != nil {
			return auction.Auction{}, nil, err
		}
		assets = append(assets, asset)
	default:
		lotLinks, err := boe.LotLinks(ctx, p.base, assetsPage)
		if err != nil {
			return auction.Auction{}, nil, err
		}
		for _, lotLink := range lotLinks {
			lot, err := boe.LotID(lotLink)
			if err != nil {
				return auction.Auction{}, nil, err
			}
			lotPage, err := p.fetcher.Fetch(ctx, lotLink)
			if err != nil {
				return auction.Auction{}, nil, err
			}
			data, err := boe.ExtractLot(ctx, lotPage, lot)
			if err != nil {
				return auction.Auction{}, nil, err
			}
			asset, err := p.parser.Asset(a.ID, lot, &a.BidInfo, data)
			if err != nil {
				return auction.Auction{}, nil, fmt.Errorf("lot %d: %w", lot, err)
			}
			assets = append(assets, asset)
		}
	}
	span.SetAttributes(attribute.Int("assets", len(assets)))
	return a, assets, nil
}

// geocode fills in the coordinates of the properties among assets.
func (p *Pipeline) geocode(ctx context.Context, assets []auction.Asset) {
	if p.resolver == nil {
		return
	}
	for _, asset := range assets {
		property, ok := asset.(*auction.Property)
		if !ok || property.Coordinates != nil {
			continue
		}
		property.Coordinates = p.resolver.Resolve(ctx, geocoder.AddressOf(property))
	}
}

// Init ingests every auction of the full listing.
func (p *Pipeline) Init(ctx context.Context) Report {
	return p.InitListing(ctx, boe.ListingURL(p.base, false))
}

// InitListing ingests the auctions of a listing that are not stored yet.
// Each listing page that could not be read counts as one failure.
func (p *Pipeline) InitListing(ctx context.Context, listingURL string) Report {
	ctx, span := tracer.Start(ctx, "Init")
	defer span.End()

	started := p.time.Now()
	c := &counters{}

	links, discovered := p.Discover(ctx, listingURL)
	c.failed.Add(discovered.Failed)

	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for _, link := range links {
		g.Go(func() error {
			p.ingest(ctx, link, c)
			return nil
		})
	}
	g.Wait()

	return p.finish(ctx, p.report(PassInit, started, c))
}

func (p *Pipeline) ingest(ctx context.Context, link boe.ResultLink, c *counters) {
	exists, err := p.store.AuctionExists(ctx, link.AuctionID)
	if err != nil {
		p.tel.ReportBroken(report_pipeline_persist, err, link.AuctionID)
		c.failed.Add(1)
		return
	}
	if exists {
		c.skipped.Add(1)
		return
	}

	a, assets, err := p.ProcessAuction(ctx, link)
	if err != nil {
		p.tel.ReportBroken(report_pipeline_process_auction, err, link.URL)
		c.failed.Add(1)
		return
	}
	p.geocode(ctx, assets)

	err = p.store.SaveAuction(ctx, a, assets)
	if err != nil {
		p.tel.ReportBroken(report_pipeline_persist, err, a.ID)
		c.failed.Add(1)
		return
	}
	c.ok.Add(1)
}

// Update refreshes the state of the stored auctions that can still change.
// Tracked auctions missing from the listing, or listed without a state, are
// skipped.
func (p *Pipeline) Update(ctx context.Context) Report {
	ctx, span := tracer.Start(ctx, "Update")
	defer span.End()

	started := p.time.Now()
	c := &counters{}

	ids, err := p.store.AuctionIDs(ctx, auction.NonTerminalStates)
	if err != nil {
		p.tel.ReportBroken(report_pipeline_update, err)
		c.failed.Add(1)
		return p.finish(ctx, p.report(PassUpdate, started, c))
	}
	tracked := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		tracked[id] = struct{}{}
	}

	links, discovered := p.Discover(ctx, boe.ListingURL(p.base, false))
	if discovered.OK == 0 {
		c.failed.Add(int64(len(tracked)))
		return p.finish(ctx, p.report(PassUpdate, started, c))
	}

	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for _, link := range links {
		if _, ok := tracked[link.AuctionID]; !ok {
			continue
		}
		delete(tracked, link.AuctionID)

		if link.State == auction.StateUnknown {
			c.skipped.Add(1)
			continue
		}
		g.Go(func() error {
			err := p.store.UpdateState(ctx, link.AuctionID, link.State)
			if err != nil {
				p.tel.ReportBroken(report_pipeline_update, err, link.AuctionID)
				c.failed.Add(1)
				return nil
			}
			c.ok.Add(1)
			return nil
		})
	}
	g.Wait()
	c.skipped.Add(int64(len(tracked)))

	return p.finish(ctx, p.report(PassUpdate, started, c))
}

// Enrich geocodes the stored properties of live auctions that have no
// coordinates yet. Calls are sequential, the resolver is rate limited.
func (p *Pipeline) Enrich(ctx context.Context) Report {
	ctx, span := tracer.Start(ctx, "Enrich")
	defer span.End()

	started := p.time.Now()
	c := &counters{}

	if p.resolver == nil {
		return p.finish(ctx, p.report(PassEnrich, started, c))
	}

	properties, err := p.store.PropertiesWithoutCoordinates(ctx, auction.NonTerminalStates)
	if err != nil {
		p.tel.ReportBroken(report_pipeline_enrich, err)
		c.failed.Add(1)
		return p.finish(ctx, p.report(PassEnrich, started, c))
	}

	for _, property := range properties {
		if ctx.Err() != nil {
			c.skipped.Add(1)
			continue
		}
		coords := p.resolver.Resolve(ctx, geocoder.AddressOf(property))
		if coords == nil {
			c.skipped.Add(1)
			continue
		}
		err := p.store.UpdateCoordinates(ctx, property.Key(), *coords)
		if err != nil {
			p.tel.ReportBroken(report_pipeline_enrich, err, property.AuctionID, property.Lot)
			c.failed.Add(1)
			continue
		}
		c.ok.Add(1)
	}

	return p.finish(ctx, p.report(PassEnrich, started, c))
}

// ExportSink receives encoded snapshots.
type ExportSink interface {
	Write(ctx context.Context, data []byte) error
	String() string
}

// Export writes a snapshot of the ongoing auctions and their assets to sink.
// The report counts exported auctions.
func (p *Pipeline) Export(ctx context.Context, sink ExportSink) (Report, error) {
	ctx, span := tracer.Start(ctx, "Export")
	defer span.End()

	started := p.time.Now()
	c := &counters{}

	index, err := p.index(ctx, []auction.AuctionState{auction.StateOngoing})
	if err == nil {
		var data []byte
		data, err = index.Snapshot(p.time.Now())
		if err == nil {
			err = sink.Write(ctx, data)
		}
	}
	if err != nil {
		err = fmt.Errorf("export to %s: %w", sink, err)
		p.tel.ReportBroken(report_pipeline_export, err)
		c.failed.Add(int64(max(index.Len(), 1)))
		return p.finish(ctx, p.report(PassExport, started, c)), err
	}

	c.ok.Add(int64(index.Len()))
	return p.finish(ctx, p.report(PassExport, started, c)), nil
}

func (p *Pipeline) index(ctx context.Context, states []auction.AuctionState) (Index, error) {
	auctions, err := p.store.Auctions(ctx, states)
	if err != nil {
		return Index{}, err
	}
	assets, err := p.store.Assets(ctx, states)
	if err != nil {
		return Index{}, err
	}
	index, orphans := NewIndex(auctions, assets)
	if orphans > 0 {
		p.tel.ReportWarning(report_pipeline_export, errors.New("assets without auction"), orphans)
	}
	return index, nil
}

// RecentRunsLimit is how many runs Statistics lists.
const RecentRunsLimit = 10

// Statistics summarizes every stored auction.
func (p *Pipeline) Statistics(ctx context.Context) (Statistics, error) {
	ctx, span := tracer.Start(ctx, "Statistics")
	defer span.End()

	index, err := p.index(ctx, auction.AuctionStates())
	if err != nil {
		return Statistics{}, fmt.Errorf("statistics: %w", err)
	}
	runs, err := p.store.RecentRuns(ctx, RecentRunsLimit)
	if err != nil {
		return Statistics{}, fmt.Errorf("statistics: %w", err)
	}
	stats := index.Statistics()
	stats.Runs = runs
	return stats, nil
}
