package pipeline

import (
	"sort"
	"time"

	"subastas-ingest/internal/auction"
	"subastas-ingest/internal/snapshot"
)

// Index is an immutable view of a set of auctions and their assets, it is
// built once per export or statistics request.
type Index struct {
	auctions map[string]auction.Auction
	order    []string
	assets   []auction.Asset
	byID     map[string][]auction.Asset
}

// NewIndex indexes auctions by id and groups assets by auction. Assets whose
// auction is not among auctions are dropped, their count is returned.
func NewIndex(auctions []auction.Auction, assets []auction.Asset) (Index, int) {
	idx := Index{
		auctions: make(map[string]auction.Auction, len(auctions)),
		byID:     make(map[string][]auction.Asset, len(auctions)),
	}
	for _, a := range auctions {
		if _, dup := idx.auctions[a.ID]; !dup {
			idx.order = append(idx.order, a.ID)
		}
		idx.auctions[a.ID] = a
	}
	sort.Strings(idx.order)

	orphans := 0
	for _, asset := range assets {
		key := asset.Key()
		if _, ok := idx.auctions[key.AuctionID]; !ok {
			orphans++
			continue
		}
		idx.assets = append(idx.assets, asset)
		idx.byID[key.AuctionID] = append(idx.byID[key.AuctionID], asset)
	}
	return idx, orphans
}

func (i Index) Len() int {
	return len(i.order)
}

func (i Index) Auction(id string) (auction.Auction, bool) {
	a, ok := i.auctions[id]
	return a, ok
}

// AssetsOf lists the assets of an auction.
func (i Index) AssetsOf(id string) []auction.Asset {
	return append([]auction.Asset(nil), i.byID[id]...)
}

// Auctions lists the indexed auctions ordered by id.
func (i Index) Auctions() []auction.Auction {
	out := make([]auction.Auction, len(i.order))
	for n, id := range i.order {
		out[n] = i.auctions[id]
	}
	return out
}

// Snapshot encodes the index.
func (i Index) Snapshot(generatedAt time.Time) ([]byte, error) {
	return snapshot.Encode(snapshot.Snapshot{
		GeneratedAt: generatedAt,
		Auctions:    i.Auctions(),
		Assets:      append([]auction.Asset(nil), i.assets...),
	})
}

// MonthCount is the number of auctions ending in a month.
type MonthCount struct {
	Month time.Time
	Count int
}

// CategoryKey names an asset category within its asset kind.
type CategoryKey struct {
	Kind     auction.AssetKind
	Category string
}

type Statistics struct {
	Auctions   int
	Assets     int
	ByState    map[auction.AuctionState]int
	ByKind     map[auction.AuctionKind]int
	ByCategory map[CategoryKey]int
	ByProvince map[auction.Province]int
	// EndMonths is the histogram of ongoing auctions by the month they end
	// in, oldest first.
	EndMonths []MonthCount
	Runs      []Report
}

func (i Index) Statistics() Statistics {
	stats := Statistics{
		Auctions:   len(i.order),
		Assets:     len(i.assets),
		ByState:    map[auction.AuctionState]int{},
		ByKind:     map[auction.AuctionKind]int{},
		ByCategory: map[CategoryKey]int{},
		ByProvince: map[auction.Province]int{},
	}

	months := map[time.Time]int{}
	for _, a := range i.auctions {
		stats.ByState[a.State]++
		stats.ByKind[a.Kind]++
		if a.State == auction.StateOngoing && !a.EndDate.Equal(auction.SentinelDate) {
			month := time.Date(a.EndDate.Year(), a.EndDate.Month(), 1, 0, 0, 0, 0, time.UTC)
			months[month]++
		}
	}
	for _, asset := range i.assets {
		stats.ByCategory[CategoryKey{Kind: asset.Kind(), Category: asset.CategoryLabel()}]++
		if property, ok := asset.(*auction.Property); ok {
			stats.ByProvince[property.Province]++
		}
	}

	for month, count := range months {
		stats.EndMonths = append(stats.EndMonths, MonthCount{Month: month, Count: count})
	}
	sort.Slice(stats.EndMonths, func(a, b int) bool {
		return stats.EndMonths[a].Month.Before(stats.EndMonths[b].Month)
	})
	return stats
}
