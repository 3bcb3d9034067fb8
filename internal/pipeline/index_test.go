package pipeline

import (
	"testing"
	"time"

	"subastas-ingest/internal/auction"

	"github.com/stretchr/testify/require"
)

func TestIndex(t *testing.T) {
	ongoing := func(id string, end time.Time) auction.Auction {
		a := testAuction(id, auction.StateOngoing)
		a.EndDate = end
		return a
	}

	auctions := []auction.Auction{
		ongoing("C", time.Date(2020, 9, 3, 0, 0, 0, 0, time.UTC)),
		ongoing("A", time.Date(2020, 7, 14, 0, 0, 0, 0, time.UTC)),
		ongoing("B", time.Date(2020, 7, 30, 0, 0, 0, 0, time.UTC)),
		ongoing("D", auction.SentinelDate),
		testAuction("E", auction.StateFinished),
	}
	assets := append(testAssets("A"), testAssets("Z")...)

	index, orphans := NewIndex(auctions, assets)
	require.Equal(t, 3, orphans)
	require.Equal(t, 5, index.Len())
	require.Len(t, index.AssetsOf("A"), 3)
	require.Empty(t, index.AssetsOf("B"))

	ids := []string{}
	for _, a := range index.Auctions() {
		ids = append(ids, a.ID)
	}
	require.Equal(t, []string{"A", "B", "C", "D", "E"}, ids)

	_, ok := index.Auction("Z")
	require.False(t, ok)

	stats := index.Statistics()
	require.Equal(t, 5, stats.Auctions)
	require.Equal(t, 3, stats.Assets)
	require.Equal(t, map[auction.AuctionState]int{
		auction.StateOngoing:  4,
		auction.StateFinished: 1,
	}, stats.ByState)
	require.Equal(t, map[auction.Province]int{auction.LaRioja: 1}, stats.ByProvince)
	require.Equal(t, []MonthCount{
		{Month: time.Date(2020, 7, 1, 0, 0, 0, 0, time.UTC), Count: 2},
		{Month: time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC), Count: 1},
	}, stats.EndMonths)

	data, err := index.Snapshot(time.Date(2020, 7, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotEmpty(t, data)
}
