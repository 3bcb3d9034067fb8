package boe

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"subastas-ingest/internal/auction"

	"github.com/stretchr/testify/require"
)

func TestResultLinks(t *testing.T) {
	links, err := ResultLinks(context.Background(), testBase(t), fixture(t, "listing_results.html"))
	require.NoError(t, err)
	require.Len(t, links, 3)

	expected := []string{"SUB-JA-2020-146153", "SUB-JA-2020-149625", "SUB-AT-2020-20R4186001070"}
	for i, link := range links {
		require.Equal(t, expected[i], link.AuctionID)
		require.Equal(t, auction.StateOngoing, link.State)
		require.Equal(t, "Celebrándose", link.StateText)
		require.True(t, strings.HasPrefix(link.URL, "https://subastas.boe.es/detalleSubasta.php?idSub="+expected[i]), link.URL)
	}
}

func TestResultLinksWithoutState(t *testing.T) {
	page := `<ul><li class="resultado-busqueda">
		<a class="resultado-busqueda-link-otro" href="./detalleSubasta.php?idSub=SUB-1">Más...</a>
	</li></ul>`
	links, err := ResultLinks(context.Background(), testBase(t), page)
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, auction.StateUnknown, links[0].State)
	require.Empty(t, links[0].StateText)

	_, err = ResultLinks(context.Background(), testBase(t), `<ul><li class="resultado-busqueda">Estado: Celebrándose</li></ul>`)
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestExtraPages(t *testing.T) {
	pages, err := ExtraPages(context.Background(), testBase(t), fixture(t, "listing_pagination.html"))
	require.NoError(t, err)
	require.Len(t, pages, 3)

	for i, suffix := range []string{"-500-500", "-1000-500", "-1500-500"} {
		require.True(t, strings.HasPrefix(pages[i], "https://subastas.boe.es/subastas_ava.php?accion=Mas&id_busqueda="), pages[i])
		require.True(t, strings.HasSuffix(pages[i], suffix), pages[i])
	}
}

func TestExtraPagesCount(t *testing.T) {
	testCases := []struct {
		total    string
		expected int
	}{
		{total: "3", expected: 0},
		{total: "500", expected: 0},
		{total: "501", expected: 1},
		{total: "1.000", expected: 1},
		{total: "1.572", expected: 3},
	}

	for _, test := range testCases {
		page := `<div class="paginar"><p>Resultados 1 a 500 de ` + test.total + `</p></div>
			<div class="paginar2"><a href="subastas_ava.php?accion=Mas&id_busqueda=abc-500-500">2</a></div>`
		pages, err := ExtraPages(context.Background(), testBase(t), page)
		require.NoError(t, err, test.total)
		require.Len(t, pages, test.expected, test.total)
	}

	pages, err := ExtraPages(context.Background(), testBase(t), `<div class="listadoResult"></div>`)
	require.NoError(t, err)
	require.Empty(t, pages)

	_, err = ExtraPages(context.Background(), testBase(t), `<div class="paginar"><p>Resultados de muchos</p></div>`)
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestAuctionLinks(t *testing.T) {
	management, assets, err := AuctionLinks(context.Background(), testBase(t), fixture(t, "auction_links.html"))
	require.NoError(t, err)

	mgmURL, err := url.Parse(management)
	require.NoError(t, err)
	require.Equal(t, "2", mgmURL.Query().Get("ver"))
	require.Equal(t, "SUB-JA-2020-149474", AuctionID(mgmURL))

	assetsURL, err := url.Parse(assets)
	require.NoError(t, err)
	require.Equal(t, "3", assetsURL.Query().Get("ver"))
	require.Equal(t, "https", assetsURL.Scheme)
	require.Equal(t, "subastas.boe.es", assetsURL.Host)

	_, _, err = AuctionLinks(context.Background(), testBase(t), `<ul class="navlist"><li><a href="a">a</a></li></ul>`)
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestLotLinks(t *testing.T) {
	links, err := LotLinks(context.Background(), testBase(t), fixture(t, "lot_links.html"))
	require.NoError(t, err)
	require.Len(t, links, 2)

	for i, link := range links {
		lot, err := LotID(link)
		require.NoError(t, err)
		require.Equal(t, i+1, lot)

		u, err := url.Parse(link)
		require.NoError(t, err)
		require.Equal(t, "SUB-JA-2020-158475", AuctionID(u))
		require.Equal(t, "cont-tabs", u.Fragment)
	}

	_, err = LotLinks(context.Background(), testBase(t), `<ul class="navlist"></ul>`)
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))

	_, err = LotLinks(context.Background(), testBase(t), `<ul class="navlistver"><li>Lote 1</li></ul>`)
	require.True(t, errors.As(err, &parseErr))
	require.Equal(t, "ul.navlistver a", parseErr.Selector)

	_, err = LotID("https://subastas.boe.es/detalleSubasta.php?idSub=SUB-1")
	require.True(t, errors.As(err, &parseErr))
}

func TestListingURL(t *testing.T) {
	all, err := url.Parse(ListingURL(testBase(t), false))
	require.NoError(t, err)
	require.Equal(t, "/subastas_ava.php", all.Path)
	require.Equal(t, "", all.Query().Get("dato[2]"))
	require.Equal(t, "500", all.Query().Get("page_hits"))

	ongoing, err := url.Parse(ListingURL(testBase(t), true))
	require.NoError(t, err)
	require.Equal(t, "EJ", ongoing.Query().Get("dato[2]"))

	detail, err := url.Parse(DetailURL(testBase(t), "SUB-1"))
	require.NoError(t, err)
	require.Equal(t, "SUB-1", AuctionID(detail))
}
