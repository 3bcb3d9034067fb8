package boe

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"subastas-ingest/internal/auction"
	"subastas-ingest/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// PageSize is the number of results per listing page, it is the page_hits
// value of the listing queries.
const PageSize = 500

const stateMarker = "Estado: "

// the state filter is dato[2], "EJ" keeps ongoing auctions only
const listingQuery = "subastas_ava.php?campo%%5B0%%5D=SUBASTA.ORIGEN&dato%%5B0%%5D=" +
	"&campo%%5B1%%5D=SUBASTA.AUTORIDAD&dato%%5B1%%5D=" +
	"&campo%%5B2%%5D=SUBASTA.ESTADO&dato%%5B2%%5D=%s" +
	"&campo%%5B3%%5D=BIEN.TIPO&dato%%5B3%%5D=&dato%%5B4%%5D=" +
	"&campo%%5B5%%5D=BIEN.DIRECCION&dato%%5B5%%5D=" +
	"&campo%%5B6%%5D=BIEN.CODPOSTAL&dato%%5B6%%5D=" +
	"&campo%%5B7%%5D=BIEN.LOCALIDAD&dato%%5B7%%5D=" +
	"&campo%%5B8%%5D=BIEN.COD_PROVINCIA&dato%%5B8%%5D=" +
	"&campo%%5B9%%5D=SUBASTA.POSTURA_MINIMA_MINIMA_LOTES&dato%%5B9%%5D=" +
	"&campo%%5B10%%5D=SUBASTA.NUM_CUENTA_EXPEDIENTE_1&dato%%5B10%%5D=" +
	"&campo%%5B11%%5D=SUBASTA.NUM_CUENTA_EXPEDIENTE_2&dato%%5B11%%5D=" +
	"&campo%%5B12%%5D=SUBASTA.NUM_CUENTA_EXPEDIENTE_3&dato%%5B12%%5D=" +
	"&campo%%5B13%%5D=SUBASTA.NUM_CUENTA_EXPEDIENTE_4&dato%%5B13%%5D=" +
	"&campo%%5B14%%5D=SUBASTA.NUM_CUENTA_EXPEDIENTE_5&dato%%5B14%%5D=" +
	"&campo%%5B15%%5D=SUBASTA.ID_SUBASTA_BUSCAR&dato%%5B15%%5D=" +
	"&campo%%5B16%%5D=SUBASTA.FECHA_FIN_YMD&dato%%5B16%%5D%%5B0%%5D=&dato%%5B16%%5D%%5B1%%5D=" +
	"&campo%%5B17%%5D=SUBASTA.FECHA_INICIO_YMD&dato%%5B17%%5D%%5B0%%5D=&dato%%5B17%%5D%%5B1%%5D=" +
	"&page_hits=%d" +
	"&sort_field%%5B0%%5D=SUBASTA.FECHA_FIN_YMD&sort_order%%5B0%%5D=%s" +
	"&sort_field%%5B1%%5D=SUBASTA.FECHA_FIN_YMD&sort_order%%5B1%%5D=asc" +
	"&sort_field%%5B2%%5D=SUBASTA.HORA_FIN&sort_order%%5B2%%5D=asc" +
	"&accion=Buscar"

// ListingURL is the first page of the search over every auction, or over the
// ongoing ones only.
func ListingURL(base *url.URL, ongoing bool) string {
	state, order := "", "asc"
	if ongoing {
		state, order = "EJ", "desc"
	}
	ref, _ := url.Parse(fmt.Sprintf(listingQuery, state, PageSize, order))
	return base.ResolveReference(ref).String()
}

// DetailURL is the page of a single auction.
func DetailURL(base *url.URL, id string) string {
	ref := &url.URL{Path: "detalleSubasta.php", RawQuery: url.Values{"idSub": {id}}.Encode()}
	return base.ResolveReference(ref).String()
}

// ResultLink is an auction found in a listing page.
type ResultLink struct {
	URL       string
	AuctionID string
	State     auction.AuctionState
	// StateText is the raw word the state was parsed from, empty when the
	// result did not show one.
	StateText string
}

func stateWord(text string) string {
	i := strings.Index(text, stateMarker)
	if i < 0 {
		return ""
	}
	fields := strings.Fields(text[i+len(stateMarker):])
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ResultLinks returns the auctions of a listing page along with the state
// shown next to each one.
func ResultLinks(ctx context.Context, base *url.URL, page string) ([]ResultLink, error) {
	ctx, span := tracer.Start(ctx, "ResultLinks")
	defer span.End()

	doc, err := parseDocument(page)
	if err != nil {
		return nil, err
	}

	var links []ResultLink
	doc.Find("li.resultado-busqueda").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		anchors := htmlutil.GetAnchors(ctx, base, li.Find("a.resultado-busqueda-link-otro").First())
		if len(anchors) == 0 {
			err = &ParseError{
				Selector: "a.resultado-busqueda-link-otro",
				Err:      fmt.Errorf("result without link"),
			}
			return false
		}
		link := anchors[0].URL

		word := stateWord(li.Text())
		state := auction.StateUnknown
		if word != "" {
			state, _ = auction.ParseAuctionState(word)
		}
		links = append(links, ResultLink{
			URL:       link.String(),
			AuctionID: AuctionID(link),
			State:     state,
			StateText: word,
		})
		return true
	})
	if err != nil {
		return nil, err
	}
	return links, nil
}

// ExtraPages returns the urls of the listing pages after the first one. A
// listing without pagination has no extra pages.
func ExtraPages(ctx context.Context, base *url.URL, page string) ([]string, error) {
	_, span := tracer.Start(ctx, "ExtraPages")
	defer span.End()

	doc, err := parseDocument(page)
	if err != nil {
		return nil, err
	}

	summary := doc.Find("div.paginar").First()
	if summary.Length() == 0 {
		return nil, nil
	}
	words := strings.Fields(summary.Text())
	if len(words) == 0 {
		return nil, nil
	}
	total, err := strconv.Atoi(strings.ReplaceAll(words[len(words)-1], ".", ""))
	if err != nil {
		return nil, &ParseError{Selector: "div.paginar", Err: fmt.Errorf("total results: %w", err)}
	}

	href, ok := doc.Find("div.paginar2 a").First().Attr("href")
	if !ok {
		return nil, nil
	}
	template, _, _ := strings.Cut(href, "-")

	pages := int(math.Ceil(float64(total) / PageSize))
	var urls []string
	for k := 1; k < pages; k++ {
		ref, err := url.Parse(fmt.Sprintf("%s-%d-%d", template, k*PageSize, PageSize))
		if err != nil {
			return nil, &ParseError{Selector: "div.paginar2 a", Err: err}
		}
		urls = append(urls, base.ResolveReference(ref).String())
	}
	return urls, nil
}

// AuctionLinks returns the management and assets tabs of an auction page.
func AuctionLinks(ctx context.Context, base *url.URL, page string) (management, assets string, err error) {
	ctx, span := tracer.Start(ctx, "AuctionLinks")
	defer span.End()

	doc, err := parseDocument(page)
	if err != nil {
		return "", "", err
	}
	anchors := htmlutil.GetAnchors(ctx, base, doc.Find("ul.navlist").First().Find("a"))
	if len(anchors) < 3 {
		return "", "", &ParseError{
			Selector: "ul.navlist a",
			Err:      fmt.Errorf("expected at least 3 links, got %d", len(anchors)),
		}
	}
	return anchors[1].URL.String(), anchors[2].URL.String(), nil
}

// LotLinks returns the link of every lot of an auction.
func LotLinks(ctx context.Context, base *url.URL, page string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "LotLinks")
	defer span.End()

	doc, err := parseDocument(page)
	if err != nil {
		return nil, err
	}
	list := doc.Find("ul.navlistver").First()
	if list.Length() == 0 {
		return nil, &ParseError{Selector: "ul.navlistver", Err: fmt.Errorf("lot list not found")}
	}

	anchors := htmlutil.GetAnchors(ctx, base, list.Find("a"))
	if len(anchors) == 0 {
		return nil, &ParseError{Selector: "ul.navlistver a", Err: fmt.Errorf("lot list is empty")}
	}
	links := make([]string, len(anchors))
	for i, a := range anchors {
		links[i] = a.URL.String()
	}
	return links, nil
}

// AuctionID is the idSub query value of an auction link.
func AuctionID(link *url.URL) string {
	return link.Query().Get("idSub")
}

// LotID is the idLote query value of a lot link.
func LotID(link string) (int, error) {
	u, err := url.Parse(link)
	if err != nil {
		return 0, &ParseError{Selector: "idLote", Err: err}
	}
	lot, err := strconv.Atoi(u.Query().Get("idLote"))
	if err != nil || lot <= 0 {
		return 0, &ParseError{Selector: "idLote", Err: fmt.Errorf("invalid lot in %q", link)}
	}
	return lot, nil
}
