package boe

import (
	"context"
	"fmt"
	"strings"

	"subastas-ingest/internal/auction"
	"subastas-ingest/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	auctionBlock    = "div[id=idBloqueDatos1]"
	managementBlock = "div[id=idBloqueDatos2]"
	assetBlock      = "div[id^=idBloqueLote]"
)

func lotBlock(lot int) string {
	return fmt.Sprintf("div[id=idBloqueLote%d]", lot)
}

// ParseError means a page did not have the expected structure, the page is
// abandoned.
type ParseError struct {
	Selector string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Selector, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseDocument(page string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, &ParseError{Selector: "document", Err: err}
	}
	return doc, nil
}

func findBlock(doc *goquery.Document, selector string) (*goquery.Selection, error) {
	block := doc.Find(selector).First()
	if block.Length() == 0 {
		return nil, &ParseError{Selector: selector, Err: fmt.Errorf("container not found")}
	}
	return block, nil
}

func conceptsOf(ctx context.Context, block *goquery.Selection, selector string) (auction.ConceptMap, error) {
	rows, err := htmlutil.TableRows(ctx, block)
	if err != nil {
		return nil, &ParseError{Selector: selector, Err: err}
	}

	data := make(auction.ConceptMap, len(rows)+1)
	for _, row := range rows {
		concept, err := auction.ParseConcept(row.Label)
		if err != nil {
			return nil, &ParseError{Selector: selector, Err: err}
		}
		data[concept] = row.Value
	}
	return data, nil
}

// ExtractConcepts reads the label/value table under the first element
// matching selector.
func ExtractConcepts(ctx context.Context, page, selector string) (auction.ConceptMap, error) {
	ctx, span := tracer.Start(ctx, "ExtractConcepts")
	defer span.End()
	span.SetAttributes(attribute.String("selector", selector))

	doc, err := parseDocument(page)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	block, err := findBlock(doc, selector)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	data, err := conceptsOf(ctx, block, selector)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return data, nil
}

func ExtractAuction(ctx context.Context, page string) (auction.ConceptMap, error) {
	return ExtractConcepts(ctx, page, auctionBlock)
}

func ExtractManagement(ctx context.Context, page string) (auction.ConceptMap, error) {
	return ExtractConcepts(ctx, page, managementBlock)
}

func extractWithHeader(ctx context.Context, page, selector string) (auction.ConceptMap, error) {
	ctx, span := tracer.Start(ctx, "ExtractAssetBlock")
	defer span.End()
	span.SetAttributes(attribute.String("selector", selector))

	doc, err := parseDocument(page)
	if err != nil {
		return nil, err
	}
	block, err := findBlock(doc, selector)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	data, err := conceptsOf(ctx, block, selector)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	header := block.Find("h4").First()
	if header.Length() == 0 {
		err := &ParseError{Selector: selector + " h4", Err: fmt.Errorf("header not found")}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	data[auction.ConceptHeader] = strings.ToUpper(strings.TrimSpace(header.Text()))
	return data, nil
}

// ExtractAsset reads the single asset block of an auction without lots.
func ExtractAsset(ctx context.Context, page string) (auction.ConceptMap, error) {
	return extractWithHeader(ctx, page, assetBlock)
}

// ExtractLot reads the block of lot n out of a lot page.
func ExtractLot(ctx context.Context, page string, lot int) (auction.ConceptMap, error) {
	return extractWithHeader(ctx, page, lotBlock(lot))
}
