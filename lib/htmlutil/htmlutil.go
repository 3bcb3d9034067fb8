package htmlutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("subastas.lib.htmlutil")

var ErrMissingCell = errors.New("table row without label or value cell")

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// Anchor is a link found in a page, URL is already resolved against the
// page it was found in.
type Anchor struct {
	Name string
	URL  *url.URL
}

// GetAnchors returns the anchors of sel that carry an href, relative hrefs
// are resolved against base when it is not nil.
func GetAnchors(ctx context.Context, base *url.URL, sel *goquery.Selection) []Anchor {
	_, span := tracer.Start(ctx, "GetAnchors")
	defer span.End()

	anchors := []Anchor{}
	for _, n := range sel.Nodes {
		href, ok := "", false
		for _, a := range n.Attr {
			if a.Key == "href" {
				href, ok = a.Val, true
				break
			}
		}
		if !ok {
			continue
		}

		link, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "got error while parsing url")
			continue
		}
		if base != nil {
			link = base.ResolveReference(link)
		}

		name := GetText(n)
		name = removeNonPrintable(name)
		name = strings.Trim(name, " \t\n")
		name = innerWhitespace.ReplaceAllString(name, " ")

		anchors = append(anchors, Anchor{
			Name: name,
			URL:  link,
		})
		span.AddEvent("anchor", trace.WithAttributes(
			attribute.String("name", name),
			attribute.String("url", link.String()),
		))
	}

	return anchors
}

// Row is a label/value pair of a two column table.
type Row struct {
	Label string
	Value string
}

// TableRows returns the trimmed text of the first th and td of every tr
// under sel. A row lacking either cell fails the whole table.
func TableRows(ctx context.Context, sel *goquery.Selection) ([]Row, error) {
	_, span := tracer.Start(ctx, "TableRows")
	defer span.End()

	var rows []Row
	var err error
	sel.Find("tr").EachWithBreak(func(i int, tr *goquery.Selection) bool {
		th := tr.Find("th").First()
		td := tr.Find("td").First()
		if th.Length() == 0 || td.Length() == 0 {
			err = fmt.Errorf("row %d: %w", i, ErrMissingCell)
			return false
		}
		rows = append(rows, Row{
			Label: strings.TrimSpace(GetText(th.Nodes[0])),
			Value: strings.TrimSpace(GetText(td.Nodes[0])),
		})
		return true
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed table")
		return nil, err
	}
	span.SetAttributes(attribute.Int("rows", len(rows)))
	return rows, nil
}
