package boe

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subastas-ingest/internal/auction"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func fixture(t testing.TB, name string) string {
	t.Helper()
	contents, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(contents)
}

func testBase(t testing.TB) *url.URL {
	t.Helper()
	base, err := url.Parse(DefaultBaseURL)
	require.NoError(t, err)
	return base
}

func TestExtractAuction(t *testing.T) {
	data, err := ExtractAuction(context.Background(), fixture(t, "auction_page.html"))
	require.NoError(t, err)

	expected := auction.ConceptMap{
		auction.ConceptIdentifier:    "SUB-NE-2020-465937",
		auction.ConceptAuctionKind:   "NOTARIAL EN VENTA EXTRAJUDICIAL",
		auction.ConceptStartDate:     "14-07-2020 18:00:00 CET  (ISO: 2020-07-14T18:00:00+02:00)",
		auction.ConceptEndDate:       "03-08-2020 18:00:00 CET  (ISO: 2020-08-03T18:00:00+02:00)",
		auction.ConceptClaimQuantity: "81.971,57 €",
		auction.ConceptLots:          "Sin lotes",
		auction.ConceptNotice:        "BOE-B-2020-21708",
		auction.ConceptAuctionValue:  "75.127,00 €",
		auction.ConceptAppraisal:     "75.127,00 €",
		auction.ConceptMinimumBid:    "Sin puja mínima",
		auction.ConceptBidStep:       "Sin tramos",
		auction.ConceptDepositAmount: "3.756,35 €",
	}
	if diff := cmp.Diff(expected, data); diff != "" {
		t.Fatalf("auction concepts mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractManagement(t *testing.T) {
	data, err := ExtractManagement(context.Background(), fixture(t, "management_page.html"))
	require.NoError(t, err)

	expected := auction.ConceptMap{
		auction.ConceptCode:        "3003000230",
		auction.ConceptDescription: "UNIDAD SUBASTAS JUDICIALES MURCIA (Ministerio de Justicia)",
		auction.ConceptAddress:     "AV DE LA JUSTICIA S/N S/N   ; 30011 MURCIA",
		auction.ConceptTelephone:   "968833360",
		auction.ConceptFax:         "-",
		auction.ConceptEmail:       "subastas.murcia@justicia.es",
	}
	if diff := cmp.Diff(expected, data); diff != "" {
		t.Fatalf("management concepts mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractAsset(t *testing.T) {
	data, err := ExtractAsset(context.Background(), fixture(t, "asset_page.html"))
	require.NoError(t, err)

	expected := auction.ConceptMap{
		auction.ConceptHeader:              "BIEN 1 - INMUEBLE (VIVIENDA)",
		auction.ConceptDescription:         "FINCA URBANA SITUADA EN VALLADOLID, CALLE MARIANO DE LOS COBOS NUM.90, BAJO-1º",
		auction.ConceptCatastroReference:   "4110202UM5141A0003HH",
		auction.ConceptAddress:             "CALLE MARIANO DE LOS COBOS 90",
		auction.ConceptPostalCode:          "47014",
		auction.ConceptCity:                "VALLADOLID",
		auction.ConceptProvince:            "Valladolid",
		auction.ConceptPrimaryResidence:    "Sí",
		auction.ConceptOwnerStatus:         "No consta",
		auction.ConceptVisitable:           "No consta",
		auction.ConceptRegisterInscription: "CONSTA EN EL EDICTO",
	}
	if diff := cmp.Diff(expected, data); diff != "" {
		t.Fatalf("asset concepts mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractLot(t *testing.T) {
	page := fixture(t, "lot_page.html")

	data, err := ExtractLot(context.Background(), page, 2)
	require.NoError(t, err)
	require.Len(t, data, 12)
	require.Equal(t, "BIEN 1 - INMUEBLE (GARAJE)", data[auction.ConceptHeader])
	require.Equal(t, "15.100,00 €", data[auction.ConceptAuctionValue])
	require.Equal(t, "755,00 €", data[auction.ConceptDepositAmount])
	require.Equal(t, "Sin puja mínima", data[auction.ConceptMinimumBid])
	require.Equal(t, "302,00 €", data[auction.ConceptBidStep])
	require.Equal(t, "GARAJE SITO EN LOGROÑO", data[auction.ConceptDescription])
	require.Equal(t, "AVENIDA MANUEL DE FALLA Nº51 SOTANA Nº1", data[auction.ConceptAddress])
	require.Equal(t, "26007", data[auction.ConceptPostalCode])
	require.Equal(t, "LOGROÑO", data[auction.ConceptCity])
	require.Equal(t, "La Rioja", data[auction.ConceptProvince])
	require.Equal(t, "No consta", data[auction.ConceptOwnerStatus])
	require.Equal(t, "No consta", data[auction.ConceptVisitable])

	_, err = ExtractLot(context.Background(), page, 1)
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Equal(t, "div[id=idBloqueLote1]", parseErr.Selector)
}

func TestExtractErrors(t *testing.T) {
	testCases := []struct {
		name string
		page string
		err  error
	}{
		{
			name: "missing container",
			page: `<div id="other"><table><tr><th>Código</th><td>1</td></tr></table></div>`,
		},
		{
			name: "row without value",
			page: `<div id="idBloqueDatos2"><table><tr><th>Código</th></tr></table></div>`,
		},
		{
			name: "unknown label",
			page: `<div id="idBloqueDatos2"><table><tr><th>Color favorito</th><td>azul</td></tr></table></div>`,
			err:  auction.ErrUnknownConcept,
		},
	}

	for _, test := range testCases {
		_, err := ExtractManagement(context.Background(), test.page)
		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr), test.name)
		if test.err != nil {
			require.True(t, errors.Is(err, test.err), test.name)
		}
	}

	_, err := ExtractAsset(context.Background(), `<div id="idBloqueLote1"><table></table></div>`)
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	require.True(t, strings.HasSuffix(parseErr.Selector, "h4"))
}
