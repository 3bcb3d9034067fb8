package auction

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTaxonomyParsingIgnoresCase(t *testing.T) {
	for _, c := range PropertyCategories() {
		label := c.Label()
		upper, err := ParsePropertyCategory(strings.ToUpper(label))
		require.NoError(t, err, label)
		lower, err := ParsePropertyCategory(strings.ToLower(label))
		require.NoError(t, err, label)
		require.Equal(t, upper, lower)
	}
	for _, c := range OtherCategories() {
		label := c.Label()
		upper, err := ParseOtherCategory(strings.ToUpper(label))
		require.NoError(t, err, label)
		lower, err := ParseOtherCategory(strings.ToLower(label))
		require.NoError(t, err, label)
		require.Equal(t, upper, lower)
	}
	for _, p := range Provinces() {
		label := p.Label()
		upper, err := ParseProvince(strings.ToUpper(label))
		require.NoError(t, err, label)
		lower, err := ParseProvince(strings.ToLower(label))
		require.NoError(t, err, label)
		require.Equal(t, p, upper)
		require.Equal(t, p, lower)
	}
}

func TestTaxonomyDefaults(t *testing.T) {
	property, err := ParsePropertyCategory("")
	require.NoError(t, err)
	require.Equal(t, PropertyApartment, property)

	vehicle, err := ParseVehicleCategory("")
	require.NoError(t, err)
	require.Equal(t, VehicleCar, vehicle)

	other, err := ParseOtherCategory("")
	require.NoError(t, err)
	require.Equal(t, OtherOther, other)

	province, err := ParseProvince("")
	require.NoError(t, err)
	require.Equal(t, ProvinceUnknown, province)
}

func TestTaxonomyLabels(t *testing.T) {
	testCases := []struct {
		label    string
		expected PropertyCategory
	}{
		{label: "Vivienda", expected: PropertyApartment},
		{label: "LOCAL COMERCIAL", expected: PropertyBusinessPremises},
		{label: "Nave industrial", expected: PropertyIndustrial},
		{label: "Finca rústica", expected: PropertyRustic},
		{label: "FINCA RUSTICA", expected: PropertyRustic},
		{label: "Garaje", expected: PropertyGarage},
		{label: "Otros", expected: PropertyOther},
	}

	for _, test := range testCases {
		category, err := ParsePropertyCategory(test.label)
		require.NoError(t, err, test.label)
		require.Equal(t, test.expected, category, test.label)
	}

	other, err := ParseOtherCategory("OTROS BIENES Y DERECHOS")
	require.NoError(t, err)
	require.Equal(t, OtherOtherRights, other)

	other, err = ParseOtherCategory("Joyas, obras de arte y antigüedades")
	require.NoError(t, err)
	require.Equal(t, OtherAntiques, other)

	vehicle, err := ParseVehicleCategory("Industriales")
	require.NoError(t, err)
	require.Equal(t, VehicleIndustrial, vehicle)

	province, err := ParseProvince("La Rioja")
	require.NoError(t, err)
	require.Equal(t, LaRioja, province)

	province, err = ParseProvince("Girona")
	require.NoError(t, err)
	require.Equal(t, Gerona, province)
}

func TestTaxonomyErrors(t *testing.T) {
	_, err := ParsePropertyCategory("non-sense")
	require.True(t, errors.Is(err, ErrInvalidCategory))

	_, err = ParseVehicleCategory("non-sense")
	require.True(t, errors.Is(err, ErrInvalidCategory))

	_, err = ParseProvince("non-sense")
	require.True(t, errors.Is(err, ErrInvalidProvince))

	_, err = ParseConcept("non-sense")
	require.True(t, errors.Is(err, ErrUnknownConcept))

	_, err = ParsePropertyCategory("Vivenda")
	var labelErr *LabelError
	require.True(t, errors.As(err, &labelErr))
	require.Equal(t, "VIVIENDA", labelErr.Suggestion)
}

func TestParseConcept(t *testing.T) {
	testCases := []struct {
		label    string
		expected Concept
	}{
		{label: "Código", expected: ConceptCode},
		{label: "Código Postal", expected: ConceptPostalCode},
		{label: "Importe del depósito", expected: ConceptDepositAmount},
		{label: "Depósito", expected: ConceptLocalization},
		{label: "Forma adjudicación", expected: ConceptLotAuctionKind},
		{label: "Forma de adjudicación", expected: ConceptLotAuctionKind},
		{label: "Valor de tasación", expected: ConceptAppraisal},
		{label: "Fecha de matriculación", expected: ConceptLicensedDate},
		{label: "Nombre paraje", expected: ConceptPlace},
		{label: "Puja mínima", expected: ConceptMinimumBid},
		{label: "Anuncio BOE", expected: ConceptNotice},
	}

	for _, test := range testCases {
		concept, err := ParseConcept(test.label)
		require.NoError(t, err, test.label)
		require.Equal(t, test.expected, concept, test.label)
	}
}

func TestParseAuctionState(t *testing.T) {
	testCases := []struct {
		text     string
		expected AuctionState
		ok       bool
	}{
		{text: "Celebrándose", expected: StateOngoing, ok: true},
		{text: "CELEBRANDOSE", expected: StateOngoing, ok: true},
		{text: "Próxima apertura", expected: StateToBeOpened, ok: true},
		{text: "Próxima", expected: StateToBeOpened, ok: true},
		{text: "Suspendida", expected: StateSuspended, ok: true},
		{text: "Concluida en Portal de Subastas", expected: StateFinished, ok: true},
		{text: "Cancelada", expected: StateCancelled, ok: true},
		{text: "Desconocida", expected: StateUnknown, ok: false},
		{text: "", expected: StateUnknown, ok: false},
	}

	for _, test := range testCases {
		state, ok := ParseAuctionState(test.text)
		require.Equal(t, test.expected, state, test.text)
		require.Equal(t, test.ok, ok, test.text)
	}

	require.False(t, StateOngoing.Terminal())
	require.True(t, StateCancelled.Terminal())
}

func TestParseKinds(t *testing.T) {
	require.Equal(t, KindNotaryExtraJudicial, ParseAuctionKind("NOTARIAL EN VENTA EXTRAJUDICIAL"))
	require.Equal(t, KindTaxCollection, ParseAuctionKind("RECAUDACIÓN TRIBUTARIA"))
	require.Equal(t, KindTaxCollection, ParseAuctionKind("Recaudacion tributaria"))
	require.Equal(t, KindUnknown, ParseAuctionKind("SUBASTA MISTERIOSA"))
	require.Equal(t, KindUnknown, ParseAuctionKind(""))

	require.Equal(t, LotJoined, ParseLotAuctionKind("Conjunta para todos los lotes"))
	require.Equal(t, LotSplitted, ParseLotAuctionKind("SEPARADA PARA CADA LOTE"))
	require.Equal(t, LotNotApplicable, ParseLotAuctionKind(""))
}
