package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeLabel(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "Vivienda", expected: "VIVIENDA"},
		{input: "Local comercial", expected: "LOCALCOMERCIAL"},
		{input: "Finca rústica", expected: "FINCARUSTICA"},
		{input: "  Código \n Postal ", expected: "CODIGOPOSTAL"},
		{input: "JOYAS, OBRAS DE ARTE Y ANTIGÜEDADES", expected: "JOYAS,OBRASDEARTEYANTIGÜEDADES"},
		{input: "A Coruña", expected: "ACORUÑA"},
		{input: "", expected: ""},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, NormalizeLabel(test.input), test.input)
	}
}

func TestCleanText(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{
			input:    "FINCA URBANA SITUADA EN VALLADOLID, CALLE MARIANO DE LOS COBOS NUM.90, BAJO-1º",
			expected: "FINCA URBANA SITUADA EN VALLADOLID, CALLE MARIANO DE LOS COBOS NUM. 90, BAJO-1º",
		},
		{input: "GARAJE.", expected: "GARAJE."},
		{input: "A,B", expected: "A, B"},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, CleanText(test.input))
	}
}

func TestClosest(t *testing.T) {
	candidates := []string{"VIVIENDA", "GARAJE", "TRASTERO"}
	require.Equal(t, "VIVIENDA", Closest("VIVENDA", candidates))
	require.Equal(t, "", Closest("AERONAVE", candidates))
}
