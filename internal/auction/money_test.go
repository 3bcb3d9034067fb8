package auction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	testCases := []struct {
		text     string
		expected Money
	}{
		{text: "81.971,57 €", expected: 8197157},
		{text: "15.100,00 €", expected: 1510000},
		{text: "755,00 €", expected: 75500},
		{text: "Sin puja mínima", expected: 0},
		{text: "Sin tramos", expected: 0},
		{text: "-", expected: 0},
		{text: "", expected: 0},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, ParseMoney(test.text), test.text)
	}
}

func TestMoneyCanonicalForm(t *testing.T) {
	require.Equal(t, "81971.57", Money(8197157).String())
	require.Equal(t, "0.05", Money(5).String())
	require.Equal(t, "0.00", Money(0).String())

	m, err := ParseCanonicalMoney("81971.57")
	require.NoError(t, err)
	require.Equal(t, Money(8197157), m)

	_, err = ParseCanonicalMoney("1.5")
	require.Error(t, err)
	_, err = ParseCanonicalMoney("-1.00")
	require.Error(t, err)
}

func TestBidInfoPacking(t *testing.T) {
	bid := BidInfo{
		Appraisal:     7512700,
		BidStep:       0,
		ClaimQuantity: 8197157,
		Deposit:       375635,
		MinimumBid:    0,
		Value:         7512700,
	}
	packed := bid.Pack()
	require.Equal(t, "75127.00 0.00 81971.57 3756.35 0.00 75127.00", packed)

	unpacked, err := UnpackBidInfo(packed)
	require.NoError(t, err)
	require.Equal(t, bid, unpacked)

	_, err = UnpackBidInfo("1.00 2.00")
	require.Error(t, err)
}

func TestParseDate(t *testing.T) {
	testCases := []struct {
		text     string
		expected time.Time
		ok       bool
	}{
		{
			text:     "14-07-2020 18:00:00 CET  (ISO: 2020-07-14T18:00:00+02:00)",
			expected: time.Date(2020, time.July, 14, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			text:     "03-08-2020",
			expected: time.Date(2020, time.August, 3, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{text: "mañana", expected: SentinelDate, ok: false},
	}

	for _, test := range testCases {
		date, ok := ParseDate(test.text)
		require.Equal(t, test.ok, ok, test.text)
		require.Equal(t, test.expected, date, test.text)
	}
}

func TestParseVehicleDate(t *testing.T) {
	testCases := []struct {
		text     string
		expected time.Time
		ok       bool
	}{
		{text: "2004-07-02", expected: time.Date(2004, time.July, 2, 0, 0, 0, 0, time.UTC), ok: true},
		{text: "2004/07/02", expected: time.Date(2004, time.July, 2, 0, 0, 0, 0, time.UTC), ok: true},
		{text: "02/07/2004", expected: time.Date(2004, time.July, 2, 0, 0, 0, 0, time.UTC), ok: true},
		{text: "julio 2004", expected: SentinelDate, ok: false},
	}

	for _, test := range testCases {
		date, ok := ParseVehicleDate(test.text)
		require.Equal(t, test.ok, ok, test.text)
		require.Equal(t, test.expected, date, test.text)
	}
}
