package telemetry

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	rec := NewRecorder()
	tel := NewScopedAPI("geocoder", rec)

	tel.ReportBroken("geocoder.resolve", fmt.Errorf("boom"))
	tel.ReportWarning("geocoder.decode", "missing lat")
	tel.ReportCount("pipeline.ok", 3)

	broken := rec.Reports("broken", "geocoder.resolve")
	require.Len(t, broken, 1)
	require.Equal(t, "geocoder: geocoder.resolve", broken[0].ID)
	require.Len(t, rec.Reports("warning", "decode"), 1)

	n, ok := rec.Count("pipeline.ok")
	require.True(t, ok)
	require.Equal(t, int64(3), n)
}

func TestInstrumentRestyReportsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	addr := srv.URL
	srv.Close()

	rec := NewRecorder()
	client := resty.New()
	InstrumentResty(client, rec)

	_, err := client.R().Get(addr)
	require.Error(t, err)
	require.Len(t, rec.Reports("broken", report_resty_response), 1)
}
