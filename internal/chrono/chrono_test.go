package chrono

import (
	"testing"
	"time"

	"subastas-ingest/internal/telemetry"

	"github.com/stretchr/testify/require"
)

func TestFixedTime(t *testing.T) {
	instant := time.Date(2020, 7, 14, 16, 0, 0, 0, time.UTC)
	now := FixedTime(instant).Now()
	require.True(t, now.Equal(instant))
	require.Equal(t, "Europe/Madrid", now.Location().String())
	require.Equal(t, 18, now.Hour())
}

func TestCronRejectsBadSpec(t *testing.T) {
	c := NewStandardCron(telemetry.NewRecorder())
	require.Error(t, c.Cron("not a spec", func() {}))
	require.NoError(t, c.Cron("@every 1h", func() {}))
	require.NoError(t, c.Cron("0 3 * * *", func() {}))
}
