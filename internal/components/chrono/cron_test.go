package chrono

import (
	"testing"
	"time"

	"ccash-backend/internal/components/telemetry"

	"github.com/stretchr/testify/require"
)

func TestStandardCronRejectsInvalidSpec(t *testing.T) {
	clock := FixedImpl{Time: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)}
	cronner := NewStandardCron(clock, telemetry.NewTestAPI())
	defer cronner.Stop()

	require.Error(t, cronner.Cron("not a cron spec", func() {}))
	require.NoError(t, cronner.Cron("0 6 * * *", func() {}))
}

func TestStandardImplLocation(t *testing.T) {
	clock, err := NewStandardImpl()
	require.NoError(t, err)
	require.Equal(t, "America/New_York", clock.Location().String())
	require.Equal(t, clock.Location(), clock.Now().Location())
}
