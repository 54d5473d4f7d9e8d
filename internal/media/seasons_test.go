package media

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addarr/addarr/internal/arrapi"
)

func threeSeasons() []arrapi.Season {
	return []arrapi.Season{
		{SeasonNumber: 1},
		{SeasonNumber: 2},
		{SeasonNumber: 3},
	}
}

func TestSeasonSelectionToggleSeason(t *testing.T) {
	sel := NewSeasonSelection(threeSeasons())

	sel.ToggleSeason(2)
	assert.True(t, sel.IsSelected(2))
	assert.False(t, sel.IsSelected(1))

	sel.ToggleSeason(2)
	assert.False(t, sel.IsSelected(2))
}

func TestSeasonSelectionMonitorAll(t *testing.T) {
	sel := NewSeasonSelection(threeSeasons())

	autoConfirm := sel.ToggleMonitorAll()
	assert.True(t, autoConfirm, "turning monitor-all on should auto-confirm")
	assert.True(t, sel.MonitorAll())
	assert.Equal(t, FutureSeasons, sel.Future())
	for n := 1; n <= 3; n++ {
		assert.True(t, sel.IsSelected(n))
	}

	payload := sel.Payload()
	require.Len(t, payload, 4)
	for i := 0; i < 3; i++ {
		assert.True(t, payload[i].Monitored, "season %d should be monitored", payload[i].SeasonNumber)
	}
	assert.Equal(t, arrapi.Season{SeasonNumber: arrapi.FutureSeasonNumber, Monitored: true}, payload[3])

	// the payload is a pure function of the state
	assert.True(t, reflect.DeepEqual(payload, sel.Payload()), "repeated Payload calls must agree")

	// toggling off clears everything
	autoConfirm = sel.ToggleMonitorAll()
	assert.False(t, autoConfirm)
	assert.False(t, sel.MonitorAll())
	assert.Equal(t, FutureNone, sel.Future())
	for n := 1; n <= 3; n++ {
		assert.False(t, sel.IsSelected(n))
	}

	// and a second full cycle lands in the same state as the first
	sel.ToggleMonitorAll()
	assert.True(t, reflect.DeepEqual(payload, sel.Payload()), "monitor-all payload must be stable across cycles")
}

func TestSeasonSelectionToggleAll(t *testing.T) {
	sel := NewSeasonSelection(threeSeasons())

	sel.ToggleAll()
	assert.Equal(t, FutureAll, sel.Future())

	payload := sel.Payload()
	require.Len(t, payload, 3, "FutureAll must not append the sentinel")
	for _, season := range payload {
		assert.True(t, season.Monitored)
	}

	// all selected, so toggling again clears
	sel.ToggleAll()
	assert.Equal(t, FutureNone, sel.Future())
	assert.False(t, sel.IsSelected(1))
}

func TestSeasonSelectionFutureEpisodes(t *testing.T) {
	sel := NewSeasonSelection(threeSeasons())
	sel.ToggleSeason(1)
	sel.ToggleFutureEpisodes()

	payload := sel.Payload()
	require.Len(t, payload, 4)
	for i := 0; i < 3; i++ {
		assert.False(t, payload[i].Monitored, "future-episodes unmonitors existing seasons")
	}
	assert.Equal(t, arrapi.FutureSeasonNumber, payload[3].SeasonNumber)
	assert.True(t, payload[3].Monitored)
}

func TestSeasonSelectionFutureModesOverwrite(t *testing.T) {
	sel := NewSeasonSelection(threeSeasons())

	sel.ToggleFutureSeasons()
	assert.Equal(t, FutureSeasons, sel.Future())

	sel.ToggleFutureEpisodes()
	assert.Equal(t, FutureEpisodes, sel.Future())

	sel.ToggleFutureEpisodes()
	assert.Equal(t, FutureNone, sel.Future())
}

func TestSeasonSelectionMembershipPayload(t *testing.T) {
	sel := NewSeasonSelection(threeSeasons())
	sel.ToggleSeason(1)
	sel.ToggleSeason(3)

	payload := sel.Payload()
	require.Len(t, payload, 3, "no sentinel without a future mode")
	assert.True(t, payload[0].Monitored)
	assert.False(t, payload[1].Monitored)
	assert.True(t, payload[2].Monitored)

	sel.ToggleFutureSeasons()
	payload = sel.Payload()
	require.Len(t, payload, 4)
	assert.Equal(t, arrapi.FutureSeasonNumber, payload[3].SeasonNumber)
}
