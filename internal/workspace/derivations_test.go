package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"workspace.busmate.lk/internal/derive"
	"workspace.busmate.lk/internal/models"
)

func populatedGroupWorkspace(t *testing.T) *RouteGroupWorkspace {
	t.Helper()
	w := NewRouteGroupWorkspace("138")
	require.NoError(t, w.AddRoute(models.DirectionOutbound))
	ids := []string{"a", "b", "c"}
	distances := []float64{0, 3.0, 7.5}
	for i, id := range ids {
		require.NoError(t, w.AppendRouteStop(models.DirectionOutbound, models.Stop{ID: id, Name: "Stop " + id}))
		require.NoError(t, w.UpdateRouteStop(models.DirectionOutbound, i, SetDistanceFromStart{Km: distances[i]}))
	}
	require.NoError(t, w.UpdateRoute(models.DirectionOutbound, SetRouteDistanceKm{Value: 7.5}))
	require.NoError(t, w.UpdateRoute(models.DirectionOutbound, SetRouteName{Value: "138 Outbound"}))
	return w
}

func TestDeriveReverseRouteReplacesTarget(t *testing.T) {
	w := populatedGroupWorkspace(t)

	// Pre-existing inbound route gets fully replaced, not merged.
	require.NoError(t, w.AddRoute(models.DirectionInbound))
	require.NoError(t, w.UpdateRoute(models.DirectionInbound, SetRouteName{Value: "stale"}))

	res := w.DeriveReverseRoute(models.DirectionInbound)
	require.True(t, res.Success, res.Message)

	inbound, ok := w.Route(models.DirectionInbound)
	require.True(t, ok)
	assert.Equal(t, "138 Outbound (reversed)", inbound.Name)
	assert.Equal(t, "c", inbound.Stops[0].Stop.ID)
	assert.Equal(t, 0.0, *inbound.Stops[0].DistanceFromStartKm)
	assert.Equal(t, 7.5, *inbound.Stops[2].DistanceFromStartKm)
}

func TestDeriveReverseRouteFailureLeavesTargetUntouched(t *testing.T) {
	w := NewRouteGroupWorkspace("138")
	require.NoError(t, w.AddRoute(models.DirectionOutbound))
	require.NoError(t, w.AppendRouteStop(models.DirectionOutbound, models.Stop{ID: "only"}))

	require.NoError(t, w.AddRoute(models.DirectionInbound))
	require.NoError(t, w.UpdateRoute(models.DirectionInbound, SetRouteName{Value: "keep me"}))

	res := w.DeriveReverseRoute(models.DirectionInbound)
	assert.False(t, res.Success)

	inbound, ok := w.Route(models.DirectionInbound)
	require.True(t, ok)
	assert.Equal(t, "keep me", inbound.Name)
}

func TestDeriveReverseRouteWithoutSource(t *testing.T) {
	w := NewRouteGroupWorkspace("138")
	res := w.DeriveReverseRoute(models.DirectionInbound)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "does not exist")
}

func TestWorkspaceGenerateTimetable(t *testing.T) {
	route := testRoute() // distances 0, 10, 25
	w := NewScheduleWorkspace(route, nil)
	idx := w.AddSchedule()

	res := w.GenerateTimetable(idx, derive.TimetableParams{StartTime: "06:00", AvgSpeedKmh: 25, DwellSeconds: 60})
	require.True(t, res.Success, res.Message)

	s, _ := w.Schedule(idx)
	assert.Equal(t, "06:00:00", s.Stops[0].ArrivalTime)
	assert.Equal(t, "06:25:00", s.Stops[1].DepartureTime)
	assert.Equal(t, "07:00:00", s.Stops[2].DepartureTime)

	require.NoError(t, w.ClearAllTimes(idx))
	s, _ = w.Schedule(idx)
	for _, ss := range s.Stops {
		assert.Empty(t, ss.ArrivalTime)
		assert.Empty(t, ss.DepartureTime)
	}
}

func TestWorkspaceGenerateTimetableBadParams(t *testing.T) {
	w := NewScheduleWorkspace(testRoute(), nil)
	idx := w.AddSchedule()

	res := w.GenerateTimetable(idx, derive.TimetableParams{StartTime: "06:00", AvgSpeedKmh: 0})
	assert.False(t, res.Success)

	// Times remain untouched on failure.
	s, _ := w.Schedule(idx)
	assert.Empty(t, s.Stops[0].DepartureTime)
}
