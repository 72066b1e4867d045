package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/tdnavigator/pkg"
	"github.com/lintang-b-s/tdnavigator/pkg/engine/routing"
	"github.com/lintang-b-s/tdnavigator/pkg/timetable"
	"github.com/lintang-b-s/tdnavigator/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	topologyCSV = `from,to
A,B
B,D
A,C
C,D
`
	durationsCSV = `12 Mai 08_15_00,1.0,1.0,0.5,0.4
12 Mai 09_15_00,1.0,1.0,0.5,0.4
12 Mai 10_00_00,0.2,0.2,0.5,0.4
`
	historyCSV = `11 Mai 08_01_00,A,B,D
11 Mai 08_20_00,A,B,D
10 Mai 08_45_10,A,B,D
10 Mai 08_50_00,A,C,D
`

	ts8  = "12 Mai 08_15_00"
	ts9  = "12 Mai 09_15_00"
	ts10 = "12 Mai 10_00_00"
)

func writeFixtures(t *testing.T) (string, string, string) {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}
	return write("edges.csv", topologyCSV), write("durations.csv", durationsCSV), write("routes.csv", historyCSV)
}

func newTestEngine(t *testing.T, mode pkg.DiscountMode) *Engine {
	t.Helper()
	topologyFile, durationsFile, historyFile := writeFixtures(t)
	cfg := DefaultConfig()
	cfg.DiscountMode = mode
	e, err := NewEngineFromFiles(topologyFile, durationsFile, historyFile, cfg, zap.NewNop())
	require.NoError(t, err)
	return e
}

func TestComputeRouteAppliesHourlyDiscounts(t *testing.T) {
	e := newTestEngine(t, pkg.HOURLY_DISCOUNT)

	testCases := []struct {
		name      string
		timestamp string
		vertices  []string
		cost      float64
		raw       float64
		duration  float64
	}{
		{
			// A->B and B->D were used by three of four routes in hour 8
			name:      "hour with history",
			timestamp: ts8,
			vertices:  []string{"A", "B", "D"},
			cost:      0.5,
			raw:       2.0,
			duration:  2.0,
		},
		{
			name:      "hour without history",
			timestamp: ts9,
			vertices:  []string{"A", "C", "D"},
			cost:      0.9,
			raw:       0.9,
			duration:  0.54,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.ComputeRoute(tt.timestamp, "A", "D")
			require.NoError(t, err)
			assert.Equal(t, tt.vertices, res.Route.Vertices)
			assert.InDelta(t, tt.cost, res.Route.Cost, 1e-9)
			assert.InDelta(t, tt.raw, res.RawDuration, 1e-9)
			assert.InDelta(t, tt.duration, res.Duration, 1e-9)
		})
	}
}

func TestComputeRouteGlobalDiscounts(t *testing.T) {
	e := newTestEngine(t, pkg.GLOBAL_DISCOUNT)

	res, err := e.ComputeRoute(ts9, "A", "D")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "D"}, res.Route.Vertices)
	assert.Equal(t, 9, res.Hour)

	_, err = e.Discounts(3)
	require.NoError(t, err)
	assert.Equal(t, 1, e.discountCache.Len(), "every hour shares the global vector")
}

func TestDiscountsAreCachedPerHour(t *testing.T) {
	e := newTestEngine(t, pkg.HOURLY_DISCOUNT)

	d8, err := e.Discounts(8)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.75, 0.75, 0.25, 0.25}, d8)

	d9, err := e.Discounts(9)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0}, d9)
	assert.Equal(t, 2, e.discountCache.Len())

	again, err := e.Discounts(8)
	require.NoError(t, err)
	assert.Equal(t, d8, again)
	assert.Equal(t, 2, e.discountCache.Len())
}

func TestComputeRouteErrors(t *testing.T) {
	e := newTestEngine(t, pkg.HOURLY_DISCOUNT)

	_, err := e.ComputeRoute("yesterday", "A", "D")
	assert.ErrorIs(t, err, timetable.ErrInvalidTimestamp)

	_, err = e.ComputeRoute("01 Jan 08_00_00", "A", "D")
	assert.ErrorIs(t, err, timetable.ErrUnknownTimestamp)

	_, err = e.ComputeRoute(ts8, "A", "Z")
	assert.ErrorIs(t, err, routing.ErrUnknownVertex)

	_, err = e.ComputeRoute(ts8, "D", "A")
	assert.ErrorIs(t, err, routing.ErrUnreachableTarget)
}

func TestValidateRoute(t *testing.T) {
	e := newTestEngine(t, pkg.HOURLY_DISCOUNT)

	v, err := e.ValidateRoute(ts8, []string{"A", "B", "D"})
	require.NoError(t, err)
	assert.Equal(t, 8, v.Hour)
	assert.InDelta(t, 2.0, v.RawDuration, 1e-9)
	assert.Equal(t, 3, v.Score.Matching)
	assert.Equal(t, 4, v.Score.Total)
	assert.InDelta(t, 0.75, v.Score.Ratio, 1e-12)

	_, err = e.ValidateRoute(ts9, []string{"A", "B", "D"})
	assert.ErrorIs(t, err, validation.ErrDegenerateInput)

	_, err = e.ValidateRoute(ts8, []string{"A", "D"})
	assert.ErrorIs(t, err, validation.ErrUnknownConnection)
}

func TestDistancesAndSpanningTree(t *testing.T) {
	e := newTestEngine(t, pkg.HOURLY_DISCOUNT)

	dist, err := e.Distances(ts9, "A")
	require.NoError(t, err)
	assert.Len(t, dist, 4)
	assert.InDelta(t, 0.9, dist["D"], 1e-9)
	assert.InDelta(t, 1.0, dist["B"], 1e-9)

	fromD, err := e.Distances(ts9, "D")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"D": 0}, fromD)

	edges, total, err := e.SpanningTree(ts8, "A")
	require.NoError(t, err)
	assert.Equal(t, []SpanningEdge{
		{From: "A", To: "C", Weight: 0.5},
		{From: "C", To: "D", Weight: 0.4},
		{From: "A", To: "B", Weight: 1.0},
	}, edges)
	assert.InDelta(t, 1.9, total, 1e-9)

	_, _, err = e.SpanningTree(ts8, "Z")
	assert.ErrorIs(t, err, routing.ErrUnknownVertex)
}

func TestComputeRoutesBatch(t *testing.T) {
	e := newTestEngine(t, pkg.HOURLY_DISCOUNT)
	timestamps := []string{ts8, ts9, ts10, "not a timestamp"}

	results, err := e.ComputeRoutes(context.Background(), timestamps, "A", "D")
	require.NoError(t, err)
	require.Len(t, results, len(timestamps))

	for i, ts := range timestamps {
		assert.Equal(t, ts, results[i].Timestamp)
	}

	require.NoError(t, results[0].Err)
	require.NotNil(t, results[0].Validation)
	assert.InDelta(t, 0.75, results[0].Validation.Score.Ratio, 1e-12)

	// nothing observed at 09 or 10: the route stands, without a similarity score
	require.NoError(t, results[1].Err)
	assert.Nil(t, results[1].Validation)
	assert.Equal(t, []string{"A", "C", "D"}, results[1].Result.Route.Vertices)

	require.NoError(t, results[2].Err)
	assert.Equal(t, []string{"A", "B", "D"}, results[2].Result.Route.Vertices)
	assert.InDelta(t, 0.4, results[2].Result.Route.Cost, 1e-9)

	assert.ErrorIs(t, results[3].Err, timetable.ErrInvalidTimestamp)
	assert.Nil(t, results[3].Result)
}

func TestComputeRoutesCancelled(t *testing.T) {
	e := newTestEngine(t, pkg.HOURLY_DISCOUNT)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := e.ComputeRoutes(ctx, []string{ts8, ts9}, "A", "D")
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestNewEngineRejectsMisalignedTables(t *testing.T) {
	topo := timetable.NewTopology([]timetable.Connection{{From: "A", To: "B"}, {From: "B", To: "C"}})
	_, err := NewEngine(topo, timetable.NewDurationTable(3), nil, DefaultConfig(), zap.NewNop())
	assert.ErrorIs(t, err, timetable.ErrMisalignedTable)

	e, err := NewEngine(topo, timetable.NewDurationTable(2), nil, Config{}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 3, e.NumberOfComponents())
	assert.Same(t, topo, e.GetTopology())
	assert.Empty(t, e.Timestamps())
	assert.Equal(t, 1, e.GetConfig().NumWorkers)
}

// two rows join A and B; the route must be priced with the row the search took
func TestComputeRoutePricesParallelEdgeTaken(t *testing.T) {
	topo := timetable.NewTopology([]timetable.Connection{{From: "A", To: "B"}, {From: "A", To: "B"}})
	durations := timetable.NewDurationTable(topo.NumberOfConnections())
	require.NoError(t, durations.Add(ts8, []float64{5, 1}))

	e, err := NewEngine(topo, durations, nil, DefaultConfig(), zap.NewNop())
	require.NoError(t, err)

	res, err := e.ComputeRoute(ts8, "A", "B")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, res.Route.Vertices)
	assert.InDelta(t, 1.0, res.Route.Cost, 1e-12)
	assert.InDelta(t, 1.0, res.RawDuration, 1e-12)
	assert.InDelta(t, 1.0, res.Duration, 1e-12)
}
