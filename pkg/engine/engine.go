package engine

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/tdnavigator/pkg"
	"github.com/lintang-b-s/tdnavigator/pkg/concurrent"
	"github.com/lintang-b-s/tdnavigator/pkg/costfunction"
	"github.com/lintang-b-s/tdnavigator/pkg/engine/routing"
	"github.com/lintang-b-s/tdnavigator/pkg/timetable"
	"github.com/lintang-b-s/tdnavigator/pkg/validation"
	"go.uber.org/zap"
)

// global discount vectors share one cache slot
const globalDiscountKey = -1

type Config struct {
	DiscountMode        pkg.DiscountMode
	DiscountThreshold   float64
	SimilarityThreshold float64
	DiscountCacheSize   int
	NumWorkers          int
}

func DefaultConfig() Config {
	return Config{
		DiscountMode:        pkg.HOURLY_DISCOUNT,
		DiscountThreshold:   pkg.DEFAULT_DISCOUNT_THRESHOLD,
		SimilarityThreshold: pkg.ROUTE_SIMILARITY_THRESHOLD,
		DiscountCacheSize:   pkg.HOURS_PER_DAY + 1,
		NumWorkers:          4,
	}
}

// Engine answers route queries against one topology, its predicted duration table and the
// historical routes used for discounts and validation. All tables are read-only after construction,
// so an Engine is safe for concurrent use.
type Engine struct {
	topology  *timetable.Topology
	durations *timetable.DurationTable
	history   *timetable.RouteHistory

	tdFunction   *costfunction.TimeDependentFunction
	timeFunction *costfunction.TimeFunction
	evaluator    *validation.RouteCostEvaluator
	scorer       *validation.SimilarityScorer

	discountCache *lru.Cache[int, []float64]
	numComponents int
	cfg           Config
	logger        *zap.Logger
}

func NewEngine(topology *timetable.Topology, durations *timetable.DurationTable, history *timetable.RouteHistory,
	cfg Config, logger *zap.Logger) (*Engine, error) {
	if durations.NumberOfEdges() != topology.NumberOfConnections() {
		return nil, fmt.Errorf("%w: duration table has %d edges, topology has %d", timetable.ErrMisalignedTable,
			durations.NumberOfEdges(), topology.NumberOfConnections())
	}
	if history == nil {
		history = timetable.NewRouteHistory()
	}
	if cfg.DiscountCacheSize <= 0 {
		cfg.DiscountCacheSize = pkg.HOURS_PER_DAY + 1
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = 1
	}

	discountCache, err := lru.New[int, []float64](cfg.DiscountCacheSize)
	if err != nil {
		return nil, err
	}

	// weights do not matter for connectivity
	structure, err := costfunction.BuildGraph(topology, make([]float64, topology.NumberOfConnections()))
	if err != nil {
		return nil, err
	}
	_, numComponents := structure.StronglyConnectedComponents()
	if numComponents > 1 {
		logger.Sugar().Infof("topology has %d strongly connected components, some routes are unreachable",
			numComponents)
	}

	return &Engine{
		topology:      topology,
		durations:     durations,
		history:       history,
		tdFunction:    costfunction.NewTimeDependentCostFunction(topology, durations, cfg.DiscountThreshold),
		timeFunction:  costfunction.NewTimeCostFunction(topology, durations),
		evaluator:     validation.NewRouteCostEvaluator(topology, durations),
		scorer:        validation.NewSimilarityScorer(cfg.SimilarityThreshold),
		discountCache: discountCache,
		numComponents: numComponents,
		cfg:           cfg,
		logger:        logger,
	}, nil
}

// NewEngineFromFiles reads the topology, duration and history tables. historyFile may be empty.
func NewEngineFromFiles(topologyFile, durationsFile, historyFile string, cfg Config,
	logger *zap.Logger) (*Engine, error) {
	logger.Info("Reading topology", zap.String("topologyFile", topologyFile))
	topology, err := timetable.ReadTopology(topologyFile)
	if err != nil {
		return nil, err
	}

	logger.Info("Reading predicted durations", zap.String("durationsFile", durationsFile))
	durations, err := timetable.ReadDurationTable(durationsFile, topology.NumberOfConnections())
	if err != nil {
		return nil, err
	}

	history := timetable.NewRouteHistory()
	if historyFile != "" {
		logger.Info("Reading historical routes", zap.String("historyFile", historyFile))
		history, err = timetable.ReadRouteHistory(historyFile)
		if err != nil {
			return nil, err
		}
	}

	logger.Sugar().Infof("Loaded %d vertices, %d edges, %d timestamps, %d historical routes",
		len(topology.GetVertices()), topology.NumberOfConnections(), len(durations.Timestamps()),
		history.NumberOfRoutes())

	return NewEngine(topology, durations, history, cfg, logger)
}

func (e *Engine) GetTopology() *timetable.Topology {
	return e.topology
}

// NumberOfComponents is the number of strongly connected components of the topology.
func (e *Engine) NumberOfComponents() int {
	return e.numComponents
}

func (e *Engine) GetConfig() Config {
	return e.cfg
}

func (e *Engine) Timestamps() []string {
	return e.durations.Timestamps()
}

// Discounts returns the per-edge usage percentages applied to queries in hour.
func (e *Engine) Discounts(hour int) ([]float64, error) {
	key := hour
	if e.cfg.DiscountMode == pkg.GLOBAL_DISCOUNT {
		key = globalDiscountKey
	}
	if discounts, ok := e.discountCache.Get(key); ok {
		return discounts, nil
	}

	var (
		discounts []float64
		err       error
	)
	if key == globalDiscountKey {
		discounts, err = e.history.UsagePercentagesAll(e.topology)
	} else {
		discounts, err = e.history.UsagePercentagesForHour(e.topology, hour)
	}
	if err != nil {
		return nil, err
	}

	e.discountCache.Add(key, discounts)
	return discounts, nil
}

type RouteResult struct {
	Timestamp   string
	Hour        int
	Route       *routing.Route[string]
	RawDuration float64
	// Duration is RawDuration as hours.minutes.
	Duration float64
}

func (e *Engine) ComputeRoute(timestamp, source, target string) (*RouteResult, error) {
	hour, err := timetable.HourBucket(timestamp)
	if err != nil {
		return nil, err
	}
	discounts, err := e.Discounts(hour)
	if err != nil {
		return nil, err
	}

	weights, err := e.tdFunction.Weights(timestamp, discounts)
	if err != nil {
		return nil, err
	}
	g, err := costfunction.BuildGraph(e.topology, weights)
	if err != nil {
		return nil, err
	}
	route, err := routing.ComputeRouteOnGraph(g, source, target)
	if err != nil {
		return nil, err
	}

	// price the edges the search took, not the first edge of each vertex pair
	connections, err := costfunction.ConnectionsOfPath(e.topology, weights, route.Edges)
	if err != nil {
		return nil, err
	}
	raw, err := e.evaluator.RawEdgeDuration(connections, timestamp)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("computed route",
		zap.String("timestamp", timestamp),
		zap.String("source", source),
		zap.String("target", target),
		zap.Int("edges", len(route.Edges)),
		zap.Float64("cost", route.Cost))

	return &RouteResult{
		Timestamp:   timestamp,
		Hour:        hour,
		Route:       route,
		RawDuration: raw,
		Duration:    validation.HoursMinutes(raw),
	}, nil
}

type RouteValidation struct {
	Timestamp   string
	Hour        int
	RawDuration float64
	Duration    float64
	Score       validation.SimilarityScore
}

// ValidateRoute prices route at timestamp and compares it with the routes observed in the same hour.
func (e *Engine) ValidateRoute(timestamp string, route []string) (*RouteValidation, error) {
	hour, err := timetable.HourBucket(timestamp)
	if err != nil {
		return nil, err
	}
	raw, err := e.evaluator.RawRouteDuration(route, timestamp)
	if err != nil {
		return nil, err
	}
	score, err := e.scorer.Score(route, hour, e.history.RoutesInHour(hour))
	if err != nil {
		return nil, err
	}
	return &RouteValidation{
		Timestamp:   timestamp,
		Hour:        hour,
		RawDuration: raw,
		Duration:    validation.HoursMinutes(raw),
		Score:       score,
	}, nil
}

// Distances returns the discounted distance from source to every vertex it reaches at timestamp.
func (e *Engine) Distances(timestamp, source string) (map[string]float64, error) {
	hour, err := timetable.HourBucket(timestamp)
	if err != nil {
		return nil, err
	}
	discounts, err := e.Discounts(hour)
	if err != nil {
		return nil, err
	}
	g, err := e.tdFunction.BuildGraph(timestamp, discounts)
	if err != nil {
		return nil, err
	}
	spt, err := routing.NewDijkstra(g).ShortestPaths(source)
	if err != nil {
		return nil, err
	}
	return spt.DistancesByLabel(), nil
}

type SpanningEdge struct {
	From   string
	To     string
	Weight float64
}

// SpanningTree grows a minimum spanning tree from start over the undiscounted durations at timestamp.
// Vertices start cannot reach are left out.
func (e *Engine) SpanningTree(timestamp, start string) ([]SpanningEdge, float64, error) {
	g, err := e.timeFunction.BuildGraph(timestamp)
	if err != nil {
		return nil, 0, err
	}
	startIdx, err := g.IndexOf(start)
	if err != nil {
		return nil, 0, err
	}
	mst, err := routing.MinimumSpanningTree(g, startIdx)
	if err != nil {
		return nil, 0, err
	}

	vertices := g.GetVertices()
	edges := make([]SpanningEdge, 0, len(mst))
	for _, edge := range mst {
		edges = append(edges, SpanningEdge{
			From:   vertices[edge.GetFrom()],
			To:     vertices[edge.GetTo()],
			Weight: edge.GetWeight(),
		})
	}
	return edges, routing.TotalWeight(mst), nil
}

type BatchResult struct {
	Timestamp string
	Result    *RouteResult
	// Validation is nil when the route could not be compared, e.g. no routes were observed in its hour.
	Validation *RouteValidation
	Err        error
}

type batchJob struct {
	pos       int
	timestamp string
}

type batchOutput struct {
	pos    int
	result BatchResult
}

// ComputeRoutes answers source -> target for every timestamp on the worker pool and validates each route.
// Per-timestamp failures are reported in BatchResult.Err; results keep the order of timestamps.
func (e *Engine) ComputeRoutes(ctx context.Context, timestamps []string, source, target string) ([]BatchResult, error) {
	wp := concurrent.NewWorkerPool[batchJob, batchOutput](e.cfg.NumWorkers, len(timestamps))
	wp.Start(func(job batchJob) batchOutput {
		return batchOutput{pos: job.pos, result: e.computeAndValidate(job.timestamp, source, target)}
	})

	var scheduleErr error
	for i, ts := range timestamps {
		if err := wp.AddJobContext(ctx, batchJob{pos: i, timestamp: ts}); err != nil {
			scheduleErr = err
			break
		}
	}
	wp.Close()
	wp.Wait()

	results := make([]BatchResult, len(timestamps))
	done := make([]bool, len(timestamps))
	for out := range wp.CollectResults() {
		results[out.pos] = out.result
		done[out.pos] = true
	}

	if scheduleErr != nil {
		e.logger.Warn("batch cancelled", zap.Error(scheduleErr))
		for i := range results {
			if !done[i] {
				results[i] = BatchResult{Timestamp: timestamps[i], Err: scheduleErr}
			}
		}
		return results, scheduleErr
	}
	return results, nil
}

func (e *Engine) computeAndValidate(timestamp, source, target string) BatchResult {
	res := BatchResult{Timestamp: timestamp}
	route, err := e.ComputeRoute(timestamp, source, target)
	if err != nil {
		res.Err = err
		return res
	}
	res.Result = route

	v, err := e.ValidateRoute(timestamp, route.Route.Vertices)
	if err != nil {
		if !errors.Is(err, validation.ErrDegenerateInput) {
			res.Err = err
		}
		return res
	}
	res.Validation = v
	return res
}
