package usecases

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/tdnavigator/pkg/engine"
	"github.com/lintang-b-s/tdnavigator/pkg/engine/routing"
	"github.com/lintang-b-s/tdnavigator/pkg/timetable"
	"github.com/lintang-b-s/tdnavigator/pkg/util"
	"github.com/lintang-b-s/tdnavigator/pkg/validation"
	"go.uber.org/zap"
)

type RoutingService struct {
	log    *zap.Logger
	engine RoutingEngine
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine) *RoutingService {
	return &RoutingService{
		log:    log,
		engine: engine,
	}
}

func (rs *RoutingService) ShortestPath(timestamp, source, target string) (*engine.RouteResult, error) {
	res, err := rs.engine.ComputeRoute(timestamp, source, target)
	if err != nil {
		return nil, rs.wrapError(err, fmt.Sprintf("no route from %s to %s at %s", source, target, timestamp))
	}
	return res, nil
}

func (rs *RoutingService) ValidateRoute(timestamp string, route []string) (*engine.RouteValidation, error) {
	res, err := rs.engine.ValidateRoute(timestamp, route)
	if err != nil {
		return nil, rs.wrapError(err, fmt.Sprintf("cannot validate route at %s", timestamp))
	}
	return res, nil
}

func (rs *RoutingService) Distances(timestamp, source string) (map[string]float64, error) {
	res, err := rs.engine.Distances(timestamp, source)
	if err != nil {
		return nil, rs.wrapError(err, fmt.Sprintf("cannot compute distances from %s at %s", source, timestamp))
	}
	return res, nil
}

func (rs *RoutingService) SpanningTree(timestamp, start string) ([]engine.SpanningEdge, float64, error) {
	edges, total, err := rs.engine.SpanningTree(timestamp, start)
	if err != nil {
		return nil, 0, rs.wrapError(err, fmt.Sprintf("cannot build spanning tree from %s at %s", start, timestamp))
	}
	return edges, total, nil
}

func (rs *RoutingService) Timestamps() []string {
	return rs.engine.Timestamps()
}

// wrapError attaches the status code the controllers answer with.
func (rs *RoutingService) wrapError(err error, msg string) error {
	msg = fmt.Sprintf("%s: %v", msg, err)
	switch {
	case errors.Is(err, timetable.ErrInvalidTimestamp),
		errors.Is(err, routing.ErrUnknownVertex),
		errors.Is(err, validation.ErrUnknownConnection),
		errors.Is(err, validation.ErrShortRoute):
		return util.WrapErrorf(err, util.ErrBadParamInput, "%s", msg)
	case errors.Is(err, timetable.ErrUnknownTimestamp),
		errors.Is(err, routing.ErrUnreachableTarget),
		errors.Is(err, validation.ErrDegenerateInput):
		return util.WrapErrorf(err, util.ErrNotFound, "%s", msg)
	default:
		rs.log.Error("routing engine failure", zap.Error(err))
		return util.WrapErrorf(err, util.ErrInternalServerError, "%s", util.MessageInternalServerError)
	}
}
