package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/tdnavigator/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	validator      *requestValidator
	log            *zap.Logger
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routingService: routingService,
		validator:      newRequestValidator(),
		log:            log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/computeRoutes", api.shortestPath)
	group.GET("/validateRoute", api.validateRoute)
	group.GET("/distances", api.distances)
	group.GET("/spanningTree", api.spanningTree)
	group.GET("/timestamps", api.timestamps)
}

// shortestPath godoc
//
//	@Summary	minimum weight route between two vertices at a timestamp
//	@Tags		routing
//	@Produce	json
//	@Param		timestamp	query		string	true	"timestamp, e.g. 12 Mai 23_56_09"
//	@Param		source		query		string	true	"source vertex label"
//	@Param		target		query		string	true	"target vertex label"
//	@Success	200			{object}	shortestPathResponse
//	@Failure	400			{object}	errorResponse
//	@Failure	404			{object}	errorResponse
//	@Router		/computeRoutes [get]
func (api *routingAPI) shortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	query := r.URL.Query()
	request := shortestPathRequest{
		Timestamp: strings.TrimSpace(query.Get("timestamp")),
		Source:    strings.TrimSpace(query.Get("source")),
		Target:    strings.TrimSpace(query.Get("target")),
	}
	if err := api.validator.Struct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	res, err := api.routingService.ShortestPath(request.Timestamp, request.Source, request.Target)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := writeJSON(w, http.StatusOK, envelope{"data": NewShortestPathResponse(res)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// validateRoute godoc
//
//	@Summary	duration of a route and its similarity to routes observed in the same hour
//	@Tags		routing
//	@Produce	json
//	@Param		timestamp	query		string	true	"timestamp"
//	@Param		route		query		string	true	"comma separated vertex labels"
//	@Success	200			{object}	validateRouteResponse
//	@Failure	400			{object}	errorResponse
//	@Failure	404			{object}	errorResponse
//	@Router		/validateRoute [get]
func (api *routingAPI) validateRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	query := r.URL.Query()
	request := validateRouteRequest{
		Timestamp: strings.TrimSpace(query.Get("timestamp")),
	}
	if raw := strings.TrimSpace(query.Get("route")); raw != "" {
		for _, label := range strings.Split(raw, ",") {
			request.Route = append(request.Route, strings.TrimSpace(label))
		}
	}
	if err := api.validator.Struct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	res, err := api.routingService.ValidateRoute(request.Timestamp, request.Route)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"data": NewValidateRouteResponse(res)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// distances godoc
//
//	@Summary	distance from source to every vertex it reaches at a timestamp
//	@Tags		routing
//	@Produce	json
//	@Param		timestamp	query		string	true	"timestamp"
//	@Param		source		query		string	true	"source vertex label"
//	@Success	200			{object}	map[string]float64
//	@Failure	400			{object}	errorResponse
//	@Router		/distances [get]
func (api *routingAPI) distances(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	query := r.URL.Query()
	request := distancesRequest{
		Timestamp: strings.TrimSpace(query.Get("timestamp")),
		Source:    strings.TrimSpace(query.Get("source")),
	}
	if err := api.validator.Struct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	res, err := api.routingService.Distances(request.Timestamp, request.Source)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"data": res}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// spanningTree godoc
//
//	@Summary	minimum spanning tree grown from start over the predicted durations
//	@Tags		routing
//	@Produce	json
//	@Param		timestamp	query		string	true	"timestamp"
//	@Param		start		query		string	true	"start vertex label"
//	@Success	200			{object}	spanningTreeResponse
//	@Failure	400			{object}	errorResponse
//	@Router		/spanningTree [get]
func (api *routingAPI) spanningTree(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	query := r.URL.Query()
	request := spanningTreeRequest{
		Timestamp: strings.TrimSpace(query.Get("timestamp")),
		Start:     strings.TrimSpace(query.Get("start")),
	}
	if err := api.validator.Struct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	edges, total, err := api.routingService.SpanningTree(request.Timestamp, request.Start)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"data": NewSpanningTreeResponse(edges, total)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// timestamps godoc
//
//	@Summary	timestamps with predicted durations
//	@Tags		routing
//	@Produce	json
//	@Success	200	{object}	[]string
//	@Failure	404	{object}	errorResponse
//	@Router		/timestamps [get]
func (api *routingAPI) timestamps(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	ts := api.routingService.Timestamps()
	if len(ts) == 0 {
		api.NotFoundResponse(w, r, errors.New("no timestamps loaded"))
		return
	}
	if err := writeJSON(w, http.StatusOK, envelope{"data": ts}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
