package controllers

import (
	"github.com/lintang-b-s/tdnavigator/pkg/engine"
)

type shortestPathRequest struct {
	Timestamp string `json:"timestamp" validate:"required"`
	Source    string `json:"source" validate:"required"`
	Target    string `json:"target" validate:"required"`
}

type edgeResponse struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
}

type shortestPathResponse struct {
	Timestamp   string         `json:"timestamp"`
	Hour        int            `json:"hour"`
	Path        []string       `json:"path"`
	Edges       []edgeResponse `json:"edges"`
	Cost        float64        `json:"cost"`
	Duration    float64        `json:"duration"`
	RawDuration float64        `json:"raw_duration"`
}

func NewShortestPathResponse(res *engine.RouteResult) shortestPathResponse {
	vertices := res.Route.Vertices
	edges := make([]edgeResponse, 0, len(res.Route.Edges))
	for i, e := range res.Route.Edges {
		edges = append(edges, edgeResponse{
			From:   vertices[i],
			To:     vertices[i+1],
			Weight: e.GetWeight(),
		})
	}
	return shortestPathResponse{
		Timestamp:   res.Timestamp,
		Hour:        res.Hour,
		Path:        vertices,
		Edges:       edges,
		Cost:        res.Route.Cost,
		Duration:    res.Duration,
		RawDuration: res.RawDuration,
	}
}

type validateRouteRequest struct {
	Timestamp string   `json:"timestamp" validate:"required"`
	Route     []string `json:"route" validate:"required,min=1,dive,required"`
}

type validateRouteResponse struct {
	Timestamp   string  `json:"timestamp"`
	Hour        int     `json:"hour"`
	Duration    float64 `json:"duration"`
	RawDuration float64 `json:"raw_duration"`
	Similarity  float64 `json:"similarity"`
	Matching    int     `json:"matching_routes"`
	Total       int     `json:"historical_routes"`
	MeanOverlap float64 `json:"mean_overlap"`
}

func NewValidateRouteResponse(v *engine.RouteValidation) validateRouteResponse {
	return validateRouteResponse{
		Timestamp:   v.Timestamp,
		Hour:        v.Hour,
		Duration:    v.Duration,
		RawDuration: v.RawDuration,
		Similarity:  v.Score.Ratio,
		Matching:    v.Score.Matching,
		Total:       v.Score.Total,
		MeanOverlap: v.Score.MeanOverlap,
	}
}

type distancesRequest struct {
	Timestamp string `json:"timestamp" validate:"required"`
	Source    string `json:"source" validate:"required"`
}

type spanningTreeRequest struct {
	Timestamp string `json:"timestamp" validate:"required"`
	Start     string `json:"start" validate:"required"`
}

type spanningTreeResponse struct {
	Edges       []edgeResponse `json:"edges"`
	TotalWeight float64        `json:"total_weight"`
}

func NewSpanningTreeResponse(edges []engine.SpanningEdge, total float64) spanningTreeResponse {
	out := make([]edgeResponse, 0, len(edges))
	for _, e := range edges {
		out = append(out, edgeResponse{From: e.From, To: e.To, Weight: e.Weight})
	}
	return spanningTreeResponse{Edges: out, TotalWeight: total}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
