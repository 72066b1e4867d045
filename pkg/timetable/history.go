package timetable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lintang-b-s/tdnavigator/pkg"
	"github.com/lintang-b-s/tdnavigator/pkg/util"
)

type ObservedRoute struct {
	Timestamp string
	Hour      int
	Vertices  []string
}

// RouteHistory is the set of routes observed in the past, grouped by hour of day.
type RouteHistory struct {
	routes []ObservedRoute
	byHour [pkg.HOURS_PER_DAY][]int
}

func NewRouteHistory() *RouteHistory {
	return &RouteHistory{routes: make([]ObservedRoute, 0)}
}

func (h *RouteHistory) Add(timestamp string, vertices []string) error {
	hour, err := HourBucket(timestamp)
	if err != nil {
		return err
	}
	route := ObservedRoute{
		Timestamp: timestamp,
		Hour:      hour,
		Vertices:  make([]string, len(vertices)),
	}
	copy(route.Vertices, vertices)

	h.byHour[hour] = append(h.byHour[hour], len(h.routes))
	h.routes = append(h.routes, route)
	return nil
}

func (h *RouteHistory) NumberOfRoutes() int {
	return len(h.routes)
}

func (h *RouteHistory) RoutesInHour(hour int) [][]string {
	if hour < 0 || hour >= pkg.HOURS_PER_DAY {
		return nil
	}
	routes := make([][]string, 0, len(h.byHour[hour]))
	for _, i := range h.byHour[hour] {
		routes = append(routes, h.routes[i].Vertices)
	}
	return routes
}

func (h *RouteHistory) AllRoutes() [][]string {
	routes := make([][]string, 0, len(h.routes))
	for _, r := range h.routes {
		routes = append(routes, r.Vertices)
	}
	return routes
}

// UsagePercentagesForHour computes the usage percentages from the routes observed in hour.
func (h *RouteHistory) UsagePercentagesForHour(topology *Topology, hour int) ([]float64, error) {
	return UsagePercentages(topology, h.RoutesInHour(hour))
}

func (h *RouteHistory) UsagePercentagesAll(topology *Topology) ([]float64, error) {
	return UsagePercentages(topology, h.AllRoutes())
}

// UsagePercentages returns, per topology edge, how often the edge was traversed divided by the number
// of routes, rounded to 4 decimals and capped at 1. No routes yields all zeros.
func UsagePercentages(topology *Topology, routes [][]string) ([]float64, error) {
	counts := make([]int, topology.NumberOfConnections())
	for _, route := range routes {
		for j := 1; j < len(route); j++ {
			edge, err := topology.ConnectionIndex(route[j-1], route[j])
			if err != nil {
				return nil, err
			}
			counts[edge]++
		}
	}

	percentages := make([]float64, len(counts))
	if len(routes) == 0 {
		return percentages, nil
	}
	for i, c := range counts {
		p := util.RoundFloat(float64(c)/float64(len(routes)), pkg.USAGE_PERCENTAGE_PRECISION)
		if p > 1 {
			p = 1
		}
		percentages[i] = p
	}
	return percentages, nil
}

// ReadRouteHistory reads rows of "timestamp,label0,label1,...".
func ReadRouteHistory(filename string) (*RouteHistory, error) {
	rc, err := util.OpenFile(filename)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ParseRouteHistory(rc)
}

func ParseRouteHistory(r io.Reader) (*RouteHistory, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	h := NewRouteHistory()
	for row := 1; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("%w: route row %d needs a timestamp and at least one vertex", ErrMalformedRow, row)
		}

		vertices := make([]string, 0, len(record)-1)
		for _, label := range record[1:] {
			if label = strings.TrimSpace(label); label != "" {
				vertices = append(vertices, label)
			}
		}
		if err := h.Add(strings.TrimSpace(record[0]), vertices); err != nil {
			return nil, fmt.Errorf("route row %d: %w", row, err)
		}
	}
	return h, nil
}
