package validation

import (
	"fmt"

	"github.com/lintang-b-s/tdnavigator/pkg"
	da "github.com/lintang-b-s/tdnavigator/pkg/datastructure"
)

type SimilarityScore struct {
	// Ratio is Matching / Total.
	Ratio float64
	// Matching counts the historical routes whose overlap reached the threshold.
	Matching int
	Total    int
	// MeanOverlap is the overlap ratio averaged over every historical route.
	MeanOverlap float64
}

// SimilarityScorer measures how many routes observed in an hour share most of their vertices with
// a computed route. Membership is positional-insensitive and duplicates in the computed route count
// once per occurrence.
type SimilarityScorer struct {
	threshold float64
}

func NewSimilarityScorer(threshold float64) *SimilarityScorer {
	if threshold <= 0 || threshold > 1 {
		threshold = pkg.ROUTE_SIMILARITY_THRESHOLD
	}
	return &SimilarityScorer{threshold: threshold}
}

func (s *SimilarityScorer) GetThreshold() float64 {
	return s.threshold
}

// Similarity returns the fraction of historical routes of the hour that match route.
func (s *SimilarityScorer) Similarity(route []string, hour int, historical [][]string) (float64, error) {
	score, err := s.Score(route, hour, historical)
	if err != nil {
		return 0, err
	}
	return score.Ratio, nil
}

func (s *SimilarityScorer) Score(route []string, hour int, historical [][]string) (SimilarityScore, error) {
	if len(route) == 0 || len(historical) == 0 {
		return SimilarityScore{}, fmt.Errorf("%w: %d route vertices, %d historical routes in hour %d",
			ErrDegenerateInput, len(route), len(historical), hour)
	}

	matching := 0
	overlapSum := 0.0
	for _, past := range historical {
		ratio := Overlap(route, past)
		overlapSum += ratio
		if da.Ge(ratio, s.threshold) {
			matching++
		}
	}

	return SimilarityScore{
		Ratio:       float64(matching) / float64(len(historical)),
		Matching:    matching,
		Total:       len(historical),
		MeanOverlap: overlapSum / float64(len(historical)),
	}, nil
}

// Overlap is the share of route entries that also appear somewhere in past.
func Overlap(route, past []string) float64 {
	if len(route) == 0 {
		return 0
	}
	members := make(map[string]struct{}, len(past))
	for _, v := range past {
		members[v] = struct{}{}
	}

	shared := 0
	for _, v := range route {
		if _, ok := members[v]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(route))
}
