// Package difficulty holds the pure scoring math for puzzles: the
// difficulty score derived from play statistics, its bucket labels and
// the trophy reward table. It is the single source of truth for the
// bucket thresholds used by both the write path (storing a score) and
// the read path (filtering listings by bucket).
package difficulty

import "math"

// Labels indexes the subjective rating ordinals users submit: a stored
// rating of 0 means "easy", 2 means "hard".
var Labels = []string{"easy", "medium", "hard"}

// Range is a half-open [Min, Max) score interval.
type Range struct {
	Min float64
	Max float64
}

// Ranges partitions [0, 1.1) into the three difficulty buckets.
// Boundary scores belong to the upper bucket.
var Ranges = map[string]Range{
	"easy":   {Min: 0, Max: 0.3},
	"medium": {Min: 0.3, Max: 0.7},
	"hard":   {Min: 0.7, Max: 1.1},
}

// Calculate maps a puzzle's aggregate stats to its difficulty score:
// a logistic transform of the average completion time (slower means
// harder, saturating toward 0.5) plus a linear boost from the average
// subjective rating. Ratings are ordinals 0..2, so the result stays
// within [0, 1.0).
func Calculate(averageTime float64, averageRating *float64) float64 {
	rating := 0.0
	if averageRating != nil {
		rating = *averageRating
	}
	return 1/(1+math.Exp(-averageTime/300)) - 0.5 + rating/4
}

// LabelFor buckets a score into easy/medium/hard. Returns nil for a
// nil score (puzzle not yet rated).
func LabelFor(score *float64) *string {
	if score == nil {
		return nil
	}
	for i := range Labels {
		r := Ranges[Labels[i]]
		if *score >= r.Min && *score < r.Max {
			return &Labels[i]
		}
	}
	return nil
}

// Trophies is the reward for the first completion of a puzzle with the
// given difficulty score.
func Trophies(score float64) int {
	switch {
	case score < Ranges["easy"].Max:
		return 100
	case score < Ranges["medium"].Max:
		return 200
	default:
		return 400
	}
}

// RatingIndex resolves a user-submitted rating label to its stored
// ordinal. An empty label means the user declined to rate. Unknown
// labels return ok=false.
func RatingIndex(label string) (rating *int, ok bool) {
	if label == "" {
		return nil, true
	}
	for i, l := range Labels {
		if l == label {
			idx := i
			return &idx, true
		}
	}
	return nil, false
}

// RatingLabel is the inverse of RatingIndex; nil in, nil out.
func RatingLabel(rating *int) *string {
	if rating == nil || *rating < 0 || *rating >= len(Labels) {
		return nil
	}
	return &Labels[*rating]
}
