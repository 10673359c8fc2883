package domain

import (
	"sort"
	"time"
)

// GroupStats holds aggregate price statistics over each traveler's cheapest
// valid round-trip total for one destination.
type GroupStats struct {
	// Currency is the shared currency of the totals
	Currency string `json:"currency"`

	// IndividualTotals is aligned with traveler submission order
	IndividualTotals []float64 `json:"individual_totals"`

	Total         float64 `json:"total"`
	Average       float64 `json:"average"`
	Median        float64 `json:"median"`
	Cheapest      float64 `json:"cheapest"`
	MostExpensive float64 `json:"most_expensive"`
}

// NewGroupStats computes statistics over the given per-traveler totals.
// The input order is preserved in IndividualTotals; the median is computed
// over a sorted copy.
func NewGroupStats(individualTotals []float64, currency string) GroupStats {
	totals := make([]float64, len(individualTotals))
	copy(totals, individualTotals)

	var sum float64
	cheapest, mostExpensive := totals[0], totals[0]
	for _, v := range totals {
		sum += v
		if v < cheapest {
			cheapest = v
		}
		if v > mostExpensive {
			mostExpensive = v
		}
	}

	return GroupStats{
		Currency:         currency,
		IndividualTotals: totals,
		Total:            sum,
		Average:          sum / float64(len(totals)),
		Median:           median(totals),
		Cheapest:         cheapest,
		MostExpensive:    mostExpensive,
	}
}

// median returns the order-statistic median: the middle value for odd
// counts, the average of the two middle values for even counts.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// DestinationResult is one viable destination: a flight for every traveler
// plus group statistics. A destination with partial traveler coverage is
// never represented as a DestinationResult.
type DestinationResult struct {
	// Destination is the IATA code of the destination airport
	Destination string `json:"destination"`

	// DestinationName is the resolved display name, falling back to the
	// raw code when resolution was unavailable
	DestinationName string `json:"destination_name"`

	// TravelerFlights holds one entry per traveler, in submission order
	TravelerFlights []TravelerFlight `json:"traveler_flights"`

	GroupStats GroupStats `json:"group_stats"`
}

// JobResult is the final output of a job: the viable destinations in
// submission order. Destinations failing the viability rule are omitted
// entirely.
type JobResult struct {
	JobID        string              `json:"job_id"`
	Status       JobStatus           `json:"status"`
	CompletedAt  *time.Time          `json:"completed_at"`
	Error        string              `json:"error,omitempty"`
	Destinations []DestinationResult `json:"destinations"`
}
