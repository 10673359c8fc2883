// Package usecase provides the business logic for trip planning jobs: the
// filter split policy, offer evaluation, the search fanout, destination
// aggregation, and the job orchestrator.
package usecase

import (
	"github.com/flocktrip/flock-backend/internal/domain"
)

// PostConstraints is the half of a traveler's filter set that the provider
// cannot evaluate and must be applied to returned offers locally.
type PostConstraints struct {
	// MaxStops bounds the number of stops on each leg independently
	MaxStops *int

	// The four time windows each bound one instant of the round trip
	OutboundDepartureWindow *domain.TimeWindow
	OutboundArrivalWindow   *domain.TimeWindow
	ReturnDepartureWindow   *domain.TimeWindow
	ReturnArrivalWindow     *domain.TimeWindow
}

// SplitFilters divides a resolved filter set into the constraints pushed
// into the provider query and the constraints evaluated post-response.
//
// Behavior:
//   - NonStopOnly and ExcludedAirlines are query-time when present; an
//     empty excluded-airlines set yields a nil slice so the adapter omits
//     the parameter instead of sending an empty value
//   - All four time windows are always post-response (the provider has no
//     equivalent query parameter), as is MaxStops
//
// Pure and total; there are no failure modes.
func SplitFilters(f domain.SearchFilters) (domain.QueryConstraints, PostConstraints) {
	query := domain.QueryConstraints{
		NonStop: f.NonStopOnly,
	}
	if len(f.ExcludedAirlines) > 0 {
		query.ExcludedAirlines = append([]string(nil), f.ExcludedAirlines...)
	}

	post := PostConstraints{
		MaxStops:                f.MaxStops,
		OutboundDepartureWindow: f.OutboundDepartureWindow,
		OutboundArrivalWindow:   f.OutboundArrivalWindow,
		ReturnDepartureWindow:   f.ReturnDepartureWindow,
		ReturnArrivalWindow:     f.ReturnArrivalWindow,
	}

	return query, post
}
