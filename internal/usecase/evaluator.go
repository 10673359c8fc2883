package usecase

import (
	"sort"

	"github.com/flocktrip/flock-backend/internal/domain"
)

// EvaluateOffers applies the post-response constraints to a raw offer set
// and returns the survivors ranked by total round-trip price. The full
// ranked list is returned rather than just the winner so callers can log
// and inspect alternatives without re-querying; the winner is the first
// element when the list is non-empty.
//
// An empty result is not an error: it is the legitimate "no valid flight"
// outcome the aggregator's viability rule consumes.
//
// Ranking is deterministic: price ascending, ties broken by earliest
// outbound departure, then by airline code lexical order; offers tying on
// all three keys keep their provider order. The input slice is not mutated.
func EvaluateOffers(offers []domain.RoundTripOffer, post PostConstraints) []domain.RoundTripOffer {
	ranked := make([]domain.RoundTripOffer, 0, len(offers))
	for _, offer := range offers {
		if passesPostConstraints(offer, post) {
			ranked = append(ranked, offer)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.TotalPrice != b.TotalPrice {
			return a.TotalPrice < b.TotalPrice
		}
		aDep, bDep := a.Outbound.DepartureTime(), b.Outbound.DepartureTime()
		if !aDep.Equal(bDep) {
			return aDep.Before(bDep)
		}
		return a.Outbound.Airline() < b.Outbound.Airline()
	})

	return ranked
}

// passesPostConstraints checks one offer against every post-response
// predicate. The four time windows are independent AND-combined checks:
// each bounds a single instant of the round trip in local wall-clock time.
func passesPostConstraints(offer domain.RoundTripOffer, post PostConstraints) bool {
	if post.MaxStops != nil {
		if offer.Outbound.Stops() > *post.MaxStops {
			return false
		}
		if offer.Return.Stops() > *post.MaxStops {
			return false
		}
	}

	if !post.OutboundDepartureWindow.Contains(offer.Outbound.DepartureTime()) {
		return false
	}
	if !post.OutboundArrivalWindow.Contains(offer.Outbound.ArrivalTime()) {
		return false
	}
	if !post.ReturnDepartureWindow.Contains(offer.Return.DepartureTime()) {
		return false
	}
	if !post.ReturnArrivalWindow.Contains(offer.Return.ArrivalTime()) {
		return false
	}

	return true
}
