package usecase

import (
	"github.com/rs/zerolog"

	"github.com/flocktrip/flock-backend/internal/domain"
)

// AggregateDestination turns one destination's per-traveler ranked offers
// into a DestinationResult, or nil when the destination is not viable.
//
// Viability is all-or-nothing: if any traveler has no surviving offer, the
// destination is excluded entirely. A group trip is not viable when one
// member cannot reach it under their own filters, and partial coverage is
// never surfaced.
//
// rankedPerTraveler must be aligned with traveler submission order; entry
// i holds traveler i's ranked offers, cheapest first. The result preserves
// that order in both TravelerFlights and GroupStats.IndividualTotals.
func AggregateDestination(destination, displayName string, travelers []domain.Traveler, rankedPerTraveler [][]domain.RoundTripOffer, log zerolog.Logger) *domain.DestinationResult {
	flights := make([]domain.TravelerFlight, 0, len(travelers))
	for i, traveler := range travelers {
		ranked := rankedPerTraveler[i]
		if len(ranked) == 0 {
			log.Info().
				Str("destination", destination).
				Str("traveler", traveler.Name).
				Msg("Destination excluded: traveler has no valid offer")
			return nil
		}
		flights = append(flights, domain.NewTravelerFlight(traveler, ranked[0]))
	}

	// The provider is assumed to quote one consistent currency per job;
	// a mixed-currency result is flagged rather than silently summed.
	currency := flights[0].Currency
	for _, tf := range flights[1:] {
		if tf.Currency != currency {
			log.Warn().
				Str("destination", destination).
				Str("currency", currency).
				Str("other_currency", tf.Currency).
				Msg("Mixed currencies in destination result, using first traveler's")
			break
		}
	}

	totals := make([]float64, 0, len(flights))
	for _, tf := range flights {
		totals = append(totals, tf.TotalPrice)
	}

	return &domain.DestinationResult{
		Destination:     destination,
		DestinationName: displayName,
		TravelerFlights: flights,
		GroupStats:      domain.NewGroupStats(totals, currency),
	}
}
