package amadeus

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/flocktrip/flock-backend/internal/domain"
)

// ISO 8601 duration components ("PT10H30M").
var (
	durationHoursRegex   = regexp.MustCompile(`(\d+)H`)
	durationMinutesRegex = regexp.MustCompile(`(\d+)M`)
)

// localTimeLayout is the provider's local datetime format, with no offset:
// times are wall clock at the airport.
const localTimeLayout = "2006-01-02T15:04:05"

// normalize converts raw offers to domain round trips. Offers that cannot
// be normalized are skipped with a log entry rather than failing the batch.
func normalize(offers []flightOffer, log zerolog.Logger) []domain.RoundTripOffer {
	result := make([]domain.RoundTripOffer, 0, len(offers))
	for _, o := range offers {
		normalized, err := normalizeOffer(o)
		if err != nil {
			log.Warn().Str("offer_id", o.ID).Err(err).Msg("Skipping offer that cannot be normalized")
			continue
		}
		result = append(result, normalized)
	}
	return result
}

// normalizeOffer converts a single raw offer to a domain round trip.
func normalizeOffer(o flightOffer) (domain.RoundTripOffer, error) {
	if len(o.Itineraries) != 2 {
		return domain.RoundTripOffer{}, fmt.Errorf("expected 2 itineraries for a round trip, got %d", len(o.Itineraries))
	}

	outbound, err := normalizeItinerary(o.Itineraries[0])
	if err != nil {
		return domain.RoundTripOffer{}, fmt.Errorf("outbound itinerary: %w", err)
	}
	ret, err := normalizeItinerary(o.Itineraries[1])
	if err != nil {
		return domain.RoundTripOffer{}, fmt.Errorf("return itinerary: %w", err)
	}

	total, err := strconv.ParseFloat(o.Price.Total, 64)
	if err != nil {
		return domain.RoundTripOffer{}, fmt.Errorf("parse price %q: %w", o.Price.Total, err)
	}

	return domain.RoundTripOffer{
		Outbound:   outbound,
		Return:     ret,
		TotalPrice: total,
		Currency:   o.Price.Currency,
	}, nil
}

// normalizeItinerary converts one direction of a raw offer.
func normalizeItinerary(it offerItinerary) (domain.Itinerary, error) {
	if len(it.Segments) == 0 {
		return domain.Itinerary{}, fmt.Errorf("itinerary has no segments")
	}

	segments := make([]domain.Segment, 0, len(it.Segments))
	for _, seg := range it.Segments {
		departure, err := parseLocalTime(seg.Departure.At)
		if err != nil {
			return domain.Itinerary{}, fmt.Errorf("parse departure time: %w", err)
		}
		arrival, err := parseLocalTime(seg.Arrival.At)
		if err != nil {
			return domain.Itinerary{}, fmt.Errorf("parse arrival time: %w", err)
		}
		segments = append(segments, domain.Segment{
			Origin:        seg.Departure.IataCode,
			Destination:   seg.Arrival.IataCode,
			DepartureTime: departure,
			ArrivalTime:   arrival,
			CarrierCode:   seg.CarrierCode,
			Number:        seg.Number,
		})
	}

	return domain.Itinerary{
		Segments:        segments,
		DurationMinutes: parseDurationMinutes(it.Duration),
	}, nil
}

// parseDurationMinutes converts an ISO 8601 duration ("PT10H30M") to
// minutes. Missing components count as zero.
func parseDurationMinutes(duration string) int {
	minutes := 0
	if m := durationHoursRegex.FindStringSubmatch(duration); m != nil {
		hours, _ := strconv.Atoi(m[1])
		minutes += hours * 60
	}
	if m := durationMinutesRegex.FindStringSubmatch(duration); m != nil {
		mins, _ := strconv.Atoi(m[1])
		minutes += mins
	}
	return minutes
}

// parseLocalTime parses the provider's local datetime. RFC3339 timestamps
// are accepted as well; the wall-clock portion is what downstream
// filtering compares against.
func parseLocalTime(value string) (time.Time, error) {
	if t, err := time.Parse(localTimeLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
