package usecase

import (
	"time"

	"github.com/flocktrip/flock-backend/internal/domain"
)

// offerSpec describes a round-trip offer for test construction. Zero
// values fall back to sensible defaults so tests only state what matters.
type offerSpec struct {
	price    float64
	currency string
	airline  string
	outDep   string // outbound departure, "HH:MM"
	outArr   string // outbound arrival, "HH:MM"
	retDep   string // return departure, "HH:MM"
	retArr   string // return arrival, "HH:MM"
	outStops int
	retStops int
}

// buildOffer constructs a round-trip offer on fixed test dates. Outbound
// legs fly on 2026-04-15, return legs on 2026-04-22.
func buildOffer(spec offerSpec) domain.RoundTripOffer {
	if spec.currency == "" {
		spec.currency = "USD"
	}
	if spec.airline == "" {
		spec.airline = "AA"
	}
	if spec.outDep == "" {
		spec.outDep = "08:00"
	}
	if spec.outArr == "" {
		spec.outArr = "12:00"
	}
	if spec.retDep == "" {
		spec.retDep = "10:00"
	}
	if spec.retArr == "" {
		spec.retArr = "14:00"
	}

	outboundDate := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	returnDate := time.Date(2026, 4, 22, 0, 0, 0, 0, time.UTC)

	return domain.RoundTripOffer{
		Outbound:   buildItinerary(outboundDate, spec.outDep, spec.outArr, spec.outStops, spec.airline, "10"),
		Return:     buildItinerary(returnDate, spec.retDep, spec.retArr, spec.retStops, spec.airline, "20"),
		TotalPrice: spec.price,
		Currency:   spec.currency,
	}
}

// buildItinerary creates stops+1 segments spread between the given first
// departure and last arrival wall-clock times.
func buildItinerary(date time.Time, dep, arr string, stops int, airline, numberPrefix string) domain.Itinerary {
	depTime := atClock(date, dep)
	arrTime := atClock(date, arr)

	segments := make([]domain.Segment, 0, stops+1)
	span := arrTime.Sub(depTime) / time.Duration(stops+1)
	for i := 0; i <= stops; i++ {
		segStart := depTime.Add(span * time.Duration(i))
		segEnd := depTime.Add(span * time.Duration(i+1))
		if i == stops {
			segEnd = arrTime
		}
		segments = append(segments, domain.Segment{
			Origin:        "AAA",
			Destination:   "BBB",
			DepartureTime: segStart,
			ArrivalTime:   segEnd,
			CarrierCode:   airline,
			Number:        numberPrefix + string(rune('0'+i)),
		})
	}

	return domain.Itinerary{
		Segments:        segments,
		DurationMinutes: int(arrTime.Sub(depTime) / time.Minute),
	}
}

// atClock combines a date with an "HH:MM" wall-clock time.
func atClock(date time.Time, clock string) time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		panic("invalid clock time in test: " + clock)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

// intPtr returns a pointer to the given int.
func intPtr(n int) *int {
	return &n
}

// testSubmission builds a two-traveler, single-destination submission.
func testSubmission() domain.TripSubmission {
	return domain.TripSubmission{
		Travelers: []domain.Traveler{
			{Name: "Alice", OriginAirport: "JFK"},
			{Name: "Bo", OriginAirport: "LAX"},
		},
		Destinations: []string{"CUN"},
		OutboundDate: "2026-04-15",
		ReturnDate:   "2026-04-22",
	}
}
