package domain

import "time"

// Segment is one flown leg within an itinerary (a single takeoff/landing).
type Segment struct {
	// Origin is the IATA code of the departure airport
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport
	Destination string `json:"destination"`

	// DepartureTime is the local wall-clock departure time
	DepartureTime time.Time `json:"departure_time"`

	// ArrivalTime is the local wall-clock arrival time
	ArrivalTime time.Time `json:"arrival_time"`

	// CarrierCode is the operating airline's IATA code (e.g., "AA")
	CarrierCode string `json:"carrier_code"`

	// Number is the airline's flight number for this segment
	Number string `json:"number"`
}

// Itinerary is one direction of a round trip: an ordered sequence of
// connecting segments plus the total elapsed duration.
type Itinerary struct {
	Segments        []Segment `json:"segments"`
	DurationMinutes int       `json:"duration_minutes"`
}

// DepartureTime returns the departure instant of the first segment.
func (i *Itinerary) DepartureTime() time.Time {
	return i.Segments[0].DepartureTime
}

// ArrivalTime returns the arrival instant of the last segment.
func (i *Itinerary) ArrivalTime() time.Time {
	return i.Segments[len(i.Segments)-1].ArrivalTime
}

// Stops returns the number of intermediate stops (0 = direct).
func (i *Itinerary) Stops() int {
	return len(i.Segments) - 1
}

// Airline returns the carrier code of the first segment, which identifies
// the itinerary's operating airline.
func (i *Itinerary) Airline() string {
	return i.Segments[0].CarrierCode
}

// FlightNumbers returns the combined carrier+number identifiers of every
// segment, in flown order.
func (i *Itinerary) FlightNumbers() []string {
	numbers := make([]string, 0, len(i.Segments))
	for _, seg := range i.Segments {
		numbers = append(numbers, seg.CarrierCode+seg.Number)
	}
	return numbers
}

// RoundTripOffer is a provider-normalized round-trip priced offer for one
// traveler: an outbound itinerary, a return itinerary, and the total price.
type RoundTripOffer struct {
	Outbound   Itinerary `json:"outbound"`
	Return     Itinerary `json:"return"`
	TotalPrice float64   `json:"total_price"`
	Currency   string    `json:"currency"`
}

// FlightOption is one direction of a selected round trip in result form.
// Price is the round-trip total divided by two: the provider prices the
// round trip as a whole and does not itemize per-leg cost.
type FlightOption struct {
	DepartureTime   time.Time `json:"departure_time"`
	ArrivalTime     time.Time `json:"arrival_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Stops           int       `json:"stops"`
	Airline         string    `json:"airline"`
	FlightNumbers   []string  `json:"flight_numbers"`
	Price           float64   `json:"price"`
}

// NewFlightOption builds a result-form flight option from an itinerary and
// its derived single-leg price.
func NewFlightOption(it Itinerary, price float64) FlightOption {
	return FlightOption{
		DepartureTime:   it.DepartureTime(),
		ArrivalTime:     it.ArrivalTime(),
		DurationMinutes: it.DurationMinutes,
		Stops:           it.Stops(),
		Airline:         it.Airline(),
		FlightNumbers:   it.FlightNumbers(),
		Price:           price,
	}
}

// TravelerFlight is the single cheapest valid round-trip combination found
// for one traveler to one destination.
type TravelerFlight struct {
	TravelerName string       `json:"traveler_name"`
	Origin       string       `json:"origin"`
	Outbound     FlightOption `json:"outbound"`
	Return       FlightOption `json:"return"`
	TotalPrice   float64      `json:"total_price"`
	Currency     string       `json:"currency"`
}

// NewTravelerFlight builds a TravelerFlight from a traveler's winning offer.
// Each leg carries half the round-trip total.
func NewTravelerFlight(traveler Traveler, offer RoundTripOffer) TravelerFlight {
	legPrice := offer.TotalPrice / 2
	return TravelerFlight{
		TravelerName: traveler.Name,
		Origin:       traveler.OriginAirport,
		Outbound:     NewFlightOption(offer.Outbound, legPrice),
		Return:       NewFlightOption(offer.Return, legPrice),
		TotalPrice:   offer.TotalPrice,
		Currency:     offer.Currency,
	}
}
