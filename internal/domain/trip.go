// Package domain contains the core business entities and rules for the group
// trip planning system. These entities are provider-agnostic and form the
// foundation upon which all other components are built.
package domain

import (
	"fmt"
	"regexp"
	"time"
)

// airportCodeRegex matches valid IATA airport codes (3 uppercase letters).
var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// dateRegex matches dates in YYYY-MM-DD format.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// timeOfDayRegex matches clock times in HH:MM format.
var timeOfDayRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// TimeWindow is a half-open local-time interval [Earliest, Latest).
// Times are wall-clock strings in HH:MM format, interpreted in local time
// at the relevant airport. A nil window means unconstrained.
type TimeWindow struct {
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}

// Contains reports whether the wall-clock portion of t falls within the
// window. The interval is half-open: a time exactly at Earliest passes,
// a time exactly at Latest does not. A nil window contains everything.
func (w *TimeWindow) Contains(t time.Time) bool {
	if w == nil {
		return true
	}
	clock := t.Format("15:04")
	return clock >= w.Earliest && clock < w.Latest
}

// Validate checks the window is well-formed (HH:MM fields, earliest < latest).
func (w *TimeWindow) Validate() error {
	if w == nil {
		return nil
	}
	if !timeOfDayRegex.MatchString(w.Earliest) {
		return fmt.Errorf("%w: time window earliest must be in HH:MM format, got %q", ErrInvalidSubmission, w.Earliest)
	}
	if !timeOfDayRegex.MatchString(w.Latest) {
		return fmt.Errorf("%w: time window latest must be in HH:MM format, got %q", ErrInvalidSubmission, w.Latest)
	}
	if w.Earliest >= w.Latest {
		return fmt.Errorf("%w: time window earliest %q must be before latest %q", ErrInvalidSubmission, w.Earliest, w.Latest)
	}
	return nil
}

// SearchFilters holds the per-traveler constraints applied to flight offers.
// NonStopOnly and ExcludedAirlines can be pushed into the provider query;
// the time windows and MaxStops are evaluated against returned offers.
type SearchFilters struct {
	// NonStopOnly restricts results to direct flights when true
	NonStopOnly bool `json:"non_stop_only"`

	// ExcludedAirlines lists airline codes the traveler refuses to fly
	ExcludedAirlines []string `json:"excluded_airlines"`

	// MaxStops is an optional upper bound on stops per leg
	MaxStops *int `json:"max_stops,omitempty"`

	// OutboundDepartureWindow constrains the outbound leg's departure time
	OutboundDepartureWindow *TimeWindow `json:"outbound_departure_window,omitempty"`

	// OutboundArrivalWindow constrains the outbound leg's arrival time
	OutboundArrivalWindow *TimeWindow `json:"outbound_arrival_window,omitempty"`

	// ReturnDepartureWindow constrains the return leg's departure time
	ReturnDepartureWindow *TimeWindow `json:"return_departure_window,omitempty"`

	// ReturnArrivalWindow constrains the return leg's arrival time
	ReturnArrivalWindow *TimeWindow `json:"return_arrival_window,omitempty"`
}

// Windows returns the four optional time windows in a fixed order:
// outbound departure, outbound arrival, return departure, return arrival.
func (f *SearchFilters) Windows() [4]*TimeWindow {
	return [4]*TimeWindow{
		f.OutboundDepartureWindow,
		f.OutboundArrivalWindow,
		f.ReturnDepartureWindow,
		f.ReturnArrivalWindow,
	}
}

// Validate checks the filter set is well-formed.
func (f *SearchFilters) Validate() error {
	if f.MaxStops != nil && *f.MaxStops < 0 {
		return fmt.Errorf("%w: max_stops must be >= 0, got %d", ErrInvalidSubmission, *f.MaxStops)
	}
	for _, w := range f.Windows() {
		if err := w.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Traveler is one member of the group, with a fixed origin airport and a
// fully resolved filter set. Default-filter inheritance is resolved before
// a job is created; a Traveler never carries implicit defaults.
type Traveler struct {
	Name          string        `json:"name"`
	OriginAirport string        `json:"origin_airport"`
	Filters       SearchFilters `json:"filters"`
}

// TripSubmission is a validated request to plan a group trip. It is
// immutable once a job has been created from it.
type TripSubmission struct {
	// Travelers is the ordered group; result ordering follows this sequence
	Travelers []Traveler `json:"travelers"`

	// Destinations is the set of candidate destination airport codes
	Destinations []string `json:"destinations"`

	// OutboundDate is the shared departure date in YYYY-MM-DD format
	OutboundDate string `json:"outbound_date"`

	// ReturnDate is the shared return date in YYYY-MM-DD format
	ReturnDate string `json:"return_date"`

	// DefaultFilters is kept for record-keeping; traveler filters are
	// already resolved against it by the time a submission reaches here
	DefaultFilters SearchFilters `json:"default_filters"`
}

// Validate checks the submission invariants. Returns a wrapped
// ErrInvalidSubmission error describing the first violation found.
func (s *TripSubmission) Validate() error {
	if len(s.Travelers) == 0 {
		return fmt.Errorf("%w: travelers must be a non-empty list", ErrInvalidSubmission)
	}
	if len(s.Destinations) == 0 {
		return fmt.Errorf("%w: destinations must be a non-empty list", ErrInvalidSubmission)
	}

	seen := make(map[string]struct{}, len(s.Destinations))
	for _, dest := range s.Destinations {
		if !airportCodeRegex.MatchString(dest) {
			return fmt.Errorf("%w: destination must be a valid 3-letter IATA code, got %q", ErrInvalidSubmission, dest)
		}
		if _, dup := seen[dest]; dup {
			return fmt.Errorf("%w: duplicate destination %q", ErrInvalidSubmission, dest)
		}
		seen[dest] = struct{}{}
	}

	for i := range s.Travelers {
		t := &s.Travelers[i]
		if t.Name == "" {
			return fmt.Errorf("%w: travelers[%d].name is required", ErrInvalidSubmission, i)
		}
		if !airportCodeRegex.MatchString(t.OriginAirport) {
			return fmt.Errorf("%w: travelers[%d].origin_airport must be a valid 3-letter IATA code, got %q", ErrInvalidSubmission, i, t.OriginAirport)
		}
		if err := t.Filters.Validate(); err != nil {
			return fmt.Errorf("travelers[%d]: %w", i, err)
		}
	}

	outbound, err := parseTripDate("outbound_date", s.OutboundDate)
	if err != nil {
		return err
	}
	ret, err := parseTripDate("return_date", s.ReturnDate)
	if err != nil {
		return err
	}
	if ret.Before(outbound) {
		return fmt.Errorf("%w: return_date %s is before outbound_date %s", ErrInvalidSubmission, s.ReturnDate, s.OutboundDate)
	}

	return s.DefaultFilters.Validate()
}

// parseTripDate parses a YYYY-MM-DD trip date field.
func parseTripDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: %s is required", ErrInvalidSubmission, field)
	}
	if !dateRegex.MatchString(value) {
		return time.Time{}, fmt.Errorf("%w: %s must be in YYYY-MM-DD format, got %q", ErrInvalidSubmission, field, value)
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s is not a valid date: %s", ErrInvalidSubmission, field, value)
	}
	return t, nil
}
