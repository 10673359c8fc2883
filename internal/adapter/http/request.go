// Package http provides the HTTP handler layer for the trip planning API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"fmt"
	"regexp"
	"strings"
)

// CreateJobRequest represents the request body for submitting a trip
// planning job.
type CreateJobRequest struct {
	// Travelers is the ordered group of travelers (at least one)
	Travelers []TravelerDTO `json:"travelers"`

	// Destinations is the list of candidate destination airport codes
	Destinations []string `json:"destinations"`

	// OutboundDate is the shared departure date in YYYY-MM-DD format
	OutboundDate string `json:"outbound_date"`

	// ReturnDate is the shared return date in YYYY-MM-DD format
	ReturnDate string `json:"return_date"`

	// DefaultFilters supplies filter fields a traveler leaves unset
	DefaultFilters *FiltersDTO `json:"default_filters,omitempty"`
}

// TravelerDTO represents one traveler in the submission.
type TravelerDTO struct {
	// Name identifies the traveler in the result
	Name string `json:"name"`

	// OriginAirport is the IATA code of the traveler's departure airport
	OriginAirport string `json:"origin_airport"`

	// Filters holds the traveler's own constraints; unset fields inherit
	// from the request's default_filters
	Filters *FiltersDTO `json:"filters,omitempty"`
}

// FiltersDTO represents the filter set for a traveler or the request-level
// defaults. All fields are optional; a nil field inherits the default.
type FiltersDTO struct {
	// NonStopOnly restricts results to direct flights
	NonStopOnly *bool `json:"non_stop_only,omitempty"`

	// ExcludedAirlines lists airline codes to exclude (e.g. ["NK","F9"])
	ExcludedAirlines []string `json:"excluded_airlines,omitempty"`

	// MaxStops is an upper bound on stops per leg (0 = direct only)
	MaxStops *int `json:"max_stops,omitempty" example:"1"`

	// OutboundDepartureWindow constrains the outbound departure time
	OutboundDepartureWindow *TimeWindowDTO `json:"outbound_departure_window,omitempty"`

	// OutboundArrivalWindow constrains the outbound arrival time
	OutboundArrivalWindow *TimeWindowDTO `json:"outbound_arrival_window,omitempty"`

	// ReturnDepartureWindow constrains the return departure time
	ReturnDepartureWindow *TimeWindowDTO `json:"return_departure_window,omitempty"`

	// ReturnArrivalWindow constrains the return arrival time
	ReturnArrivalWindow *TimeWindowDTO `json:"return_arrival_window,omitempty"`
}

// TimeWindowDTO represents a half-open local-time window [earliest, latest).
type TimeWindowDTO struct {
	// Earliest is the inclusive lower bound (HH:MM format, e.g. "06:00")
	Earliest string `json:"earliest"`

	// Latest is the exclusive upper bound (HH:MM format, e.g. "12:00")
	Latest string `json:"latest"`
}

// Validation regex patterns.
var (
	airportCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
	datePattern        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern        = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// Validate validates the request and returns any validation errors. Airport
// codes are normalized to uppercase in place.
func (r *CreateJobRequest) Validate() error {
	errs := &ValidationErrors{}

	r.validateTravelers(errs)
	r.validateDestinations(errs)
	r.validateDates(errs)

	if r.DefaultFilters != nil {
		r.DefaultFilters.validate("default_filters", errs)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (r *CreateJobRequest) validateTravelers(errs *ValidationErrors) {
	if len(r.Travelers) == 0 {
		errs.Add("travelers", "travelers must be a non-empty list")
		return
	}

	for i := range r.Travelers {
		t := &r.Travelers[i]
		prefix := fmt.Sprintf("travelers[%d]", i)

		if strings.TrimSpace(t.Name) == "" {
			errs.Add(prefix+".name", "name is required")
		}

		origin := strings.ToUpper(t.OriginAirport)
		if !airportCodePattern.MatchString(origin) {
			errs.Add(prefix+".origin_airport", "origin_airport must be a valid 3-letter IATA airport code")
		} else {
			t.OriginAirport = origin
		}

		if t.Filters != nil {
			t.Filters.validate(prefix+".filters", errs)
		}
	}
}

func (r *CreateJobRequest) validateDestinations(errs *ValidationErrors) {
	if len(r.Destinations) == 0 {
		errs.Add("destinations", "destinations must be a non-empty list")
		return
	}

	seen := make(map[string]struct{}, len(r.Destinations))
	for i, dest := range r.Destinations {
		normalized := strings.ToUpper(dest)
		if !airportCodePattern.MatchString(normalized) {
			errs.Add(fmt.Sprintf("destinations[%d]", i),
				"destination must be a valid 3-letter IATA airport code")
			continue
		}
		if _, dup := seen[normalized]; dup {
			errs.Add(fmt.Sprintf("destinations[%d]", i),
				fmt.Sprintf("duplicate destination %q", normalized))
			continue
		}
		seen[normalized] = struct{}{}
		r.Destinations[i] = normalized
	}
}

func (r *CreateJobRequest) validateDates(errs *ValidationErrors) {
	if r.OutboundDate == "" {
		errs.Add("outbound_date", "outbound_date is required")
	} else if !datePattern.MatchString(r.OutboundDate) {
		errs.Add("outbound_date", "outbound_date must be in YYYY-MM-DD format")
	}

	if r.ReturnDate == "" {
		errs.Add("return_date", "return_date is required")
	} else if !datePattern.MatchString(r.ReturnDate) {
		errs.Add("return_date", "return_date must be in YYYY-MM-DD format")
	}

	// Date ordering is checked in the domain layer after parsing.
}

// validate checks a filter block, adding errors under the given field prefix.
func (f *FiltersDTO) validate(prefix string, errs *ValidationErrors) {
	if f.MaxStops != nil && *f.MaxStops < 0 {
		errs.Add(prefix+".max_stops", "max_stops must be a non-negative number")
	}

	for i, airline := range f.ExcludedAirlines {
		normalized := strings.ToUpper(airline)
		if len(normalized) < 2 || len(normalized) > 3 {
			errs.Add(fmt.Sprintf("%s.excluded_airlines[%d]", prefix, i),
				"airline code must be 2 or 3 characters")
			continue
		}
		f.ExcludedAirlines[i] = normalized
	}

	windows := map[string]*TimeWindowDTO{
		"outbound_departure_window": f.OutboundDepartureWindow,
		"outbound_arrival_window":   f.OutboundArrivalWindow,
		"return_departure_window":   f.ReturnDepartureWindow,
		"return_arrival_window":     f.ReturnArrivalWindow,
	}
	for name, w := range windows {
		if w == nil {
			continue
		}
		w.validate(prefix+"."+name, errs)
	}
}

// validate checks a time window, adding errors under the given field prefix.
func (w *TimeWindowDTO) validate(prefix string, errs *ValidationErrors) {
	valid := true
	if !timePattern.MatchString(w.Earliest) {
		errs.Add(prefix+".earliest", "earliest must be in HH:MM format with valid hours (00-23) and minutes (00-59)")
		valid = false
	}
	if !timePattern.MatchString(w.Latest) {
		errs.Add(prefix+".latest", "latest must be in HH:MM format with valid hours (00-23) and minutes (00-59)")
		valid = false
	}
	if valid && w.Earliest >= w.Latest {
		errs.Add(prefix, "earliest must be before latest")
	}
}
