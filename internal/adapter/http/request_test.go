package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validRequest returns a minimal valid CreateJobRequest for mutation in tests.
func validRequest() CreateJobRequest {
	return CreateJobRequest{
		Travelers: []TravelerDTO{
			{Name: "Alice", OriginAirport: "JFK"},
			{Name: "Bo", OriginAirport: "LAX"},
		},
		Destinations: []string{"CUN", "MIA"},
		OutboundDate: "2026-04-15",
		ReturnDate:   "2026-04-22",
	}
}

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int    { return &n }

func TestCreateJobRequest_Validate_Valid(t *testing.T) {
	req := validRequest()
	assert.NoError(t, req.Validate())
}

func TestCreateJobRequest_Validate_NormalizesCodes(t *testing.T) {
	req := validRequest()
	req.Travelers[0].OriginAirport = "jfk"
	req.Destinations = []string{"cun"}

	require.NoError(t, req.Validate())
	assert.Equal(t, "JFK", req.Travelers[0].OriginAirport)
	assert.Equal(t, []string{"CUN"}, req.Destinations)
}

func TestCreateJobRequest_Validate_NormalizesAirlineCodes(t *testing.T) {
	req := validRequest()
	req.DefaultFilters = &FiltersDTO{ExcludedAirlines: []string{"nk", "f9"}}

	require.NoError(t, req.Validate())
	assert.Equal(t, []string{"NK", "F9"}, req.DefaultFilters.ExcludedAirlines)
}

func TestCreateJobRequest_Validate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *CreateJobRequest)
		wantField string
	}{
		{
			name:      "empty travelers",
			mutate:    func(r *CreateJobRequest) { r.Travelers = nil },
			wantField: "travelers",
		},
		{
			name:      "traveler without name",
			mutate:    func(r *CreateJobRequest) { r.Travelers[1].Name = "  " },
			wantField: "travelers[1].name",
		},
		{
			name:      "invalid origin",
			mutate:    func(r *CreateJobRequest) { r.Travelers[0].OriginAirport = "JFKX" },
			wantField: "travelers[0].origin_airport",
		},
		{
			name:      "empty destinations",
			mutate:    func(r *CreateJobRequest) { r.Destinations = []string{} },
			wantField: "destinations",
		},
		{
			name:      "invalid destination",
			mutate:    func(r *CreateJobRequest) { r.Destinations = []string{"C1N"} },
			wantField: "destinations[0]",
		},
		{
			name:      "duplicate destination after normalization",
			mutate:    func(r *CreateJobRequest) { r.Destinations = []string{"CUN", "cun"} },
			wantField: "destinations[1]",
		},
		{
			name:      "missing outbound date",
			mutate:    func(r *CreateJobRequest) { r.OutboundDate = "" },
			wantField: "outbound_date",
		},
		{
			name:      "bad outbound date format",
			mutate:    func(r *CreateJobRequest) { r.OutboundDate = "15/04/2026" },
			wantField: "outbound_date",
		},
		{
			name:      "missing return date",
			mutate:    func(r *CreateJobRequest) { r.ReturnDate = "" },
			wantField: "return_date",
		},
		{
			name: "negative default max stops",
			mutate: func(r *CreateJobRequest) {
				r.DefaultFilters = &FiltersDTO{MaxStops: intPtr(-1)}
			},
			wantField: "default_filters.max_stops",
		},
		{
			name: "airline code too long",
			mutate: func(r *CreateJobRequest) {
				r.Travelers[0].Filters = &FiltersDTO{ExcludedAirlines: []string{"ABCD"}}
			},
			wantField: "travelers[0].filters.excluded_airlines[0]",
		},
		{
			name: "window inverted",
			mutate: func(r *CreateJobRequest) {
				r.Travelers[0].Filters = &FiltersDTO{
					OutboundDepartureWindow: &TimeWindowDTO{Earliest: "18:00", Latest: "06:00"},
				}
			},
			wantField: "travelers[0].filters.outbound_departure_window",
		},
		{
			name: "window equal bounds",
			mutate: func(r *CreateJobRequest) {
				r.DefaultFilters = &FiltersDTO{
					ReturnDepartureWindow: &TimeWindowDTO{Earliest: "10:00", Latest: "10:00"},
				}
			},
			wantField: "default_filters.return_departure_window",
		},
		{
			name: "window hour out of range",
			mutate: func(r *CreateJobRequest) {
				r.DefaultFilters = &FiltersDTO{
					OutboundArrivalWindow: &TimeWindowDTO{Earliest: "24:00", Latest: "25:00"},
				}
			},
			wantField: "default_filters.outbound_arrival_window.earliest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := req.Validate()
			require.Error(t, err)

			var vErrs *ValidationErrors
			require.ErrorAs(t, err, &vErrs)
			assert.Contains(t, vErrs.ToMap(), tt.wantField)
		})
	}
}

func TestCreateJobRequest_Validate_CollectsMultipleErrors(t *testing.T) {
	req := validRequest()
	req.Travelers[0].OriginAirport = "X"
	req.Destinations = []string{"YY"}
	req.OutboundDate = ""

	err := req.Validate()
	require.Error(t, err)

	var vErrs *ValidationErrors
	require.ErrorAs(t, err, &vErrs)
	assert.GreaterOrEqual(t, len(vErrs.Errors), 3)
}

func TestValidationErrors_Error(t *testing.T) {
	empty := &ValidationErrors{}
	assert.Equal(t, "validation failed", empty.Error())

	errs := &ValidationErrors{}
	errs.Add("field_a", "first message")
	errs.Add("field_b", "second message")
	assert.Equal(t, "first message", errs.Error())
	assert.True(t, errs.HasErrors())
	assert.Equal(t, map[string]string{
		"field_a": "first message",
		"field_b": "second message",
	}, errs.ToMap())
}

// =====================================================
// Converter Tests
// =====================================================

func TestToDomainSubmission_NoFilters(t *testing.T) {
	req := validRequest()
	sub := ToDomainSubmission(&req)

	require.Len(t, sub.Travelers, 2)
	assert.Equal(t, "Alice", sub.Travelers[0].Name)
	assert.Equal(t, "JFK", sub.Travelers[0].OriginAirport)
	assert.False(t, sub.Travelers[0].Filters.NonStopOnly)
	assert.Nil(t, sub.Travelers[0].Filters.ExcludedAirlines)
	assert.Nil(t, sub.Travelers[0].Filters.MaxStops)
	assert.Equal(t, []string{"CUN", "MIA"}, sub.Destinations)
}

func TestToDomainSubmission_DefaultsApplied(t *testing.T) {
	req := validRequest()
	req.DefaultFilters = &FiltersDTO{
		NonStopOnly:             boolPtr(true),
		ExcludedAirlines:        []string{"NK"},
		MaxStops:                intPtr(1),
		OutboundDepartureWindow: &TimeWindowDTO{Earliest: "06:00", Latest: "12:00"},
	}

	sub := ToDomainSubmission(&req)

	for i := range sub.Travelers {
		f := sub.Travelers[i].Filters
		assert.True(t, f.NonStopOnly, "traveler %d", i)
		assert.Equal(t, []string{"NK"}, f.ExcludedAirlines, "traveler %d", i)
		require.NotNil(t, f.MaxStops, "traveler %d", i)
		assert.Equal(t, 1, *f.MaxStops, "traveler %d", i)
		require.NotNil(t, f.OutboundDepartureWindow, "traveler %d", i)
		assert.Equal(t, "06:00", f.OutboundDepartureWindow.Earliest, "traveler %d", i)
		assert.Equal(t, "12:00", f.OutboundDepartureWindow.Latest, "traveler %d", i)
	}

	// The record-keeping copy carries the resolved defaults too.
	assert.True(t, sub.DefaultFilters.NonStopOnly)
}

func TestToDomainSubmission_FieldLevelOverride(t *testing.T) {
	req := validRequest()
	req.DefaultFilters = &FiltersDTO{
		NonStopOnly:      boolPtr(true),
		ExcludedAirlines: []string{"NK"},
		ReturnArrivalWindow: &TimeWindowDTO{
			Earliest: "08:00", Latest: "22:00",
		},
	}
	req.Travelers[1].Filters = &FiltersDTO{
		NonStopOnly:      boolPtr(false),
		ExcludedAirlines: []string{},
	}

	sub := ToDomainSubmission(&req)

	// First traveler inherits everything.
	assert.True(t, sub.Travelers[0].Filters.NonStopOnly)
	assert.Equal(t, []string{"NK"}, sub.Travelers[0].Filters.ExcludedAirlines)
	require.NotNil(t, sub.Travelers[0].Filters.ReturnArrivalWindow)

	// Second traveler overrides non_stop_only and clears the exclusions
	// with an explicit empty list, but inherits the window.
	assert.False(t, sub.Travelers[1].Filters.NonStopOnly)
	assert.Empty(t, sub.Travelers[1].Filters.ExcludedAirlines)
	require.NotNil(t, sub.Travelers[1].Filters.ReturnArrivalWindow)
	assert.Equal(t, "08:00", sub.Travelers[1].Filters.ReturnArrivalWindow.Earliest)
}

func TestToDomainSubmission_WindowCopies(t *testing.T) {
	req := validRequest()
	req.DefaultFilters = &FiltersDTO{
		OutboundArrivalWindow: &TimeWindowDTO{Earliest: "09:00", Latest: "17:00"},
	}

	sub := ToDomainSubmission(&req)

	// Each traveler gets an independent window value.
	w0 := sub.Travelers[0].Filters.OutboundArrivalWindow
	w1 := sub.Travelers[1].Filters.OutboundArrivalWindow
	require.NotNil(t, w0)
	require.NotNil(t, w1)
	assert.NotSame(t, w0, w1)
}
