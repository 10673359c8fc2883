// Package http provides the HTTP handler layer for the trip planning API.
package http

import (
	"github.com/flocktrip/flock-backend/internal/domain"
)

// ToDomainSubmission converts a validated CreateJobRequest to a
// domain.TripSubmission. Default-filter inheritance is resolved here: each
// traveler's unset filter fields are filled from the request's
// default_filters, so the domain never sees implicit defaults.
func ToDomainSubmission(req *CreateJobRequest) domain.TripSubmission {
	defaults := req.DefaultFilters

	travelers := make([]domain.Traveler, len(req.Travelers))
	for i, t := range req.Travelers {
		travelers[i] = domain.Traveler{
			Name:          t.Name,
			OriginAirport: t.OriginAirport,
			Filters:       resolveFilters(t.Filters, defaults),
		}
	}

	destinations := make([]string, len(req.Destinations))
	copy(destinations, req.Destinations)

	return domain.TripSubmission{
		Travelers:      travelers,
		Destinations:   destinations,
		OutboundDate:   req.OutboundDate,
		ReturnDate:     req.ReturnDate,
		DefaultFilters: resolveFilters(nil, defaults),
	}
}

// resolveFilters merges a traveler's filter block over the request defaults.
// Resolution is per field: a field the traveler set wins, a field left nil
// inherits the default.
func resolveFilters(own, defaults *FiltersDTO) domain.SearchFilters {
	var resolved domain.SearchFilters

	apply := func(f *FiltersDTO) {
		if f == nil {
			return
		}
		if f.NonStopOnly != nil {
			resolved.NonStopOnly = *f.NonStopOnly
		}
		if f.ExcludedAirlines != nil {
			resolved.ExcludedAirlines = append([]string(nil), f.ExcludedAirlines...)
		}
		if f.MaxStops != nil {
			stops := *f.MaxStops
			resolved.MaxStops = &stops
		}
		if f.OutboundDepartureWindow != nil {
			resolved.OutboundDepartureWindow = toDomainWindow(f.OutboundDepartureWindow)
		}
		if f.OutboundArrivalWindow != nil {
			resolved.OutboundArrivalWindow = toDomainWindow(f.OutboundArrivalWindow)
		}
		if f.ReturnDepartureWindow != nil {
			resolved.ReturnDepartureWindow = toDomainWindow(f.ReturnDepartureWindow)
		}
		if f.ReturnArrivalWindow != nil {
			resolved.ReturnArrivalWindow = toDomainWindow(f.ReturnArrivalWindow)
		}
	}

	apply(defaults)
	apply(own)

	return resolved
}

// toDomainWindow converts a TimeWindowDTO to a domain.TimeWindow.
func toDomainWindow(dto *TimeWindowDTO) *domain.TimeWindow {
	return &domain.TimeWindow{
		Earliest: dto.Earliest,
		Latest:   dto.Latest,
	}
}
