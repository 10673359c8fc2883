// Package mock provides test doubles for the trip planning system.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, per-route responses).
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/flocktrip/flock-backend/internal/domain"
)

// Provider is a configurable mock implementation of domain.SearchProvider
// and domain.LocationResolver. Offers and errors can be configured globally
// or per origin-destination route, and an optional delay makes concurrency
// and cancellation behavior observable.
type Provider struct {
	offers      []domain.RoundTripOffer
	routeOffers map[string][]domain.RoundTripOffer
	routeErrs   map[string]error
	cityNames   map[string]string
	err         error
	delay       time.Duration

	mu           sync.Mutex
	callCount    int
	inFlight     int
	maxInFlight  int
	queriedPairs []string
}

// NewProvider creates a new mock provider. Behavior is configured using the
// builder pattern methods.
func NewProvider() *Provider {
	return &Provider{
		routeOffers: make(map[string][]domain.RoundTripOffer),
		routeErrs:   make(map[string]error),
		cityNames:   make(map[string]string),
	}
}

// routeKey identifies one origin-destination route.
func routeKey(origin, destination string) string {
	return origin + "-" + destination
}

// WithOffers configures the offers returned for every route that has no
// route-specific configuration.
func (p *Provider) WithOffers(offers []domain.RoundTripOffer) *Provider {
	p.offers = offers
	return p
}

// WithRouteOffers configures the offers returned for one specific route.
func (p *Provider) WithRouteOffers(origin, destination string, offers []domain.RoundTripOffer) *Provider {
	p.routeOffers[routeKey(origin, destination)] = offers
	return p
}

// WithError configures the provider to fail every search with the given error.
func (p *Provider) WithError(err error) *Provider {
	p.err = err
	return p
}

// WithRouteError configures the provider to fail searches for one specific
// route while other routes keep succeeding.
func (p *Provider) WithRouteError(origin, destination string, err error) *Provider {
	p.routeErrs[routeKey(origin, destination)] = err
	return p
}

// WithDelay configures the provider to wait the given duration before
// responding. This is useful for testing timeouts and the concurrency
// ceiling.
func (p *Provider) WithDelay(d time.Duration) *Provider {
	p.delay = d
	return p
}

// WithCityName configures the display name resolved for an airport code.
func (p *Provider) WithCityName(code, name string) *Provider {
	p.cityNames[code] = name
	return p
}

// Search implements domain.SearchProvider. It respects context
// cancellation, applies the configured delay, and returns the configured
// offers or error for the queried route.
func (p *Provider) Search(ctx context.Context, query domain.SearchQuery) ([]domain.RoundTripOffer, error) {
	key := routeKey(query.Origin, query.Destination)

	p.mu.Lock()
	p.callCount++
	p.inFlight++
	if p.inFlight > p.maxInFlight {
		p.maxInFlight = p.inFlight
	}
	p.queriedPairs = append(p.queriedPairs, key)
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.inFlight--
		p.mu.Unlock()
	}()

	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.delay):
		}
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if err, ok := p.routeErrs[key]; ok {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}

	if offers, ok := p.routeOffers[key]; ok {
		return offers, nil
	}
	return p.offers, nil
}

// ResolveCityName implements domain.LocationResolver. Unconfigured codes
// resolve to themselves, matching the best-effort contract.
func (p *Provider) ResolveCityName(_ context.Context, iataCode string) string {
	if name, ok := p.cityNames[iataCode]; ok {
		return name
	}
	return iataCode
}

// CallCount returns the number of times Search was called.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.callCount
}

// MaxInFlight returns the highest number of Search calls that were ever
// running at the same time. This is how tests observe the fanout's
// concurrency ceiling.
func (p *Provider) MaxInFlight() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.maxInFlight
}

// QueriedRoutes returns every origin-destination route searched so far, in
// call order.
func (p *Provider) QueriedRoutes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	routes := make([]string, len(p.queriedPairs))
	copy(routes, p.queriedPairs)
	return routes
}

// Reset clears the call counters.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callCount = 0
	p.maxInFlight = 0
	p.queriedPairs = nil
}

// Ensure Provider satisfies both ports at compile time.
var (
	_ domain.SearchProvider   = (*Provider)(nil)
	_ domain.LocationResolver = (*Provider)(nil)
)

// SampleOffers returns count round-trip offers for the given route with all
// required fields populated. Offers are direct flights priced 400, 450, 500
// and so on, departing two hours apart starting at 08:00 UTC.
func SampleOffers(origin, destination string, count int) []domain.RoundTripOffer {
	offers := make([]domain.RoundTripOffer, count)

	outboundBase := time.Date(2026, 4, 15, 8, 0, 0, 0, time.UTC)
	returnBase := time.Date(2026, 4, 22, 10, 0, 0, 0, time.UTC)

	for i := 0; i < count; i++ {
		outDep := outboundBase.Add(time.Duration(i*2) * time.Hour)
		retDep := returnBase.Add(time.Duration(i*2) * time.Hour)

		offers[i] = domain.RoundTripOffer{
			Outbound:   directItinerary(origin, destination, outDep, fmt.Sprintf("%d", 100+i)),
			Return:     directItinerary(destination, origin, retDep, fmt.Sprintf("%d", 200+i)),
			TotalPrice: 400 + float64(i*50),
			Currency:   "USD",
		}
	}

	return offers
}

// directItinerary builds a single-segment itinerary of 3h 35m on carrier AA.
func directItinerary(origin, destination string, departure time.Time, number string) domain.Itinerary {
	duration := 3*time.Hour + 35*time.Minute
	return domain.Itinerary{
		Segments: []domain.Segment{
			{
				Origin:        origin,
				Destination:   destination,
				DepartureTime: departure,
				ArrivalTime:   departure.Add(duration),
				CarrierCode:   "AA",
				Number:        number,
			},
		},
		DurationMinutes: int(duration.Minutes()),
	}
}

// OfferAt builds one direct round-trip offer with explicit leg departure
// times, for tests that exercise time window filters.
func OfferAt(origin, destination string, outboundDep, returnDep time.Time, totalPrice float64) domain.RoundTripOffer {
	return domain.RoundTripOffer{
		Outbound:   directItinerary(origin, destination, outboundDep, "310"),
		Return:     directItinerary(destination, origin, returnDep, "311"),
		TotalPrice: totalPrice,
		Currency:   "USD",
	}
}

// ConnectingOffer builds a one-stop round-trip offer via the given hub, for
// tests that exercise stop count filters.
func ConnectingOffer(origin, hub, destination string, outboundDep, returnDep time.Time, totalPrice float64) domain.RoundTripOffer {
	legDuration := 2 * time.Hour
	layover := 90 * time.Minute

	outbound := domain.Itinerary{
		Segments: []domain.Segment{
			{
				Origin:        origin,
				Destination:   hub,
				DepartureTime: outboundDep,
				ArrivalTime:   outboundDep.Add(legDuration),
				CarrierCode:   "UA",
				Number:        "410",
			},
			{
				Origin:        hub,
				Destination:   destination,
				DepartureTime: outboundDep.Add(legDuration + layover),
				ArrivalTime:   outboundDep.Add(2*legDuration + layover),
				CarrierCode:   "UA",
				Number:        "411",
			},
		},
		DurationMinutes: int((2*legDuration + layover).Minutes()),
	}

	ret := domain.Itinerary{
		Segments: []domain.Segment{
			{
				Origin:        destination,
				Destination:   hub,
				DepartureTime: returnDep,
				ArrivalTime:   returnDep.Add(legDuration),
				CarrierCode:   "UA",
				Number:        "412",
			},
			{
				Origin:        hub,
				Destination:   origin,
				DepartureTime: returnDep.Add(legDuration + layover),
				ArrivalTime:   returnDep.Add(2*legDuration + layover),
				CarrierCode:   "UA",
				Number:        "413",
			},
		},
		DurationMinutes: int((2*legDuration + layover).Minutes()),
	}

	return domain.RoundTripOffer{
		Outbound:   outbound,
		Return:     ret,
		TotalPrice: totalPrice,
		Currency:   "USD",
	}
}
