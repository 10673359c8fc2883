package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flocktrip/flock-backend/internal/domain"
	"github.com/flocktrip/flock-backend/test/mock"
	"github.com/flocktrip/flock-backend/test/testutil"
)

// domainSubmission returns a validated two-traveler, two-destination
// submission for driving the orchestrator directly.
func domainSubmission() domain.TripSubmission {
	return domain.TripSubmission{
		Travelers: []domain.Traveler{
			{Name: "Alice", OriginAirport: "JFK"},
			{Name: "Bob", OriginAirport: "BOS"},
		},
		Destinations: []string{"MIA", "CUN"},
		OutboundDate: "2026-04-15",
		ReturnDate:   "2026-04-22",
	}
}

// submitAndProcess runs one submission through the orchestrator and
// returns the job id.
func submitAndProcess(t *testing.T, h *Harness, sub domain.TripSubmission) string {
	t.Helper()
	ctx := context.Background()

	jobID, err := h.Orchestrator.Submit(ctx, sub)
	require.NoError(t, err)

	claimed, err := h.Queue.Dequeue(ctx, 100*time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, jobID, claimed)

	require.NoError(t, h.Orchestrator.Process(ctx, jobID))
	require.NoError(t, h.Queue.Ack(ctx, jobID))
	return jobID
}

// TestOrchestrator_ProcessJob_Success tests the full pipeline for a group
// where every traveler-destination pair has offers.
func TestOrchestrator_ProcessJob_Success(t *testing.T) {
	// Arrange - three travelers with distinct cheapest totals per route
	sub := domainSubmission()
	sub.Travelers = append(sub.Travelers, domain.Traveler{Name: "Carol", OriginAirport: "ORD"})

	provider := mock.NewProvider()
	for i, tr := range sub.Travelers {
		for _, dest := range sub.Destinations {
			out := time.Date(2026, 4, 15, 9, 0, 0, 0, time.UTC)
			ret := time.Date(2026, 4, 22, 11, 0, 0, 0, time.UTC)
			price := 400 + float64(i*100) // 400, 500, 600
			provider.WithRouteOffers(tr.OriginAirport, dest, []domain.RoundTripOffer{
				mock.OfferAt(tr.OriginAirport, dest, out, ret, price),
			})
		}
	}
	h := NewHarness(provider, 4)

	// Act
	jobID := submitAndProcess(t, h, sub)

	// Assert
	job, err := h.Store.GetJob(context.Background(), jobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusComplete, job.Status)
	require.NotNil(t, job.CompletedAt)

	result, err := h.Store.GetResult(context.Background(), jobID)
	require.NoError(t, err)
	require.Len(t, result.Destinations, 2)

	for _, dest := range result.Destinations {
		require.Len(t, dest.TravelerFlights, 3)
		assert.Equal(t, []float64{400, 500, 600}, dest.GroupStats.IndividualTotals)
		assert.Equal(t, 1500.0, dest.GroupStats.Total)
		assert.Equal(t, 500.0, dest.GroupStats.Average)
		assert.Equal(t, 500.0, dest.GroupStats.Median)
		assert.Equal(t, 400.0, dest.GroupStats.Cheapest)
		assert.Equal(t, 600.0, dest.GroupStats.MostExpensive)
	}

	// 3 travelers x 2 destinations
	assert.Equal(t, 6, h.Provider.CallCount())
}

// TestOrchestrator_PartialRouteFailure tests that a provider error on one
// pair drops only the affected destination and never fails the job.
func TestOrchestrator_PartialRouteFailure(t *testing.T) {
	// Arrange
	sub := domainSubmission()
	provider := mock.NewProvider().
		WithOffers(mock.SampleOffers("ANY", "ANY", 2)).
		WithRouteError("JFK", "MIA", errors.New("upstream 502"))
	h := NewHarness(provider, 4)

	// Act
	jobID := submitAndProcess(t, h, sub)

	// Assert - MIA is not viable without Alice's flight, CUN survives
	job, err := h.Store.GetJob(context.Background(), jobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusComplete, job.Status)

	result, err := h.Store.GetResult(context.Background(), jobID)
	require.NoError(t, err)
	require.Len(t, result.Destinations, 1)
	assert.Equal(t, "CUN", result.Destinations[0].Destination)
}

// TestOrchestrator_DestinationViability_AllOrNothing tests that a
// destination with offers for only some travelers is omitted entirely.
func TestOrchestrator_DestinationViability_AllOrNothing(t *testing.T) {
	// Arrange - Bob's MIA search succeeds but returns nothing
	sub := domainSubmission()
	provider := mock.NewProvider().
		WithOffers(mock.SampleOffers("ANY", "ANY", 2)).
		WithRouteOffers("BOS", "MIA", nil)
	h := NewHarness(provider, 4)

	// Act
	jobID := submitAndProcess(t, h, sub)

	// Assert
	result, err := h.Store.GetResult(context.Background(), jobID)
	require.NoError(t, err)
	require.Len(t, result.Destinations, 1)
	assert.Equal(t, "CUN", result.Destinations[0].Destination)
}

// TestOrchestrator_TimeWindowFilter tests that a traveler's departure
// window disqualifies cheaper offers outside it.
func TestOrchestrator_TimeWindowFilter(t *testing.T) {
	// Arrange - the cheapest offer departs before Alice's window opens
	sub := domainSubmission()
	sub.Travelers = sub.Travelers[:1]
	sub.Destinations = []string{"MIA"}
	sub.Travelers[0].Filters = domain.SearchFilters{
		OutboundDepartureWindow: &domain.TimeWindow{Earliest: "08:00", Latest: "12:00"},
	}

	early := mock.OfferAt("JFK", "MIA",
		time.Date(2026, 4, 15, 6, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 22, 10, 0, 0, 0, time.UTC), 300)
	inWindow := mock.OfferAt("JFK", "MIA",
		time.Date(2026, 4, 15, 9, 30, 0, 0, time.UTC),
		time.Date(2026, 4, 22, 10, 0, 0, 0, time.UTC), 500)

	provider := mock.NewProvider().
		WithRouteOffers("JFK", "MIA", []domain.RoundTripOffer{early, inWindow})
	h := NewHarness(provider, 4)

	// Act
	jobID := submitAndProcess(t, h, sub)

	// Assert - the in-window offer wins despite costing more
	result, err := h.Store.GetResult(context.Background(), jobID)
	require.NoError(t, err)
	require.Len(t, result.Destinations, 1)
	require.Len(t, result.Destinations[0].TravelerFlights, 1)
	assert.Equal(t, 500.0, result.Destinations[0].TravelerFlights[0].TotalPrice)
}

// TestOrchestrator_MaxStopsFilter tests that the stop bound disqualifies a
// cheaper connecting offer.
func TestOrchestrator_MaxStopsFilter(t *testing.T) {
	// Arrange
	sub := domainSubmission()
	sub.Travelers = sub.Travelers[:1]
	sub.Destinations = []string{"MIA"}
	sub.Travelers[0].Filters = domain.SearchFilters{MaxStops: testutil.IntPtr(0)}

	connecting := mock.ConnectingOffer("JFK", "CLT", "MIA",
		time.Date(2026, 4, 15, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 22, 9, 0, 0, 0, time.UTC), 250)
	direct := mock.OfferAt("JFK", "MIA",
		time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 22, 10, 0, 0, 0, time.UTC), 450)

	provider := mock.NewProvider().
		WithRouteOffers("JFK", "MIA", []domain.RoundTripOffer{connecting, direct})
	h := NewHarness(provider, 4)

	// Act
	jobID := submitAndProcess(t, h, sub)

	// Assert
	result, err := h.Store.GetResult(context.Background(), jobID)
	require.NoError(t, err)
	require.Len(t, result.Destinations, 1)
	flight := result.Destinations[0].TravelerFlights[0]
	assert.Equal(t, 450.0, flight.TotalPrice)
	assert.Equal(t, 0, flight.Outbound.Stops)
}

// TestOrchestrator_TerminalJobSkipped tests that reprocessing a finished
// job is a no-op (at-least-once delivery makes this path routine).
func TestOrchestrator_TerminalJobSkipped(t *testing.T) {
	// Arrange
	sub := domainSubmission()
	h := NewHarness(ProviderForSubmission(DefaultSubmission(), 2), 4)
	jobID := submitAndProcess(t, h, sub)

	callsAfterFirstRun := h.Provider.CallCount()

	// Act - simulate a redelivery
	err := h.Orchestrator.Process(context.Background(), jobID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, callsAfterFirstRun, h.Provider.CallCount(), "terminal job must not trigger new searches")

	job, getErr := h.Store.GetJob(context.Background(), jobID)
	require.NoError(t, getErr)
	assert.Equal(t, domain.JobStatusComplete, job.Status)
}

// TestOrchestrator_ResultPersistenceFailure tests that a job whose result
// cannot be stored is marked failed.
func TestOrchestrator_ResultPersistenceFailure(t *testing.T) {
	// Arrange
	sub := domainSubmission()
	h := NewHarness(ProviderForSubmission(DefaultSubmission(), 2), 4)
	h.Store.SaveResultErr = errors.New("disk full")

	ctx := context.Background()
	jobID, err := h.Orchestrator.Submit(ctx, sub)
	require.NoError(t, err)

	// Act
	err = h.Orchestrator.Process(ctx, jobID)

	// Assert
	require.Error(t, err)

	job, getErr := h.Store.GetJob(ctx, jobID)
	require.NoError(t, getErr)
	assert.Equal(t, domain.JobStatusFailed, job.Status)
	assert.NotEmpty(t, job.Error)
	require.NotNil(t, job.CompletedAt)
}

// TestOrchestrator_Submit_InvalidSubmission tests that a malformed
// submission never becomes a job.
func TestOrchestrator_Submit_InvalidSubmission(t *testing.T) {
	// Arrange
	sub := domainSubmission()
	sub.ReturnDate = "2026-04-01" // before outbound
	h := NewHarness(mock.NewProvider(), 4)

	// Act
	jobID, err := h.Orchestrator.Submit(context.Background(), sub)

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidSubmission))
	assert.Empty(t, jobID)
	assert.Equal(t, 0, h.Store.JobCount())
	assert.Equal(t, 0, h.Queue.Len())
}

// TestOrchestrator_Submit_EnqueueFailure tests that a queue hand-off
// failure surfaces to the caller while the pending record survives.
func TestOrchestrator_Submit_EnqueueFailure(t *testing.T) {
	// Arrange
	h := NewHarness(mock.NewProvider(), 4)
	h.Queue.EnqueueErr = errors.New("broker down")

	// Act
	_, err := h.Orchestrator.Submit(context.Background(), domainSubmission())

	// Assert
	require.Error(t, err)
	assert.Equal(t, 1, h.Store.JobCount(), "the pending record is kept for re-enqueueing")
}

// TestOrchestrator_ProcessUnknownJob tests processing a job id with no
// stored record.
func TestOrchestrator_ProcessUnknownJob(t *testing.T) {
	h := NewHarness(mock.NewProvider(), 4)

	err := h.Orchestrator.Process(context.Background(), "b3d4a7e0-0000-4000-8000-000000000000")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrJobNotFound))
}
