package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/flocktrip/flock-backend/internal/domain"
)

// DefaultSearchConcurrency bounds in-flight provider queries when no limit
// is configured.
const DefaultSearchConcurrency = 4

// Pair identifies one traveler×destination search within a job. The
// traveler is addressed by submission index so duplicate names cannot
// collide.
type Pair struct {
	TravelerIndex int
	Destination   string
}

// FanoutOutcome is the result of one pair's search: either the ranked
// post-filter offers, or the provider error that prevented them. An
// outcome with both fields zero means the search succeeded but no offer
// survived filtering.
type FanoutOutcome struct {
	Offers []domain.RoundTripOffer
	Err    error
}

// SearchFanout issues one provider query per traveler×destination pair of
// a job. Queries run concurrently under a semaphore that is shared by every
// job this fanout processes, so the bound is a process-wide ceiling on the
// provider's rate-limited API rather than a per-job allowance.
type SearchFanout struct {
	provider domain.SearchProvider
	resolver domain.LocationResolver
	sem      chan struct{}
	log      zerolog.Logger
}

// NewSearchFanout creates a fanout over the given provider with the given
// concurrency ceiling. Construct one fanout per process and share it.
func NewSearchFanout(provider domain.SearchProvider, resolver domain.LocationResolver, concurrency int, log zerolog.Logger) *SearchFanout {
	if concurrency <= 0 {
		concurrency = DefaultSearchConcurrency
	}
	return &SearchFanout{
		provider: provider,
		resolver: resolver,
		sem:      make(chan struct{}, concurrency),
		log:      log,
	}
}

// pairResult carries one pair's outcome through the gather channel.
type pairResult struct {
	pair    Pair
	outcome FanoutOutcome
}

// Run executes every traveler×destination search of the job and returns
// the per-pair outcomes. A provider error on one pair never aborts the
// others; it is recorded and that pair simply contributes no offers.
// Run returns only when every pair has either returned or failed.
func (f *SearchFanout) Run(ctx context.Context, job *domain.Job) map[Pair]FanoutOutcome {
	sub := job.Submission
	pairCount := len(sub.Travelers) * len(sub.Destinations)

	results := make(chan pairResult, pairCount)
	var wg sync.WaitGroup

	for i := range sub.Travelers {
		for _, dest := range sub.Destinations {
			wg.Add(1)
			go func(travelerIdx int, destination string) {
				defer wg.Done()
				f.searchPair(ctx, job, travelerIdx, destination, results)
			}(i, dest)
		}
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	outcomes := make(map[Pair]FanoutOutcome, pairCount)
	for r := range results {
		outcomes[r.pair] = r.outcome
	}
	return outcomes
}

// searchPair runs one provider query under the shared semaphore, applies
// the traveler's post-response constraints, and reports the outcome.
func (f *SearchFanout) searchPair(ctx context.Context, job *domain.Job, travelerIdx int, destination string, results chan<- pairResult) {
	pair := Pair{TravelerIndex: travelerIdx, Destination: destination}
	traveler := job.Submission.Travelers[travelerIdx]

	// One provider crash must not take down the whole fanout.
	defer func() {
		if r := recover(); r != nil {
			results <- pairResult{pair: pair, outcome: FanoutOutcome{Err: fmt.Errorf("provider panic: %v", r)}}
		}
	}()

	select {
	case f.sem <- struct{}{}:
		defer func() { <-f.sem }()
	case <-ctx.Done():
		results <- pairResult{pair: pair, outcome: FanoutOutcome{Err: ctx.Err()}}
		return
	}

	queryConstraints, postConstraints := SplitFilters(traveler.Filters)
	query := domain.SearchQuery{
		Origin:        traveler.OriginAirport,
		Destination:   destination,
		DepartureDate: job.Submission.OutboundDate,
		ReturnDate:    job.Submission.ReturnDate,
		Adults:        1,
		Constraints:   queryConstraints,
	}

	offers, err := f.provider.Search(ctx, query)
	if err != nil {
		f.log.Warn().
			Str("job_id", job.ID).
			Str("traveler", traveler.Name).
			Str("origin", traveler.OriginAirport).
			Str("destination", destination).
			Err(err).
			Msg("Provider search failed for pair")
		results <- pairResult{pair: pair, outcome: FanoutOutcome{Err: err}}
		return
	}

	ranked := EvaluateOffers(offers, postConstraints)
	f.log.Info().
		Str("job_id", job.ID).
		Str("traveler", traveler.Name).
		Str("origin", traveler.OriginAirport).
		Str("destination", destination).
		Int("offers_returned", len(offers)).
		Int("offers_after_filter", len(ranked)).
		Msg("Pair search finished")

	results <- pairResult{pair: pair, outcome: FanoutOutcome{Offers: ranked}}
}

// ResolveDestinationNames looks up a display name per unique destination
// code. The lookup is best effort and independent of the search fanout:
// it falls back to the raw code and never fails the job.
func (f *SearchFanout) ResolveDestinationNames(ctx context.Context, destinations []string) map[string]string {
	names := make(map[string]string, len(destinations))
	for _, dest := range destinations {
		if _, done := names[dest]; done {
			continue
		}
		names[dest] = f.resolver.ResolveCityName(ctx, dest)
	}
	return names
}
