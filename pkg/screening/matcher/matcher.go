// Package matcher is the screening entry point. It maps a profile onto
// store query parameters, consults the result cache, queries the regulation
// store on miss, and assembles the structured screening result.
package matcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"compliance-screening-be/pkg/screening"
	"compliance-screening-be/pkg/screening/profile"
	"compliance-screening-be/pkg/screening/strategy"

	"github.com/google/uuid"
)

const (
	// DefaultPreviewLimit bounds the sample records fetched per screen.
	DefaultPreviewLimit = 10

	// candidateMultiplier oversamples the basic-tier candidate set so that
	// progressive narrowing still leaves enough records to fill the preview.
	candidateMultiplier = 3
)

// errStoreUnavailable marks a store-level failure so the screen path can
// degrade instead of propagating. Genuine compute faults pass through
// untouched.
var errStoreUnavailable = errors.New("regulation store unavailable")

var confidenceByTier = map[screening.ComplexityTier]string{
	screening.TierBasic:         screening.ConfidenceLow,
	screening.TierEnhanced:      screening.ConfidenceMedium,
	screening.TierComprehensive: screening.ConfidenceHigh,
}

type Matcher struct {
	store    screening.RegulationStore
	cache    screening.ResultCache
	builder  *strategy.Builder
	analyzer *profile.Analyzer
}

func New(store screening.RegulationStore, cache screening.ResultCache) *Matcher {
	return &Matcher{
		store:    store,
		cache:    cache,
		builder:  strategy.NewBuilder(),
		analyzer: profile.NewAnalyzer(),
	}
}

// AnalyzeComplexity exposes the completeness analysis to callers.
func (m *Matcher) AnalyzeComplexity(p *screening.OrganizationProfile) screening.CompletenessScore {
	return m.analyzer.Analyze(p)
}

// Count returns the number of in-force, duty-creating laws matching the
// organization's basic classification and extent.
func (m *Matcher) Count(ctx context.Context, p *screening.OrganizationProfile) (int64, error) {
	strat := m.builder.BuildForTier(p, screening.TierBasic)
	count, err := m.store.Count(ctx, strat.Params)
	if err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return count, nil
}

// Preview returns up to limit sample records for the organization's basic
// query, narrowed by whatever refinements its completeness justifies.
func (m *Matcher) Preview(ctx context.Context, p *screening.OrganizationProfile, limit int) ([]screening.Regulation, error) {
	if limit <= 0 {
		limit = DefaultPreviewLimit
	}
	strat := m.builder.Build(p)
	records, err := m.fetchCandidates(ctx, strat, limit)
	if err != nil {
		return nil, fmt.Errorf("preview query failed: %w", err)
	}
	return records, nil
}

// Screen runs a full screening pass. It never returns an error for store
// unavailability: callers get a tagged degraded result instead, or the best
// cached result when the deadline runs out. Genuine compute faults (anything
// other than store trouble) propagate.
func (m *Matcher) Screen(ctx context.Context, orgID uuid.UUID, p *screening.OrganizationProfile) (*screening.Result, error) {
	strat := m.builder.Build(p)

	computed := false
	res, err := m.cache.GetOrCompute(ctx, orgID, strat.Tier, strat.CacheTTL, func(ctx context.Context) (*screening.Result, error) {
		computed = true
		return m.compute(ctx, orgID, p, strat)
	})
	if err == nil {
		if !computed {
			return cachedView(res), nil
		}
		return res, nil
	}

	if errors.Is(err, errStoreUnavailable) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		if fallback, ok := m.cachedFallback(orgID, strat.Tier); ok {
			return cachedView(fallback), nil
		}
		return m.degradedResult(orgID, p, strat), nil
	}
	return nil, err
}

// cachedView restamps a cache-served result without mutating the shared
// cached entry.
func cachedView(res *screening.Result) *screening.Result {
	view := *res
	view.Method = screening.MethodCached
	return &view
}

// cachedFallback looks for any fresh cached result at the requested tier or
// below. A Basic-tier answer beats an empty one.
func (m *Matcher) cachedFallback(orgID uuid.UUID, tier screening.ComplexityTier) (*screening.Result, bool) {
	for t := tier; ; t-- {
		if res, ok := m.cache.Peek(orgID, t); ok {
			return res, true
		}
		if t == screening.TierBasic {
			return nil, false
		}
	}
}

func (m *Matcher) compute(ctx context.Context, orgID uuid.UUID, p *screening.OrganizationProfile, strat screening.QueryStrategy) (*screening.Result, error) {
	count, err := m.store.Count(ctx, strat.Params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errStoreUnavailable, err)
	}

	preview, err := m.fetchCandidates(ctx, strat, DefaultPreviewLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errStoreUnavailable, err)
	}

	snapshot := screening.OrganizationProfile{}
	if p != nil {
		snapshot = *p
	}

	res := &screening.Result{
		OrganizationID: orgID,
		LawCount:       count,
		Preview:        preview,
		Tier:           strat.Tier,
		TierName:       strat.Tier.String(),
		Method:         screening.MethodTiered,
		Confidence:     confidenceByTier[strat.Tier],
		Profile:        snapshot,
		GeneratedAt:    time.Now().UTC(),
	}
	if strat.Tier >= screening.TierEnhanced {
		res.Analysis = buildAnalysis(p, strat)
	}
	return res, nil
}

// fetchCandidates pulls the basic-tier candidate set and applies the
// tier-specific refinements as progressive narrowing.
func (m *Matcher) fetchCandidates(ctx context.Context, strat screening.QueryStrategy, limit int) ([]screening.Regulation, error) {
	fetch := limit
	if strat.Tier > screening.TierBasic {
		fetch = limit * candidateMultiplier
	}
	records, err := m.store.Preview(ctx, strat.Params, fetch)
	if err != nil {
		return nil, err
	}
	records = narrow(records, strat)
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// degradedResult is the tagged stand-in returned when the store is
// unreachable, so downstream consumers never mistake an outage for "no
// obligations apply".
func (m *Matcher) degradedResult(orgID uuid.UUID, p *screening.OrganizationProfile, strat screening.QueryStrategy) *screening.Result {
	snapshot := screening.OrganizationProfile{}
	if p != nil {
		snapshot = *p
	}
	return &screening.Result{
		OrganizationID: orgID,
		LawCount:       0,
		Preview:        []screening.Regulation{},
		Tier:           strat.Tier,
		TierName:       strat.Tier.String(),
		Method:         screening.MethodDegraded,
		Confidence:     screening.ConfidenceNone,
		Profile:        snapshot,
		GeneratedAt:    time.Now().UTC(),
	}
}
