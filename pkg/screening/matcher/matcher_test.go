package matcher

import (
	"context"
	"errors"
	"testing"

	"compliance-screening-be/pkg/screening"
	"compliance-screening-be/pkg/screening/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	count   int64
	records []screening.Regulation
	err     error

	countParams   []screening.QueryParams
	previewLimits []int
}

func (s *stubStore) Count(ctx context.Context, params screening.QueryParams) (int64, error) {
	s.countParams = append(s.countParams, params)
	if s.err != nil {
		return 0, s.err
	}
	return s.count, nil
}

func (s *stubStore) Preview(ctx context.Context, params screening.QueryParams, limit int) ([]screening.Regulation, error) {
	s.previewLimits = append(s.previewLimits, limit)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.records) > limit {
		return s.records[:limit], nil
	}
	return s.records, nil
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

// Four basic fields only: scores 0.4, stays on the basic tier.
func basicProfile() *screening.OrganizationProfile {
	return &screening.OrganizationProfile{
		IndustrySector:     "construction",
		HeadquartersRegion: "Scotland",
		EmployeeCount:      intPtr(120),
		EntityType:         "limited_company",
	}
}

// Scores exactly 0.8 with the compliance group left empty, so the
// comprehensive refinements run without a compliance filter.
func comprehensiveProfile() *screening.OrganizationProfile {
	p := basicProfile()
	p.AnnualTurnover = floatPtr(15_000_000)
	p.OperationalRegions = []string{"Scotland"}
	p.BusinessActivities = []string{"construction"}
	p.YearEstablished = intPtr(2004)
	p.HandlesPersonalData = boolPtr(true)
	p.RiskProfile = "medium"
	p.SpecialCircumstances = "none"
	return p
}

func TestScreenBasicTier(t *testing.T) {
	store := &stubStore{
		count: 42,
		records: []screening.Regulation{
			{ID: "ukpga-1974-37", Title: "Health and Safety at Work etc. Act 1974"},
			{ID: "ukpga-2006-46", Title: "Companies Act 2006"},
		},
	}
	m := New(store, cache.New(0))

	res, err := m.Screen(context.Background(), uuid.New(), basicProfile())
	require.NoError(t, err)

	assert.Equal(t, int64(42), res.LawCount)
	assert.Equal(t, "basic", res.TierName)
	assert.Equal(t, screening.MethodTiered, res.Method)
	assert.Equal(t, screening.ConfidenceLow, res.Confidence)
	assert.Nil(t, res.Analysis)
	assert.Len(t, res.Preview, 2)

	// Basic tier queries by classification and extent only.
	require.Len(t, store.countParams, 1)
	assert.Equal(t, "Construction", store.countParams[0].Classification)
	assert.Equal(t, "Scotland", store.countParams[0].GeoExtent)
	assert.Empty(t, store.countParams[0].EmployeeBracket)

	// No oversampling at the basic tier.
	require.Len(t, store.previewLimits, 1)
	assert.Equal(t, DefaultPreviewLimit, store.previewLimits[0])
}

func TestScreenComprehensiveNarrowsCandidates(t *testing.T) {
	store := &stubStore{
		count: 9,
		records: []screening.Regulation{
			{
				ID: "asp-2014-16", GeoExtent: "Scotland",
				Title: "Procurement Reform (Scotland) Act 2014", Description: "construction procurement duties",
			},
			{
				ID: "anaw-2016-3", GeoExtent: "Wales",
				Title: "Environment (Wales) Act 2016", Description: "construction and land duties",
			},
			{
				ID: "ukpga-1974-37", GeoExtent: "Great Britain",
				Title: "Health and Safety at Work etc. Act 1974", Description: "duties on construction employers",
			},
			{
				ID: "uksi-2015-51", GeoExtent: "Great Britain",
				Title: "Construction (Design and Management) Regulations 2015",
				DutyHolders: []string{"small_employers"},
			},
			{
				ID: "uksi-1998-2306", GeoExtent: "Great Britain",
				Title: "Provision and Use of Work Equipment Regulations 1998", Description: "construction equipment duties",
				DutyHolders: []string{"medium_employers"},
			},
		},
	}
	m := New(store, cache.New(0))

	res, err := m.Screen(context.Background(), uuid.New(), comprehensiveProfile())
	require.NoError(t, err)

	assert.Equal(t, "comprehensive", res.TierName)
	assert.Equal(t, screening.ConfidenceHigh, res.Confidence)
	require.NotNil(t, res.Analysis)

	// Wales-only extent is ruled out by the operational regions; the
	// small-employer instrument is ruled out by the 120-employee bracket.
	ids := make([]string, 0, len(res.Preview))
	for _, rec := range res.Preview {
		ids = append(ids, rec.ID)
	}
	assert.Equal(t, []string{"asp-2014-16", "ukpga-1974-37", "uksi-1998-2306"}, ids)

	// Refined tiers oversample so narrowing can still fill the preview.
	require.Len(t, store.previewLimits, 1)
	assert.Equal(t, DefaultPreviewLimit*candidateMultiplier, store.previewLimits[0])
}

func TestScreenDegradesWhenStoreUnavailable(t *testing.T) {
	store := &stubStore{err: errors.New("connection refused")}
	m := New(store, cache.New(0))
	orgID := uuid.New()

	res, err := m.Screen(context.Background(), orgID, basicProfile())
	require.NoError(t, err)

	assert.True(t, res.Degraded())
	assert.Equal(t, screening.ConfidenceNone, res.Confidence)
	assert.Equal(t, int64(0), res.LawCount)
	assert.Empty(t, res.Preview)
	assert.Equal(t, orgID, res.OrganizationID)
}

func TestScreenFallsBackToCachedLowerTier(t *testing.T) {
	store := &stubStore{
		count:   5,
		records: []screening.Regulation{{ID: "ukpga-1974-37", Title: "Health and Safety at Work etc. Act 1974"}},
	}
	m := New(store, cache.New(0))
	orgID := uuid.New()

	// Prime the basic-tier entry while the store is healthy.
	primed, err := m.Screen(context.Background(), orgID, basicProfile())
	require.NoError(t, err)
	require.Equal(t, "basic", primed.TierName)

	// A richer profile asks for the comprehensive tier, but the store is
	// now down: the fresh basic-tier answer beats a degraded one.
	store.err = errors.New("connection refused")
	res, err := m.Screen(context.Background(), orgID, comprehensiveProfile())
	require.NoError(t, err)

	assert.False(t, res.Degraded())
	assert.Equal(t, "basic", res.TierName)
	assert.Equal(t, screening.MethodCached, res.Method)
	assert.Equal(t, int64(5), res.LawCount)
}

func TestScreenSecondCallServesFromCache(t *testing.T) {
	store := &stubStore{
		count:   42,
		records: []screening.Regulation{{ID: "ukpga-2006-46", Title: "Companies Act 2006"}},
	}
	m := New(store, cache.New(0))
	orgID := uuid.New()

	first, err := m.Screen(context.Background(), orgID, basicProfile())
	require.NoError(t, err)
	assert.Equal(t, screening.MethodTiered, first.Method)

	second, err := m.Screen(context.Background(), orgID, basicProfile())
	require.NoError(t, err)
	assert.Equal(t, screening.MethodCached, second.Method)
	assert.Equal(t, first.LawCount, second.LawCount)
	assert.Equal(t, first.Preview, second.Preview)
	assert.Equal(t, first.GeneratedAt, second.GeneratedAt)

	// The store answered once; the second result came from the cache.
	require.Len(t, store.countParams, 1)
	require.Len(t, store.previewLimits, 1)
}

func TestCountWrapsStoreErrors(t *testing.T) {
	store := &stubStore{err: errors.New("connection refused")}
	m := New(store, cache.New(0))

	_, err := m.Count(context.Background(), basicProfile())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count query failed")
}

func TestPreviewDefaultsAndWrapsErrors(t *testing.T) {
	store := &stubStore{records: []screening.Regulation{{ID: "ukpga-2006-46"}}}
	m := New(store, cache.New(0))

	records, err := m.Preview(context.Background(), basicProfile(), 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	require.Len(t, store.previewLimits, 1)
	assert.Equal(t, DefaultPreviewLimit, store.previewLimits[0])

	store.err = errors.New("connection refused")
	_, err = m.Preview(context.Background(), basicProfile(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preview query failed")
}
