package aggregate

import (
	"context"
	"errors"
	"testing"

	"compliance-screening-be/pkg/screening"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPreviewer struct {
	byRegion map[string][]screening.Regulation
	profiles []*screening.OrganizationProfile
	err      error
}

func (s *stubPreviewer) Preview(ctx context.Context, p *screening.OrganizationProfile, limit int) ([]screening.Regulation, error) {
	s.profiles = append(s.profiles, p)
	if s.err != nil {
		return nil, s.err
	}
	return s.byRegion[p.HeadquartersRegion], nil
}

func intPtr(v int) *int { return &v }

func regs(ids ...string) []screening.Regulation {
	out := make([]screening.Regulation, 0, len(ids))
	for _, id := range ids {
		out = append(out, screening.Regulation{ID: id})
	}
	return out
}

func orgProfile() *screening.OrganizationProfile {
	return &screening.OrganizationProfile{
		IndustrySector:     "construction",
		HeadquartersRegion: "Scotland",
		EmployeeCount:      intPtr(120),
		OperationalRegions: []string{"Scotland", "England"},
		BusinessActivities: []string{"commercial construction"},
	}
}

func TestAggregateDeduplicatesAcrossLocations(t *testing.T) {
	previewer := &stubPreviewer{byRegion: map[string][]screening.Regulation{
		"Scotland": regs("asp-2014-16", "ukpga-1974-37"),
		"England":  regs("ukpga-1974-37", "ukpga-2010-15"),
	}}
	a := NewAggregator(previewer)

	scot := Location{ID: uuid.New(), Region: "Scotland", Status: "active", Primary: true}
	eng := Location{ID: uuid.New(), Region: "England", Status: "active"}

	got, err := a.Aggregate(context.Background(), uuid.New(), orgProfile(), []Location{scot, eng})
	require.NoError(t, err)

	// The shared act counts once in the union but per-location tallies keep
	// their own totals.
	assert.Equal(t, []string{"asp-2014-16", "ukpga-1974-37", "ukpga-2010-15"}, got.LawIDs)
	assert.Equal(t, len(got.LawIDs), got.Count)
	assert.Equal(t, 2, got.LocationCounts[scot.ID])
	assert.Equal(t, 2, got.LocationCounts[eng.ID])
	assert.Equal(t, 0, got.EntityWideCount)
}

func TestAggregateAddsEntityWideObligations(t *testing.T) {
	previewer := &stubPreviewer{byRegion: map[string][]screening.Regulation{
		"Scotland": regs("asp-2014-16", "ukpga-2006-46"),
	}}
	a := NewAggregator(previewer)

	p := orgProfile()
	p.EntityType = "Limited Company"

	got, err := a.Aggregate(context.Background(), uuid.New(), p, []Location{
		{ID: uuid.New(), Region: "Scotland", Status: "active"},
	})
	require.NoError(t, err)

	// Companies Act already appears in the location set; the union absorbs
	// the overlap.
	assert.Equal(t, []string{"asp-2014-16", "ukpga-2006-46", "ukpga-2009-4", "ukpga-2015-26"}, got.LawIDs)
	assert.Equal(t, len(got.LawIDs), got.Count)
	assert.Equal(t, 3, got.EntityWideCount)
}

func TestAggregateSingleActiveLocationShortCircuits(t *testing.T) {
	previewer := &stubPreviewer{byRegion: map[string][]screening.Regulation{
		"Scotland": regs("asp-2014-16"),
	}}
	a := NewAggregator(previewer)

	got, err := a.Aggregate(context.Background(), uuid.New(), orgProfile(), []Location{
		{ID: uuid.New(), Region: "Scotland", Status: "active"},
		{ID: uuid.New(), Region: "England", Status: "closed"},
		{ID: uuid.New(), Region: "Wales", Status: "pending"},
	})
	require.NoError(t, err)

	assert.Len(t, previewer.profiles, 1)
	assert.Equal(t, []string{"asp-2014-16"}, got.LawIDs)
	assert.Len(t, got.LocationCounts, 1)
}

func TestAggregateWithNoActiveLocations(t *testing.T) {
	previewer := &stubPreviewer{}
	a := NewAggregator(previewer)

	p := orgProfile()
	p.EntityType = "charity"

	got, err := a.Aggregate(context.Background(), uuid.New(), p, []Location{
		{ID: uuid.New(), Region: "Scotland", Status: "closed"},
	})
	require.NoError(t, err)

	assert.Empty(t, previewer.profiles)
	assert.Equal(t, []string{"ukpga-2011-25"}, got.LawIDs)
	assert.Equal(t, 1, got.Count)
	assert.Empty(t, got.LocationCounts)
}

func TestAggregateMergesLocationProfile(t *testing.T) {
	previewer := &stubPreviewer{byRegion: map[string][]screening.Regulation{}}
	a := NewAggregator(previewer)

	loc := Location{
		ID:            uuid.New(),
		Region:        "England",
		EmployeeCount: intPtr(40),
		Activities:    []string{"civil engineering"},
		Status:        "ACTIVE",
	}
	bare := Location{ID: uuid.New(), Region: "", Status: "active"}

	_, err := a.Aggregate(context.Background(), uuid.New(), orgProfile(), []Location{loc, bare})
	require.NoError(t, err)
	require.Len(t, previewer.profiles, 2)

	merged := previewer.profiles[0]
	assert.Equal(t, "England", merged.HeadquartersRegion)
	assert.Equal(t, []string{"England"}, merged.OperationalRegions)
	assert.Equal(t, 40, *merged.EmployeeCount)
	assert.Equal(t, []string{"civil engineering"}, merged.BusinessActivities)
	// Undeclared location fields keep the organization-wide values.
	assert.Equal(t, "construction", merged.IndustrySector)

	fallback := previewer.profiles[1]
	assert.Equal(t, "Scotland", fallback.HeadquartersRegion)
	assert.Equal(t, 120, *fallback.EmployeeCount)
	assert.Equal(t, []string{"commercial construction"}, fallback.BusinessActivities)
}

func TestAggregateNilProfile(t *testing.T) {
	previewer := &stubPreviewer{}
	a := NewAggregator(previewer)

	got, err := a.Aggregate(context.Background(), uuid.New(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, got.LawIDs)
	assert.Equal(t, 0, got.Count)
}

func TestAggregatePropagatesScreeningErrors(t *testing.T) {
	previewer := &stubPreviewer{err: errors.New("store down")}
	a := NewAggregator(previewer)

	_, err := a.Aggregate(context.Background(), uuid.New(), orgProfile(), []Location{
		{ID: uuid.New(), Region: "Scotland", Status: "active"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "screen location")
}
