package profile

import (
	"testing"

	"compliance-screening-be/pkg/screening"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func basicProfile() *screening.OrganizationProfile {
	return &screening.OrganizationProfile{
		IndustrySector:     "construction",
		HeadquartersRegion: "Scotland",
		EmployeeCount:      intPtr(120),
		EntityType:         "limited_company",
	}
}

func fullProfile() *screening.OrganizationProfile {
	p := basicProfile()
	p.AnnualTurnover = floatPtr(15_000_000)
	p.OperationalRegions = []string{"Scotland", "England"}
	p.BusinessActivities = []string{"commercial construction"}
	p.YearEstablished = intPtr(2004)
	p.HandlesPersonalData = boolPtr(true)
	p.ComplianceRequirements = []string{"iso_9001"}
	p.Certifications = []string{"chas"}
	p.RegulatoryHistory = "no enforcement actions"
	p.RiskProfile = "medium"
	p.SpecialCircumstances = "none"
	return p
}

func TestAnalyzeTierBoundaries(t *testing.T) {
	riskOnly := basicProfile()
	riskOnly.RiskProfile = "low"
	riskOnly.SpecialCircumstances = "seasonal workforce"

	comprehensiveEdge := basicProfile()
	comprehensiveEdge.AnnualTurnover = floatPtr(15_000_000)
	comprehensiveEdge.OperationalRegions = []string{"Scotland"}
	comprehensiveEdge.BusinessActivities = []string{"construction"}
	comprehensiveEdge.YearEstablished = intPtr(2004)
	comprehensiveEdge.HandlesPersonalData = boolPtr(true)
	comprehensiveEdge.RiskProfile = "medium"
	comprehensiveEdge.SpecialCircumstances = "none"

	tests := []struct {
		name      string
		profile   *screening.OrganizationProfile
		wantScore float64
		wantTier  screening.ComplexityTier
	}{
		{
			name:      "nil profile scores zero",
			profile:   nil,
			wantScore: 0,
			wantTier:  screening.TierBasic,
		},
		{
			name:      "empty profile scores zero",
			profile:   &screening.OrganizationProfile{},
			wantScore: 0,
			wantTier:  screening.TierBasic,
		},
		{
			name:      "basic fields only stay below the enhanced boundary",
			profile:   basicProfile(),
			wantScore: 0.4,
			wantTier:  screening.TierBasic,
		},
		{
			name:      "exactly 0.5 lands on enhanced",
			profile:   riskOnly,
			wantScore: 0.5,
			wantTier:  screening.TierEnhanced,
		},
		{
			name:      "exactly 0.8 lands on comprehensive",
			profile:   comprehensiveEdge,
			wantScore: 0.8,
			wantTier:  screening.TierComprehensive,
		},
		{
			name:      "full profile scores one",
			profile:   fullProfile(),
			wantScore: 1,
			wantTier:  screening.TierComprehensive,
		},
	}

	a := NewAnalyzer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Analyze(tt.profile)
			assert.InDelta(t, tt.wantScore, got.Score, 1e-9)
			assert.Equal(t, tt.wantTier, got.Tier)
			assert.Equal(t, tt.wantTier.String(), got.TierName)
			assert.Len(t, got.Categories, 4)
		})
	}
}

func TestAnalyzeScoreIsMonotonic(t *testing.T) {
	a := NewAnalyzer()

	p := &screening.OrganizationProfile{}
	prev := a.Analyze(p).Score

	steps := []func(){
		func() { p.IndustrySector = "construction" },
		func() { p.HeadquartersRegion = "Scotland" },
		func() { p.EmployeeCount = intPtr(120) },
		func() { p.EntityType = "limited_company" },
		func() { p.AnnualTurnover = floatPtr(15_000_000) },
		func() { p.OperationalRegions = []string{"Scotland"} },
		func() { p.BusinessActivities = []string{"construction"} },
		func() { p.YearEstablished = intPtr(2004) },
		func() { p.HandlesPersonalData = boolPtr(true) },
		func() { p.ComplianceRequirements = []string{"iso_9001"} },
		func() { p.Certifications = []string{"chas"} },
		func() { p.RegulatoryHistory = "clean" },
		func() { p.RiskProfile = "medium" },
		func() { p.SpecialCircumstances = "none" },
	}

	for i, step := range steps {
		step()
		got := a.Analyze(p).Score
		require.GreaterOrEqualf(t, got, prev, "score dropped after step %d", i)
		prev = got
	}
	assert.InDelta(t, 1.0, prev, 1e-9)
}

func TestAnalyzeWithTwoPhase(t *testing.T) {
	a := NewAnalyzer()
	p := basicProfile()

	// Phase one full, phase two empty, no quality failures.
	got := a.AnalyzeWith(p, WeightingTwoPhase)
	assert.InDelta(t, 0.4*1+0.5*0+0.1*1, got.Score, 1e-9)
	assert.Equal(t, screening.TierEnhanced, got.Tier)

	got = a.AnalyzeWith(fullProfile(), WeightingTwoPhase)
	assert.InDelta(t, 1.0, got.Score, 1e-9)
	assert.Equal(t, screening.TierComprehensive, got.Tier)
}

func TestQualityIssues(t *testing.T) {
	a := NewAnalyzer()

	t.Run("negative values are flagged", func(t *testing.T) {
		p := &screening.OrganizationProfile{
			EmployeeCount:  intPtr(-5),
			AnnualTurnover: floatPtr(-100),
		}
		got := a.Analyze(p)
		require.Len(t, got.Issues, 2)
		codes := []string{got.Issues[0].Code, got.Issues[1].Code}
		assert.Contains(t, codes, "negative_employee_count")
		assert.Contains(t, codes, "negative_turnover")
		assert.InDelta(t, 0.0, got.QualityRatio, 1e-9)
		for _, issue := range got.Issues {
			assert.NotEmpty(t, issue.Suggestion)
		}
	})

	t.Run("size bracket mismatch", func(t *testing.T) {
		p := &screening.OrganizationProfile{
			IndustrySector: "construction",
			EmployeeCount:  intPtr(3),
			AnnualTurnover: floatPtr(500_000_000),
		}
		got := a.Analyze(p)
		require.Len(t, got.Issues, 1)
		assert.Equal(t, "size_bracket_mismatch", got.Issues[0].Code)
		// 3 of 4 applicable checks passed.
		assert.InDelta(t, 0.75, got.QualityRatio, 1e-9)
	})

	t.Run("hq outside operational regions", func(t *testing.T) {
		p := basicProfile()
		p.OperationalRegions = []string{"England", "Wales"}
		got := a.Analyze(p)
		require.Len(t, got.Issues, 1)
		assert.Equal(t, "hq_outside_operations", got.Issues[0].Code)
	})

	t.Run("region match is case insensitive", func(t *testing.T) {
		p := basicProfile()
		p.OperationalRegions = []string{"scotland "}
		got := a.Analyze(p)
		assert.Empty(t, got.Issues)
		assert.InDelta(t, 1.0, got.QualityRatio, 1e-9)
	})

	t.Run("no applicable checks means perfect ratio", func(t *testing.T) {
		got := a.Analyze(&screening.OrganizationProfile{})
		assert.Empty(t, got.Issues)
		assert.InDelta(t, 1.0, got.QualityRatio, 1e-9)
	})
}
