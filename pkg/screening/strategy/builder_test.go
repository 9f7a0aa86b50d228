package strategy

import (
	"testing"
	"time"

	"compliance-screening-be/pkg/screening"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestBuildForTierAccumulatesParams(t *testing.T) {
	p := &screening.OrganizationProfile{
		IndustrySector:         "construction",
		HeadquartersRegion:     "scotland",
		EmployeeCount:          intPtr(120),
		AnnualTurnover:         floatPtr(15_000_000),
		OperationalRegions:     []string{"Scotland", "England"},
		BusinessActivities:     []string{"civil engineering"},
		ComplianceRequirements: []string{"iso_9001"},
		RiskProfile:            "medium",
		SpecialCircumstances:   "none",
	}
	b := NewBuilder()

	basic := b.BuildForTier(p, screening.TierBasic)
	assert.Equal(t, "Construction", basic.Params.Classification)
	assert.Equal(t, "Scotland", basic.Params.GeoExtent)
	assert.Equal(t, StatusInForce, basic.Params.Status)
	assert.Empty(t, basic.Params.EmployeeBracket)
	assert.Empty(t, basic.Params.OperationalRegions)
	assert.Empty(t, basic.Params.TurnoverBracket)
	assert.Equal(t, "fast", basic.LatencyClass)

	enhanced := b.BuildForTier(p, screening.TierEnhanced)
	assert.Equal(t, basic.Params.Classification, enhanced.Params.Classification)
	assert.Equal(t, "under_250", enhanced.Params.EmployeeBracket)
	assert.Equal(t, []string{"Scotland", "England"}, enhanced.Params.OperationalRegions)
	assert.Equal(t, []string{"civil engineering"}, enhanced.Params.BusinessActivities)
	assert.Empty(t, enhanced.Params.TurnoverBracket)
	assert.Equal(t, "moderate", enhanced.LatencyClass)

	comprehensive := b.BuildForTier(p, screening.TierComprehensive)
	assert.Equal(t, "under_100m", comprehensive.Params.TurnoverBracket)
	assert.Equal(t, []string{"iso_9001"}, comprehensive.Params.ComplianceRequirements)
	assert.Equal(t, "medium", comprehensive.Params.RiskProfile)
	assert.Equal(t, "thorough", comprehensive.LatencyClass)
}

func TestBuildUnknownInputsFallBack(t *testing.T) {
	b := NewBuilder()

	got := b.Build(nil)
	assert.Equal(t, screening.TierBasic, got.Tier)
	assert.Equal(t, DefaultClassification, got.Params.Classification)
	assert.Equal(t, DefaultGeoExtent, got.Params.GeoExtent)

	got = b.Build(&screening.OrganizationProfile{
		IndustrySector:     "underwater basket weaving",
		HeadquartersRegion: "atlantis",
	})
	assert.Equal(t, DefaultClassification, got.Params.Classification)
	assert.Equal(t, DefaultGeoExtent, got.Params.GeoExtent)
}

func TestCacheTTLStabilityFactor(t *testing.T) {
	tests := []struct {
		name      string
		tier      screening.ComplexityTier
		employees *int
		want      time.Duration
	}{
		{"basic unknown size", screening.TierBasic, nil, 12 * time.Hour},
		{"basic micro", screening.TierBasic, intPtr(5), 12 * time.Hour},
		{"basic small", screening.TierBasic, intPtr(30), 15 * time.Hour},
		{"basic medium", screening.TierBasic, intPtr(120), 18 * time.Hour},
		{"enhanced large", screening.TierEnhanced, intPtr(800), time.Duration(float64(6*time.Hour) * 1.75)},
		{"comprehensive very large", screening.TierComprehensive, intPtr(5000), 6 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cacheTTL(tt.tier, tt.employees))
		})
	}
}

func TestEmployeeBracket(t *testing.T) {
	tests := []struct {
		count *int
		want  string
	}{
		{nil, BracketUnknown},
		{intPtr(0), BracketUnknown},
		{intPtr(-3), BracketUnknown},
		{intPtr(9), "under_10"},
		{intPtr(10), "under_50"},
		{intPtr(249), "under_250"},
		{intPtr(999), "under_1000"},
		{intPtr(1000), "over_1000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EmployeeBracket(tt.count))
	}
}

func TestTurnoverBracket(t *testing.T) {
	tests := []struct {
		turnover *float64
		want     string
	}{
		{nil, BracketUnknown},
		{floatPtr(0), BracketUnknown},
		{floatPtr(99_999), "under_100k"},
		{floatPtr(100_000), "under_1m"},
		{floatPtr(9_999_999), "under_10m"},
		{floatPtr(100_000_000), "over_100m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TurnoverBracket(tt.turnover))
	}
}

func TestRelevantChange(t *testing.T) {
	tests := []struct {
		name    string
		tier    screening.ComplexityTier
		changed []string
		want    bool
	}{
		{
			name:    "cosmetic change at basic tier",
			tier:    screening.TierBasic,
			changed: []string{FieldSpecialCircumstances},
			want:    false,
		},
		{
			name:    "next-tier field counts at basic tier",
			tier:    screening.TierBasic,
			changed: []string{FieldOperationalRegions},
			want:    true,
		},
		{
			name:    "current-tier field always counts",
			tier:    screening.TierComprehensive,
			changed: []string{FieldRiskProfile},
			want:    true,
		},
		{
			name:    "entity type is never consumed",
			tier:    screening.TierComprehensive,
			changed: []string{FieldEntityType},
			want:    false,
		},
		{
			name:    "one relevant field among cosmetic ones",
			tier:    screening.TierEnhanced,
			changed: []string{"contact_email", FieldAnnualTurnover},
			want:    true,
		},
		{
			name:    "empty change set",
			tier:    screening.TierBasic,
			changed: nil,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelevantChange(tt.tier, tt.changed))
		})
	}
}
