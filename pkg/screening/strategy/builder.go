// Package strategy turns a profile's completeness into a concrete query
// plan: complexity tier, store parameters, latency class and cache TTL.
package strategy

import (
	"time"

	"compliance-screening-be/pkg/screening"
	"compliance-screening-be/pkg/screening/profile"
)

// Base TTL per tier. Coarser tiers cache longer: they are cheaper to
// recompute and rest on more stable inputs.
var baseTTL = map[screening.ComplexityTier]time.Duration{
	screening.TierBasic:         12 * time.Hour,
	screening.TierEnhanced:      6 * time.Hour,
	screening.TierComprehensive: 3 * time.Hour,
}

var latencyClasses = map[screening.ComplexityTier]string{
	screening.TierBasic:         "fast",
	screening.TierEnhanced:      "moderate",
	screening.TierComprehensive: "thorough",
}

// Builder builds a QueryStrategy from a profile. Deterministic and total:
// unknown or missing inputs degrade to defaults rather than erroring.
type Builder struct {
	analyzer *profile.Analyzer
}

func NewBuilder() *Builder {
	return &Builder{analyzer: profile.NewAnalyzer()}
}

// Build derives the tier from the profile's completeness and assembles the
// parameters that tier allows.
func (b *Builder) Build(p *screening.OrganizationProfile) screening.QueryStrategy {
	score := b.analyzer.Analyze(p)
	return b.BuildForTier(p, score.Tier)
}

// BuildForTier assembles a strategy at an explicit tier. Used by the matcher
// when falling back to a cheaper tier under a caller deadline.
func (b *Builder) BuildForTier(p *screening.OrganizationProfile, tier screening.ComplexityTier) screening.QueryStrategy {
	if p == nil {
		p = &screening.OrganizationProfile{}
	}

	params := screening.QueryParams{
		Classification: ClassificationFor(p.IndustrySector),
		GeoExtent:      ExtentFor(p.HeadquartersRegion),
		Status:         StatusInForce,
	}

	if tier >= screening.TierEnhanced {
		params.EmployeeBracket = EmployeeBracket(p.EmployeeCount)
		params.OperationalRegions = p.OperationalRegions
		params.BusinessActivities = p.BusinessActivities
	}

	if tier >= screening.TierComprehensive {
		params.TurnoverBracket = TurnoverBracket(p.AnnualTurnover)
		params.ComplianceRequirements = p.ComplianceRequirements
		params.RiskProfile = p.RiskProfile
		params.SpecialCircumstances = p.SpecialCircumstances
	}

	return screening.QueryStrategy{
		Tier:         tier,
		Params:       params,
		LatencyClass: latencyClasses[tier],
		CacheTTL:     cacheTTL(tier, p.EmployeeCount),
	}
}

// cacheTTL applies the stability factor: larger organizations change shape
// less often, so their results stay valid longer, up to twice the base TTL.
func cacheTTL(tier screening.ComplexityTier, employees *int) time.Duration {
	base := baseTTL[tier]
	factor := 1.0
	if employees != nil && *employees > 0 {
		switch bracketIndex(*employees) {
		case 1:
			factor = 1.25
		case 2:
			factor = 1.5
		case 3:
			factor = 1.75
		case 4:
			factor = 2.0
		}
	}
	return time.Duration(float64(base) * factor)
}
