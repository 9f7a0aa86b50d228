// Package profile scores how complete an organization profile is and which
// query complexity tier that completeness justifies.
package profile

import (
	"compliance-screening-be/pkg/screening"
)

// Weighting selects the completeness weighting scheme. FieldGroups is the
// canonical scheme for tier selection; TwoPhase is kept for the enhanced
// completeness report.
type Weighting int

const (
	WeightingFieldGroups Weighting = iota
	WeightingTwoPhase
)

// Tier boundaries on the canonical score.
const (
	comprehensiveThreshold = 0.8
	enhancedThreshold      = 0.5
)

// Field group weights (canonical scheme).
const (
	weightBasic       = 0.4
	weightOperational = 0.3
	weightCompliance  = 0.2
	weightRisk        = 0.1
)

// Two-phase weights (enhanced completeness scheme).
const (
	weightPhaseOne = 0.4
	weightPhaseTwo = 0.5
	weightQuality  = 0.1
)

// Analyzer derives a CompletenessScore from a raw profile. It is a pure
// function holder: no side effects, no failure modes. A nil profile scores 0.
type Analyzer struct {
	checker *qualityChecker
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{checker: newQualityChecker()}
}

// Analyze scores the profile with the canonical field-group weighting and
// maps the score to a tier.
func (a *Analyzer) Analyze(p *screening.OrganizationProfile) screening.CompletenessScore {
	return a.AnalyzeWith(p, WeightingFieldGroups)
}

// AnalyzeWith scores the profile under an explicit weighting scheme. Tier
// selection always uses the scheme passed in, so a caller asking for the
// two-phase report gets a tier consistent with that report.
func (a *Analyzer) AnalyzeWith(p *screening.OrganizationProfile, w Weighting) screening.CompletenessScore {
	if p == nil {
		p = &screening.OrganizationProfile{}
	}

	categories := buildCategories(p)
	issues, qualityRatio := a.checker.run(p)

	var score float64
	switch w {
	case WeightingTwoPhase:
		score = twoPhaseScore(categories, qualityRatio)
	default:
		for _, c := range categories {
			score += c.Weight * c.Score
		}
	}
	score = clamp01(score)

	tier := tierFor(score)
	return screening.CompletenessScore{
		Score:        score,
		Tier:         tier,
		TierName:     tier.String(),
		Categories:   categories,
		QualityRatio: qualityRatio,
		Issues:       issues,
	}
}

func tierFor(score float64) screening.ComplexityTier {
	switch {
	case score >= comprehensiveThreshold:
		return screening.TierComprehensive
	case score >= enhancedThreshold:
		return screening.TierEnhanced
	default:
		return screening.TierBasic
	}
}

// buildCategories counts meaningful values per fixed field group.
func buildCategories(p *screening.OrganizationProfile) []screening.CategoryScore {
	basic := countMeaningful(
		hasText(p.IndustrySector),
		hasText(p.HeadquartersRegion),
		hasPositiveInt(p.EmployeeCount),
		hasText(p.EntityType),
	)
	operational := countMeaningful(
		hasPositiveFloat(p.AnnualTurnover),
		hasStrings(p.OperationalRegions),
		hasStrings(p.BusinessActivities),
		hasPositiveInt(p.YearEstablished),
		p.HandlesPersonalData != nil,
	)
	compliance := countMeaningful(
		hasStrings(p.ComplianceRequirements),
		hasStrings(p.Certifications),
		hasText(p.RegulatoryHistory),
	)
	risk := countMeaningful(
		hasText(p.RiskProfile),
		hasText(p.SpecialCircumstances),
	)

	return []screening.CategoryScore{
		category("basic_identification", basic, 4, weightBasic),
		category("operational_detail", operational, 5, weightOperational),
		category("compliance_context", compliance, 3, weightCompliance),
		category("risk_assessment", risk, 2, weightRisk),
	}
}

func category(name string, filled, total int, weight float64) screening.CategoryScore {
	return screening.CategoryScore{
		Category: name,
		Filled:   filled,
		Total:    total,
		Score:    float64(filled) / float64(total),
		Weight:   weight,
	}
}

// twoPhaseScore is the alternative scheme: phase one is basic
// identification, phase two pools the operational and compliance groups,
// and the data-quality ratio contributes the remainder.
func twoPhaseScore(categories []screening.CategoryScore, quality float64) float64 {
	var phaseOne float64
	extendedFilled, extendedTotal := 0, 0
	for _, c := range categories {
		switch c.Category {
		case "basic_identification":
			phaseOne = c.Score
		case "operational_detail", "compliance_context":
			extendedFilled += c.Filled
			extendedTotal += c.Total
		}
	}
	phaseTwo := 0.0
	if extendedTotal > 0 {
		phaseTwo = float64(extendedFilled) / float64(extendedTotal)
	}
	return weightPhaseOne*phaseOne + weightPhaseTwo*phaseTwo + weightQuality*quality
}

func countMeaningful(values ...bool) int {
	n := 0
	for _, v := range values {
		if v {
			n++
		}
	}
	return n
}

func hasText(s string) bool { return s != "" }

func hasStrings(ss []string) bool { return len(ss) > 0 }

func hasPositiveInt(v *int) bool { return v != nil && *v > 0 }

func hasPositiveFloat(v *float64) bool { return v != nil && *v > 0 }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
