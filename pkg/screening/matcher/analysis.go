package matcher

import (
	"fmt"
	"strings"

	"compliance-screening-be/pkg/screening"
)

// buildAnalysis produces the tier-specific assessment attached to Enhanced
// and Comprehensive results.
func buildAnalysis(p *screening.OrganizationProfile, strat screening.QueryStrategy) *screening.TierAnalysis {
	if p == nil {
		p = &screening.OrganizationProfile{}
	}

	analysis := &screening.TierAnalysis{
		RiskAssessment: assessRisk(p, strat),
		PriorityAreas:  priorityAreas(p, strat),
	}
	return analysis
}

func assessRisk(p *screening.OrganizationProfile, strat screening.QueryStrategy) string {
	var parts []string

	switch strings.ToLower(p.RiskProfile) {
	case "high":
		parts = append(parts, "declared high-risk profile warrants a full compliance review")
	case "medium":
		parts = append(parts, "declared medium-risk profile suggests periodic compliance checks")
	case "low":
		parts = append(parts, "declared low-risk profile; routine monitoring is sufficient")
	default:
		parts = append(parts, "no declared risk profile; assessment based on size and sector only")
	}

	switch strat.Params.EmployeeBracket {
	case "over_1000", "under_1000":
		parts = append(parts, "workforce size brings employer-scale duties into scope")
	case "under_10":
		parts = append(parts, "micro-business exemptions may apply to some duties")
	}

	return strings.Join(parts, "; ")
}

func priorityAreas(p *screening.OrganizationProfile, strat screening.QueryStrategy) []string {
	areas := []string{strat.Params.Classification}

	if p.HandlesPersonalData != nil && *p.HandlesPersonalData {
		areas = append(areas, "Data Protection")
	}
	if p.EmployeeCount != nil && *p.EmployeeCount > 0 {
		areas = append(areas, "Employment")
	}
	for _, req := range p.ComplianceRequirements {
		if req != "" {
			areas = append(areas, fmt.Sprintf("Declared: %s", req))
		}
	}

	return dedupeStrings(areas)
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
