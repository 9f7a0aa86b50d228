package strategy

import "compliance-screening-be/pkg/screening"

// Profile field names as they appear in change events.
const (
	FieldIndustrySector         = "industry_sector"
	FieldHeadquartersRegion     = "headquarters_region"
	FieldEntityType             = "entity_type"
	FieldEmployeeCount          = "employee_count"
	FieldAnnualTurnover         = "annual_turnover"
	FieldOperationalRegions     = "operational_regions"
	FieldBusinessActivities     = "business_activities"
	FieldComplianceRequirements = "compliance_requirements"
	FieldRiskProfile            = "risk_profile"
	FieldSpecialCircumstances   = "special_circumstances"
)

// tierFields lists the profile fields the builder consumes at each tier.
// Fields outside every set are cosmetic as far as screening is concerned.
var tierFields = map[screening.ComplexityTier][]string{
	screening.TierBasic: {
		FieldIndustrySector,
		FieldHeadquartersRegion,
		FieldEmployeeCount,
	},
	screening.TierEnhanced: {
		FieldIndustrySector,
		FieldHeadquartersRegion,
		FieldEmployeeCount,
		FieldOperationalRegions,
		FieldBusinessActivities,
	},
	screening.TierComprehensive: {
		FieldIndustrySector,
		FieldHeadquartersRegion,
		FieldEmployeeCount,
		FieldOperationalRegions,
		FieldBusinessActivities,
		FieldAnnualTurnover,
		FieldComplianceRequirements,
		FieldRiskProfile,
		FieldSpecialCircumstances,
	},
}

// FieldsForTier returns the profile fields consumed when querying at the
// given tier.
func FieldsForTier(tier screening.ComplexityTier) []string {
	return tierFields[tier]
}

// RelevantChange reports whether any changed field is consumed at the
// organization's current tier or the next tier up. A change touching only
// fields outside both sets never warrants re-screening.
func RelevantChange(current screening.ComplexityTier, changedFields []string) bool {
	next := current
	if next < screening.TierComprehensive {
		next++
	}
	consumed := make(map[string]struct{})
	for _, f := range tierFields[current] {
		consumed[f] = struct{}{}
	}
	for _, f := range tierFields[next] {
		consumed[f] = struct{}{}
	}
	for _, f := range changedFields {
		if _, ok := consumed[f]; ok {
			return true
		}
	}
	return false
}
