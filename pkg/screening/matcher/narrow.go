package matcher

import (
	"strings"

	"compliance-screening-be/pkg/screening"
	"compliance-screening-be/pkg/screening/strategy"
)

// Geographic extents that apply everywhere regardless of declared regions.
var nationwideExtents = map[string]struct{}{
	"United Kingdom": {},
	"Great Britain":  {},
}

// Size tags a corpus record may carry in its duty-holder list. A record
// without any size tag binds organizations of every size.
var sizeTagBrackets = map[string][]string{
	"micro_employers":  {"under_10"},
	"small_employers":  {"under_10", "under_50"},
	"medium_employers": {"under_50", "under_250"},
	"large_employers":  {"under_250", "under_1000", "over_1000"},
}

// narrow applies the tier's refinement filters over the basic-tier candidate
// set. An absent filter is a no-op, never an exclusion: narrowing only ever
// removes records a declared filter positively rules out.
func narrow(records []screening.Regulation, strat screening.QueryStrategy) []screening.Regulation {
	if strat.Tier == screening.TierBasic {
		return records
	}

	out := records[:0:0]
	for _, rec := range records {
		if !matchesRegions(rec, strat.Params.OperationalRegions) {
			continue
		}
		if !matchesActivities(rec, strat.Params.BusinessActivities) {
			continue
		}
		if !matchesSizeTags(rec, strat.Params.EmployeeBracket) {
			continue
		}
		if strat.Tier >= screening.TierComprehensive && !matchesCompliance(rec, strat.Params.ComplianceRequirements) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// matchesRegions keeps a record when its extent covers any declared
// operational region, or when the record is nationwide.
func matchesRegions(rec screening.Regulation, regions []string) bool {
	if len(regions) == 0 {
		return true
	}
	if _, ok := nationwideExtents[rec.GeoExtent]; ok {
		return true
	}
	for _, region := range regions {
		if strings.EqualFold(strategy.ExtentFor(region), rec.GeoExtent) {
			return true
		}
	}
	return false
}

// matchesActivities keeps a record when any declared activity appears in its
// title, description or duty-holder tags.
func matchesActivities(rec screening.Regulation, activities []string) bool {
	if len(activities) == 0 {
		return true
	}
	haystack := strings.ToLower(rec.Title + " " + rec.Description + " " + strings.Join(rec.DutyHolders, " "))
	for _, act := range activities {
		if act == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(act)) {
			return true
		}
	}
	return false
}

// matchesSizeTags keeps a record unless it is explicitly scoped to a size
// band incompatible with the organization's employee bracket.
func matchesSizeTags(rec screening.Regulation, bracket string) bool {
	if bracket == "" || bracket == strategy.BracketUnknown {
		return true
	}
	tagged := false
	for _, holder := range rec.DutyHolders {
		brackets, ok := sizeTagBrackets[strings.ToLower(holder)]
		if !ok {
			continue
		}
		tagged = true
		for _, b := range brackets {
			if b == bracket {
				return true
			}
		}
	}
	return !tagged
}

// matchesCompliance keeps a record when any declared compliance requirement
// appears in its description or classification.
func matchesCompliance(rec screening.Regulation, requirements []string) bool {
	if len(requirements) == 0 {
		return true
	}
	haystack := strings.ToLower(rec.Description + " " + rec.Classification + " " + rec.Title)
	for _, req := range requirements {
		if req == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(req)) {
			return true
		}
	}
	return false
}
