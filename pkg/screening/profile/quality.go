package profile

import (
	"fmt"
	"strings"

	"compliance-screening-be/pkg/screening"
)

// Quality issue codes. Each maps to a canned improvement suggestion.
const (
	issueNegativeEmployeeCount = "negative_employee_count"
	issueNegativeTurnover      = "negative_turnover"
	issueShortSectorCode       = "short_sector_code"
	issueSizeBracketMismatch   = "size_bracket_mismatch"
	issueHQOutsideOperations   = "hq_outside_operations"
)

var suggestions = map[string]string{
	issueNegativeEmployeeCount: "Employee count must be zero or greater; correct the headcount figure.",
	issueNegativeTurnover:      "Annual turnover must be zero or greater; correct the turnover figure.",
	issueShortSectorCode:       "Industry sector looks truncated; use the full sector name or a code of at least two characters.",
	issueSizeBracketMismatch:   "Employee count and turnover imply very different company sizes; double-check both figures.",
	issueHQOutsideOperations:   "The headquarters region is not listed among the operational regions; add it if the organization operates there.",
}

// qualityChecker runs internal-consistency and value-validity checks over a
// profile. Failures are advisory: they feed the quality ratio and produce
// suggestions, they never block scoring.
type qualityChecker struct{}

func newQualityChecker() *qualityChecker {
	return &qualityChecker{}
}

// run returns the issues found and the ratio of passed checks to applicable
// checks. A profile with no applicable checks has a ratio of 1.
func (c *qualityChecker) run(p *screening.OrganizationProfile) ([]screening.QualityIssue, float64) {
	var issues []screening.QualityIssue
	applicable, passed := 0, 0

	check := func(applies, ok bool, code, field, message string) {
		if !applies {
			return
		}
		applicable++
		if ok {
			passed++
			return
		}
		issues = append(issues, screening.QualityIssue{
			Code:       code,
			Field:      field,
			Message:    message,
			Suggestion: suggestions[code],
		})
	}

	check(p.EmployeeCount != nil, p.EmployeeCount == nil || *p.EmployeeCount >= 0,
		issueNegativeEmployeeCount, "employee_count", "employee count is negative")

	check(p.AnnualTurnover != nil, p.AnnualTurnover == nil || *p.AnnualTurnover >= 0,
		issueNegativeTurnover, "annual_turnover", "annual turnover is negative")

	check(p.IndustrySector != "", len(strings.TrimSpace(p.IndustrySector)) >= 2,
		issueShortSectorCode, "industry_sector", "industry sector code is too short")

	if p.EmployeeCount != nil && p.AnnualTurnover != nil && *p.EmployeeCount > 0 && *p.AnnualTurnover > 0 {
		eb := employeeSizeBand(*p.EmployeeCount)
		tb := turnoverSizeBand(*p.AnnualTurnover)
		dist := eb - tb
		if dist < 0 {
			dist = -dist
		}
		check(true, dist <= 2, issueSizeBracketMismatch, "annual_turnover",
			fmt.Sprintf("employee count suggests size band %d but turnover suggests band %d", eb, tb))
	}

	if p.HeadquartersRegion != "" && len(p.OperationalRegions) > 0 {
		check(true, containsFold(p.OperationalRegions, p.HeadquartersRegion),
			issueHQOutsideOperations, "headquarters_region",
			"headquarters region is not declared as an operational region")
	}

	if applicable == 0 {
		return issues, 1
	}
	return issues, float64(passed) / float64(applicable)
}

// Size bands used only for the jointly-plausible check. Bands are coarse on
// purpose; only a distance above two is flagged.
func employeeSizeBand(count int) int {
	switch {
	case count < 10:
		return 0
	case count < 50:
		return 1
	case count < 250:
		return 2
	case count < 1000:
		return 3
	default:
		return 4
	}
}

func turnoverSizeBand(turnover float64) int {
	switch {
	case turnover < 100_000:
		return 0
	case turnover < 1_000_000:
		return 1
	case turnover < 10_000_000:
		return 2
	case turnover < 100_000_000:
		return 3
	default:
		return 4
	}
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(needle)) {
			return true
		}
	}
	return false
}
