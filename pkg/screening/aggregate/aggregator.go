// Package aggregate rolls up applicable-law sets across an organization's
// operational locations into one deduplicated union.
package aggregate

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"compliance-screening-be/pkg/screening"

	"github.com/google/uuid"
)

// locationFetchLimit bounds the per-location candidate fetch used to build
// identifier sets.
const locationFetchLimit = 200

const StatusActive = "active"

// Location is the engine's view of one operational site. A location is
// screened as if it were a standalone organization carrying its own profile
// merged over the organization-wide defaults.
type Location struct {
	ID            uuid.UUID
	Region        string
	EmployeeCount *int
	Activities    []string
	Status        string
	Primary       bool
}

// Organization-wide obligations keyed by legal entity type. These apply to
// the entity as a whole regardless of where it operates.
var entityObligations = map[string][]string{
	"limited_company": {"ukpga-2006-46", "ukpga-2009-4", "ukpga-2015-26"},
	"plc":             {"ukpga-2006-46", "ukpga-2009-4", "ukpga-2000-8"},
	"llp":             {"ukpga-2000-12", "ukpga-2009-4"},
	"partnership":     {"ukpga-1890-39", "ukpga-1907-24"},
	"charity":         {"ukpga-2011-25"},
	"sole_trader":     {},
}

// Previewer yields the applicable records for one profile. Satisfied by the
// matcher.
type Previewer interface {
	Preview(ctx context.Context, p *screening.OrganizationProfile, limit int) ([]screening.Regulation, error)
}

type Aggregator struct {
	previewer Previewer
}

func NewAggregator(previewer Previewer) *Aggregator {
	return &Aggregator{previewer: previewer}
}

// Aggregate computes the deduplicated union of applicable-law identifiers
// across the organization's active locations plus its entity-type
// obligations. Inactive locations are excluded entirely; a single active
// location short-circuits to its own screening set. The result count always
// equals the cardinality of the identifier set, never the per-location sum.
func (a *Aggregator) Aggregate(ctx context.Context, orgID uuid.UUID, orgProfile *screening.OrganizationProfile, locations []Location) (*screening.AggregatedLawSet, error) {
	if orgProfile == nil {
		orgProfile = &screening.OrganizationProfile{}
	}

	active := activeLocations(locations)

	union := make(map[string]struct{})
	locationCounts := make(map[uuid.UUID]int, len(active))

	for _, loc := range active {
		merged := mergeProfile(orgProfile, loc)
		records, err := a.previewer.Preview(ctx, merged, locationFetchLimit)
		if err != nil {
			return nil, fmt.Errorf("screen location %s: %w", loc.ID, err)
		}
		locationCounts[loc.ID] = len(records)
		for _, rec := range records {
			union[rec.ID] = struct{}{}
		}
		if len(active) == 1 {
			// Single active site: its own set is the organization's set.
			break
		}
	}

	entityWide := entityObligations[normalizeEntityType(orgProfile.EntityType)]
	for _, id := range entityWide {
		union[id] = struct{}{}
	}

	ids := make([]string, 0, len(union))
	for id := range union {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return &screening.AggregatedLawSet{
		OrganizationID:  orgID,
		LawIDs:          ids,
		Count:           len(ids),
		LocationCounts:  locationCounts,
		EntityWideCount: len(entityWide),
	}, nil
}

func activeLocations(locations []Location) []Location {
	out := locations[:0:0]
	for _, loc := range locations {
		if strings.EqualFold(loc.Status, StatusActive) {
			out = append(out, loc)
		}
	}
	return out
}

// mergeProfile overlays a location's own operational profile on the
// organization-wide defaults. Only declared location fields override.
func mergeProfile(org *screening.OrganizationProfile, loc Location) *screening.OrganizationProfile {
	merged := *org
	if loc.Region != "" {
		merged.HeadquartersRegion = loc.Region
		merged.OperationalRegions = []string{loc.Region}
	}
	if loc.EmployeeCount != nil {
		merged.EmployeeCount = loc.EmployeeCount
	}
	if len(loc.Activities) > 0 {
		merged.BusinessActivities = loc.Activities
	}
	return &merged
}

func normalizeEntityType(entityType string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(entityType), " ", "_"))
}
