// Package screening holds the shared contracts of the applicability
// screening engine: the organization profile consumed by every component,
// the complexity tiers, the query strategy, and the screening result.
package screening

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ComplexityTier is the adaptive depth of a screening query. The tier is
// chosen from profile completeness: richer profiles justify deeper queries.
type ComplexityTier int

const (
	TierBasic ComplexityTier = iota
	TierEnhanced
	TierComprehensive
)

func (t ComplexityTier) String() string {
	switch t {
	case TierEnhanced:
		return "enhanced"
	case TierComprehensive:
		return "comprehensive"
	default:
		return "basic"
	}
}

// OrganizationProfile is the engine's immutable view of what is known about
// an organization. Fields may be absent; the analyzer treats absence as
// incompleteness, never as an error.
type OrganizationProfile struct {
	IndustrySector     string
	HeadquartersRegion string
	EntityType         string
	EmployeeCount      *int

	AnnualTurnover      *float64
	OperationalRegions  []string
	BusinessActivities  []string
	YearEstablished     *int
	HandlesPersonalData *bool

	ComplianceRequirements []string
	Certifications         []string
	RegulatoryHistory      string

	RiskProfile          string
	SpecialCircumstances string
}

// CategoryScore is the per-group completeness breakdown.
type CategoryScore struct {
	Category string  `json:"category"`
	Filled   int     `json:"filled"`
	Total    int     `json:"total"`
	Score    float64 `json:"score"`
	Weight   float64 `json:"weight"`
}

// QualityIssue is an advisory finding from the data-quality checks. Issues
// lower the quality ratio but never block scoring.
type QualityIssue struct {
	Code       string `json:"code"`
	Field      string `json:"field"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
}

// CompletenessScore is the derived completeness of a profile, in [0, 1],
// with its category breakdown and the tier it justifies.
type CompletenessScore struct {
	Score        float64         `json:"score"`
	Tier         ComplexityTier  `json:"-"`
	TierName     string          `json:"tier"`
	Categories   []CategoryScore `json:"categories"`
	QualityRatio float64         `json:"quality_ratio"`
	Issues       []QualityIssue  `json:"issues,omitempty"`
}

// QueryParams are the concrete parameters issued against the regulation
// store. Basic-tier fields are always set; the refinement fields accumulate
// with the tier and are applied as progressive narrowing, never as a
// different query type.
type QueryParams struct {
	Classification string
	GeoExtent      string
	Status         string

	// Enhanced tier refinements.
	EmployeeBracket    string
	OperationalRegions []string
	BusinessActivities []string

	// Comprehensive tier refinements.
	TurnoverBracket        string
	ComplianceRequirements []string
	RiskProfile            string
	SpecialCircumstances   string
}

// QueryStrategy is the per-request plan: tier, store parameters, expected
// latency class and how long the result may be cached.
type QueryStrategy struct {
	Tier         ComplexityTier
	Params       QueryParams
	LatencyClass string
	CacheTTL     time.Duration
}

// Regulation is one corpus record as returned by preview queries.
type Regulation struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Title          string   `json:"title"`
	Classification string   `json:"classification"`
	GeoExtent      string   `json:"geo_extent"`
	Status         string   `json:"status"`
	Year           int      `json:"year"`
	Description    string   `json:"description"`
	DutyHolders    []string `json:"duty_holders"`
}

// Screening methods recorded on a Result. MethodCached marks an answer
// served from the result cache rather than freshly computed. MethodDegraded
// marks a result produced while the regulation store was unreachable, so
// callers can tell "no obligations" apart from "screening unavailable".
const (
	MethodTiered   = "tiered_query"
	MethodCached   = "cached"
	MethodDegraded = "degraded"
)

// Confidence levels for a Result.
const (
	ConfidenceNone   = "none"
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// TierAnalysis carries the additional assessment produced at Enhanced tier
// and above.
type TierAnalysis struct {
	RiskAssessment string   `json:"risk_assessment"`
	PriorityAreas  []string `json:"priority_areas"`
}

// Result is the outcome of a single screening run. Its Tier never exceeds
// the tier justified by the completeness score at generation time.
type Result struct {
	OrganizationID uuid.UUID           `json:"organization_id"`
	LawCount       int64               `json:"law_count"`
	Preview        []Regulation        `json:"preview"`
	Tier           ComplexityTier      `json:"-"`
	TierName       string              `json:"tier"`
	Method         string              `json:"method"`
	Confidence     string              `json:"confidence"`
	Profile        OrganizationProfile `json:"profile_snapshot"`
	Analysis       *TierAnalysis       `json:"analysis,omitempty"`
	GeneratedAt    time.Time           `json:"generated_at"`
}

// Degraded reports whether the result was produced without store access.
func (r *Result) Degraded() bool {
	return r.Method == MethodDegraded
}

// AggregatedLawSet is the deduplicated union of applicable-law identifiers
// across an organization's active locations plus its organization-wide
// obligations. Count always equals the cardinality of LawIDs.
type AggregatedLawSet struct {
	OrganizationID  uuid.UUID         `json:"organization_id"`
	LawIDs          []string          `json:"law_ids"`
	Count           int               `json:"count"`
	LocationCounts  map[uuid.UUID]int `json:"location_counts,omitempty"`
	EntityWideCount int               `json:"entity_wide_count"`
}

// RegulationStore is the queryable corpus. Implementations must honor the
// duty-creating predicate carried by QueryParams unconditionally.
type RegulationStore interface {
	Count(ctx context.Context, params QueryParams) (int64, error)
	Preview(ctx context.Context, params QueryParams, limit int) ([]Regulation, error)
}

// ResultCache is the get-or-compute cache consulted by the matcher. Keys are
// (organization, tier); concurrent callers for the same key share one
// in-flight computation.
type ResultCache interface {
	GetOrCompute(ctx context.Context, orgID uuid.UUID, tier ComplexityTier, ttl time.Duration, compute func(ctx context.Context) (*Result, error)) (*Result, error)
	Peek(orgID uuid.UUID, tier ComplexityTier) (*Result, bool)
	Invalidate(orgID uuid.UUID)
}
