package dto

import (
	"time"

	"compliance-screening-be/pkg/screening"

	"github.com/google/uuid"
)

type ScreenResponse struct {
	Result *screening.Result `json:"result"`
}

type CountResponse struct {
	OrganizationId uuid.UUID `json:"organization_id"`
	LawCount       int64     `json:"law_count"`
	Tier           string    `json:"tier"`
}

type PreviewResponse struct {
	OrganizationId uuid.UUID              `json:"organization_id"`
	Tier           string                 `json:"tier"`
	Regulations    []screening.Regulation `json:"regulations"`
}

type ComplexityResponse struct {
	OrganizationId  uuid.UUID                   `json:"organization_id"`
	Completeness    screening.CompletenessScore `json:"completeness"`
	LatencyClass    string                      `json:"latency_class"`
	CacheTTLSeconds int64                       `json:"cache_ttl_seconds"`
}

type AggregateResponse struct {
	Aggregate *screening.AggregatedLawSet `json:"aggregate"`
}

type SnapshotResponse struct {
	Id         uuid.UUID `json:"id"`
	Tier       string    `json:"tier"`
	Method     string    `json:"method"`
	Confidence string    `json:"confidence"`
	LawCount   int64     `json:"law_count"`
	CreatedAt  time.Time `json:"created_at"`
}

type SnapshotListResponse struct {
	OrganizationId uuid.UUID          `json:"organization_id"`
	Snapshots      []SnapshotResponse `json:"snapshots"`
}

// ProfileUpdatedMessage is the payload of ORGANIZATION_PROFILE_UPDATED
// events consumed from the bus.
type ProfileUpdatedMessage struct {
	OrganizationId uuid.UUID `json:"organization_id" validate:"required"`
	ChangedFields  []string  `json:"changed_fields" validate:"required,min=1"`
}
