package entity

import (
	"time"

	"github.com/google/uuid"
)

// Location is one operational site of an organization. Exactly one location
// per organization may be flagged primary.
type Location struct {
	Id             uuid.UUID
	OrganizationId uuid.UUID
	Name           string
	Region         string
	EmployeeCount  *int
	Activities     []string
	Status         string
	IsPrimary      bool

	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
