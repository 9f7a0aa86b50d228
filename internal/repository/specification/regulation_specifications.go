package specification

import "gorm.io/gorm"

// ByClassification filters the corpus by regulation family.
type ByClassification struct {
	Classification string
}

func (s ByClassification) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("classification = ?", s.Classification)
}

// ByGeoExtent filters by jurisdiction, always admitting nationwide records.
type ByGeoExtent struct {
	Extent string
}

func (s ByGeoExtent) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("geo_extent IN ?", []string{s.Extent, "United Kingdom", "Great Britain"})
}

// ByStatus filters by in-force status.
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// DutyCreatingOnly restricts results to laws whose primary function imposes
// an actionable duty, excluding defining/amending/repealing instruments.
// Applied unconditionally on every screening query.
type DutyCreatingOnly struct{}

func (s DutyCreatingOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("primary_function = ?", "duty_creating")
}
