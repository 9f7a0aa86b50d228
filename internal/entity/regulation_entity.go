package entity

import "time"

// Regulation is one record of the legal corpus projection the engine
// queries. PrimaryFunction distinguishes duty-creating laws from defining,
// amending or repealing instruments.
type Regulation struct {
	Id              string
	Name            string
	Title           string
	Classification  string
	GeoExtent       string
	Status          string
	Year            int
	PrimaryFunction string
	Description     string
	DutyHolders     []string

	CreatedAt time.Time
}
