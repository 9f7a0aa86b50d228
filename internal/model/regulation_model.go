package model

import (
	"time"

	"gorm.io/datatypes"
)

type Regulation struct {
	Id              string                      `gorm:"type:varchar(100);primaryKey"`
	Name            string                      `gorm:"type:varchar(255);not null"`
	Title           string                      `gorm:"type:text;not null"`
	Classification  string                      `gorm:"type:varchar(100);index:idx_regulations_query,priority:1"`
	GeoExtent       string                      `gorm:"type:varchar(100);index:idx_regulations_query,priority:2"`
	Status          string                      `gorm:"type:varchar(30);index:idx_regulations_query,priority:3"`
	Year            int                         `gorm:""`
	PrimaryFunction string                      `gorm:"type:varchar(30);index"`
	Description     string                      `gorm:"type:text"`
	DutyHolders     datatypes.JSONSlice[string] `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Regulation) TableName() string {
	return "regulations"
}
