package model

import (
	"time"
)

// PEP is a single Python Enhancement Proposal record.
// The upstream PEP number is the primary key. It is globally stable and
// externally meaningful, so no surrogate id is kept for it.
type PEP struct {
	Number        int    `gorm:"primaryKey;autoIncrement:false"`
	Title         string `gorm:"not null"`
	Status        string `gorm:"size:20"`
	Type          string `gorm:"size:20"`
	Topic         string
	Created       *time.Time
	DiscussionsTo *string
	PythonVersion *string
	PostHistory   *string `gorm:"type:text"`
	Resolution    *string
	Requires      *string
	Replaces      *string
	SupersededBy  *string
	URL           string   `gorm:"not null"`
	Authors       []Author `gorm:"many2many:pep_authors;constraint:OnDelete:CASCADE"`
}

func (PEP) TableName() string {
	return "peps"
}
