package model

// Author is a PEP author.
// Authors are resolved by exact name match during ingestion: two PEPs
// carrying the same spelling share one row. The name is unique, so a
// duplicate insert fails at the database.
type Author struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null"`
	PEPs []PEP  `gorm:"many2many:pep_authors;constraint:OnDelete:CASCADE"`
}

func (Author) TableName() string {
	return "authors"
}
