package model

// PEPAuthor is the join row between a PEP and an Author. It carries no
// attributes of its own; the composite key is the whole record.
// Association rows go away with either side, the joined rows stay.
type PEPAuthor struct {
	PEPNumber int  `gorm:"primaryKey;autoIncrement:false"`
	AuthorID  uint `gorm:"primaryKey;autoIncrement:false"`
}

func (PEPAuthor) TableName() string {
	return "pep_authors"
}
