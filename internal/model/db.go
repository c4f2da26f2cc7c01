package model

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&PEP{}, "Authors", &PEPAuthor{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&PEP{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Author{}); err != nil {
		return err
	}

	return nil
}
