package tester

import (
	"fmt"
	"os"

	"github.com/emrgen/peps/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	testPath = "../../.test/"
)

var (
	db *gorm.DB
	// one file per test binary, so packages can run in parallel
	dbFile = fmt.Sprintf("db/peps-%d.db", os.Getpid())
)

func Setup() {
	RemoveDBFile()

	_ = os.Setenv("ENV", "test")

	err := os.MkdirAll(testPath+"db", os.ModePerm)
	if err != nil {
		panic(err)
	}

	db, err = gorm.Open(sqlite.Open(testPath+dbFile), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	// the join-table cascade needs foreign keys on
	err = db.Exec("PRAGMA foreign_keys = ON").Error
	if err != nil {
		panic(err)
	}

	err = model.Migrate(db)
	if err != nil {
		panic(err)
	}
}

func TestDB() *gorm.DB {
	return db
}

func RemoveDBFile() {
	err := os.Remove(testPath + dbFile)
	if err != nil && !os.IsNotExist(err) {
		panic(err)
	}
}
