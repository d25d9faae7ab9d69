package db

import (
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Connect opens MySQL when a DSN is provided, otherwise the embedded
// sqlite database at sqlitePath.
func Connect(dsn, sqlitePath string) *gorm.DB {
	var (
		gdb *gorm.DB
		err error
	)
	if dsn != "" {
		gdb, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	} else {
		gdb, err = gorm.Open(sqlite.Open(sqlitePath), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	return gdb
}
