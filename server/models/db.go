package models

import (
	"fmt"
	"net/url"
	"sync/atomic"

	sqlite "github.com/Daskott/gorm-sqlite-cipher"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var testDbCount int64

// Initialize opens(or creates) the sqlite database at dbPath, migrates the
// schema & inserts seed contacts on the very first run.
func Initialize(dbPath, passPhrase string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(sqliteDSN(dbPath, passPhrase)), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to open sqlite database")
	}

	if err := autoMigrate(db); err != nil {
		return nil, err
	}

	if err := seedContactsIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

// InitializeTestDb creates a fresh in-memory database for tests. Each call
// returns an isolated db, so tests don't step on each other's records.
func InitializeTestDb() *gorm.DB {
	dsn := fmt.Sprintf("file:testdb%v?mode=memory&cache=shared", atomic.AddInt64(&testDbCount, 1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	if err := autoMigrate(db); err != nil {
		panic(err)
	}

	return db
}

func autoMigrate(db *gorm.DB) error {
	return errors.Wrap(db.AutoMigrate(&Contact{}), "unable to migrate schema")
}

// seedContactsIfEmpty inserts a couple of example records, so a brand new
// install has something to list.
func seedContactsIfEmpty(db *gorm.DB) error {
	err := db.First(&Contact{}).Error
	if err == nil {
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(err, "unable to check for existing contacts")
	}

	alicePhone := "555-1234"
	aliceScore := 85
	bobScore := 45

	seedContacts := []Contact{
		{FirstName: "Alice", LastName: "Smith", Email: "alice@example.com", Phone: &alicePhone, HunterScore: &aliceScore},
		{FirstName: "Bob", LastName: "Johnson", Email: "bob.j@test.org", HunterScore: &bobScore},
	}

	fmt.Println("Inserting seed data into 'contacts'")
	return errors.Wrap(db.Create(&seedContacts).Error, "unable to seed contacts")
}

func sqliteDSN(dbPath, passPhrase string) string {
	dsn := fmt.Sprintf("file:%v?cache=shared", dbPath)
	if passPhrase != "" {
		dsn += fmt.Sprintf("&_pragma_key=%v&_pragma_cipher_page_size=4096", url.QueryEscape(passPhrase))
	}

	return dsn
}
