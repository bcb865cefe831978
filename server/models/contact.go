package models

import (
	"strings"

	"gorm.io/gorm"
)

type Contact struct {
	BaseModel
	FirstName string  `json:"first_name" validate:"required,min=2"`
	LastName  string  `json:"last_name" validate:"required,min=2"`
	Email     string  `json:"email" validate:"required,email" gorm:"not null;uniqueIndex"`
	Phone     *string `json:"phone"`

	// HunterScore is only ever written by the verification flow,
	// never from client input.
	HunterScore *int `json:"hunter_score"`
}

// ContactUpdatableFields are the fields a client may change on an
// existing contact.
var ContactUpdatableFields = map[string]bool{
	"first_name": true,
	"last_name":  true,
	"email":      true,
	"phone":      true,
}

func CreateContact(db *gorm.DB, contact *Contact) error {
	return db.Create(contact).Error
}

func FindContactByID(db *gorm.DB, id uint) (*Contact, error) {
	contact := Contact{}

	err := db.First(&contact, id).Error
	if err != nil {
		return nil, err
	}

	return &contact, nil
}

// FetchContacts returns up to 'limit' contacts ordered by id, skipping the
// first 'skip' records. An explicit limit of 0 returns an empty list - only
// a negative limit falls back to the default.
func FetchContacts(db *gorm.DB, skip, limit int) ([]Contact, error) {
	if skip < 0 {
		skip = 0
	}

	if limit < 0 {
		limit = DEFAULT_FETCH_LIMIT
	}

	// gorm drops a Limit(0) clause entirely, which would mean "no limit"
	if limit == 0 {
		return []Contact{}, nil
	}

	contacts := []Contact{}
	err := db.Order("id asc").Offset(skip).Limit(limit).Find(&contacts).Error
	if err != nil {
		return nil, err
	}

	return contacts, nil
}

func SaveContact(db *gorm.DB, contact *Contact) error {
	return db.Save(contact).Error
}

// DeleteContact removes the record permanently & reports how many rows
// matched, so callers can tell a no-op from a delete.
func DeleteContact(db *gorm.DB, id uint) (int64, error) {
	result := db.Delete(&Contact{}, id)
	return result.RowsAffected, result.Error
}

// EmailTaken reports whether a contact other than excludeID already holds
// the given email. Pass excludeID=0 for inserts.
func EmailTaken(db *gorm.DB, email string, excludeID uint) (bool, error) {
	var count int64

	err := db.Model(&Contact{}).Where("email = ? AND id != ?", email, excludeID).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// IsUniqueConstraintErr detects a sqlite unique index violation. The index
// on contacts.email is the authoritative uniqueness guard - the EmailTaken
// check is just a fast path for friendlier error messages.
func IsUniqueConstraintErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
