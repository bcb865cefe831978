package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testContact(firstName, email string) *Contact {
	score := 50
	return &Contact{
		FirstName:   firstName,
		LastName:    "avenger",
		Email:       email,
		HunterScore: &score,
	}
}

func TestCreateAndFindContact(t *testing.T) {
	db := InitializeTestDb()

	contact := testContact("tony", "stark@avengers.com")
	assert.Nil(t, CreateContact(db, contact))
	assert.NotZero(t, contact.ID)

	found, err := FindContactByID(db, contact.ID)
	assert.Nil(t, err)
	assert.Equal(t, "stark@avengers.com", found.Email)
	assert.Equal(t, 50, *found.HunterScore)
}

func TestUniqueEmailIndex(t *testing.T) {
	db := InitializeTestDb()

	assert.Nil(t, CreateContact(db, testContact("tony", "stark@avengers.com")))

	err := CreateContact(db, testContact("anthony", "stark@avengers.com"))
	assert.True(t, IsUniqueConstraintErr(err), "the email index should reject a duplicate insert")
}

func TestFetchContacts(t *testing.T) {
	db := InitializeTestDb()

	emails := []string{
		"stark@avengers.com",
		"web@avengers.com",
		"supreme@avengers.com",
		"banner@avengers.com",
		"thor@avengers.com",
	}
	for _, email := range emails {
		assert.Nil(t, CreateContact(db, testContact("member", email)))
	}

	t.Run("returns every record ordered by id", func(t *testing.T) {
		contacts, err := FetchContacts(db, 0, DEFAULT_FETCH_LIMIT)
		assert.Nil(t, err)
		assert.Len(t, contacts, len(emails))

		for i := 1; i < len(contacts); i++ {
			assert.Less(t, contacts[i-1].ID, contacts[i].ID)
		}
	})

	t.Run("an explicit limit of 0 returns an empty list", func(t *testing.T) {
		contacts, err := FetchContacts(db, 0, 0)
		assert.Nil(t, err)
		assert.Empty(t, contacts)
	})

	t.Run("a negative limit falls back to the default", func(t *testing.T) {
		contacts, err := FetchContacts(db, 0, -1)
		assert.Nil(t, err)
		assert.Len(t, contacts, len(emails))
	})

	t.Run("honours skip & limit", func(t *testing.T) {
		contacts, err := FetchContacts(db, 2, 2)
		assert.Nil(t, err)
		assert.Len(t, contacts, 2)
		assert.Equal(t, "supreme@avengers.com", contacts[0].Email)
		assert.Equal(t, "banner@avengers.com", contacts[1].Email)
	})

	t.Run("treats a negative skip as zero", func(t *testing.T) {
		contacts, err := FetchContacts(db, -3, 1)
		assert.Nil(t, err)
		assert.Equal(t, "stark@avengers.com", contacts[0].Email)
	})
}

func TestEmailTaken(t *testing.T) {
	db := InitializeTestDb()

	contact := testContact("tony", "stark@avengers.com")
	assert.Nil(t, CreateContact(db, contact))

	taken, err := EmailTaken(db, "stark@avengers.com", 0)
	assert.Nil(t, err)
	assert.True(t, taken)

	// The record itself doesn't count as a conflict
	taken, err = EmailTaken(db, "stark@avengers.com", contact.ID)
	assert.Nil(t, err)
	assert.False(t, taken)

	taken, err = EmailTaken(db, "web@avengers.com", 0)
	assert.Nil(t, err)
	assert.False(t, taken)
}

func TestDeleteContact(t *testing.T) {
	db := InitializeTestDb()

	contact := testContact("tony", "stark@avengers.com")
	assert.Nil(t, CreateContact(db, contact))

	rowsAffected, err := DeleteContact(db, contact.ID)
	assert.Nil(t, err)
	assert.EqualValues(t, 1, rowsAffected)

	rowsAffected, err = DeleteContact(db, contact.ID)
	assert.Nil(t, err)
	assert.EqualValues(t, 0, rowsAffected)
}
