package contacts

import (
	"testing"

	"github.com/rolodexd/rolodex/server/models"
	"github.com/stretchr/testify/assert"
)

func TestApplyChanges(t *testing.T) {
	phone := "555-1234"
	score := 85

	base := models.Contact{
		FirstName:   "tony",
		LastName:    "stark",
		Email:       "stark@avengers.com",
		Phone:       &phone,
		HunterScore: &score,
	}

	t.Run("applies only the fields present in the diff", func(t *testing.T) {
		merged := applyChanges(base, map[string]interface{}{
			"first_name": "anthony",
			"email":      "anthony@avengers.com",
		})

		assert.Equal(t, "anthony", merged.FirstName)
		assert.Equal(t, "anthony@avengers.com", merged.Email)
		assert.Equal(t, "stark", merged.LastName)
		assert.Equal(t, &phone, merged.Phone)
		assert.Equal(t, &score, merged.HunterScore)
	})

	t.Run("clears phone when the diff sets it to null", func(t *testing.T) {
		merged := applyChanges(base, map[string]interface{}{"phone": nil})
		assert.Nil(t, merged.Phone)
	})

	t.Run("ignores unknown fields & wrongly typed values", func(t *testing.T) {
		merged := applyChanges(base, map[string]interface{}{
			"nickname":   "iron man",
			"first_name": 42,
		})

		assert.Equal(t, base, merged)
	})

	t.Run("does not mutate the input record", func(t *testing.T) {
		applyChanges(base, map[string]interface{}{"first_name": "anthony"})
		assert.Equal(t, "tony", base.FirstName)
	})
}
