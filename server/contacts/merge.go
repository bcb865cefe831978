package contacts

import "github.com/rolodexd/rolodex/server/models"

// applyChanges returns a copy of contact with the given field diff applied.
// Fields outside the known set are ignored, and hunter_score only appears in
// the diff when the verification flow upstream put it there.
func applyChanges(contact models.Contact, changes map[string]interface{}) models.Contact {
	for field, value := range changes {
		switch field {
		case "first_name":
			if v, ok := value.(string); ok {
				contact.FirstName = v
			}
		case "last_name":
			if v, ok := value.(string); ok {
				contact.LastName = v
			}
		case "email":
			if v, ok := value.(string); ok {
				contact.Email = v
			}
		case "phone":
			switch v := value.(type) {
			case string:
				contact.Phone = &v
			case nil:
				contact.Phone = nil
			}
		case "hunter_score":
			if v, ok := value.(int); ok {
				contact.HunterScore = &v
			}
		}
	}

	return contact
}
