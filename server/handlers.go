package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rolodexd/rolodex/server/contacts"
	"github.com/rolodexd/rolodex/server/models"
)

type ResponsePayload struct {
	Errors  []string    `json:"errors,omitempty"`
	Success bool        `json:"success,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func verifyEmailHandler(rw http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	if err := validate.Var(email, "required,email"); err != nil {
		writeErrResponse(rw, []string{"a valid email address is required"}, http.StatusBadRequest)
		return
	}

	result := contactService.VerifyEmail(r.Context(), email)

	respond(rw, http.StatusOK, map[string]interface{}{
		"email":  email,
		"score":  result.Score,
		"status": result.Status,
	})
}

func createContactHandler(rw http.ResponseWriter, r *http.Request) {
	params := contacts.ContactParams{}

	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeErrResponse(rw, []string{err.Error()}, http.StatusBadRequest)
		return
	}

	if errs := validate.Struct(params); errs != nil {
		writeErrResponse(rw, strings.Split(errs.Error(), "\n"), http.StatusBadRequest)
		return
	}

	contact, err := contactService.Create(r.Context(), params)
	if err != nil {
		writeServiceErrResponse(rw, err)
		return
	}

	respond(rw, http.StatusCreated, contact)
}

func listContactsHandler(rw http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		writeErrResponse(rw, []string{err.Error()}, http.StatusBadRequest)
		return
	}

	limit, err := queryInt(r, "limit", models.DEFAULT_FETCH_LIMIT)
	if err != nil {
		writeErrResponse(rw, []string{err.Error()}, http.StatusBadRequest)
		return
	}

	contactList, err := contactService.List(r.Context(), skip, limit)
	if err != nil {
		writeServiceErrResponse(rw, err)
		return
	}

	respond(rw, http.StatusOK, contactList)
}

func findContactHandler(rw http.ResponseWriter, r *http.Request) {
	id, err := contactIDFromRequest(r)
	if err != nil {
		writeErrResponse(rw, []string{err.Error()}, http.StatusBadRequest)
		return
	}

	contact, err := contactService.Get(r.Context(), id)
	if err != nil {
		writeServiceErrResponse(rw, err)
		return
	}

	respond(rw, http.StatusOK, contact)
}

func updateContactHandler(rw http.ResponseWriter, r *http.Request) {
	id, err := contactIDFromRequest(r)
	if err != nil {
		writeErrResponse(rw, []string{err.Error()}, http.StatusBadRequest)
		return
	}

	params := contacts.ContactParams{}
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeErrResponse(rw, []string{err.Error()}, http.StatusBadRequest)
		return
	}

	if errs := validate.Struct(params); errs != nil {
		writeErrResponse(rw, strings.Split(errs.Error(), "\n"), http.StatusBadRequest)
		return
	}

	contact, err := contactService.Update(r.Context(), id, params)
	if err != nil {
		writeServiceErrResponse(rw, err)
		return
	}

	respond(rw, http.StatusOK, contact)
}

func patchContactHandler(rw http.ResponseWriter, r *http.Request) {
	id, err := contactIDFromRequest(r)
	if err != nil {
		writeErrResponse(rw, []string{err.Error()}, http.StatusBadRequest)
		return
	}

	changes := make(map[string]interface{})
	if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
		writeErrResponse(rw, []string{err.Error()}, http.StatusBadRequest)
		return
	}

	// Whatever isn't client-writable gets dropped here, so a client can
	// never smuggle in a hunter_score of its own.
	removeUnknownFields(changes, models.ContactUpdatableFields)
	if len(changes) <= 0 {
		writeErrResponse(rw, []string{"valid fields required"}, http.StatusBadRequest)
		return
	}

	if errs := validateContactChanges(changes); len(errs) > 0 {
		writeErrResponse(rw, errs, http.StatusBadRequest)
		return
	}

	contact, err := contactService.Patch(r.Context(), id, changes)
	if err != nil {
		writeServiceErrResponse(rw, err)
		return
	}

	respond(rw, http.StatusOK, contact)
}

func deleteContactHandler(rw http.ResponseWriter, r *http.Request) {
	id, err := contactIDFromRequest(r)
	if err != nil {
		writeErrResponse(rw, []string{err.Error()}, http.StatusBadRequest)
		return
	}

	if err := contactService.Delete(r.Context(), id); err != nil {
		writeServiceErrResponse(rw, err)
		return
	}

	respond(rw, http.StatusOK, map[string]string{"message": "Contact deleted"})
}

// validateContactChanges checks the fields present in a partial update.
// Absent fields are left alone - that's the point of PATCH. A present field
// with the wrong type is a validation error, never a silent no-op.
func validateContactChanges(changes map[string]interface{}) []string {
	var errs []string

	for _, field := range []string{"first_name", "last_name"} {
		if changes[field] == nil {
			continue
		}

		name, ok := changes[field].(string)
		if !ok {
			errs = append(errs, fmt.Sprintf("%v must be a string", field))
			continue
		}

		if err := validate.Var(name, "min=2"); err != nil {
			errs = append(errs, fmt.Sprintf("%v must be at least 2 characters", field))
		}
	}

	if changes["email"] != nil {
		email, ok := changes["email"].(string)
		if !ok {
			errs = append(errs, "email must be a string")
		} else if err := validate.Var(email, "required,email"); err != nil {
			errs = append(errs, "email must be a valid email address")
		}
	}

	// phone is nullable - only a non-null, non-string value is rejected
	if value, present := changes["phone"]; present && value != nil {
		if _, ok := value.(string); !ok {
			errs = append(errs, "phone must be a string or null")
		}
	}

	return errs
}
