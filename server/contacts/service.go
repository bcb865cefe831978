// Package contacts holds the contact lifecycle: create/read/update/delete
// plus the email-verification enrichment that runs alongside writes.
package contacts

import (
	"context"
	"errors"

	"github.com/rolodexd/rolodex/server/hunter"
	"github.com/rolodexd/rolodex/server/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrContactNotFound = errors.New("contact not found")
	ErrEmailTaken      = errors.New("email already in use")
)

// Verifier produces a confidence score for an email address. Implementations
// never fail: degraded lookups fall back to a lower-confidence score.
type Verifier interface {
	Verify(ctx context.Context, email string) hunter.Result
}

// ContactParams carries the client-writable fields of a contact.
type ContactParams struct {
	FirstName string  `json:"first_name" validate:"required,min=2"`
	LastName  string  `json:"last_name" validate:"required,min=2"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone"`
}

type Service struct {
	db       *gorm.DB
	verifier Verifier
	logg     *zap.SugaredLogger
}

func NewService(db *gorm.DB, verifier Verifier, logg *zap.SugaredLogger) *Service {
	return &Service{
		db:       db,
		verifier: verifier,
		logg:     logg,
	}
}

// Create verifies the email, then persists the new contact. Verification
// happens before the uniqueness check on purpose - a wasted lookup on a
// duplicate email is acceptable, a missing score is not.
func (s *Service) Create(ctx context.Context, params ContactParams) (*models.Contact, error) {
	result := s.verify(ctx, params.Email)

	contact := &models.Contact{
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		Email:       params.Email,
		Phone:       params.Phone,
		HunterScore: &result.Score,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := models.EmailTaken(tx, params.Email, 0)
		if err != nil {
			return err
		}

		if taken {
			return ErrEmailTaken
		}

		return models.CreateContact(tx, contact)
	})
	if err != nil {
		return nil, asDomainErr(err)
	}

	return contact, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Contact, error) {
	contact, err := models.FindContactByID(s.db.WithContext(ctx), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContactNotFound
	}

	if err != nil {
		return nil, err
	}

	return contact, nil
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]models.Contact, error) {
	return models.FetchContacts(s.db.WithContext(ctx), skip, limit)
}

// Update replaces every client-writable field. An unchanged email keeps its
// stored score & skips the verification call entirely.
func (s *Service) Update(ctx context.Context, id uint, params ContactParams) (*models.Contact, error) {
	var contact *models.Contact

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := models.FindContactByID(tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}

		if err != nil {
			return err
		}

		score := existing.HunterScore
		if params.Email != existing.Email {
			taken, err := models.EmailTaken(tx, params.Email, existing.ID)
			if err != nil {
				return err
			}

			if taken {
				return ErrEmailTaken
			}

			result := s.verify(ctx, params.Email)
			score = &result.Score
		}

		existing.FirstName = params.FirstName
		existing.LastName = params.LastName
		existing.Email = params.Email
		existing.Phone = params.Phone
		existing.HunterScore = score

		if err := models.SaveContact(tx, existing); err != nil {
			return err
		}

		contact = existing
		return nil
	})
	if err != nil {
		return nil, asDomainErr(err)
	}

	return contact, nil
}

// Patch applies a field diff to an existing contact. Only a changed email
// triggers the conflict check + re-verification; every other field merges
// as-is.
func (s *Service) Patch(ctx context.Context, id uint, changes map[string]interface{}) (*models.Contact, error) {
	var contact *models.Contact

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := models.FindContactByID(tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}

		if err != nil {
			return err
		}

		if email, ok := changes["email"].(string); ok && email != existing.Email {
			taken, err := models.EmailTaken(tx, email, existing.ID)
			if err != nil {
				return err
			}

			if taken {
				return ErrEmailTaken
			}

			result := s.verify(ctx, email)
			changes["hunter_score"] = result.Score
		}

		merged := applyChanges(*existing, changes)
		if err := models.SaveContact(tx, &merged); err != nil {
			return err
		}

		contact = &merged
		return nil
	})
	if err != nil {
		return nil, asDomainErr(err)
	}

	return contact, nil
}

// Delete removes the contact permanently - there is no soft delete.
func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rowsAffected, err := models.DeleteContact(tx, id)
		if err != nil {
			return err
		}

		if rowsAffected == 0 {
			return ErrContactNotFound
		}

		return nil
	})
}

// VerifyEmail runs a standalone verification without touching the store.
func (s *Service) VerifyEmail(ctx context.Context, email string) hunter.Result {
	return s.verify(ctx, email)
}

// verify wraps the verifier call so degraded lookups leave a trace in the
// logs. Degradation never fails the caller - the fallback score stands in.
func (s *Service) verify(ctx context.Context, email string) hunter.Result {
	result := s.verifier.Verify(ctx, email)
	if result.Status != hunter.VERIFIED && result.Status != hunter.MOCKED_KEY {
		s.logg.Warnf("email verification degraded for %v, using fallback score %v (%v)",
			email, result.Score, result.Status)
	}

	return result
}

// asDomainErr maps a unique index violation to ErrEmailTaken. Two concurrent
// writes can both pass the EmailTaken fast path; the index on contacts.email
// is the guard that actually holds.
func asDomainErr(err error) error {
	if models.IsUniqueConstraintErr(err) {
		return ErrEmailTaken
	}

	return err
}
