package service

import (
	"strings"

	"webbaby/internal/models"
	"webbaby/internal/validation"
)

// ToothStore is the persistence TeethingService needs
type ToothStore interface {
	Upsert(code string, appearedAt *models.Date) (*models.Tooth, error)
	GetByID(id int64) (*models.Tooth, error)
	GetByCode(code string) (*models.Tooth, error)
	List() ([]models.Tooth, error)
	Update(tooth *models.Tooth) error
	Delete(id int64) (bool, error)
}

// ToothInput is the body of a tooth upsert or update
type ToothInput struct {
	ToothCode  string       `json:"toothCode"`
	AppearedAt *models.Date `json:"appearedAt"`
}

// TeethingService tracks when the primary teeth appear
type TeethingService struct {
	teeth ToothStore
}

// NewTeethingService creates a new teething service
func NewTeethingService(teeth ToothStore) *TeethingService {
	return &TeethingService{teeth: teeth}
}

// List returns every recorded tooth ordered by code
func (s *TeethingService) List() ([]models.Tooth, error) {
	return s.teeth.List()
}

// Upsert records a tooth by code, replacing its date if it already exists
func (s *TeethingService) Upsert(in ToothInput) (*models.Tooth, error) {
	code := normalizeToothCode(in.ToothCode)
	if err := validation.ValidateToothCode(code); err != nil {
		return nil, err
	}
	return s.teeth.Upsert(code, in.AppearedAt)
}

// Update replaces the code and date of an existing tooth
func (s *TeethingService) Update(id int64, in ToothInput) (*models.Tooth, error) {
	tooth, err := s.teeth.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tooth == nil {
		return nil, ErrNotFound
	}

	code := tooth.ToothCode
	if in.ToothCode != "" {
		code = normalizeToothCode(in.ToothCode)
		if err := validation.ValidateToothCode(code); err != nil {
			return nil, err
		}
	}
	if code != tooth.ToothCode {
		other, err := s.teeth.GetByCode(code)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, ErrConflict
		}
	}

	tooth.ToothCode = code
	tooth.AppearedAt = in.AppearedAt
	if err := s.teeth.Update(tooth); err != nil {
		return nil, err
	}
	return tooth, nil
}

// Delete removes a tooth
func (s *TeethingService) Delete(id int64) error {
	deleted, err := s.teeth.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// Clear unsets the appearance date of the tooth with the given code
func (s *TeethingService) Clear(code string) (*models.Tooth, error) {
	tooth, err := s.teeth.GetByCode(normalizeToothCode(code))
	if err != nil {
		return nil, err
	}
	if tooth == nil {
		return nil, ErrNotFound
	}
	tooth.AppearedAt = nil
	if err := s.teeth.Update(tooth); err != nil {
		return nil, err
	}
	return tooth, nil
}

func normalizeToothCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
