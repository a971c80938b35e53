package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"webbaby/internal/growth"
	"webbaby/internal/models"
	"webbaby/internal/validation"
)

// ConfigStore persists the single settings row
type ConfigStore interface {
	Get() (*models.AppConfig, error)
	Save(cfg *models.AppConfig) error
	EnsureDefault(seed *models.AppConfig) (*models.AppConfig, error)
}

// ConfigUpdate is the body of a settings update. Nil fields keep the stored
// value. An empty BirthTs clears the birth date and a zero BirthWeightGrams
// clears the birth weight.
type ConfigUpdate struct {
	Theme            *string   `json:"theme"`
	Mode             *string   `json:"mode"`
	DisabledTypes    *[]string `json:"disabledTypes"`
	ChildName        *string   `json:"childName"`
	ChildSurname     *string   `json:"childSurname"`
	BirthTs          *string   `json:"birthTs"`
	BirthWeightGrams *int      `json:"birthWeightGrams"`
}

// birthLayouts are tried in order; the first two carry their own offset
var birthLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	models.DateLayout,
}

// ProfileService manages the household settings and the child profile
type ProfileService struct {
	store ConfigStore
	loc   *time.Location
}

// NewProfileService creates a new profile service
func NewProfileService(store ConfigStore, loc *time.Location) *ProfileService {
	if loc == nil {
		loc = time.Local
	}
	return &ProfileService{store: store, loc: loc}
}

// EnsureDefault creates the settings row on first start, seeded with the
// configured birth timestamp and weight when given
func (s *ProfileService) EnsureDefault(birthTs string, birthWeightGrams int) (*models.AppConfig, error) {
	seed := models.DefaultAppConfig()
	if birthTs != "" {
		ts, err := ParseBirthTs(birthTs, s.loc)
		if err != nil {
			log.Printf("Warning: ignoring BIRTH_TS: %v", err)
		} else {
			seed.BirthTs = &ts
		}
	}
	if birthWeightGrams > 0 {
		seed.BirthWeightGrams = &birthWeightGrams
	}
	return s.store.EnsureDefault(seed)
}

// Get returns the settings, creating the default row when missing
func (s *ProfileService) Get() (*models.AppConfig, error) {
	return s.store.EnsureDefault(models.DefaultAppConfig())
}

// Profile returns the child data the growth engine needs
func (s *ProfileService) Profile() (growth.ChildProfile, error) {
	cfg, err := s.Get()
	if err != nil {
		return growth.ChildProfile{}, err
	}
	return cfg.Profile(), nil
}

// Update applies a settings change. Unknown theme or mode values keep the
// stored value; other invalid fields are rejected.
func (s *ProfileService) Update(in ConfigUpdate) (*models.AppConfig, error) {
	cfg, err := s.Get()
	if err != nil {
		return nil, err
	}

	if in.Theme != nil && validation.IsTheme(*in.Theme) {
		cfg.Theme = *in.Theme
	}
	if in.Mode != nil && validation.IsMode(*in.Mode) {
		cfg.Mode = *in.Mode
	}
	if in.DisabledTypes != nil {
		types := make([]string, 0, len(*in.DisabledTypes))
		for _, t := range *in.DisabledTypes {
			types = append(types, strings.ToUpper(strings.TrimSpace(t)))
		}
		if err := validation.ValidateDisabledTypes(types); err != nil {
			return nil, err
		}
		cfg.DisabledTypes = types
	}
	if in.ChildName != nil {
		name := strings.TrimSpace(*in.ChildName)
		if err := validation.ValidateName("childName", name); err != nil {
			return nil, err
		}
		cfg.ChildName = name
	}
	if in.ChildSurname != nil {
		name := strings.TrimSpace(*in.ChildSurname)
		if err := validation.ValidateName("childSurname", name); err != nil {
			return nil, err
		}
		cfg.ChildSurname = name
	}
	if in.BirthTs != nil {
		if strings.TrimSpace(*in.BirthTs) == "" {
			cfg.BirthTs = nil
		} else {
			ts, err := ParseBirthTs(*in.BirthTs, s.loc)
			if err != nil {
				return nil, validation.ValidationError{Field: "birthTs", Message: err.Error()}
			}
			cfg.BirthTs = &ts
		}
	}
	if in.BirthWeightGrams != nil {
		if *in.BirthWeightGrams == 0 {
			cfg.BirthWeightGrams = nil
		} else {
			grams := *in.BirthWeightGrams
			if err := validation.ValidateBirthWeight(&grams); err != nil {
				return nil, err
			}
			cfg.BirthWeightGrams = &grams
		}
	}

	if err := s.store.Save(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseBirthTs parses a birth timestamp. Values without an offset are read in
// loc. The result is in UTC.
func ParseBirthTs(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range birthLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid birth timestamp %q", value)
}
