package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"webbaby/internal/growth"
	"webbaby/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const (
	MaxTitleLength = 128
	MaxNameLength  = 64

	// Plausibility limits for a child in the first years
	MaxAmountMl    = 2000
	MaxWeightGrams = 30000
	MaxHeightCm    = 150.0
	MaxBirthGrams  = 7000
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks that a login password was supplied
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) > 72 {
		return ValidationError{Field: "password", Message: "password must be at most 72 bytes"}
	}
	return nil
}

// ValidateFeed checks the fields of a feed write and returns the parsed type
func ValidateFeed(fedAt time.Time, amountMl int, feedingType string) (growth.FeedingType, error) {
	if fedAt.IsZero() || amountMl == 0 || strings.TrimSpace(feedingType) == "" {
		return 0, ValidationError{Field: "feed", Message: "fedAt, amountMl & feedingType required"}
	}
	ft, err := growth.ParseFeedingType(feedingType)
	if err != nil {
		return 0, ValidationError{Field: "feedingType", Message: "invalid feedingType"}
	}
	if amountMl < 0 || amountMl > MaxAmountMl {
		return 0, ValidationError{Field: "amountMl", Message: fmt.Sprintf("amountMl must be between 1 and %d", MaxAmountMl)}
	}
	return ft, nil
}

// ValidateWeight checks a weight record
func ValidateWeight(measuredAt models.Date, grams int) error {
	if measuredAt.IsZero() || grams == 0 {
		return ValidationError{Field: "weight", Message: "measuredAt & weightGrams required"}
	}
	if grams < 0 || grams > MaxWeightGrams {
		return ValidationError{Field: "weightGrams", Message: fmt.Sprintf("weightGrams must be between 1 and %d", MaxWeightGrams)}
	}
	return nil
}

// ValidateHeight checks a height record
func ValidateHeight(measuredAt models.Date, cm float64) error {
	if measuredAt.IsZero() || math.IsNaN(cm) || math.IsInf(cm, 0) {
		return ValidationError{Field: "height", Message: "measuredAt & heightCm required"}
	}
	if cm <= 0 || cm > MaxHeightCm {
		return ValidationError{Field: "heightCm", Message: fmt.Sprintf("heightCm must be between 0 and %g", MaxHeightCm)}
	}
	return nil
}

// ValidateNote checks a note and returns the trimmed title
func ValidateNote(noteDate models.Date, title string) (string, error) {
	title = strings.TrimSpace(title)
	if noteDate.IsZero() || title == "" {
		return "", ValidationError{Field: "note", Message: "noteDate & title required"}
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", ValidationError{Field: "title", Message: fmt.Sprintf("title must be at most %d characters", MaxTitleLength)}
	}
	return title, nil
}

// ValidateToothCode checks that code names one of the primary teeth
func ValidateToothCode(code string) error {
	if code == "" {
		return ValidationError{Field: "toothCode", Message: "toothCode required"}
	}
	if !models.IsToothCode(code) {
		return ValidationError{Field: "toothCode", Message: fmt.Sprintf("unknown toothCode %q", code)}
	}
	return nil
}

// ValidateName checks a child's first or last name
func ValidateName(field, name string) error {
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ValidationError{Field: field, Message: fmt.Sprintf("%s must be at most %d characters", field, MaxNameLength)}
	}
	return nil
}

// ValidateBirthWeight checks an optional birth weight
func ValidateBirthWeight(grams *int) error {
	if grams == nil {
		return nil
	}
	if *grams <= 0 || *grams > MaxBirthGrams {
		return ValidationError{Field: "birthWeightGrams", Message: fmt.Sprintf("birthWeightGrams must be between 1 and %d", MaxBirthGrams)}
	}
	return nil
}

// ValidateDisabledTypes checks that every entry names a feeding type
func ValidateDisabledTypes(types []string) error {
	for _, t := range types {
		if _, err := growth.ParseFeedingType(t); err != nil {
			return ValidationError{Field: "disabledTypes", Message: fmt.Sprintf("invalid feedingType %q", t)}
		}
	}
	return nil
}

// IsTheme reports whether theme is a known color theme
func IsTheme(theme string) bool {
	return theme == models.ThemeBoy || theme == models.ThemeGirl
}

// IsMode reports whether mode is a known display mode
func IsMode(mode string) bool {
	return mode == models.ModeLight || mode == models.ModeDark || mode == models.ModeAuto
}
