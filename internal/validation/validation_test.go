package validation

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"webbaby/internal/growth"
	"webbaby/internal/models"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{
			name:    "valid email",
			email:   "test@example.com",
			wantErr: false,
		},
		{
			name:    "valid email with subdomain",
			email:   "user@mail.example.com",
			wantErr: false,
		},
		{
			name:    "valid email with plus",
			email:   "user+tag@example.com",
			wantErr: false,
		},
		{
			name:    "missing @",
			email:   "testexample.com",
			wantErr: true,
		},
		{
			name:    "missing domain",
			email:   "test@",
			wantErr: true,
		},
		{
			name:    "missing local part",
			email:   "@example.com",
			wantErr: true,
		},
		{
			name:    "empty string",
			email:   "",
			wantErr: true,
		},
		{
			name:    "spaces in email",
			email:   "test @example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "valid password",
			password: "password123",
			wantErr:  false,
		},
		{
			name:     "short password is accepted",
			password: "abc",
			wantErr:  false,
		},
		{
			name:     "empty password",
			password: "",
			wantErr:  true,
		},
		{
			name:     "longer than bcrypt accepts",
			password: strings.Repeat("x", 73),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFeed(t *testing.T) {
	now := time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		fedAt       time.Time
		amount      int
		feedingType string
		want        growth.FeedingType
		wantMsg     string
	}{
		{name: "valid", fedAt: now, amount: 90, feedingType: "FORMULA_BOTTLE", want: growth.FormulaBottle},
		{name: "lower case type", fedAt: now, amount: 90, feedingType: "breast_direct", want: growth.BreastDirect},
		{name: "missing time", amount: 90, feedingType: "FRUIT", wantMsg: "fedAt, amountMl & feedingType required"},
		{name: "zero amount", fedAt: now, feedingType: "FRUIT", wantMsg: "fedAt, amountMl & feedingType required"},
		{name: "missing type", fedAt: now, amount: 90, wantMsg: "fedAt, amountMl & feedingType required"},
		{name: "unknown type", fedAt: now, amount: 90, feedingType: "JUICE", wantMsg: "invalid feedingType"},
		{name: "negative amount", fedAt: now, amount: -5, feedingType: "FRUIT", wantMsg: "amountMl must be between 1 and 2000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateFeed(tt.fedAt, tt.amount, tt.feedingType)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("ValidateFeed() unexpected error: %v", err)
				}
				if got != tt.want {
					t.Errorf("ValidateFeed() = %v, want %v", got, tt.want)
				}
				return
			}

			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ValidateFeed() error = %v, want ValidationError", err)
			}
			if verr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", verr.Message, tt.wantMsg)
			}
		})
	}
}

func TestValidateMeasurements(t *testing.T) {
	day := models.NewDate(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))

	if err := ValidateWeight(day, 4200); err != nil {
		t.Errorf("ValidateWeight() valid input: %v", err)
	}
	if err := ValidateWeight(models.Date{}, 4200); err == nil {
		t.Error("ValidateWeight() should require a date")
	}
	if err := ValidateWeight(day, 40000); err == nil {
		t.Error("ValidateWeight() should reject implausible weights")
	}

	if err := ValidateHeight(day, 54.5); err != nil {
		t.Errorf("ValidateHeight() valid input: %v", err)
	}
	if err := ValidateHeight(day, 0); err == nil {
		t.Error("ValidateHeight() should reject zero")
	}
	if err := ValidateHeight(day, math.NaN()); err == nil {
		t.Error("ValidateHeight() should reject NaN")
	}
}

func TestValidateNote(t *testing.T) {
	day := models.NewDate(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))

	title, err := ValidateNote(day, "  Vaccination  ")
	if err != nil || title != "Vaccination" {
		t.Errorf("ValidateNote() = %q, %v", title, err)
	}
	if _, err := ValidateNote(day, "   "); err == nil {
		t.Error("ValidateNote() should reject a blank title")
	}
	if _, err := ValidateNote(day, strings.Repeat("ä", MaxTitleLength+1)); err == nil {
		t.Error("ValidateNote() should reject long titles")
	}
	if _, err := ValidateNote(day, strings.Repeat("ä", MaxTitleLength)); err != nil {
		t.Errorf("ValidateNote() should count runes, not bytes: %v", err)
	}
}

func TestValidateToothCode(t *testing.T) {
	tests := []struct {
		code    string
		wantErr bool
	}{
		{"UR1", false},
		{"LL5", false},
		{"", true},
		{"UR6", true},
		{"ur1", true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := ValidateToothCode(tt.code)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateToothCode(%q) error = %v, wantErr %v", tt.code, err, tt.wantErr)
			}
		})
	}
}

func TestValidateProfileFields(t *testing.T) {
	if err := ValidateName("childName", strings.Repeat("a", MaxNameLength)); err != nil {
		t.Errorf("ValidateName() at limit: %v", err)
	}
	if err := ValidateName("childName", strings.Repeat("a", MaxNameLength+1)); err == nil {
		t.Error("ValidateName() should reject long names")
	}

	grams := 3400
	if err := ValidateBirthWeight(&grams); err != nil {
		t.Errorf("ValidateBirthWeight() valid: %v", err)
	}
	if err := ValidateBirthWeight(nil); err != nil {
		t.Errorf("ValidateBirthWeight(nil) should be allowed: %v", err)
	}
	grams = 0
	if err := ValidateBirthWeight(&grams); err == nil {
		t.Error("ValidateBirthWeight() should reject zero")
	}

	if err := ValidateDisabledTypes([]string{"FRUIT", "PORRIDGE"}); err != nil {
		t.Errorf("ValidateDisabledTypes() valid: %v", err)
	}
	if err := ValidateDisabledTypes([]string{"SOUP"}); err == nil {
		t.Error("ValidateDisabledTypes() should reject unknown types")
	}

	if !IsTheme("girl") || IsTheme("purple") {
		t.Error("IsTheme() mismatch")
	}
	if !IsMode("auto") || IsMode("sepia") {
		t.Error("IsMode() mismatch")
	}
}
