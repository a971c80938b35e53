package models

import (
	"encoding/json"
	"testing"
	"time"

	"webbaby/internal/growth"
)

func TestDateJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain date", input: `"2024-05-01"`, want: "2024-05-01"},
		{name: "timestamp keeps date part", input: `"2024-05-01T22:30:00+02:00"`, want: "2024-05-01"},
		{name: "invalid", input: `"01/05/2024"`, wantErr: true},
		{name: "not a string", input: `20240501`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if d.String() != tt.want {
				t.Errorf("Date = %s, want %s", d, tt.want)
			}
			out, _ := json.Marshal(d)
			if string(out) != `"`+tt.want+`"` {
				t.Errorf("Marshal() = %s", out)
			}
		})
	}
}

func TestNewDateNormalizes(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	d := NewDate(time.Date(2024, time.May, 1, 23, 59, 0, 0, loc))

	if d.Location() != time.UTC || d.Hour() != 0 {
		t.Errorf("NewDate() = %v, want midnight UTC", d.Time)
	}
	if d.String() != "2024-05-01" {
		t.Errorf("NewDate() = %s, want 2024-05-01", d)
	}
	if got := d.In(loc); !got.Equal(time.Date(2024, time.May, 1, 0, 0, 0, 0, loc)) {
		t.Errorf("In() = %v", got)
	}
}

func TestToothCodes(t *testing.T) {
	if len(ToothCodes) != 20 {
		t.Fatalf("expected 20 primary teeth, got %d", len(ToothCodes))
	}
	seen := make(map[string]bool)
	for _, code := range ToothCodes {
		if seen[code] {
			t.Errorf("duplicate tooth code %s", code)
		}
		seen[code] = true
	}
	if !IsToothCode("LL3") || IsToothCode("LL6") || IsToothCode("") {
		t.Error("IsToothCode() mismatch")
	}
}

func TestAppConfigProfile(t *testing.T) {
	cfg := DefaultAppConfig()
	p := cfg.Profile()
	if p.Sex != growth.SexBoy {
		t.Errorf("default theme should map to boy, got %v", p.Sex)
	}
	if p.BirthDate != nil {
		t.Error("default config has no birth date")
	}

	birth := time.Date(2024, time.January, 2, 10, 0, 0, 0, time.UTC)
	grams := 3100
	cfg.Theme = ThemeGirl
	cfg.BirthTs = &birth
	cfg.BirthWeightGrams = &grams

	p = cfg.Profile()
	if p.Sex != growth.SexGirl || p.BirthGrams() != 3100 {
		t.Errorf("Profile() = %+v", p)
	}
	if p.BirthDate == nil || !p.BirthDate.Equal(birth) {
		t.Errorf("BirthDate = %v, want %v", p.BirthDate, birth)
	}
}

func TestFeedJSON(t *testing.T) {
	f := Feed{ID: 3, FedAt: time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC), AmountMl: 90, FeedingType: growth.BreastBottle}
	out, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := `{"id":3,"fedAt":"2024-05-01T08:00:00Z","amountMl":90,"feedingType":"BREAST_BOTTLE"}`
	if string(out) != want {
		t.Errorf("Marshal() = %s, want %s", out, want)
	}
}
