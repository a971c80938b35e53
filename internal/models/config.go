package models

import (
	"time"

	"webbaby/internal/growth"
)

// Theme and mode values accepted by the client
const (
	ThemeBoy  = "boy"
	ThemeGirl = "girl"

	ModeLight = "light"
	ModeDark  = "dark"
	ModeAuto  = "auto"
)

// AppConfig is the single household settings row (id 1)
type AppConfig struct {
	ID               int64      `json:"id"`
	Theme            string     `json:"theme"`
	Mode             string     `json:"mode"`
	DisabledTypes    []string   `json:"disabledTypes"`
	ChildName        string     `json:"childName"`
	ChildSurname     string     `json:"childSurname"`
	BirthTs          *time.Time `json:"birthTs"`
	BirthWeightGrams *int       `json:"birthWeightGrams"`
}

// DefaultAppConfig returns the row created on first start
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		ID:            1,
		Theme:         ThemeBoy,
		Mode:          ModeLight,
		DisabledTypes: []string{},
	}
}

// Profile converts the settings into the child data the growth engine needs
func (c *AppConfig) Profile() growth.ChildProfile {
	p := growth.ChildProfile{Sex: growth.ParseSex(c.Theme)}
	if c.BirthTs != nil {
		birth := *c.BirthTs
		p.BirthDate = &birth
	}
	if c.BirthWeightGrams != nil {
		p.BirthWeightGrams = *c.BirthWeightGrams
	}
	return p
}
