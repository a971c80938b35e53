package growth

import (
	"fmt"
	"strings"
)

// Sex selects the growth curve family. The zero value is SexGirl, which is
// also the fallback for unknown input.
type Sex uint8

const (
	SexGirl Sex = iota // category "B"
	SexBoy             // category "A"
	numSexes
)

var sexNames = [...]string{
	SexGirl: "girl",
	SexBoy:  "boy",
}

var sexCodes = [...]string{
	SexGirl: "B",
	SexBoy:  "A",
}

// Every Sex needs a name and a code.
var (
	_ = [1]struct{}{}[len(sexNames)-int(numSexes)]
	_ = [1]struct{}{}[len(sexCodes)-int(numSexes)]
)

// ParseSex maps "A"/"boy" to SexBoy and everything else to SexGirl.
func ParseSex(s string) Sex {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", "boy":
		return SexBoy
	default:
		return SexGirl
	}
}

func (s Sex) normalize() Sex {
	if s >= numSexes {
		return SexGirl
	}
	return s
}

// Code returns the single-letter category ("A" or "B").
func (s Sex) Code() string {
	return sexCodes[s.normalize()]
}

func (s Sex) String() string {
	return sexNames[s.normalize()]
}

// MarshalText encodes the sex as "boy" or "girl".
func (s Sex) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts the same inputs as ParseSex.
func (s *Sex) UnmarshalText(b []byte) error {
	*s = ParseSex(string(b))
	return nil
}

// Curve selects which median table a lookup reads.
type Curve uint8

const (
	CurveWeight Curve = iota // kilograms
	CurveLength              // centimetres
)

// ParseCurve parses "weight", "length" or "height".
func ParseCurve(s string) (Curve, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weight":
		return CurveWeight, nil
	case "length", "height":
		return CurveLength, nil
	default:
		return 0, fmt.Errorf("unknown growth curve %q", s)
	}
}

func (c Curve) String() string {
	switch c {
	case CurveWeight:
		return "weight"
	case CurveLength:
		return "length"
	default:
		return fmt.Sprintf("Curve(%d)", uint8(c))
	}
}

// cv is the fixed coefficient of variation used by Percentile.
// Calibration values; keep them as they are.
func (c Curve) cv() float64 {
	switch c {
	case CurveLength:
		return 0.04
	default:
		return 0.08
	}
}
