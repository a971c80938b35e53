package growth

import (
	"fmt"
	"strings"
)

// FeedingType is the closed set of ways a feed can be given.
type FeedingType uint8

const (
	FormulaBottle FeedingType = iota
	FormulaPump
	BreastBottle
	BreastDirect
	Fruit
	Porridge
	VegetablesMeat
	numFeedingTypes
)

var feedingTypeNames = [...]string{
	FormulaBottle:  "FORMULA_BOTTLE",
	FormulaPump:    "FORMULA_PUMP",
	BreastBottle:   "BREAST_BOTTLE",
	BreastDirect:   "BREAST_DIRECT",
	Fruit:          "FRUIT",
	Porridge:       "PORRIDGE",
	VegetablesMeat: "VEGETABLES_MEAT",
}

// Every FeedingType needs a name.
var _ = [1]struct{}{}[len(feedingTypeNames)-int(numFeedingTypes)]

// FeedingTypes returns all feeding types in display order.
func FeedingTypes() []FeedingType {
	types := make([]FeedingType, numFeedingTypes)
	for i := range types {
		types[i] = FeedingType(i)
	}
	return types
}

// ParseFeedingType parses the upper-case name of a feeding type.
func ParseFeedingType(s string) (FeedingType, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range feedingTypeNames {
		if n == name {
			return FeedingType(i), nil
		}
	}
	return 0, fmt.Errorf("invalid feeding type %q", s)
}

// Valid reports whether t is one of the declared feeding types.
func (t FeedingType) Valid() bool {
	return t < numFeedingTypes
}

func (t FeedingType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("FeedingType(%d)", uint8(t))
	}
	return feedingTypeNames[t]
}

// MarshalText encodes the feeding type by name. It is also used for map keys.
func (t FeedingType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid feeding type %d", uint8(t))
	}
	return []byte(feedingTypeNames[t]), nil
}

// UnmarshalText decodes a feeding type name.
func (t *FeedingType) UnmarshalText(b []byte) error {
	parsed, err := ParseFeedingType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
