package models

// Tooth records when a primary tooth appeared. AppearedAt is nil for a
// cleared entry.
type Tooth struct {
	ID         int64  `json:"id"`
	ToothCode  string `json:"toothCode"`
	AppearedAt *Date  `json:"appearedAt"`
}

// ToothCodes lists the 20 primary teeth: quadrant (upper/lower, right/left)
// followed by position counted from the centre.
var ToothCodes = []string{
	"UR5", "UR4", "UR3", "UR2", "UR1", "UL1", "UL2", "UL3", "UL4", "UL5",
	"LR5", "LR4", "LR3", "LR2", "LR1", "LL1", "LL2", "LL3", "LL4", "LL5",
}

// IsToothCode reports whether code names a primary tooth
func IsToothCode(code string) bool {
	for _, c := range ToothCodes {
		if c == code {
			return true
		}
	}
	return false
}
