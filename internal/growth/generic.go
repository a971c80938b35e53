package growth

// GenericDays is the number of rows in the age-only recommendation table.
const GenericDays = 365

// GenericRow is one day of the age-only recommendation table.
type GenericRow struct {
	AgeDays     int `json:"ageDays"`
	TotalMl     int `json:"totalMl"`
	MealsPerDay int `json:"mealsPerDay"`
	PerMealMl   int `json:"perMealMl"`
}

// firstWeek holds the explicit totals and meals for days 0..7.
var firstWeek = [...]struct{ totalMl, meals int }{
	{60, 8},
	{90, 8},
	{150, 7},
	{200, 7},
	{300, 6},
	{350, 6},
	{400, 6},
	{450, 6},
}

// genericSegments ramp linearly from the previous segment's end value.
var genericSegments = [...]struct {
	toDay int
	toMl  float64
	meals int
}{
	{30, 650, 7},
	{60, 800, 6},
	{90, 900, 5},
	{180, 900, 5},
	{365, 750, 4},
}

var genericRows = buildGenericRows()

func buildGenericRows() [GenericDays]GenericRow {
	var rows [GenericDays]GenericRow

	for age := 0; age < GenericDays; age++ {
		var total, meals int

		if age < len(firstWeek) {
			total, meals = firstWeek[age].totalMl, firstWeek[age].meals
		} else {
			fromDay := len(firstWeek) - 1
			fromMl := float64(firstWeek[fromDay].totalMl)
			for _, seg := range genericSegments {
				if age <= seg.toDay {
					p := float64(age-fromDay) / float64(seg.toDay-fromDay)
					total = roundInt(fromMl + p*(seg.toMl-fromMl))
					meals = seg.meals
					break
				}
				fromDay, fromMl = seg.toDay, seg.toMl
			}
		}

		rows[age] = GenericRow{
			AgeDays:     age,
			TotalMl:     total,
			MealsPerDay: meals,
			PerMealMl:   roundInt(float64(total) / float64(meals)),
		}
	}

	return rows
}

// GenericTable returns a copy of the age-only recommendation table for days
// 0..364.
func GenericTable() []GenericRow {
	rows := make([]GenericRow, GenericDays)
	copy(rows, genericRows[:])
	return rows
}

// GenericFor returns the age-only row for ageDays, or false when the age is
// outside the table.
func GenericFor(ageDays int) (GenericRow, bool) {
	if ageDays < 0 || ageDays >= GenericDays {
		return GenericRow{}, false
	}
	return genericRows[ageDays], true
}
