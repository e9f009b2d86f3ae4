package job

// Salary units
const (
	SalaryHourly  = "hourly"
	SalaryDaily   = "daily"
	SalaryWeekly  = "weekly"
	SalaryMonthly = "monthly"
)

// Duration units
const (
	DurationHours  = "hours"
	DurationDays   = "days"
	DurationWeeks  = "weeks"
	DurationMonths = "months"
)

// Calendar constants shared with the backend's cost calculation.
const (
	hoursPerDay   = 8.0
	hoursPerWeek  = 40.0
	hoursPerMonth = 160.0
	daysPerWeek   = 5.0
	daysPerMonth  = 22.0
	weeksPerMonth = 4.33
)

// conversions maps a salary unit to the factor that turns one duration unit
// into the salary's unit.
var conversions = map[string]map[string]float64{
	SalaryHourly: {
		DurationHours:  1,
		DurationDays:   hoursPerDay,
		DurationWeeks:  hoursPerWeek,
		DurationMonths: hoursPerMonth,
	},
	SalaryDaily: {
		DurationHours:  1 / hoursPerDay,
		DurationDays:   1,
		DurationWeeks:  daysPerWeek,
		DurationMonths: daysPerMonth,
	},
	SalaryWeekly: {
		DurationHours:  1 / hoursPerWeek,
		DurationDays:   1 / daysPerWeek,
		DurationWeeks:  1,
		DurationMonths: weeksPerMonth,
	},
	SalaryMonthly: {
		DurationHours:  1 / hoursPerMonth,
		DurationDays:   1 / daysPerMonth,
		DurationWeeks:  1 / weeksPerMonth,
		DurationMonths: 1,
	},
}

// TotalCost computes the total cost of a job by converting its work duration
// into the salary's unit. Unrecognized unit combinations yield 0, never an
// error.
func TotalCost(salary float64, salaryUnit string, duration float64, durationUnit string) float64 {
	factors, ok := conversions[salaryUnit]
	if !ok {
		return 0
	}
	factor, ok := factors[durationUnit]
	if !ok {
		return 0
	}
	return salary * duration * factor
}

// TotalCost computes the job's total cost from its own salary and duration
// fields.
func (j Job) TotalCost() float64 {
	return TotalCost(j.Salary, j.SalaryUnit, j.Duration, j.DurationUnit)
}
