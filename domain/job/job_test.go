package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func float(v float64) *float64 { return &v }

func TestFilter_Matches(t *testing.T) {
	j := Job{
		Title:       "Restaurant Cook",
		Description: "Evening shifts at a busy kitchen",
		State:       "Selangor",
		District:    "Petaling",
		Salary:      15,
	}

	cases := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty filter matches everything", Filter{}, true},
		{"state match", Filter{State: "Selangor"}, true},
		{"state mismatch", Filter{State: "Johor"}, false},
		{"district match", Filter{State: "Selangor", District: "Petaling"}, true},
		{"district mismatch", Filter{District: "Klang"}, false},
		{"search in title, case-insensitive", Filter{Search: "cook"}, true},
		{"search in description", Filter{Search: "kitchen"}, true},
		{"search miss", Filter{Search: "plumber"}, false},
		{"salary above minimum", Filter{SalaryMin: float(10)}, true},
		{"salary below minimum", Filter{SalaryMin: float(20)}, false},
		{"salary within band", Filter{SalaryMin: float(10), SalaryMax: float(20)}, true},
		{"salary above maximum", Filter{SalaryMax: float(10)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.filter.Matches(j))
		})
	}
}

func TestPage_Offset(t *testing.T) {
	assert.Equal(t, 0, Page{Number: 1, Size: 20}.Offset())
	assert.Equal(t, 20, Page{Number: 2, Size: 20}.Offset())
	assert.Equal(t, 90, Page{Number: 10, Size: 10}.Offset())
	// Page numbers below 1 clamp to the first page.
	assert.Equal(t, 0, Page{Number: 0, Size: 20}.Offset())
	assert.Equal(t, 0, Page{Number: -3, Size: 20}.Offset())
}

func TestDistance_SamePointIsZero(t *testing.T) {
	assert.InDelta(t, 0, Distance(3.139, 101.6869, 3.139, 101.6869), 1e-9)
}

func TestDistance_Symmetric(t *testing.T) {
	d1 := Distance(51.5074, -0.1278, 48.8566, 2.3522)
	d2 := Distance(48.8566, 2.3522, 51.5074, -0.1278)

	assert.InDelta(t, d1, d2, 1e-9)
}

func TestDistance_LondonToParis(t *testing.T) {
	d := Distance(51.5074, -0.1278, 48.8566, 2.3522)

	// Great-circle distance is about 343.9 km; allow 1%.
	assert.InDelta(t, 343.9, d, 3.5)
}

func TestWithinRadius(t *testing.T) {
	kl := Job{Latitude: float(3.139), Longitude: float(101.6869)}

	assert.True(t, kl.WithinRadius(3.0733, 101.5185, 25))
	assert.False(t, kl.WithinRadius(1.3521, 103.8198, 25))
}

func TestWithinRadius_MissingCoordinates(t *testing.T) {
	noCoords := Job{}
	halfCoords := Job{Latitude: float(3.139)}

	assert.False(t, noCoords.WithinRadius(3.139, 101.6869, 1000))
	assert.False(t, halfCoords.WithinRadius(3.139, 101.6869, 1000))
}

func TestTotalCost_HourlyOverDays(t *testing.T) {
	// 100 per hour, 5 days of work at 8 hours per day.
	assert.InDelta(t, 4000, TotalCost(100, SalaryHourly, 5, DurationDays), 1e-9)
}

func TestTotalCost_UnitGrid(t *testing.T) {
	cases := []struct {
		name         string
		salary       float64
		salaryUnit   string
		duration     float64
		durationUnit string
		want         float64
	}{
		{"hourly x hours", 10, SalaryHourly, 3, DurationHours, 30},
		{"hourly x weeks", 10, SalaryHourly, 2, DurationWeeks, 800},
		{"hourly x months", 10, SalaryHourly, 1, DurationMonths, 1600},
		{"daily x days", 80, SalaryDaily, 5, DurationDays, 400},
		{"daily x weeks", 80, SalaryDaily, 2, DurationWeeks, 800},
		{"daily x months", 80, SalaryDaily, 1, DurationMonths, 1760},
		{"weekly x weeks", 400, SalaryWeekly, 2, DurationWeeks, 800},
		{"weekly x months", 400, SalaryWeekly, 1, DurationMonths, 1732},
		{"monthly x months", 1600, SalaryMonthly, 2, DurationMonths, 3200},
		{"daily x hours", 80, SalaryDaily, 4, DurationHours, 40},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TotalCost(tc.salary, tc.salaryUnit, tc.duration, tc.durationUnit)

			assert.InDelta(t, tc.want, got, 0.01)
		})
	}
}

func TestTotalCost_UnknownUnitsYieldZero(t *testing.T) {
	assert.Zero(t, TotalCost(100, "yearly", 5, DurationDays))
	assert.Zero(t, TotalCost(100, SalaryHourly, 5, "decades"))
}

func TestJob_TotalCostUsesOwnFields(t *testing.T) {
	j := Job{Salary: 100, SalaryUnit: SalaryHourly, Duration: 5, DurationUnit: DurationDays}

	assert.InDelta(t, 4000, j.TotalCost(), 1e-9)
}
