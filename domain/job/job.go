// Package job holds the job posting model and its cache-reconciling
// repository.
package job

import (
	"time"
)

// Job represents a job posting.
type Job struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	EmployerID   string    `json:"employer_id"`
	State        string    `json:"state"`
	District     string    `json:"district"`
	Salary       float64   `json:"salary"`
	SalaryUnit   string    `json:"salary_unit"`
	Duration     float64   `json:"duration"`
	DurationUnit string    `json:"duration_unit"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	CreatedAt    time.Time `json:"created_at"`
}

// Filter narrows a job listing. Zero values mean "no constraint". The same
// filter is applied to the cache query and the remote query so their row
// sets stay comparable.
type Filter struct {
	State     string
	District  string
	Search    string
	SalaryMin *float64
	SalaryMax *float64
}

// Matches reports whether a job satisfies the filter. The cache store uses
// SQL for the same predicate; this form serves in-memory row sets.
func (f Filter) Matches(j Job) bool {
	if f.State != "" && j.State != f.State {
		return false
	}
	if f.District != "" && j.District != f.District {
		return false
	}
	if f.Search != "" && !containsFold(j.Title, f.Search) && !containsFold(j.Description, f.Search) {
		return false
	}
	if f.SalaryMin != nil && j.Salary < *f.SalaryMin {
		return false
	}
	if f.SalaryMax != nil && j.Salary > *f.SalaryMax {
		return false
	}
	return true
}

// Page is 1-based pagination.
type Page struct {
	Number int
	Size   int
}

// Offset returns the row offset for the page. Page numbers below 1 clamp
// to the first page.
func (p Page) Offset() int {
	number := p.Number
	if number < 1 {
		number = 1
	}
	return (number - 1) * p.Size
}
