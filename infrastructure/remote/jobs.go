package remote

import (
	"context"
	"time"

	"github.com/prasetyowira/kerjaku/domain/job"
)

// Jobs implements job.Remote against the row API.
type Jobs struct {
	client *Client
}

// NewJobs creates the job adapter.
func NewJobs(c *Client) *Jobs {
	return &Jobs{client: c}
}

// jobDTO is the remote row shape for a job posting.
type jobDTO struct {
	ID           string    `json:"id,omitempty"`
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

func (d jobDTO) toDomain() job.Job {
	return job.Job{
		ID:           d.ID,
		Title:        d.Title,
		Description:  d.Description,
		EmployerID:   d.EmployerID,
		State:        d.State,
		District:     d.District,
		Salary:       d.Salary,
		SalaryUnit:   d.SalaryUnit,
		Duration:     d.Duration,
		DurationUnit: d.DurationUnit,
		Latitude:     d.Latitude,
		Longitude:    d.Longitude,
		CreatedAt:    d.CreatedAt,
	}
}

func jobFromDomain(j *job.Job) jobDTO {
	return jobDTO{
		ID:           j.ID,
		Title:        j.Title,
		Description:  j.Description,
		EmployerID:   j.EmployerID,
		State:        j.State,
		District:     j.District,
		Salary:       j.Salary,
		SalaryUnit:   j.SalaryUnit,
		Duration:     j.Duration,
		DurationUnit: j.DurationUnit,
		Latitude:     j.Latitude,
		Longitude:    j.Longitude,
		CreatedAt:    j.CreatedAt,
	}
}

func (a *Jobs) listQuery(f job.Filter) *Query {
	q := a.client.From("jobs")
	if f.State != "" {
		q.Eq("state", f.State)
	}
	if f.District != "" {
		q.Eq("district", f.District)
	}
	if f.Search != "" {
		q.Or(Ilike("title", f.Search), Ilike("description", f.Search))
	}
	if f.SalaryMin != nil {
		q.Gte("salary", *f.SalaryMin)
	}
	if f.SalaryMax != nil {
		q.Lte("salary", *f.SalaryMax)
	}
	return q.Order("created_at", true)
}

// List fetches one page of jobs with the same filter vocabulary the cache
// query uses.
func (a *Jobs) List(ctx context.Context, f job.Filter, offset, limit int) ([]job.Job, error) {
	var dtos []jobDTO
	if err := a.listQuery(f).Range(offset, limit).Select(ctx, &dtos); err != nil {
		return nil, err
	}
	return toJobs(dtos), nil
}

// All fetches every job row, used by radius queries.
func (a *Jobs) All(ctx context.Context) ([]job.Job, error) {
	var dtos []jobDTO
	if err := a.client.From("jobs").Order("created_at", true).Select(ctx, &dtos); err != nil {
		return nil, err
	}
	return toJobs(dtos), nil
}

// ByID fetches one job, or nil when the row does not exist.
func (a *Jobs) ByID(ctx context.Context, id string) (*job.Job, error) {
	var dtos []jobDTO
	if err := a.client.From("jobs").Eq("id", id).Select(ctx, &dtos); err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, nil
	}
	j := dtos[0].toDomain()
	return &j, nil
}

// Create inserts a job row and copies the assigned id back onto j.
func (a *Jobs) Create(ctx context.Context, j *job.Job) error {
	var returned []jobDTO
	if err := a.client.From("jobs").Insert(ctx, jobFromDomain(j), &returned); err != nil {
		return err
	}
	if len(returned) > 0 {
		j.ID = returned[0].ID
		j.CreatedAt = returned[0].CreatedAt
	}
	return nil
}

// Update rewrites a job row.
func (a *Jobs) Update(ctx context.Context, j *job.Job) error {
	return a.client.From("jobs").Eq("id", j.ID).Update(ctx, jobFromDomain(j), nil)
}

// Delete removes a job row.
func (a *Jobs) Delete(ctx context.Context, id string) error {
	return a.client.From("jobs").Eq("id", id).Delete(ctx)
}

func toJobs(dtos []jobDTO) []job.Job {
	jobs := make([]job.Job, 0, len(dtos))
	for _, d := range dtos {
		jobs = append(jobs, d.toDomain())
	}
	return jobs
}
