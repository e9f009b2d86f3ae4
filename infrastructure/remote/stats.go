package remote

import (
	"context"

	"github.com/prasetyowira/kerjaku/domain/stats"
)

// Stats implements stats.Remote via the employer-statistics remote
// procedure.
type Stats struct {
	client *Client
}

// NewStats creates the statistics adapter.
func NewStats(c *Client) *Stats {
	return &Stats{client: c}
}

// statisticDTO is the remote row shape for employer statistics. The
// procedure omits counters that are zero, so every numeric field is a
// pointer defaulting to 0.
type statisticDTO struct {
	EmployerID      string   `json:"employer_id"`
	ActiveJobs      *int     `json:"active_jobs"`
	FilledJobs      *int     `json:"filled_jobs"`
	TotalApplicants *int     `json:"total_applicants"`
	AverageRating   *float64 `json:"average_rating"`
}

// ForEmployer fetches one employer's statistics, or nil when the employer
// has none.
func (a *Stats) ForEmployer(ctx context.Context, employerID string) (*stats.Statistic, error) {
	args := map[string]interface{}{"p_employer_id": employerID}

	var dtos []statisticDTO
	if err := a.client.RPC(ctx, "employer_statistics", args, &dtos); err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, nil
	}

	d := dtos[0]
	return &stats.Statistic{
		EmployerID:      employerID,
		ActiveJobs:      intOrZero(d.ActiveJobs),
		FilledJobs:      intOrZero(d.FilledJobs),
		TotalApplicants: intOrZero(d.TotalApplicants),
		AverageRating:   floatOrZero(d.AverageRating),
	}, nil
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
