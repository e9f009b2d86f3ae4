package remote

import (
	"context"
	"time"

	"github.com/prasetyowira/kerjaku/domain/rating"
)

// Ratings implements rating.Remote against the row API.
type Ratings struct {
	client *Client
}

// NewRatings creates the rating adapter.
func NewRatings(c *Client) *Ratings {
	return &Ratings{client: c}
}

// ratingDTO is the remote row shape for one rating.
type ratingDTO struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"user_id"`
	RaterID   string    `json:"rater_id"`
	Score     float64   `json:"score"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ForUser fetches the ratings left for one user.
func (a *Ratings) ForUser(ctx context.Context, userID string) ([]rating.Rating, error) {
	var dtos []ratingDTO
	err := a.client.From("ratings").Eq("user_id", userID).Order("created_at", true).Select(ctx, &dtos)
	if err != nil {
		return nil, err
	}

	ratings := make([]rating.Rating, 0, len(dtos))
	for _, d := range dtos {
		ratings = append(ratings, rating.Rating{
			ID:        d.ID,
			UserID:    d.UserID,
			RaterID:   d.RaterID,
			Score:     d.Score,
			Comment:   d.Comment,
			CreatedAt: d.CreatedAt,
		})
	}
	return ratings, nil
}

// Submit inserts a rating row and copies the assigned id back onto r.
func (a *Ratings) Submit(ctx context.Context, r *rating.Rating) error {
	dto := ratingDTO{
		UserID:    r.UserID,
		RaterID:   r.RaterID,
		Score:     r.Score,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}

	var returned []ratingDTO
	if err := a.client.From("ratings").Insert(ctx, dto, &returned); err != nil {
		return err
	}
	if len(returned) > 0 {
		r.ID = returned[0].ID
		r.CreatedAt = returned[0].CreatedAt
	}
	return nil
}
