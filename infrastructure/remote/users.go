package remote

import (
	"context"
	"time"

	"github.com/prasetyowira/kerjaku/domain/user"
)

// Users implements user.Remote against the row API.
type Users struct {
	client *Client
}

// NewUsers creates the user adapter.
func NewUsers(c *Client) *Users {
	return &Users{client: c}
}

// userDTO is the remote row shape for an account profile.
type userDTO struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	State     string    `json:"state"`
	District  string    `json:"district"`
	CreatedAt time.Time `json:"created_at"`
}

func (d userDTO) toDomain() user.User {
	return user.User{
		ID:        d.ID,
		Phone:     d.Phone,
		Name:      d.Name,
		Role:      d.Role,
		State:     d.State,
		District:  d.District,
		CreatedAt: d.CreatedAt,
	}
}

// ByID fetches one profile, or nil when the row does not exist.
func (a *Users) ByID(ctx context.Context, id string) (*user.User, error) {
	var dtos []userDTO
	if err := a.client.From("profiles").Eq("id", id).Select(ctx, &dtos); err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, nil
	}
	u := dtos[0].toDomain()
	return &u, nil
}

// Upsert writes a profile row through the upsert remote procedure.
func (a *Users) Upsert(ctx context.Context, u *user.User) error {
	args := map[string]interface{}{
		"p_id":       u.ID,
		"p_phone":    u.Phone,
		"p_name":     u.Name,
		"p_role":     u.Role,
		"p_state":    u.State,
		"p_district": u.District,
	}
	return a.client.RPC(ctx, "upsert_profile", args, nil)
}
