package remote

import (
	"context"

	"github.com/prasetyowira/kerjaku/domain/location"
)

// Locations implements location.Remote against the row API.
type Locations struct {
	client *Client
}

// NewLocations creates the location adapter.
func NewLocations(c *Client) *Locations {
	return &Locations{client: c}
}

// locationDTO is the remote row shape for a state/district pair.
type locationDTO struct {
	ID       string `json:"id"`
	State    string `json:"state"`
	District string `json:"district"`
}

// All fetches every location row.
func (a *Locations) All(ctx context.Context) ([]location.Location, error) {
	var dtos []locationDTO
	if err := a.client.From("locations").Order("state", false).Select(ctx, &dtos); err != nil {
		return nil, err
	}
	return toLocations(dtos), nil
}

// ByState fetches the rows of one state.
func (a *Locations) ByState(ctx context.Context, state string) ([]location.Location, error) {
	var dtos []locationDTO
	err := a.client.From("locations").Eq("state", state).Order("district", false).Select(ctx, &dtos)
	if err != nil {
		return nil, err
	}
	return toLocations(dtos), nil
}

func toLocations(dtos []locationDTO) []location.Location {
	locations := make([]location.Location, 0, len(dtos))
	for _, d := range dtos {
		locations = append(locations, location.Location{
			ID:       d.ID,
			State:    d.State,
			District: d.District,
		})
	}
	return locations
}
