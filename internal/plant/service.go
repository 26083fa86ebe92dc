package plant

import (
	"context"
	"fmt"

	"github.com/regenesis/regenesis/backend-go/internal/db"
	"github.com/regenesis/regenesis/backend-go/internal/typeid"
)

type Service struct {
	store *db.Store
}

func NewService(store *db.Store) *Service {
	return &Service{store: store}
}

type Plant struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Height       int    `json:"height"`
	Color        string `json:"color"`
	PhotoAssetID string `json:"photoAssetId,omitempty"`
}

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	MinHeight int
	MaxHeight int
	Color     string
}

// List returns catalog plants matching the filter, ordered by name.
func (s *Service) List(ctx context.Context, f Filter) ([]Plant, error) {
	dbFilter := db.PlantFilter{Color: f.Color}
	if f.MinHeight > 0 {
		dbFilter.MinHeight = &f.MinHeight
	}
	if f.MaxHeight > 0 {
		dbFilter.MaxHeight = &f.MaxHeight
	}

	rows, err := s.store.ListPlants(ctx, dbFilter)
	if err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}

	plants := make([]Plant, len(rows))
	for i, p := range rows {
		plants[i] = Plant{
			ID:           p.ID,
			Name:         p.Name,
			Height:       p.Height,
			Color:        p.Color,
			PhotoAssetID: p.PhotoAssetID,
		}
	}
	return plants, nil
}

// ColorDistribution counts bloom colors across the given plant ids.
// Unknown ids are ignored.
func (s *Service) ColorDistribution(ctx context.Context, plantIDs []string) (map[string]int, error) {
	all, err := s.store.ListPlants(ctx, db.PlantFilter{})
	if err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}

	byID := make(map[string]db.Plant, len(all))
	for _, p := range all {
		byID[p.ID] = p
	}

	counts := make(map[string]int)
	for _, id := range plantIDs {
		if p, ok := byID[id]; ok {
			counts[p.Color]++
		}
	}
	return counts, nil
}

// starter catalog, seeded on first boot
var starterCatalog = []db.Plant{
	{Name: "Purple Coneflower", Height: 3, Color: "purple"},
	{Name: "Black-Eyed Susan", Height: 2, Color: "yellow"},
	{Name: "Wild Bergamot", Height: 3, Color: "purple"},
	{Name: "Butterfly Weed", Height: 2, Color: "yellow"},
	{Name: "New England Aster", Height: 4, Color: "purple"},
	{Name: "Joe Pye Weed", Height: 4, Color: "pink"},
	{Name: "Wild Columbine", Height: 1, Color: "pink"},
	{Name: "Goldenrod", Height: 3, Color: "yellow"},
	{Name: "Blazing Star", Height: 2, Color: "white"},
}

// Seed inserts the starter catalog if the plants table is empty.
func (s *Service) Seed(ctx context.Context) error {
	n, err := s.store.CountPlants(ctx)
	if err != nil {
		return fmt.Errorf("count plants: %w", err)
	}
	if n > 0 {
		return nil
	}

	for _, p := range starterCatalog {
		p.ID = typeid.NewPlantID()
		if err := s.store.InsertPlant(ctx, p); err != nil {
			return fmt.Errorf("seed plant %q: %w", p.Name, err)
		}
	}
	return nil
}
