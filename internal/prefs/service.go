package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/regenesis/regenesis/backend-go/internal/db"
)

type Service struct {
	store *db.Store
}

func NewService(store *db.Store) *Service {
	return &Service{store: store}
}

// Get loads a user's preferences, falling back to defaults for users that
// never saved any, and merging defaults under whatever keys are stored.
func (s *Service) Get(ctx context.Context, userID string) (Preferences, error) {
	data, err := s.store.GetPreferences(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Defaults(), nil
		}
		return Preferences{}, fmt.Errorf("load preferences: %w", err)
	}

	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		return Preferences{}, fmt.Errorf("decode preferences: %w", err)
	}
	return FromFlatMap(flat), nil
}

// Update merges the given dotted-path keys into the user's stored flat
// map and returns the resulting typed struct. A nil value deletes a key.
// Unknown keys persist verbatim so older backends don't strip newer
// clients' settings.
func (s *Service) Update(ctx context.Context, userID string, updates map[string]any) (Preferences, error) {
	flat := map[string]any{}
	data, err := s.store.GetPreferences(ctx, userID)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &flat); err != nil {
			return Preferences{}, fmt.Errorf("decode preferences: %w", err)
		}
	case errors.Is(err, pgx.ErrNoRows):
		// first save for this user
	default:
		return Preferences{}, fmt.Errorf("load preferences: %w", err)
	}

	for k, v := range updates {
		if v == nil {
			delete(flat, k)
			continue
		}
		flat[k] = v
	}

	out, err := json.Marshal(flat)
	if err != nil {
		return Preferences{}, fmt.Errorf("encode preferences: %w", err)
	}
	if err := s.store.UpsertPreferences(ctx, userID, out); err != nil {
		return Preferences{}, fmt.Errorf("save preferences: %w", err)
	}
	return FromFlatMap(flat), nil
}
