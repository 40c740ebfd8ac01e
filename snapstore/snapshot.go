/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package snapstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mikeb26/duelresult/duel"
)

// Snapshot is the aggregate state of one named series.
type Snapshot struct {
	Series    string      `json:"series"`
	RunID     string      `json:"runId"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Win       duel.Counts `json:"win"`
	Draw      duel.Counts `json:"draw"`
	Lose      duel.Counts `json:"lose"`
	Total     uint32      `json:"total"`
}

func FromResult(series string, r *duel.Result) *Snapshot {
	return &Snapshot{
		Series: series,
		Win:    r.Win,
		Draw:   r.Draw,
		Lose:   r.Lose,
		Total:  r.Total,
	}
}

func (snap *Snapshot) Result() *duel.Result {
	return &duel.Result{
		Win:   snap.Win,
		Draw:  snap.Draw,
		Lose:  snap.Lose,
		Total: snap.Total,
	}
}

func seriesKey(series string) string {
	return "series/" + series
}

// Save stores snap under its series name, assigning a RunID on first save
// and stamping UpdatedAt.
func Save(ctx context.Context, store Store, snap *Snapshot) error {
	if strings.TrimSpace(snap.Series) == "" {
		return fmt.Errorf("snapstore.save: series name is required")
	}
	if snap.RunID == "" {
		snap.RunID = uuid.NewString()
	}
	snap.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("snapstore.save: failed to marshal %v: %w", snap.Series, err)
	}
	if err := store.Put(ctx, seriesKey(snap.Series), data); err != nil {
		return fmt.Errorf("snapstore.save: %v not saved: %w", snap.Series, err)
	}

	return nil
}

// Load returns the stored series. An absent series is ErrNotFound; a store
// failure is returned as is so it is never mistaken for an empty series.
func Load(ctx context.Context, store Store, series string) (*Snapshot, error) {
	data, err := store.Get(ctx, seriesKey(series))
	if err != nil {
		return nil, fmt.Errorf("snapstore.load: %v: %w", series, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("snapstore.load: failed to parse %v: %w", series, err)
	}

	return &snap, nil
}

// Append merges r into the stored series, creating it when absent.
func Append(ctx context.Context, store Store, series string,
	r *duel.Result) (*Snapshot, error) {

	snap, err := Load(ctx, store, series)
	if errors.Is(err, ErrNotFound) {
		snap = FromResult(series, duel.New())
	} else if err != nil {
		return nil, err
	}

	merged := snap.Result()
	merged.Merge(r)

	next := FromResult(series, merged)
	next.RunID = snap.RunID
	if err := Save(ctx, store, next); err != nil {
		return nil, err
	}

	return next, nil
}

func Delete(ctx context.Context, store Store, series string) error {
	return store.Delete(ctx, seriesKey(series))
}
