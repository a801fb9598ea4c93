package dataset

import (
	"context"

	"github.com/i474232898/temperature-heatmap/internal/heatmap"
)

// Source abstracts where the temperature document comes from (remote URL,
// local file).
type Source interface {
	Name() string
	Fetch(ctx context.Context) (heatmap.Dataset, error)
}

// Store is the contract the in-memory snapshot store satisfies.
type Store interface {
	SaveSnapshot(snapshot Snapshot)
	GetLatest(source string) (Snapshot, error)
	History(source string) ([]Snapshot, error)
}
