package dataset

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/temperature-heatmap/internal/heatmap"
	"github.com/i474232898/temperature-heatmap/internal/logger"
)

// ErrCellNotFound is returned when the chart has no cell for a year/month.
var ErrCellNotFound = errors.New("no cell for requested year and month")

// Service fetches the dataset, keeps snapshots and serves assembled charts.
type Service struct {
	store     Store
	source    Source
	assembler *heatmap.Assembler

	mu    sync.Mutex
	cache *cachedChart
}

// cachedChart is valid only for the snapshot and layout it was built from.
type cachedChart struct {
	snapshotID string
	layout     heatmap.Layout
	model      heatmap.ChartModel
}

// NewService creates a new Service. A nil assembler uses the defaults.
func NewService(store Store, source Source, assembler *heatmap.Assembler) *Service {
	if assembler == nil {
		assembler = heatmap.NewAssembler()
	}
	return &Service{
		store:     store,
		source:    source,
		assembler: assembler,
	}
}

// SourceName returns the name of the configured source.
func (s *Service) SourceName() string {
	if s.source == nil {
		return ""
	}
	return s.source.Name()
}

// FetchAndStore fetches the document and stores it as a new snapshot. A
// failed fetch or a dataset that cannot be charted leaves the last good
// snapshot in place.
func (s *Service) FetchAndStore(ctx context.Context) (Snapshot, error) {
	if s.source == nil {
		return Snapshot{}, fmt.Errorf("no dataset source configured")
	}

	start := time.Now()
	ds, err := s.source.Fetch(ctx)
	if err != nil {
		logger.Warn("source %s fetch failed; keeping last good snapshot if any: %v", s.source.Name(), err)
		return Snapshot{}, fmt.Errorf("fetch %s: %w", s.source.Name(), err)
	}

	if _, err := heatmap.GroupByYear(ds.MonthlyVariance, ds.BaseTemperature); err != nil {
		logger.Warn("source %s returned an unusable dataset; keeping last good snapshot if any: %v", s.source.Name(), err)
		return Snapshot{}, fmt.Errorf("validate %s: %w", s.source.Name(), err)
	}

	snapshot := Snapshot{
		ID:        uuid.New().String(),
		Source:    s.source.Name(),
		FetchedAt: time.Now().UTC(),
		Dataset:   ds,
	}
	s.store.SaveSnapshot(snapshot)

	logger.Info("stored snapshot %s from %s: %d records in %v",
		snapshot.ID, snapshot.Source, len(ds.MonthlyVariance), time.Since(start))
	return snapshot, nil
}

// Refresh fetches and stores a new snapshot, discarding it on return.
func (s *Service) Refresh(ctx context.Context) error {
	_, err := s.FetchAndStore(ctx)
	return err
}

// Latest returns the most recent snapshot of the configured source.
func (s *Service) Latest() (Snapshot, error) {
	return s.store.GetLatest(s.SourceName())
}

// History returns the retained snapshots, oldest first.
func (s *Service) History() ([]Snapshot, error) {
	return s.store.History(s.SourceName())
}

// Chart returns the chart for the latest snapshot. The model is cached per
// snapshot and layout and shared between callers, who must not modify it.
func (s *Service) Chart() (heatmap.ChartModel, error) {
	snapshot, err := s.Latest()
	if err != nil {
		return heatmap.ChartModel{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c := s.cache; c != nil && c.snapshotID == snapshot.ID && c.layout == s.assembler.Layout {
		return c.model, nil
	}

	model, err := s.assembler.Assemble(snapshot.Dataset)
	if err != nil {
		return heatmap.ChartModel{}, fmt.Errorf("assemble snapshot %s: %w", snapshot.ID, err)
	}
	logger.Debug("assembled chart for snapshot %s: %d cells", snapshot.ID, len(model.Cells))

	s.cache = &cachedChart{
		snapshotID: snapshot.ID,
		layout:     s.assembler.Layout,
		model:      model,
	}
	return model, nil
}

// Cell returns the chart cell for (year, month).
func (s *Service) Cell(year, month int) (heatmap.RenderCell, error) {
	model, err := s.Chart()
	if err != nil {
		return heatmap.RenderCell{}, err
	}
	cell, ok := model.CellAt(year, month)
	if !ok {
		return heatmap.RenderCell{}, ErrCellNotFound
	}
	return cell, nil
}
