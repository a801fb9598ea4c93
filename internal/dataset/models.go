package dataset

import (
	"time"

	"github.com/i474232898/temperature-heatmap/internal/heatmap"
)

// Snapshot is one successful fetch of the dataset.
type Snapshot struct {
	ID        string          `json:"id"`
	Source    string          `json:"source"`
	FetchedAt time.Time       `json:"fetchedAt"` // always UTC
	Dataset   heatmap.Dataset `json:"-"`
}

// Summary describes a snapshot without its records.
type Summary struct {
	ID              string    `json:"id"`
	Source          string    `json:"source"`
	FetchedAt       time.Time `json:"fetchedAt"`
	BaseTemperature float64   `json:"baseTemperature"`
	Records         int       `json:"records"`
	MinYear         int       `json:"minYear,omitempty"`
	MaxYear         int       `json:"maxYear,omitempty"`
}

// Summarize returns the summary of a snapshot.
func (s Snapshot) Summarize() Summary {
	sum := Summary{
		ID:              s.ID,
		Source:          s.Source,
		FetchedAt:       s.FetchedAt,
		BaseTemperature: s.Dataset.BaseTemperature,
		Records:         len(s.Dataset.MonthlyVariance),
	}
	for i, r := range s.Dataset.MonthlyVariance {
		if i == 0 || r.Year < sum.MinYear {
			sum.MinYear = r.Year
		}
		if i == 0 || r.Year > sum.MaxYear {
			sum.MaxYear = r.Year
		}
	}
	return sum
}
