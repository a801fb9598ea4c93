package sources

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/temperature-heatmap/internal/heatmap"
)

var validate = validator.New()

// document is the wire shape of the temperature JSON. Pointers let the
// validator tell a missing field from a zero value.
type document struct {
	BaseTemperature *float64 `json:"baseTemperature" validate:"required"`
	MonthlyVariance []record `json:"monthlyVariance" validate:"dive"`
}

type record struct {
	Year     *int     `json:"year" validate:"required"`
	Month    *int     `json:"month" validate:"required,min=1,max=12"`
	Variance *float64 `json:"variance" validate:"required"`
}

// Decode reads and validates a temperature document. Structural problems are
// reported as heatmap.ErrMalformedRecord.
func Decode(r io.Reader) (heatmap.Dataset, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return heatmap.Dataset{}, fmt.Errorf("decode temperature document: %w", err)
	}

	if err := validate.Struct(doc); err != nil {
		return heatmap.Dataset{}, fmt.Errorf("%w: %v", heatmap.ErrMalformedRecord, err)
	}

	ds := heatmap.Dataset{
		BaseTemperature: *doc.BaseTemperature,
		MonthlyVariance: make([]heatmap.MonthlyRecord, 0, len(doc.MonthlyVariance)),
	}
	for _, rec := range doc.MonthlyVariance {
		ds.MonthlyVariance = append(ds.MonthlyVariance, heatmap.MonthlyRecord{
			Year:     *rec.Year,
			Month:    *rec.Month,
			Variance: *rec.Variance,
		})
	}
	return ds, nil
}
