package heatmap

import (
	"fmt"
	"math"
)

// defaultBuckets is the source table of DefaultScale: the fixed 11-step
// diverging palette, coldest first.
var defaultBuckets = []ColorBucket{
	{Min: math.Inf(-1), Max: 2.8, Color: Color{21, 81, 161}},
	{Min: 2.8, Max: 3.9, Color: Color{69, 117, 180}},
	{Min: 3.9, Max: 5, Color: Color{116, 173, 209}},
	{Min: 5, Max: 6.1, Color: Color{171, 217, 233}},
	{Min: 6.1, Max: 7.2, Color: Color{224, 243, 248}},
	{Min: 7.2, Max: 8.3, Color: Color{255, 255, 191}},
	{Min: 8.3, Max: 9.5, Color: Color{254, 224, 144}},
	{Min: 9.5, Max: 10.6, Color: Color{253, 174, 97}},
	{Min: 10.6, Max: 11.7, Color: Color{244, 109, 67}},
	{Min: 11.7, Max: 12.8, Color: Color{215, 48, 39}},
	{Min: 12.8, Max: math.Inf(1), Color: Color{154, 11, 4}},
}

// DefaultScale is the stock 11-bucket color scale.
var DefaultScale = MustColorScale(defaultBuckets)

// ColorScale maps temperatures to discrete color buckets.
type ColorScale struct {
	buckets []ColorBucket
}

// NewColorScale validates that buckets are ascending, contiguous and cover the
// whole real line, so that every non-NaN temperature matches exactly one.
func NewColorScale(buckets []ColorBucket) (*ColorScale, error) {
	if len(buckets) == 0 {
		return nil, fmt.Errorf("%w: empty bucket table", ErrOutOfRange)
	}
	if !math.IsInf(buckets[0].Min, -1) {
		return nil, fmt.Errorf("%w: first bucket must be unbounded below, got %v", ErrOutOfRange, buckets[0].Min)
	}
	if last := buckets[len(buckets)-1]; !math.IsInf(last.Max, 1) {
		return nil, fmt.Errorf("%w: last bucket must be unbounded above, got %v", ErrOutOfRange, last.Max)
	}
	for i, b := range buckets {
		if !(b.Min < b.Max) {
			return nil, fmt.Errorf("%w: bucket %d has min %v >= max %v", ErrOutOfRange, i, b.Min, b.Max)
		}
		if i > 0 && buckets[i-1].Max != b.Min {
			return nil, fmt.Errorf("%w: bucket %d starts at %v but bucket %d ends at %v",
				ErrOutOfRange, i, b.Min, i-1, buckets[i-1].Max)
		}
	}

	owned := make([]ColorBucket, len(buckets))
	copy(owned, buckets)
	return &ColorScale{buckets: owned}, nil
}

// MustColorScale is like NewColorScale but panics on a misconfigured table.
func MustColorScale(buckets []ColorBucket) *ColorScale {
	s, err := NewColorScale(buckets)
	if err != nil {
		panic(err)
	}
	return s
}

// Buckets returns a copy of the bucket table.
func (s *ColorScale) Buckets() []ColorBucket {
	out := make([]ColorBucket, len(s.buckets))
	copy(out, s.buckets)
	return out
}

// BucketIndex returns the index of the bucket with min <= t < max. The last
// bucket also takes +Inf. Boundary values belong to the bucket they open.
func (s *ColorScale) BucketIndex(t float64) (int, error) {
	last := len(s.buckets) - 1
	for i, b := range s.buckets {
		if t >= b.Min && (t < b.Max || i == last) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %v", ErrOutOfRange, t)
}

// ColorFor returns the color of the bucket containing t.
func (s *ColorScale) ColorFor(t float64) (Color, error) {
	i, err := s.BucketIndex(t)
	if err != nil {
		return Color{}, err
	}
	return s.buckets[i].Color, nil
}
