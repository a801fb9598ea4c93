package heatmap

import "errors"

var (
	// ErrOutOfRange is returned when a temperature matches no color bucket.
	// With a valid bucket table this only happens for NaN.
	ErrOutOfRange = errors.New("temperature out of color scale range")

	// ErrInvalidDomain is returned for an empty or inverted year domain, or a
	// layout that cannot produce finite geometry.
	ErrInvalidDomain = errors.New("invalid year domain")

	// ErrMalformedRecord is returned for records with missing fields, a month
	// outside 1..12, or a repeated (year, month) pair.
	ErrMalformedRecord = errors.New("malformed monthly record")
)
