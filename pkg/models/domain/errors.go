package domain

import "errors"

var (
	ErrMissingColumn       = errors.New("required column missing")
	ErrUnknownColumn       = errors.New("unknown table column")
	ErrUnsupportedFormat   = errors.New("unsupported export format")
	ErrUnsupportedSource   = errors.New("unsupported dataset source")
	ErrUnknownPreset       = errors.New("unknown date preset")
	ErrUnknownComparison   = errors.New("unknown comparison mode")
	ErrEmptyCredentials    = errors.New("username and password are required")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrDatasetNotAvailable = errors.New("dataset is not loaded")
)
