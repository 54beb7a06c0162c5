package api

import "time"

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Filters struct {
	DateRange           DateRange `json:"date_range"`
	Categories          []string  `json:"categories"`
	Regions             []string  `json:"regions"`
	Comparison          string    `json:"comparison"`
	AvailableCategories []string  `json:"available_categories"`
	AvailableRegions    []string  `json:"available_regions"`
}

type DatasetStatus struct {
	State     string     `json:"state"`
	Loading   bool       `json:"loading"`
	Version   uint64     `json:"version"`
	Rows      int        `json:"rows"`
	Source    string     `json:"source"`
	LoadedAt  *time.Time `json:"loaded_at,omitempty"`
	LastError string     `json:"error,omitempty"`
}
