package project

import "time"

// Chart records one rendered image and the datasets it was drawn from.
type Chart struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	Profile     string    `json:"profile"`
	Sources     []Source  `json:"sources"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Source is a dataset that fed a chart, with the row counts seen while loading it.
type Source struct {
	Label   string `json:"label,omitempty"`
	Path    string `json:"path"`
	Rows    int    `json:"rows"`
	Skipped int    `json:"skipped"`
}
