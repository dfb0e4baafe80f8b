package types

import "time"

// PackingItem is one entry of a trip's packing checklist.
type PackingItem struct {
	Label  string `json:"label" yaml:"label"`
	Packed bool   `json:"packed" yaml:"packed"`
}

// PackingProgress counts packed items; Ratio is 0 for an empty list.
type PackingProgress struct {
	Packed int     `json:"packed" yaml:"packed"`
	Total  int     `json:"total" yaml:"total"`
	Ratio  float64 `json:"ratio" yaml:"ratio"`
}

// Note is a free-text travel note kept for the whole session.
type Note struct {
	Text      string    `json:"text" yaml:"text"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
