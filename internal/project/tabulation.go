package project

import "time"

// Tabulation holds metadata for a result saved in a project. File is
// relative to the project directory.
type Tabulation struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	File        string    `json:"file"`
	Counter     string    `json:"counter"`
	Grouper     string    `json:"grouper,omitempty"`
	Description string    `json:"description"`
	Rows        int       `json:"rows"`
	Digits      int       `json:"digits"`
	AddedAt     time.Time `json:"added_at"`
}
