package entity

import "time"

// Match is the record of a finished game. Winner is PlayerOne or
// PlayerTwo, or CellEmpty for a draw.
type Match struct {
	ID         string    `json:"id"`
	Winner     int       `json:"winner"`
	Board      string    `json:"board"`
	FinishedAt time.Time `json:"finished_at"`
}
