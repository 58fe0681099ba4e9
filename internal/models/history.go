package models

import "time"

type Action string

const (
	ActionTaken   Action = "taken"
	ActionSkipped Action = "skipped"
)

func (a Action) Valid() bool {
	return a == ActionTaken || a == ActionSkipped
}

// HistoryEntry records a taken or skipped dose. Entries are never mutated.
type HistoryEntry struct {
	ID     string    `json:"id"`
	MedID  string    `json:"medId"`
	Name   string    `json:"name"`
	Action Action    `json:"action"`
	Time   time.Time `json:"time"`
}
