package maintenance_dto

import "time"

type CycleResponse struct {
	CycleID      string    `json:"cycle_id"`
	DeviceType   string    `json:"device_type"`
	Frequency    string    `json:"frequency"`
	Basis        string    `json:"basis"`
	CreatedAt    time.Time `json:"created_at"`
	SupersededBy *string   `json:"superseded_by,omitempty"`
}

type CycleHistoryItem struct {
	HistoryID  string    `json:"history_id"`
	DeviceType string    `json:"device_type"`
	Frequency  string    `json:"frequency"`
	Basis      string    `json:"basis"`
	Reason     *string   `json:"reason,omitempty"`
	ChangedBy  string    `json:"changed_by"`
	ChangedAt  time.Time `json:"changed_at"`
}
