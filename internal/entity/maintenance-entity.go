package entity

import "time"

type MaintenanceCycleEntity struct {
	ID         string     `json:"id"`
	DeviceType string     `json:"device_type"`
	Frequency  Frequency  `json:"frequency"`
	Basis      CycleBasis `json:"basis"`
	CreatedBy  string     `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// MaintenanceCycleHistoryEntity is an append-only snapshot of a cycle before it changed.
type MaintenanceCycleHistoryEntity struct {
	ID         string     `json:"id"`
	CycleID    string     `json:"cycle_id"`
	DeviceType string     `json:"device_type"`
	Frequency  Frequency  `json:"frequency"`
	Basis      CycleBasis `json:"basis"`
	Reason     *string    `json:"reason,omitempty"`
	ChangedBy  string     `json:"changed_by"`
	ChangedAt  time.Time  `json:"changed_at"`
}

type Frequency string

const (
	FrequencyDaily    Frequency = "Daily"
	FrequencyWeekly   Frequency = "Weekly"
	FrequencyMonthly  Frequency = "Monthly"
	FrequencyYearly   Frequency = "Yearly"
	FrequencySpecific Frequency = "Specific"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly, FrequencySpecific:
		return true
	}
	return false
}

type CycleBasis string

const (
	BasisManufacturerRecommendation CycleBasis = "ManufacturerRecommendation"
	BasisLegalStandards             CycleBasis = "LegalStandards"
	BasisOperationalConditions      CycleBasis = "OperationalConditions"
	BasisCustom                     CycleBasis = "Custom"
)

func (b CycleBasis) IsValid() bool {
	switch b {
	case BasisManufacturerRecommendation, BasisLegalStandards, BasisOperationalConditions, BasisCustom:
		return true
	}
	return false
}
