package events

import "time"

const (
	TopicRokarEntries       = "retail.rokar.entries.v1"
	EventTypeRokarEntrySaved = "rokar.entry.saved"
)

// RokarDuesLine mirrors one itemized credit line for downstream consumers.
// Amounts travel as strings to keep decimal precision across the wire.
type RokarDuesLine struct {
	CustomerID   string `json:"customer_id,omitempty"`
	CustomerName string `json:"customer_name"`
	Mobile       string `json:"mobile,omitempty"`
	Kind         string `json:"kind"`
	Amount       string `json:"amount"`
}

type RokarEntrySavedEvent struct {
	EventType      string          `json:"event_type"`
	RequestID      string          `json:"request_id"`
	EntryKey       string          `json:"entry_key"`
	StoreID        string          `json:"store_id"`
	EntryDate      string          `json:"entry_date"`
	TotalSale      string          `json:"total_sale"`
	ClosingBalance string          `json:"closing_balance"`
	CashTotal      string          `json:"cash_total"`
	Balanced       bool            `json:"balanced"`
	IsAdminEntry   bool            `json:"is_admin_entry"`
	SavedBy        string          `json:"saved_by"`
	DuesLines      []RokarDuesLine `json:"dues_lines"`
	OccurredAt     time.Time       `json:"occurred_at"`
}
