package dto

import "time"

type InventoryFilters struct {
	CreatedAfter *time.Time `json:"created_after,omitempty"`
	Limit        int        `json:"limit"`
	Offset       int        `json:"offset"`
}
