package dto

import "github.com/fekuna/omnipos-catalog-service/internal/filter"

// OrderFilters narrows the order listing. Range.Start bounds start_date
// (inclusive) and Range.End bounds embargo_date (exclusive).
type OrderFilters struct {
	Range filter.DateRange
}
