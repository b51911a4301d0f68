package model

type OrderTag struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Order reserves an inventory item for the window [StartDate, EmbargoDate).
// EmbargoDate is expected, not enforced, to be after StartDate.
type Order struct {
	BaseModel
	InventoryID string     `db:"inventory_id" json:"inventory"`
	StartDate   Date       `db:"start_date" json:"start_date"`
	EmbargoDate Date       `db:"embargo_date" json:"embargo_date"`
	IsActive    bool       `db:"is_active" json:"is_active"`
	Tags        []OrderTag `db:"-" json:"tags"`
}
