package dto

type TagInput struct {
	Name string `json:"name"`
}

// CreateOrderInput creates an order for an inventory item. Tags are created
// inline; TagIDs links existing order tags.
type CreateOrderInput struct {
	Inventory   string     `json:"inventory"`
	StartDate   string     `json:"start_date"`
	EmbargoDate string     `json:"embargo_date"`
	TagIDs      []string   `json:"tag_ids"`
	Tags        []TagInput `json:"tags"`
}

type UpdateOrderInput struct {
	ID          string    `json:"-"`
	StartDate   *string   `json:"start_date"`
	EmbargoDate *string   `json:"embargo_date"`
	TagIDs      *[]string `json:"tag_ids"`
}

type CreateTagInput struct {
	Name string `json:"name"`
}
