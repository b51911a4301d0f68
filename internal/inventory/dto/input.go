package dto

import "encoding/json"

type NamedInput struct {
	Name string `json:"name"`
}

type TagInput struct {
	Name     string `json:"name"`
	IsActive *bool  `json:"is_active"`
}

// CreateInventoryInput describes an inventory item together with the type,
// language and tags created alongside it.
type CreateInventoryInput struct {
	Name     string          `json:"name"`
	Type     *NamedInput     `json:"type"`
	Language *NamedInput     `json:"language"`
	Tags     []TagInput      `json:"tags"`
	Metadata json.RawMessage `json:"metadata"`
}

// UpdateInventoryInput is a partial update; nil fields are left alone.
// TagIDs, when present, replaces the whole tag set.
type UpdateInventoryInput struct {
	ID         string          `json:"-"`
	Name       *string         `json:"name"`
	Metadata   json.RawMessage `json:"metadata"`
	TypeID     *string         `json:"type_id"`
	LanguageID *string         `json:"language_id"`
	TagIDs     *[]string       `json:"tag_ids"`
}

type LookupInput struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}
