package model

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

type InventoryType struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type InventoryLanguage struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type InventoryTag struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	IsActive bool   `db:"is_active" json:"is_active"`
}

// Inventory is a catalog item. Metadata is validated once on creation and
// afterwards stored and returned as an opaque JSON document.
type Inventory struct {
	ID         string             `db:"id" json:"id"`
	Name       string             `db:"name" json:"name"`
	TypeID     string             `db:"type_id" json:"-"`
	LanguageID string             `db:"language_id" json:"-"`
	Metadata   types.JSONText     `db:"metadata" json:"metadata"`
	CreatedAt  time.Time          `db:"created_at" json:"created_at"`
	Type       *InventoryType     `db:"-" json:"type"`
	Language   *InventoryLanguage `db:"-" json:"language"`
	Tags       []InventoryTag     `db:"-" json:"tags"`
}
