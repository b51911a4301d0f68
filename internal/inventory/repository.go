package inventory

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	// CreateComposite inserts inv.Type, inv.Language, inv and inv.Tags
	// together with the tag links in a single transaction.
	CreateComposite(ctx context.Context, inv *model.Inventory) error

	// FindByID returns the hydrated item, or nil when it does not exist.
	FindByID(ctx context.Context, id string) (*model.Inventory, error)
	FindAll(ctx context.Context, filters *dto.InventoryFilters) ([]model.Inventory, int, error)

	// Update writes the scalar columns of inv. A non-nil tagIDs replaces the
	// tag links.
	Update(ctx context.Context, inv *model.Inventory, tagIDs []string) error
	Delete(ctx context.Context, id string) (bool, error)
}

// LookupRepository stores the small reference tables (types, languages,
// tags) that inventory items point at.
type LookupRepository[T any] interface {
	Create(ctx context.Context, item *T) error
	FindByID(ctx context.Context, id string) (*T, error)
	FindAll(ctx context.Context) ([]T, error)
	Update(ctx context.Context, item *T) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
