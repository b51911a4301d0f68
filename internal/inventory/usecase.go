package inventory

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type UseCase interface {
	CreateInventory(ctx context.Context, input *dto.CreateInventoryInput) (*model.Inventory, error)
	GetInventory(ctx context.Context, id string) (*model.Inventory, error)
	ListInventory(ctx context.Context, filters *dto.InventoryFilters) ([]model.Inventory, int, error)
	UpdateInventory(ctx context.Context, input *dto.UpdateInventoryInput) (*model.Inventory, error)
	DeleteInventory(ctx context.Context, id string) error
}

type LookupUseCase[T any] interface {
	Create(ctx context.Context, input *dto.LookupInput) (*T, error)
	Get(ctx context.Context, id string) (*T, error)
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, id string, input *dto.LookupInput) (*T, error)
	Delete(ctx context.Context, id string) error
}
