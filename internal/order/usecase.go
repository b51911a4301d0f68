package order

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/order/dto"
)

type UseCase interface {
	CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, error)
	UpdateOrder(ctx context.Context, input *dto.UpdateOrderInput) (*model.Order, error)
	DeleteOrder(ctx context.Context, id string) error

	// DeactivateOrder moves an order to the inactive state and returns it
	// as stored afterwards.
	DeactivateOrder(ctx context.Context, id string) (*model.Order, error)

	TagsForOrder(ctx context.Context, orderID string, policy Policy, requireNonEmpty bool) ([]model.OrderTag, error)
	OrdersForTag(ctx context.Context, tagID string, policy Policy, requireNonEmpty bool) ([]model.Order, error)

	CreateTag(ctx context.Context, input *dto.CreateTagInput) (*model.OrderTag, error)
	ListTags(ctx context.Context) ([]model.OrderTag, error)
}
