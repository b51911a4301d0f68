package order

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/order/dto"
)

type Repository interface {
	// Create inserts o, the new tags and the links to both newTags and the
	// existing tagIDs in one transaction.
	Create(ctx context.Context, o *model.Order, newTags []model.OrderTag, tagIDs []string) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, error)
	Update(ctx context.Context, o *model.Order, tagIDs []string) error
	Delete(ctx context.Context, id string) (bool, error)
	Exists(ctx context.Context, id string) (bool, error)

	// Deactivate clears is_active with a single UPDATE and reports whether
	// the row exists.
	Deactivate(ctx context.Context, id string) (bool, error)

	// Relationship reads
	TagsForOrder(ctx context.Context, orderID string) ([]model.OrderTag, error)
	OrdersForTag(ctx context.Context, tagID string) ([]model.Order, error)

	// Order tags
	CreateTag(ctx context.Context, tag *model.OrderTag) error
	FindAllTags(ctx context.Context) ([]model.OrderTag, error)
	TagExists(ctx context.Context, id string) (bool, error)
}
