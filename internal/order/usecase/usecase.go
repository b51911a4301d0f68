package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/order"
	"github.com/fekuna/omnipos-catalog-service/internal/order/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgRequired  = "field required"
	msgInvalidPK = "invalid pk"
	msgBadDate   = "date has wrong format, use YYYY-MM-DD"
)

type orderUseCase struct {
	repo   order.Repository
	logger logger.ZapLogger
	now    func() time.Time

	tagsOf   map[order.Policy]Resolver[model.OrderTag]
	ordersOf map[order.Policy]Resolver[model.Order]
}

func NewOrderUseCase(repo order.Repository, log logger.ZapLogger) order.UseCase {
	return &orderUseCase{
		repo:   repo,
		logger: log,
		now:    time.Now,
		tagsOf: map[order.Policy]Resolver[model.OrderTag]{
			order.PolicyStrict:  NewResolver[model.OrderTag](true, repo.Exists, repo.TagsForOrder),
			order.PolicyLenient: NewResolver[model.OrderTag](false, repo.Exists, repo.TagsForOrder),
		},
		ordersOf: map[order.Policy]Resolver[model.Order]{
			order.PolicyStrict:  NewResolver[model.Order](true, repo.TagExists, repo.OrdersForTag),
			order.PolicyLenient: NewResolver[model.Order](false, repo.TagExists, repo.OrdersForTag),
		},
	}
}

func (uc *orderUseCase) CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error) {
	ve := model.NewValidationError()

	var inventoryID string
	if strings.TrimSpace(input.Inventory) == "" {
		ve.Add("inventory", msgRequired)
	} else {
		inventoryID = checkID(ve, "inventory", input.Inventory)
	}
	start := parseDate(ve, "start_date", input.StartDate)
	embargo := parseDate(ve, "embargo_date", input.EmbargoDate)

	newTags := make([]model.OrderTag, 0, len(input.Tags))
	for i, t := range input.Tags {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			ve.Add(fmt.Sprintf("tags[%d].name", i), msgRequired)
			continue
		}
		newTags = append(newTags, model.OrderTag{ID: uuid.New().String(), Name: name})
	}
	tagIDs := checkIDs(ve, "tag_ids", input.TagIDs)

	if err := ve.ErrOrNil(); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	o := &model.Order{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		InventoryID: inventoryID,
		StartDate:   start,
		EmbargoDate: embargo,
		IsActive:    true,
	}
	if err := uc.repo.Create(ctx, o, newTags, tagIDs); err != nil {
		return nil, err
	}

	uc.logger.Info("order created",
		zap.String("order_id", o.ID),
		zap.String("inventory_id", o.InventoryID),
		zap.Int("new_tags", len(newTags)),
		zap.Int("linked_tags", len(tagIDs)),
	)
	return uc.GetOrder(ctx, o.ID)
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, model.ErrNotFound
	}
	return o, nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *orderUseCase) UpdateOrder(ctx context.Context, input *dto.UpdateOrderInput) (*model.Order, error) {
	o, err := uc.GetOrder(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	ve := model.NewValidationError()
	if input.StartDate != nil {
		o.StartDate = parseDate(ve, "start_date", *input.StartDate)
	}
	if input.EmbargoDate != nil {
		o.EmbargoDate = parseDate(ve, "embargo_date", *input.EmbargoDate)
	}
	var tagIDs []string
	if input.TagIDs != nil {
		tagIDs = checkIDs(ve, "tag_ids", *input.TagIDs)
	}

	if err := ve.ErrOrNil(); err != nil {
		return nil, err
	}

	o.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, o, tagIDs); err != nil {
		return nil, err
	}
	return uc.GetOrder(ctx, o.ID)
}

func (uc *orderUseCase) DeleteOrder(ctx context.Context, id string) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrNotFound
	}

	uc.logger.Info("order deleted", zap.String("order_id", id))
	return nil
}

// DeactivateOrder updates the row and then reads it back, so the caller
// sees the stored state rather than a patched copy.
func (uc *orderUseCase) DeactivateOrder(ctx context.Context, id string) (*model.Order, error) {
	ok, err := uc.repo.Deactivate(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrNotFound
	}

	o, err := uc.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("order deactivated", zap.String("order_id", id))
	return o, nil
}

func (uc *orderUseCase) TagsForOrder(ctx context.Context, orderID string, policy order.Policy, requireNonEmpty bool) ([]model.OrderTag, error) {
	r, ok := uc.tagsOf[policy]
	if !ok {
		return nil, fmt.Errorf("tags for order: unknown policy %q", policy)
	}
	return r.Resolve(ctx, orderID, requireNonEmpty)
}

func (uc *orderUseCase) OrdersForTag(ctx context.Context, tagID string, policy order.Policy, requireNonEmpty bool) ([]model.Order, error) {
	r, ok := uc.ordersOf[policy]
	if !ok {
		return nil, fmt.Errorf("orders for tag: unknown policy %q", policy)
	}
	return r.Resolve(ctx, tagID, requireNonEmpty)
}

func (uc *orderUseCase) CreateTag(ctx context.Context, input *dto.CreateTagInput) (*model.OrderTag, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, model.Invalid("name", msgRequired)
	}

	tag := &model.OrderTag{ID: uuid.New().String(), Name: name}
	if err := uc.repo.CreateTag(ctx, tag); err != nil {
		return nil, err
	}

	uc.logger.Info("order tag created", zap.String("tag_id", tag.ID))
	return tag, nil
}

func (uc *orderUseCase) ListTags(ctx context.Context) ([]model.OrderTag, error) {
	return uc.repo.FindAllTags(ctx)
}

func parseDate(ve *model.ValidationError, field, raw string) model.Date {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		ve.Add(field, msgRequired)
		return model.Date{}
	}
	d, err := model.ParseDate(raw)
	if err != nil {
		ve.Add(field, msgBadDate)
		return model.Date{}
	}
	return d
}

func checkID(ve *model.ValidationError, field, raw string) string {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		ve.Add(field, msgInvalidPK)
		return ""
	}
	return id.String()
}

// checkIDs validates and de-duplicates raw, keeping first-seen order.
func checkIDs(ve *model.ValidationError, field string, raw []string) []string {
	ids := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, r := range raw {
		id := checkID(ve, field, r)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
