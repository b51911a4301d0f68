package usecase

import (
	"context"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/cache"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// lookupUseCase serves one reference table. Renaming or deleting a row
// changes hydrated inventory items, so writes also drop cached listings.
type lookupUseCase[T any] struct {
	repo   inventory.LookupRepository[T]
	cache  *cache.RedisClient
	logger logger.ZapLogger
	kind   string
	// build creates a new item with the given id from a create request.
	build func(id, name string, in *dto.LookupInput) *T
	// apply copies the non-nil fields of an update request onto item.
	apply func(item *T, in *dto.LookupInput)
	id    func(item *T) string
}

func NewTypeUseCase(repo inventory.LookupRepository[model.InventoryType], cache *cache.RedisClient, log logger.ZapLogger) inventory.LookupUseCase[model.InventoryType] {
	return &lookupUseCase[model.InventoryType]{
		repo:   repo,
		cache:  cache,
		logger: log,
		kind:   "type",
		build: func(id, name string, _ *dto.LookupInput) *model.InventoryType {
			return &model.InventoryType{ID: id, Name: name}
		},
		apply: func(item *model.InventoryType, in *dto.LookupInput) {
			if in.Name != nil {
				item.Name = strings.TrimSpace(*in.Name)
			}
		},
		id: func(item *model.InventoryType) string { return item.ID },
	}
}

func NewLanguageUseCase(repo inventory.LookupRepository[model.InventoryLanguage], cache *cache.RedisClient, log logger.ZapLogger) inventory.LookupUseCase[model.InventoryLanguage] {
	return &lookupUseCase[model.InventoryLanguage]{
		repo:   repo,
		cache:  cache,
		logger: log,
		kind:   "language",
		build: func(id, name string, _ *dto.LookupInput) *model.InventoryLanguage {
			return &model.InventoryLanguage{ID: id, Name: name}
		},
		apply: func(item *model.InventoryLanguage, in *dto.LookupInput) {
			if in.Name != nil {
				item.Name = strings.TrimSpace(*in.Name)
			}
		},
		id: func(item *model.InventoryLanguage) string { return item.ID },
	}
}

// NewTagUseCase serves inventory tags. New tags are active unless the
// request says otherwise.
func NewTagUseCase(repo inventory.LookupRepository[model.InventoryTag], cache *cache.RedisClient, log logger.ZapLogger) inventory.LookupUseCase[model.InventoryTag] {
	return &lookupUseCase[model.InventoryTag]{
		repo:   repo,
		cache:  cache,
		logger: log,
		kind:   "tag",
		build: func(id, name string, in *dto.LookupInput) *model.InventoryTag {
			tag := &model.InventoryTag{ID: id, Name: name, IsActive: true}
			if in.IsActive != nil {
				tag.IsActive = *in.IsActive
			}
			return tag
		},
		apply: func(item *model.InventoryTag, in *dto.LookupInput) {
			if in.Name != nil {
				item.Name = strings.TrimSpace(*in.Name)
			}
			if in.IsActive != nil {
				item.IsActive = *in.IsActive
			}
		},
		id: func(item *model.InventoryTag) string { return item.ID },
	}
}

func (uc *lookupUseCase[T]) Create(ctx context.Context, input *dto.LookupInput) (*T, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, model.Invalid("name", msgRequired)
	}

	item := uc.build(uuid.New().String(), strings.TrimSpace(*input.Name), input)
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	uc.logger.Debug("lookup created", zap.String("kind", uc.kind), zap.String("id", uc.id(item)))
	return item, nil
}

func (uc *lookupUseCase[T]) Get(ctx context.Context, id string) (*T, error) {
	item, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, model.ErrNotFound
	}
	return item, nil
}

func (uc *lookupUseCase[T]) List(ctx context.Context) ([]T, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *lookupUseCase[T]) Update(ctx context.Context, id string, input *dto.LookupInput) (*T, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, model.Invalid("name", msgRequired)
	}

	item, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.apply(item, input)

	ok, err := uc.repo.Update(ctx, item)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrNotFound
	}
	invalidateListCache(ctx, uc.cache, uc.logger)
	return item, nil
}

func (uc *lookupUseCase[T]) Delete(ctx context.Context, id string) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrNotFound
	}
	invalidateListCache(ctx, uc.cache, uc.logger)

	uc.logger.Debug("lookup deleted", zap.String("kind", uc.kind), zap.String("id", id))
	return nil
}
