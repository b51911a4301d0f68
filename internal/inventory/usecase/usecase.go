package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/cache"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/metadata"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"
)

const (
	listCachePrefix = "inventory:list:"
	// listGenKey lives outside listCachePrefix so DeletePrefix keeps it.
	listGenKey = "inventory:listgen"

	msgRequired  = "field required"
	msgInvalidPK = "invalid pk"
)

type inventoryUseCase struct {
	repo     inventory.Repository
	cache    *cache.RedisClient
	cacheTTL time.Duration
	logger   logger.ZapLogger
	now      func() time.Time
}

// NewInventoryUseCase wires the inventory service. cache may be nil, in
// which case listings always hit the database.
func NewInventoryUseCase(repo inventory.Repository, cache *cache.RedisClient, cacheTTL time.Duration, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   log,
		now:      time.Now,
	}
}

func (uc *inventoryUseCase) CreateInventory(ctx context.Context, input *dto.CreateInventoryInput) (*model.Inventory, error) {
	ve := model.NewValidationError()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		ve.Add("name", msgRequired)
	}
	if input.Type == nil || strings.TrimSpace(input.Type.Name) == "" {
		ve.Add("type.name", msgRequired)
	}
	if input.Language == nil || strings.TrimSpace(input.Language.Name) == "" {
		ve.Add("language.name", msgRequired)
	}
	for i, t := range input.Tags {
		if strings.TrimSpace(t.Name) == "" {
			ve.Add(fmt.Sprintf("tags[%d].name", i), msgRequired)
		}
	}

	var meta []byte
	if len(bytes.TrimSpace(input.Metadata)) == 0 {
		ve.Add("metadata", msgRequired)
	} else {
		normalized, err := metadata.Normalize(input.Metadata)
		if err != nil {
			mv, ok := model.IsValidation(err)
			if !ok {
				return nil, err
			}
			ve.Merge("metadata", mv)
		}
		meta = normalized
	}

	if err := ve.ErrOrNil(); err != nil {
		return nil, err
	}

	inv := &model.Inventory{
		ID:        uuid.New().String(),
		Name:      name,
		Metadata:  types.JSONText(meta),
		CreatedAt: uc.now().UTC(),
		Type:      &model.InventoryType{ID: uuid.New().String(), Name: strings.TrimSpace(input.Type.Name)},
		Language:  &model.InventoryLanguage{ID: uuid.New().String(), Name: strings.TrimSpace(input.Language.Name)},
		Tags:      make([]model.InventoryTag, 0, len(input.Tags)),
	}
	inv.TypeID = inv.Type.ID
	inv.LanguageID = inv.Language.ID
	for _, t := range input.Tags {
		active := true
		if t.IsActive != nil {
			active = *t.IsActive
		}
		inv.Tags = append(inv.Tags, model.InventoryTag{
			ID:       uuid.New().String(),
			Name:     strings.TrimSpace(t.Name),
			IsActive: active,
		})
	}

	if err := uc.repo.CreateComposite(ctx, inv); err != nil {
		return nil, err
	}
	invalidateListCache(ctx, uc.cache, uc.logger)

	uc.logger.Info("inventory created",
		zap.String("inventory_id", inv.ID),
		zap.String("type_id", inv.TypeID),
		zap.String("language_id", inv.LanguageID),
		zap.Int("tags", len(inv.Tags)),
	)
	return inv, nil
}

func (uc *inventoryUseCase) GetInventory(ctx context.Context, id string) (*model.Inventory, error) {
	inv, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, model.ErrNotFound
	}
	return inv, nil
}

type listPage struct {
	Items []model.Inventory `json:"items"`
	Count int               `json:"count"`
}

func (uc *inventoryUseCase) ListInventory(ctx context.Context, filters *dto.InventoryFilters) ([]model.Inventory, int, error) {
	cacheKey := uc.listCacheKey(ctx, filters)

	if cacheKey != "" {
		var cached listPage
		hit, err := uc.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			uc.logger.Warn("inventory list cache read failed", zap.Error(err))
		}
		if hit {
			return cached.Items, cached.Count, nil
		}
	}

	items, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if cacheKey != "" {
		if err := uc.cache.SetJSON(ctx, cacheKey, listPage{Items: items, Count: count}, uc.cacheTTL); err != nil {
			uc.logger.Warn("inventory list cache write failed", zap.Error(err))
		}
	}
	return items, count, nil
}

// listCacheKey scopes the page key by the current cache generation. A
// listing that read the store before a write committed stores its page
// under the old generation, where no later read looks. "" disables caching
// for this call.
func (uc *inventoryUseCase) listCacheKey(ctx context.Context, filters *dto.InventoryFilters) string {
	gen, err := uc.cache.Generation(ctx, listGenKey)
	if err != nil {
		uc.logger.Warn("inventory list cache generation read failed", zap.Error(err))
		return ""
	}
	key, err := cache.Key(fmt.Sprintf("%s%d:", listCachePrefix, gen), filters)
	if err != nil {
		return ""
	}
	return key
}

func (uc *inventoryUseCase) UpdateInventory(ctx context.Context, input *dto.UpdateInventoryInput) (*model.Inventory, error) {
	inv, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, model.ErrNotFound
	}

	ve := model.NewValidationError()
	if input.Name != nil {
		if name := strings.TrimSpace(*input.Name); name == "" {
			ve.Add("name", msgRequired)
		} else {
			inv.Name = name
		}
	}
	if len(bytes.TrimSpace(input.Metadata)) > 0 {
		inv.Metadata = types.JSONText(input.Metadata)
	}
	if input.TypeID != nil {
		inv.TypeID = checkID(ve, "type_id", *input.TypeID)
	}
	if input.LanguageID != nil {
		inv.LanguageID = checkID(ve, "language_id", *input.LanguageID)
	}

	var tagIDs []string
	if input.TagIDs != nil {
		tagIDs = make([]string, 0, len(*input.TagIDs))
		seen := make(map[string]bool, len(*input.TagIDs))
		for _, raw := range *input.TagIDs {
			id := checkID(ve, "tag_ids", raw)
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			tagIDs = append(tagIDs, id)
		}
	}

	if err := ve.ErrOrNil(); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, inv, tagIDs); err != nil {
		return nil, err
	}
	invalidateListCache(ctx, uc.cache, uc.logger)

	return uc.GetInventory(ctx, inv.ID)
}

func (uc *inventoryUseCase) DeleteInventory(ctx context.Context, id string) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrNotFound
	}
	invalidateListCache(ctx, uc.cache, uc.logger)

	uc.logger.Info("inventory deleted", zap.String("inventory_id", id))
	return nil
}

// invalidateListCache moves listings to a new generation and drops the
// cached pages. It runs after the write committed and before it returns,
// so the next listing observes the change.
func invalidateListCache(ctx context.Context, c *cache.RedisClient, log logger.ZapLogger) {
	if err := c.Bump(ctx, listGenKey); err != nil {
		log.Warn("inventory list cache generation bump failed", zap.Error(err))
	}
	if err := c.DeletePrefix(ctx, listCachePrefix); err != nil {
		log.Warn("inventory list cache invalidation failed", zap.Error(err))
	}
}

// checkID returns the canonical form of raw, recording a validation error
// and returning "" when it is not a UUID.
func checkID(ve *model.ValidationError, field, raw string) string {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		ve.Add(field, msgInvalidPK)
		return ""
	}
	return id.String()
}
