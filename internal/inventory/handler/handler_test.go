package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/filter"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUseCase keeps items in creation order and applies the after_date
// filter the way the store does: strictly after.
type fakeUseCase struct {
	items   []model.Inventory
	filters *dto.InventoryFilters
	created *dto.CreateInventoryInput
	err     error
}

func (f *fakeUseCase) CreateInventory(ctx context.Context, input *dto.CreateInventoryInput) (*model.Inventory, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = input
	return &model.Inventory{ID: "new", Name: input.Name, Tags: []model.InventoryTag{}}, nil
}

func (f *fakeUseCase) GetInventory(ctx context.Context, id string) (*model.Inventory, error) {
	for _, inv := range f.items {
		if inv.ID == id {
			return &inv, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *fakeUseCase) ListInventory(ctx context.Context, filters *dto.InventoryFilters) ([]model.Inventory, int, error) {
	f.filters = filters
	var matched []model.Inventory
	for _, inv := range f.items {
		if filters.CreatedAfter == nil || inv.CreatedAt.After(*filters.CreatedAfter) {
			matched = append(matched, inv)
		}
	}
	count := len(matched)
	if filters.Offset >= count {
		return nil, count, nil
	}
	end := filters.Offset + filters.Limit
	if end > count {
		end = count
	}
	return matched[filters.Offset:end], count, nil
}

func (f *fakeUseCase) UpdateInventory(ctx context.Context, input *dto.UpdateInventoryInput) (*model.Inventory, error) {
	inv, err := f.GetInventory(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		inv.Name = *input.Name
	}
	return inv, nil
}

func (f *fakeUseCase) DeleteInventory(ctx context.Context, id string) error {
	_, err := f.GetInventory(ctx, id)
	return err
}

func itemID(i int) string {
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", i)
}

func newRouter(uc *fakeUseCase, policy filter.DatePolicy) http.Handler {
	h := NewInventoryHandler(uc, filter.NewAfterDateParser(policy), 3, logger.NewNop())
	r := chi.NewRouter()
	r.Route("/inventory", h.Routes)
	return r
}

type envelope struct {
	Count    int               `json:"count"`
	Next     *string           `json:"next"`
	Previous *string           `json:"previous"`
	Results  []json.RawMessage `json:"results"`
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Host = "api.local"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestListInventory_Pagination(t *testing.T) {
	uc := &fakeUseCase{}
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		uc.items = append(uc.items, model.Inventory{ID: itemID(i), CreatedAt: base.Add(time.Duration(i) * time.Hour)})
	}
	h := newRouter(uc, filter.DatePolicyIgnore)

	rec, env := get(t, h, "/inventory/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, env.Count)
	assert.Len(t, env.Results, 3)
	require.NotNil(t, env.Next)
	assert.Equal(t, "http://api.local/inventory/?limit=3&offset=3", *env.Next)
	assert.Nil(t, env.Previous)

	_, env = get(t, h, "/inventory/?limit=3&offset=9")
	assert.Len(t, env.Results, 1)
	assert.Nil(t, env.Next)
	require.NotNil(t, env.Previous)
	assert.Equal(t, "http://api.local/inventory/?limit=3&offset=6", *env.Previous)

	_, env = get(t, h, "/inventory/?limit=-4&offset=x")
	assert.Equal(t, &dto.InventoryFilters{Limit: 3, Offset: 0}, uc.filters)
	assert.Len(t, env.Results, 3)
}

func TestListInventory_AfterDateIsExclusive(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{items: []model.Inventory{{ID: itemID(1), CreatedAt: day}}}
	h := newRouter(uc, filter.DatePolicyIgnore)

	tests := []struct {
		after string
		count int
	}{
		{"2024-03-10", 0},
		{"2024-03-09", 1},
		{"2024-03-11", 0},
	}
	for _, tt := range tests {
		t.Run(tt.after, func(t *testing.T) {
			rec, env := get(t, h, "/inventory/?after_date="+tt.after)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.count, env.Count)
		})
	}
}

func TestListInventory_BadAfterDatePolicies(t *testing.T) {
	uc := &fakeUseCase{items: []model.Inventory{{ID: itemID(1), CreatedAt: time.Now()}}}

	rec, env := get(t, newRouter(uc, filter.DatePolicyIgnore), "/inventory/?after_date=March")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ignore", rec.Header().Get(AfterDatePolicyHeader))
	assert.Equal(t, 1, env.Count)
	assert.Nil(t, uc.filters.CreatedAfter)

	rec, _ = get(t, newRouter(uc, filter.DatePolicyReject), "/inventory/?after_date=March")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "reject", rec.Header().Get(AfterDatePolicyHeader))
	assert.Contains(t, rec.Body.String(), "after_date")
}

func TestInventoryHandler_ItemRoutes(t *testing.T) {
	uc := &fakeUseCase{items: []model.Inventory{{ID: itemID(1), Name: "Skyfall", Tags: []model.InventoryTag{}}}}
	h := newRouter(uc, filter.DatePolicyIgnore)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"get", http.MethodGet, "/inventory/" + itemID(1) + "/", "", http.StatusOK},
		{"get missing", http.MethodGet, "/inventory/" + itemID(2) + "/", "", http.StatusNotFound},
		{"get non uuid", http.MethodGet, "/inventory/42/", "", http.StatusNotFound},
		{"patch", http.MethodPatch, "/inventory/" + itemID(1) + "/", `{"name":"Spectre"}`, http.StatusOK},
		{"patch bad body", http.MethodPatch, "/inventory/" + itemID(1) + "/", `{"name":`, http.StatusBadRequest},
		{"delete", http.MethodDelete, "/inventory/" + itemID(1) + "/", "", http.StatusNoContent},
		{"delete missing", http.MethodDelete, "/inventory/" + itemID(3) + "/", "", http.StatusNotFound},
		{"create", http.MethodPost, "/inventory/", `{"name":"Skyfall","type":{"name":"Film"},"language":{"name":"English"},"tags":[],"metadata":{}}`, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}

	require.NotNil(t, uc.created)
	assert.Equal(t, "Film", uc.created.Type.Name)
	assert.JSONEq(t, `{}`, string(uc.created.Metadata))
}

func TestCreateInventory_ValidationError(t *testing.T) {
	uc := &fakeUseCase{err: model.Invalid("metadata.year", "field required")}
	h := newRouter(uc, filter.DatePolicyIgnore)

	req := httptest.NewRequest(http.MethodPost, "/inventory/", strings.NewReader(`{"name":"x"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"validation failed","fields":{"metadata.year":["field required"]}}`, rec.Body.String())
}
