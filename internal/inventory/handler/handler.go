package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-catalog-service/internal/filter"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/server/respond"
	"github.com/go-chi/chi/v5"
)

// AfterDatePolicyHeader tells clients how an unparseable after_date was
// treated.
const AfterDatePolicyHeader = "X-After-Date-Policy"

type InventoryHandler struct {
	uc        inventory.UseCase
	afterDate *filter.AfterDateParser
	pageSize  int
	logger    logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, afterDate *filter.AfterDateParser, pageSize int, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:        uc,
		afterDate: afterDate,
		pageSize:  pageSize,
		logger:    log,
	}
}

// Routes registers the item endpoints on a router mounted at /inventory.
func (h *InventoryHandler) Routes(r chi.Router) {
	r.Post("/", h.CreateInventory)
	r.Get("/", h.ListInventory)
	r.Get("/{id}/", h.GetInventory)
	r.Patch("/{id}/", h.UpdateInventory)
	r.Delete("/{id}/", h.DeleteInventory)
}

func (h *InventoryHandler) CreateInventory(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateInventoryInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	inv, err := h.uc.CreateInventory(r.Context(), &input)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusCreated, inv)
}

func (h *InventoryHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	w.Header().Set(AfterDatePolicyHeader, h.afterDate.Policy().String())

	after, err := h.afterDate.Parse("after_date", q.Get("after_date"))
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	page := filter.ParsePage(q, h.pageSize)

	items, count, err := h.uc.ListInventory(r.Context(), &dto.InventoryFilters{
		CreatedAfter: after,
		Limit:        page.Limit,
		Offset:       page.Offset,
	})
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, filter.NewEnvelope(respond.RequestURL(r), page, count, items))
}

func (h *InventoryHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	inv, err := h.uc.GetInventory(r.Context(), id)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, inv)
}

func (h *InventoryHandler) UpdateInventory(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	var input dto.UpdateInventoryInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	input.ID = id

	inv, err := h.uc.UpdateInventory(r.Context(), &input)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, inv)
}

func (h *InventoryHandler) DeleteInventory(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	if err := h.uc.DeleteInventory(r.Context(), id); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.NoContent(w)
}
