package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-catalog-service/internal/inventory"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/server/respond"
	"github.com/go-chi/chi/v5"
)

// LookupHandler exposes CRUD for one reference table. Listings are not
// paginated.
type LookupHandler[T any] struct {
	uc     inventory.LookupUseCase[T]
	logger logger.ZapLogger
}

func NewLookupHandler[T any](uc inventory.LookupUseCase[T], log logger.ZapLogger) *LookupHandler[T] {
	return &LookupHandler[T]{uc: uc, logger: log}
}

func (h *LookupHandler[T]) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}/", h.Get)
	r.Patch("/{id}/", h.Update)
	r.Delete("/{id}/", h.Delete)
}

func (h *LookupHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	var input dto.LookupInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	item, err := h.uc.Create(r.Context(), &input)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusCreated, item)
}

func (h *LookupHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.List(r.Context())
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

func (h *LookupHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	item, err := h.uc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, item)
}

func (h *LookupHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	var input dto.LookupInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	item, err := h.uc.Update(r.Context(), id, &input)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, item)
}

func (h *LookupHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	if err := h.uc.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.NoContent(w)
}
