package handler

import (
	"net/http"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/filter"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/order"
	"github.com/fekuna/omnipos-catalog-service/internal/order/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/server/respond"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	uc            order.UseCase
	defaultPolicy order.Policy
	logger        logger.ZapLogger
}

// NewOrderHandler builds the order endpoints. defaultPolicy applies to the
// relationship routes that do not pin a policy themselves.
func NewOrderHandler(uc order.UseCase, defaultPolicy order.Policy, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:            uc,
		defaultPolicy: defaultPolicy,
		logger:        log,
	}
}

// Routes registers the endpoints on a router mounted at /orders.
func (h *OrderHandler) Routes(r chi.Router) {
	r.Post("/", h.CreateOrder)
	r.Get("/", h.ListOrders)

	r.Post("/tags/", h.CreateTag)
	r.Get("/tags/", h.ListTags)
	r.Get("/tags/{id}/orders/", h.OrdersForTag)

	r.Patch("/deactivate/{id}/", h.DeactivateOrder)

	r.Get("/{id}/", h.GetOrder)
	r.Patch("/{id}/", h.UpdateOrder)
	r.Delete("/{id}/", h.DeleteOrder)

	r.Get("/{id}/tags/", h.tagsForOrder(""))
	r.Get("/{id}/tags-1/", h.tagsForOrder(order.PolicyStrict))
	r.Get("/{id}/tags-2/", h.tagsForOrder(order.PolicyLenient))
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateOrderInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	o, err := h.uc.CreateOrder(r.Context(), &input)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusCreated, o)
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rng, err := filter.ParseDateRange("start_date", "embargo_date", q.Get("start_date"), q.Get("embargo_date"))
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	orders, err := h.uc.ListOrders(r.Context(), &dto.OrderFilters{Range: rng})
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	o, err := h.uc.GetOrder(r.Context(), id)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, o)
}

func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	var input dto.UpdateOrderInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	input.ID = id

	o, err := h.uc.UpdateOrder(r.Context(), &input)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, o)
}

func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	if err := h.uc.DeleteOrder(r.Context(), id); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.NoContent(w)
}

func (h *OrderHandler) DeactivateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	o, err := h.uc.DeactivateOrder(r.Context(), id)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, o)
}

// tagsForOrder serves one of the order -> tags routes. An empty pinned
// policy means the configured default, which ?policy= may override.
func (h *OrderHandler) tagsForOrder(pinned order.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		policy := pinned
		if policy == "" {
			var err error
			if policy, err = h.queryPolicy(r); err != nil {
				respond.Error(w, r, h.logger, err)
				return
			}
		}

		id, ok, err := parentID(r, policy)
		if err != nil {
			respond.Error(w, r, h.logger, err)
			return
		}
		if !ok {
			h.noChildren(w, r, []model.OrderTag{})
			return
		}

		tags, err := h.uc.TagsForOrder(r.Context(), id, policy, tagsRequired(r))
		if err != nil {
			respond.Error(w, r, h.logger, err)
			return
		}
		respond.JSON(w, http.StatusOK, tags)
	}
}

// OrdersForTag is strict unless ?policy= says otherwise, so an unknown tag
// is a 404.
func (h *OrderHandler) OrdersForTag(w http.ResponseWriter, r *http.Request) {
	policy := order.PolicyStrict
	if raw := r.URL.Query().Get("policy"); raw != "" {
		var err error
		if policy, err = parsePolicyParam(raw); err != nil {
			respond.Error(w, r, h.logger, err)
			return
		}
	}

	id, ok, err := parentID(r, policy)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	if !ok {
		h.noChildren(w, r, []model.Order{})
		return
	}

	orders, err := h.uc.OrdersForTag(r.Context(), id, policy, tagsRequired(r))
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateTagInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	tag, err := h.uc.CreateTag(r.Context(), &input)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusCreated, tag)
}

func (h *OrderHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.uc.ListTags(r.Context())
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, tags)
}

// parentID reads the {id} of a relationship route. Under the lenient
// policy a value that is not a UUID names no parent, which looks the same
// as a parent without children, so ok is false instead of an error.
func parentID(r *http.Request, policy order.Policy) (id string, ok bool, err error) {
	id, err = respond.PathID(r, "id")
	if err == nil {
		return id, true, nil
	}
	if policy == order.PolicyLenient {
		return "", false, nil
	}
	return "", false, err
}

// noChildren answers a lenient lookup whose parent cannot exist.
func (h *OrderHandler) noChildren(w http.ResponseWriter, r *http.Request, empty interface{}) {
	if tagsRequired(r) {
		respond.Error(w, r, h.logger, model.ErrNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, empty)
}

func (h *OrderHandler) queryPolicy(r *http.Request) (order.Policy, error) {
	raw := r.URL.Query().Get("policy")
	if raw == "" {
		return h.defaultPolicy, nil
	}
	return parsePolicyParam(raw)
}

func parsePolicyParam(raw string) (order.Policy, error) {
	p, err := order.ParsePolicy(raw)
	if err != nil {
		return "", model.Invalid("policy", `expected "strict" or "lenient"`)
	}
	return p, nil
}

// tagsRequired reads ?tags_required=1|true.
func tagsRequired(r *http.Request) bool {
	switch strings.ToLower(r.URL.Query().Get("tags_required")) {
	case "1", "true":
		return true
	default:
		return false
	}
}
