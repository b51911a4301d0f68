// Package server assembles the HTTP router and the gRPC probe server.
package server

import (
	"context"
	"net/http"
	"time"

	invH "github.com/fekuna/omnipos-catalog-service/internal/inventory/handler"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	orderH "github.com/fekuna/omnipos-catalog-service/internal/order/handler"
	"github.com/fekuna/omnipos-catalog-service/internal/server/respond"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handlers struct {
	Inventory *invH.InventoryHandler
	Types     *invH.LookupHandler[model.InventoryType]
	Languages *invH.LookupHandler[model.InventoryLanguage]
	Tags      *invH.LookupHandler[model.InventoryTag]
	Orders    *orderH.OrderHandler
}

func NewRouter(h Handlers, db Pinger, log logger.ZapLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/health", Health(db, log))

	r.Route("/inventory", func(r chi.Router) {
		r.Route("/types", h.Types.Routes)
		r.Route("/languages", h.Languages.Routes)
		r.Route("/tags", h.Tags.Routes)
		h.Inventory.Routes(r)
	})
	r.Route("/orders", h.Orders.Routes)

	return r
}

// Health answers 200 while the database responds to a ping and 503
// otherwise.
func Health(db Pinger, log logger.ZapLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			log.Warn("health check failed", zap.Error(err))
			respond.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
