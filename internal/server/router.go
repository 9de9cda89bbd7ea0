package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	catalogctrl "campusmart/internal/catalog/controller"
	listingctrl "campusmart/internal/listing/controller"
	notifyctrl "campusmart/internal/notify/controller"
	orderctrl "campusmart/internal/order/controller"
	sessionctrl "campusmart/internal/session/controller"
	walletctrl "campusmart/internal/wallet/controller"
)

type Controllers struct {
	Orders        *orderctrl.OrdersController
	Listings      *listingctrl.ListingsController
	Wallet        *walletctrl.WalletController
	Session       *sessionctrl.SessionController
	Notifications *notifyctrl.NotificationsController
	Catalog       *catalogctrl.LookupController
}

func NewRouter(c Controllers, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", c.Orders.ListOrders)
		r.Route("/{orderId}", func(r chi.Router) {
			r.Get("/", c.Orders.GetOrder)
			r.Post("/confirm-delivery", c.Orders.ConfirmDelivery)
			r.Post("/confirm-service", c.Orders.ConfirmService)
			r.Post("/release-escrow", c.Orders.ReleaseEscrow)
			r.Post("/cancel", c.Orders.Cancel)
		})
	})
	r.Post("/deliveries/{orderId}/{action}", c.Orders.Deliver)

	r.Route("/listings", func(r chi.Router) {
		r.Get("/", c.Listings.ListListings)
		r.Post("/", c.Listings.CreateListing)
		r.Post("/retry", c.Listings.RetryCreate)
		r.Put("/{listingId}", c.Listings.UpdateListing)
		r.Delete("/{listingId}", c.Listings.DeleteListing)
	})

	r.Get("/wallet", c.Wallet.GetWallet)

	r.Route("/session", func(r chi.Router) {
		r.Get("/roles", c.Session.GetRoles)
		r.Post("/roles/refresh", c.Session.RefreshRoles)
		r.Post("/logout", c.Session.Logout)
	})

	r.Get("/notifications", c.Notifications.ListNotifications)
	r.Post("/catalog/lookup", c.Catalog.LookupProducts)

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request served",
				zap.String("requestId", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
