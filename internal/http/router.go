package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the storefront routes. Catalog browsing is public;
// cart routes expect an identity, which the handlers themselves enforce.
func NewRouter(catalogHandler *CatalogHandler, cartHandler *CartHandler, verifier TokenVerifier, sessions SessionNotifier) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Compress(5))
	r.Use(AuthMiddleware(verifier, sessions))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogHandler.List)
			r.Get("/categories", catalogHandler.Categories)
			r.Get("/{id}", catalogHandler.Detail)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Get)
			// No request timeout here: the event stream stays open for the
			// life of the subscription.
			r.Get("/events", cartHandler.Events)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Post("/items/{product_id}/increase", cartHandler.Increase)
			r.Post("/items/{product_id}/decrease", cartHandler.Decrease)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
			r.Post("/checkout", cartHandler.Checkout)
		})
	})

	return r
}
