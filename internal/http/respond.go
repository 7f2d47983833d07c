package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"shopez/internal/cart"
	"shopez/internal/catalog"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// handleCartError maps cart and store failures to HTTP statuses. Missing
// session is a structural precondition, not a retryable failure; store
// failures abandon the operation and leave state unchanged.
func handleCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrNoSession):
		respondError(w, http.StatusUnauthorized, "login_required",
			"Please log in to use your cart.")
	case errors.Is(err, cart.ErrLineNotFound):
		respondError(w, http.StatusNotFound, "not_found", "item not found in cart")
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "timeout", "cart store timed out")
	default:
		respondError(w, http.StatusInternalServerError, "store_error",
			"Could not update your cart. Please try again.")
	}
}

// handleCatalogError maps catalog fetch failures. Every failure is surfaced
// with a retry affordance rather than retried automatically.
func handleCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "not_found", "Product not found.")
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "timeout",
			"Failed to fetch products. Try again.")
	default:
		respondError(w, http.StatusBadGateway, "catalog_unavailable",
			"Failed to fetch products. Try again.")
	}
}
