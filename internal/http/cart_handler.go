package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"shopez/internal/cart"
	"shopez/internal/catalog"
	"shopez/internal/session"
)

// ProductFetcher resolves a product for the add-to-cart bridge.
type ProductFetcher interface {
	Product(ctx context.Context, id int64) (*catalog.Product, error)
}

type CartHandler struct {
	carts    *cart.Service
	products ProductFetcher
	timeout  time.Duration
}

func NewCartHandler(carts *cart.Service, products ProductFetcher, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:    carts,
		products: products,
		timeout:  timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	Items []cart.Line `json:"items"`
	Total float64     `json:"total"`
}

// Get returns the current cart snapshot with its recomputed total. An empty
// cart is an empty item list and a zero total, not an error.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	snapshot, err := h.carts.Snapshot(ctx)
	if err != nil {
		handleCartError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(snapshot))
}

// AddItem is the detail-to-cart bridge: resolve the product, then add it.
// Failure of either the product fetch or the cart write surfaces as one
// error; there is no partial silent success.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id",
			"product_id must be positive")
		return
	}

	product, err := h.products.Product(ctx, req.ProductID)
	if err != nil {
		handleCatalogError(w, err)
		return
	}

	if err := h.carts.AddProduct(ctx, *product); err != nil {
		handleCartError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message": product.Title + " has been added to your cart.",
	})
}

// UpdateQuantity rewrites a line's quantity. A quantity of zero removes the
// line; zero-quantity lines are never stored.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity < 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity",
			"quantity must be between 0 and 99")
		return
	}

	if err := h.carts.SetQuantity(ctx, productID, req.Quantity); err != nil {
		handleCartError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Increase handles one tap on "+".
func (h *CartHandler) Increase(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.carts.Increase)
}

// Decrease handles one tap on "−"; decreasing a quantity-one line removes
// it.
func (h *CartHandler) Decrease(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.carts.Decrease)
}

func (h *CartHandler) adjust(w http.ResponseWriter, r *http.Request, op func(context.Context, int64) error) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	if err := op(ctx, productID); err != nil {
		handleCartError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// RemoveItem deletes a line outright. The intent must carry confirm=true;
// without it nothing is mutated and the caller is told confirmation is
// still pending.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	if r.URL.Query().Get("confirm") != "true" {
		respondError(w, http.StatusBadRequest, "confirmation_required",
			"removal must be confirmed with confirm=true")
		return
	}

	if err := h.carts.Remove(ctx, productID); err != nil {
		handleCartError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// Checkout acknowledges the intent without any order processing behind it.
// Only the login gate applies, so the store is never consulted.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if _, ok := session.FromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "login_required",
			"Please log in to use your cart.")
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]string{
		"status":  "accepted",
		"message": "Proceeding to checkout...",
	})
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id",
			"product_id must be a positive integer")
		return 0, false
	}
	return productID, true
}

func cartResponse(c cart.Collection) *CartResponse {
	return &CartResponse{
		Items: c.Lines(),
		Total: c.Total(),
	}
}
