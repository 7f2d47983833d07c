package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"shopez/internal/catalog"
)

// listTitleLimit matches the truncation the product list applies before
// rendering long titles.
const listTitleLimit = 40

// CatalogSource is the slice of the catalog client the handlers need.
type CatalogSource interface {
	Products(ctx context.Context) ([]catalog.Product, error)
	Product(ctx context.Context, id int64) (*catalog.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

type CatalogHandler struct {
	source  CatalogSource
	timeout time.Duration
}

func NewCatalogHandler(source CatalogSource, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{
		source:  source,
		timeout: timeout,
	}
}

type ProductListItem struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
}

type ProductListResponse struct {
	Products []ProductListItem `json:"products"`
	Category string            `json:"category"`
}

// List returns the catalog, optionally narrowed by ?category=. The filter
// runs locally over the fetched list; selecting a category never triggers a
// second fetch.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.source.Products(ctx)
	if err != nil {
		handleCatalogError(w, err)
		return
	}

	selection := r.URL.Query().Get("category")
	if selection == "" {
		selection = catalog.CategoryAll
	}
	products = catalog.Filter(products, selection)

	items := make([]ProductListItem, len(products))
	for i, p := range products {
		items[i] = ProductListItem{
			ID:       p.ID,
			Title:    truncateTitle(p.Title),
			Price:    p.Price,
			Image:    p.Image,
			Category: p.Category,
		}
	}

	respondJSON(w, http.StatusOK, &ProductListResponse{Products: items, Category: selection})
}

// Detail returns one product with its full description and rating.
func (h *CatalogHandler) Detail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id",
			"product id must be a positive integer")
		return
	}

	product, err := h.source.Product(ctx, id)
	if err != nil {
		handleCatalogError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// Categories returns the selectable categories with "all" as the first
// entry.
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.source.Categories(ctx)
	if err != nil {
		handleCatalogError(w, err)
		return
	}

	all := make([]string, 0, len(categories)+1)
	all = append(all, catalog.CategoryAll)
	all = append(all, categories...)

	respondJSON(w, http.StatusOK, &CategoriesResponse{Categories: all})
}

func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= listTitleLimit {
		return title
	}
	return string(runes[:listTitleLimit]) + "..."
}
