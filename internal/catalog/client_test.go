package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 2*time.Second)
}

func TestProducts_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":1,"title":"Backpack","price":109.95,"category":"men's clothing","image":"http://img/1.png","rating":{"rate":3.9,"count":120}},
			{"id":2,"title":"T-Shirt","price":22.3,"category":"men's clothing","image":"http://img/2.png"}
		]`))
	})

	products, err := client.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, 109.95, products[0].Price)
	assert.Equal(t, 3.9, products[0].Rating.Rate)
}

func TestProducts_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Products(context.Background())
	require.ErrorContains(t, err, "catalog returned status 500")
}

func TestProducts_MalformedJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":`))
	})

	_, err := client.Products(context.Background())
	require.ErrorContains(t, err, "decode catalog response")
}

func TestProduct_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/5", r.URL.Path)
		w.Write([]byte(`{"id":5,"title":"Gold Ring","price":19.99,"category":"jewelery"}`))
	})

	product, err := client.Product(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), product.ID)
	assert.Equal(t, 19.99, product.Price)
}

func TestProduct_NullBodyMeansNotFound(t *testing.T) {
	// The real catalog answers missing ids with a literal null.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	})

	_, err := client.Product(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProduct_NotFoundStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Product(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCategories_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/categories", r.URL.Path)
		w.Write([]byte(`["electronics","jewelery","men's clothing","women's clothing"]`))
	})

	categories, err := client.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"electronics", "jewelery", "men's clothing", "women's clothing"}, categories)
}

func TestClient_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.Products(ctx)
	require.Error(t, err)
}
