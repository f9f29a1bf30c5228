package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/collectibles-storefront/internal/domain/catalog"
)

func TestCart_AddReconcilesProductStock(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/cart/items", gin.H{"product_id": 7})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, env.cookie, "session cookie should be issued")

	// the same product addressed by its string id lands on the same line
	w = env.do(t, http.MethodPost, "/cart/items", gin.H{"product_id": "7"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body cartBody
	decodeData(t, w, &body)
	require.Len(t, body.Lines, 1)
	assert.Equal(t, 2, body.Lines[0].Quantity)
	assert.Equal(t, 2, body.Totals.TotalQuantity)
	assert.Equal(t, int64(998), body.Totals.SubTotal)

	w = env.do(t, http.MethodGet, "/products?category=pokemontcg", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var products []catalog.Product
	decodeData(t, w, &products)
	assert.Equal(t, 0, stockOf(products, "7"))
	assert.Equal(t, 5, stockOf(products, "8"))

	w = env.do(t, http.MethodPost, "/cart/items", gin.H{"product_id": 7})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "out of stock")
}

func TestCart_SessionsAreIsolated(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/cart/items", gin.H{"product_id": 21})
	require.Equal(t, http.StatusOK, w.Code)

	env.cookie = nil
	w = env.do(t, http.MethodGet, "/products/21", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var product catalog.Product
	decodeData(t, w, &product)
	assert.Equal(t, 1, product.Stock)
}

func TestCart_UpdateRemoveAndClear(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/cart/items", gin.H{"product_id": 8})
	env.do(t, http.MethodPost, "/cart/items", gin.H{"product_id": 21})

	w := env.do(t, http.MethodPut, "/cart/items/8", gin.H{"quantity": 3})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body cartBody
	decodeData(t, w, &body)
	assert.Equal(t, 4, body.Totals.TotalQuantity)

	w = env.do(t, http.MethodPut, "/cart/items/8", gin.H{"quantity": 0})
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &body)
	require.Len(t, body.Lines, 1)
	assert.Equal(t, catalog.ProductID("21"), body.Lines[0].Product.ID)

	w = env.do(t, http.MethodDelete, "/cart/items/999", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodDelete, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &body)
	assert.Empty(t, body.Lines)
	assert.Zero(t, body.Totals.SubTotal)
}

func TestCart_RequestErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"missing product id", http.MethodPost, "/cart/items", gin.H{}, http.StatusBadRequest},
		{"unknown product", http.MethodPost, "/cart/items", gin.H{"product_id": 404}, http.StatusNotFound},
		{"missing quantity", http.MethodPut, "/cart/items/7", gin.H{}, http.StatusBadRequest},
		{"malformed price filter", http.MethodGet, "/products?price=cheap", nil, http.StatusBadRequest},
		{"unknown product detail", http.MethodGet, "/products/404", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestProducts_FiltersAreReported(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/products?category=pokemontcg&type=Tin&price=10-50", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data    []catalog.Product   `json:"data"`
		Filters map[string][]string `json:"filters"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Pikachu Tin", resp.Data[0].Name)
	assert.Equal(t, []string{"10-50"}, resp.Filters["price"])
	assert.Len(t, resp.Filters["type"], 1)
}
