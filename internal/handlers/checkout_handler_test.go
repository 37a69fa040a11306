package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"retail-pos/internal/checkout"
	"retail-pos/internal/inventory"
	"retail-pos/internal/models"
	"retail-pos/internal/receipt"
	"retail-pos/internal/refnum"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubStore cubre el contrato de catálogo y de persistencia atómica
// para probar el handler sin Mongo.
type stubStore struct {
	mu         sync.Mutex
	products   map[string]*models.Product
	refs       map[string]bool
	inserted   []*models.Transaction
	failInsert error
}

func newStubStore(products ...*models.Product) *stubStore {
	s := &stubStore{
		products: make(map[string]*models.Product),
		refs:     make(map[string]bool),
	}
	for _, p := range products {
		s.products[p.ID.Hex()] = p
	}
	return s
}

func (s *stubStore) FindByID(_ context.Context, id string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, inventory.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubStore) InsertAtomic(_ context.Context, tx *models.Transaction, decrements []inventory.Line) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failInsert != nil {
		return s.failInsert
	}
	for _, dec := range decrements {
		p := s.products[dec.ProductID]
		if p.Stock < dec.Quantity {
			return &inventory.InsufficientStockError{
				ProductID: dec.ProductID,
				Name:      p.Name,
				Available: p.Stock,
				Requested: dec.Quantity,
			}
		}
	}
	for _, dec := range decrements {
		s.products[dec.ProductID].Stock -= dec.Quantity
	}
	s.refs[tx.ReferenceNumber] = true
	tx.ID = primitive.NewObjectID()
	cp := *tx
	s.inserted = append(s.inserted, &cp)
	return nil
}

func newRouter(store *stubStore) *gin.Engine {
	orchestrator := checkout.New(inventory.NewGuard(store), store, refnum.New())
	assembler := receipt.NewAssembler("MY STORE", "Professional Point of Sale")
	handler := NewCheckoutHandler(orchestrator, assembler, nil, nil)

	router := gin.New()
	router.POST("/pos/checkout", handler.Checkout)
	return router
}

func postCheckout(t *testing.T, router *gin.Engine, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/pos/checkout", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func testProduct(priceCents, stock int64) *models.Product {
	return &models.Product{
		ID:         primitive.NewObjectID(),
		SKU:        "COLA-15",
		Name:       "Cola 1.5L",
		PriceCents: priceCents,
		Stock:      stock,
		IsActive:   true,
	}
}

func TestCheckoutEndpointCash(t *testing.T) {
	cola := testProduct(10000, 10)
	store := newStubStore(cola)
	router := newRouter(store)

	payload := fmt.Sprintf(`{
		"items": [{"id": %q, "quantity": 2, "price": 100.00}],
		"subtotal": 200.00, "tax": 24.00, "discount": 0, "total": 224.00,
		"payment_method": "cash",
		"amount_received": 250.00
	}`, cola.ID.Hex())

	rec := postCheckout(t, router, payload)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Success     bool               `json:"success"`
		Transaction models.Transaction `json:"transaction"`
		Receipt     receipt.Receipt    `json:"receipt"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Regexp(t, `^TRX-\d{14}-\d{4}$`, resp.Transaction.ReferenceNumber)
	assert.Equal(t, int64(22400), resp.Transaction.TotalCents)
	require.NotNil(t, resp.Transaction.ChangeCents)
	assert.Equal(t, int64(2600), *resp.Transaction.ChangeCents)

	assert.Equal(t, "MY STORE", resp.Receipt.Header.StoreName)
	assert.Equal(t, "₱224.00", resp.Receipt.Summary.Total)
	assert.Equal(t, "CASH", resp.Receipt.Payment.Method)

	assert.Equal(t, int64(8), store.products[cola.ID.Hex()].Stock)
}

func TestCheckoutEndpointInsufficientStock(t *testing.T) {
	cola := testProduct(10000, 1)
	store := newStubStore(cola)
	router := newRouter(store)

	payload := fmt.Sprintf(`{
		"items": [{"id": %q, "quantity": 2, "price": 100.00}],
		"payment_method": "cash",
		"amount_received": 250.00
	}`, cola.ID.Hex())

	rec := postCheckout(t, router, payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	// el mensaje nombra el producto y las cantidades para que el
	// cajero pueda corregir
	assert.Contains(t, resp.Message, "Cola 1.5L")
	assert.Contains(t, resp.Message, "1 available")
	assert.Empty(t, store.inserted)
	assert.Equal(t, int64(1), store.products[cola.ID.Hex()].Stock)
}

func TestCheckoutEndpointMissingGcashReference(t *testing.T) {
	cola := testProduct(10000, 10)
	router := newRouter(newStubStore(cola))

	payload := fmt.Sprintf(`{
		"items": [{"id": %q, "quantity": 1, "price": 100.00}],
		"payment_method": "gcash",
		"gcash_reference": "   "
	}`, cola.ID.Hex())

	rec := postCheckout(t, router, payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "reference number is required")
}

func TestCheckoutEndpointInsufficientPayment(t *testing.T) {
	cola := testProduct(10000, 10)
	router := newRouter(newStubStore(cola))

	payload := fmt.Sprintf(`{
		"items": [{"id": %q, "quantity": 2, "price": 100.00}],
		"payment_method": "cash",
		"amount_received": 100.00
	}`, cola.ID.Hex())

	rec := postCheckout(t, router, payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient payment")
}

func TestCheckoutEndpointMalformedPayload(t *testing.T) {
	router := newRouter(newStubStore())

	// sin payment_method ni items: lo frena el binding
	rec := postCheckout(t, router, `{"items": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestCheckoutEndpointUnknownProduct(t *testing.T) {
	router := newRouter(newStubStore())

	payload := fmt.Sprintf(`{
		"items": [{"id": %q, "quantity": 1, "price": 5.00}],
		"payment_method": "cash",
		"amount_received": 10.00
	}`, primitive.NewObjectID().Hex())

	rec := postCheckout(t, router, payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "product not found")
}

func TestCheckoutEndpointStoreFailure(t *testing.T) {
	cola := testProduct(10000, 10)
	store := newStubStore(cola)
	store.failInsert = errors.New("mongo: connection reset")
	router := newRouter(store)

	payload := fmt.Sprintf(`{
		"items": [{"id": %q, "quantity": 1, "price": 100.00}],
		"payment_method": "cash",
		"amount_received": 112.00
	}`, cola.ID.Hex())

	rec := postCheckout(t, router, payload)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// falla de infraestructura: mensaje genérico, sin detalles internos
	assert.Contains(t, rec.Body.String(), "checkout failed")
	assert.NotContains(t, rec.Body.String(), "connection reset")
	assert.Equal(t, int64(10), store.products[cola.ID.Hex()].Stock)
}
