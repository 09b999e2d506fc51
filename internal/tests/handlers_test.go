package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "bistro-orders/internal/api/http"
	"bistro-orders/internal/domain"
	"bistro-orders/internal/mocks"
	"bistro-orders/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type handlerMocks struct {
	catalog *mocks.CatalogServiceInterface
	cart    *mocks.CartServiceInterface
	orders  *mocks.OrderServiceInterface
}

func setupTestRouter(t *testing.T) (*mux.Router, handlerMocks) {
	t.Helper()
	m := handlerMocks{
		catalog: mocks.NewCatalogServiceInterface(t),
		cart:    mocks.NewCartServiceInterface(t),
		orders:  mocks.NewOrderServiceInterface(t),
	}
	handler := httpapi.NewHandler(m.catalog, m.cart, m.orders)
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r, m
}

func TestHandler_healthCheck(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "bistro-orders")
}

func TestHandler_getMenu(t *testing.T) {
	router, m := setupTestRouter(t)

	m.catalog.On("ListMenu").Return([]domain.MenuItem{
		{ID: "entrecote", Name: "Entrecôte", Price: 70},
	}, nil).Once()

	req := httptest.NewRequest("GET", "/api/menu", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Entrecôte")
}

func TestHandler_addCartItem(t *testing.T) {
	item := &domain.MenuItem{ID: "entrecote", Name: "Entrecôte", Price: 70}

	tests := []struct {
		name         string
		payload      string
		prepareMocks func(m handlerMocks)
		expectedCode int
	}{
		{
			name:    "success",
			payload: `{"item_id":"entrecote","quantity":2}`,
			prepareMocks: func(m handlerMocks) {
				m.catalog.On("GetItem", "entrecote").Return(item, nil).Once()
				m.cart.On("AddToCart", item, 2, "").Return(nil).Once()
				m.cart.On("Lines").Return([]domain.CartLine{}).Once()
				m.cart.On("Summary", service.ModePickup).Return(domain.CartSummary{}).Once()
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "invalid_json",
			payload:      `bad json`,
			prepareMocks: func(m handlerMocks) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "unknown_item",
			payload: `{"item_id":"ghost"}`,
			prepareMocks: func(m handlerMocks) {
				m.catalog.On("GetItem", "ghost").Return(nil, service.ErrItemNotFound).Once()
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:    "cart_full",
			payload: `{"item_id":"entrecote","quantity":49}`,
			prepareMocks: func(m handlerMocks) {
				m.catalog.On("GetItem", "entrecote").Return(item, nil).Once()
				m.cart.On("AddToCart", item, 49, "").Return(service.ErrCartFull).Once()
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:    "invalid_quantity",
			payload: `{"item_id":"entrecote","quantity":500}`,
			prepareMocks: func(m handlerMocks) {
				m.catalog.On("GetItem", "entrecote").Return(item, nil).Once()
				m.cart.On("AddToCart", item, 500, "").Return(service.ErrInvalidQuantity).Once()
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, m := setupTestRouter(t)
			testCase.prepareMocks(m)

			req := httptest.NewRequest("POST", "/api/cart/items", bytes.NewBufferString(testCase.payload))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
		})
	}
}

func TestHandler_getCart(t *testing.T) {
	router, m := setupTestRouter(t)

	m.cart.On("Lines").Return([]domain.CartLine{
		{LineID: "l1", ItemID: "entrecote", Name: "Entrecôte", Price: 70, Quantity: 2},
	}).Once()
	m.cart.On("Summary", service.ModeDelivery).Return(domain.CartSummary{
		Subtotal: 140, DeliveryFee: 10, ServiceFee: 7, Total: 157, ItemsCount: 2, UniqueItemsCount: 1,
	}).Once()

	req := httptest.NewRequest("GET", "/api/cart?mode=delivery", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]json.RawMessage
	assert.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Contains(t, string(body["summary"]), `"total":157`)
}

func TestHandler_removeCartItem_NotFound(t *testing.T) {
	router, m := setupTestRouter(t)

	m.cart.On("RemoveFromCart", "missing").Return(service.ErrLineNotFound).Once()

	req := httptest.NewRequest("DELETE", "/api/cart/items/missing", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_checkout(t *testing.T) {
	lines := []domain.CartLine{
		{LineID: "l1", ItemID: "a", Name: "A", Price: 100, Quantity: 1, AddedAt: 1},
	}
	valid := domain.CartValidation{IsValid: true}

	tests := []struct {
		name         string
		payload      string
		prepareMocks func(m handlerMocks)
		expectedCode int
		expectedBody string
	}{
		{
			name:    "success",
			payload: `{"type":"takeaway","total":105}`,
			prepareMocks: func(m handlerMocks) {
				m.cart.On("ValidateCart").Return(valid).Once()
				m.cart.On("Lines").Return(lines).Once()
				m.orders.On("ValidateOrderData", lines, domain.OrderConfig{Type: domain.OrderTypeTakeaway}, 105.0).
					Return(valid).Once()
				m.orders.On("CreateOrder", mock.Anything, lines, domain.OrderConfig{Type: domain.OrderTypeTakeaway}, 105.0, "").
					Return(&domain.OrderReceipt{OrderID: "ord-1", ClientNumber: 7}, nil).Once()
				m.cart.On("ClearCart").Return(nil).Once()
			},
			expectedCode: http.StatusCreated,
			expectedBody: `"order_id":"ord-1"`,
		},
		{
			name:    "invalid_cart_blocks_checkout",
			payload: `{"type":"takeaway","total":105}`,
			prepareMocks: func(m handlerMocks) {
				m.cart.On("ValidateCart").
					Return(domain.CartValidation{IsValid: false, Errors: []string{"cart is empty"}}).Once()
			},
			expectedCode: http.StatusUnprocessableEntity,
			expectedBody: "cart is empty",
		},
		{
			name:    "inconsistent_total",
			payload: `{"type":"takeaway","total":115}`,
			prepareMocks: func(m handlerMocks) {
				m.cart.On("ValidateCart").Return(valid).Once()
				m.cart.On("Lines").Return(lines).Once()
				m.orders.On("ValidateOrderData", lines, domain.OrderConfig{Type: domain.OrderTypeTakeaway}, 115.0).
					Return(domain.CartValidation{IsValid: false, Errors: []string{"inconsistent total: got 115.00, expected 105.00"}}).Once()
			},
			expectedCode: http.StatusUnprocessableEntity,
			expectedBody: "inconsistent total",
		},
		{
			name:    "order_creation_failed",
			payload: `{"type":"dine-in","table_number":3,"total":105}`,
			prepareMocks: func(m handlerMocks) {
				cfg := domain.OrderConfig{Type: domain.OrderTypeDineIn, TableNumber: 3}
				m.cart.On("ValidateCart").Return(valid).Once()
				m.cart.On("Lines").Return(lines).Once()
				m.orders.On("ValidateOrderData", lines, cfg, 105.0).Return(valid).Once()
				m.orders.On("CreateOrder", mock.Anything, lines, cfg, 105.0, "").
					Return(nil, service.ErrOrderCreationFailed).Once()
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, m := setupTestRouter(t)
			testCase.prepareMocks(m)

			req := httptest.NewRequest("POST", "/api/checkout", bytes.NewBufferString(testCase.payload))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
			}
		})
	}
}

func TestHandler_updateOrderStatus(t *testing.T) {
	router, m := setupTestRouter(t)

	m.orders.On("UpdateOrderStatus", mock.Anything, "ord-1", domain.StatusReady, true, 3).
		Return(nil).Once()

	payload := `{"status":"ready","dine_in":true,"table_number":3}`
	req := httptest.NewRequest("PUT", "/api/orders/ord-1/status", bytes.NewBufferString(payload))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"ready"`)
}

func TestHandler_updateOrderStatus_MissingStatus(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest("PUT", "/api/orders/ord-1/status", bytes.NewBufferString(`{}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_getOrderQRCode(t *testing.T) {
	router, m := setupTestRouter(t)

	m.orders.On("ReceiptQR", "ord-1").Return([]byte{0x89, 0x50, 0x4e, 0x47}, nil).Once()

	req := httptest.NewRequest("GET", "/api/orders/ord-1/qrcode", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "image/png", recorder.Header().Get("Content-Type"))
}
