package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"bistro-orders/internal/domain"
	"bistro-orders/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Catalog service.CatalogServiceInterface
	Cart    service.CartServiceInterface
	Orders  service.OrderServiceInterface
}

func NewHandler(catalog service.CatalogServiceInterface, cart service.CartServiceInterface, orders service.OrderServiceInterface) *Handler {
	return &Handler{
		Catalog: catalog,
		Cart:    cart,
		Orders:  orders,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/menu/{itemId}", h.getMenuItem).Methods("GET")

	r.HandleFunc("/api/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/cart/validate", h.validateCart).Methods("GET")
	r.HandleFunc("/api/cart/items", h.addCartItem).Methods("POST")
	r.HandleFunc("/api/cart/items/{lineId}", h.updateCartItem).Methods("PUT")
	r.HandleFunc("/api/cart/items/{lineId}", h.removeCartItem).Methods("DELETE")
	r.HandleFunc("/api/cart/items/{lineId}/instructions", h.updateCartInstructions).Methods("PUT")
	r.HandleFunc("/api/cart/items/{lineId}/duplicate", h.duplicateCartItem).Methods("POST")

	r.HandleFunc("/api/checkout", h.checkout).Methods("POST")
	r.HandleFunc("/api/orders/{orderId}/status", h.updateOrderStatus).Methods("PUT")
	r.HandleFunc("/api/orders/{orderId}/qrcode", h.getOrderQRCode).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "bistro-orders",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Catalog.ListMenu()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Catalog.GetItem(mux.Vars(r)["itemId"])
	if err != nil {
		http.Error(w, "Menu item not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

// cartView is what every cart endpoint returns: the lines plus the summary
// for the requested mode.
func (h *Handler) cartView(mode string) map[string]interface{} {
	if mode == "" {
		mode = service.ModePickup
	}
	return map[string]interface{}{
		"items":   h.Cart.Lines(),
		"summary": h.Cart.Summary(mode),
	}
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.cartView(r.URL.Query().Get("mode")))
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ItemID       string `json:"item_id"`
		Quantity     int    `json:"quantity"`
		Instructions string `json:"instructions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}

	item, err := h.Catalog.GetItem(payload.ItemID)
	if err != nil {
		http.Error(w, "Menu item not found", http.StatusNotFound)
		return
	}

	if err := h.Cart.AddToCart(item, payload.Quantity, payload.Instructions); err != nil {
		writeCartError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(h.cartView(r.URL.Query().Get("mode")))
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if err := h.Cart.UpdateQuantity(mux.Vars(r)["lineId"], payload.Quantity); err != nil {
		writeCartError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.cartView(r.URL.Query().Get("mode")))
}

func (h *Handler) updateCartInstructions(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Instructions string `json:"instructions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if err := h.Cart.UpdateInstructions(mux.Vars(r)["lineId"], payload.Instructions); err != nil {
		writeCartError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.cartView(r.URL.Query().Get("mode")))
}

func (h *Handler) duplicateCartItem(w http.ResponseWriter, r *http.Request) {
	if err := h.Cart.DuplicateLine(mux.Vars(r)["lineId"]); err != nil {
		writeCartError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(h.cartView(r.URL.Query().Get("mode")))
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	if err := h.Cart.RemoveFromCart(mux.Vars(r)["lineId"]); err != nil {
		writeCartError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.cartView(r.URL.Query().Get("mode")))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.Cart.ClearCart(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) validateCart(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Cart.ValidateCart())
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Type        domain.OrderType `json:"type"`
		TableNumber int              `json:"table_number"`
		Note        string           `json:"note"`
		Total       float64          `json:"total"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if result := h.Cart.ValidateCart(); !result.IsValid {
		writeValidation(w, result)
		return
	}

	lines := h.Cart.Lines()
	cfg := domain.OrderConfig{Type: payload.Type, TableNumber: payload.TableNumber}
	if result := h.Orders.ValidateOrderData(lines, cfg, payload.Total); !result.IsValid {
		writeValidation(w, result)
		return
	}

	receipt, err := h.Orders.CreateOrder(r.Context(), lines, cfg, payload.Total, payload.Note)
	if err != nil {
		http.Error(w, "Order creation failed", http.StatusInternalServerError)
		return
	}

	// Terminal submission: the cart is done.
	_ = h.Cart.ClearCart()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(receipt)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status      domain.OrderStatus `json:"status"`
		DineIn      bool               `json:"dine_in"`
		TableNumber int                `json:"table_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.Status == "" {
		http.Error(w, "Status is required", http.StatusBadRequest)
		return
	}

	orderID := mux.Vars(r)["orderId"]
	if err := h.Orders.UpdateOrderStatus(r.Context(), orderID, payload.Status, payload.DineIn, payload.TableNumber); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"order_id": orderID, "status": string(payload.Status)})
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	qrCode, err := h.Orders.ReceiptQR(mux.Vars(r)["orderId"])
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qrCode)
}

func writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrLineNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrCartFull):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrInvalidItem), errors.Is(err, service.ErrInvalidQuantity):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeValidation(w http.ResponseWriter, result domain.CartValidation) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	json.NewEncoder(w).Encode(result)
}
