package service

import (
	"context"

	"bistro-orders/internal/domain"
)

// CartStore is the durable local key-value storage behind the cart aggregate.
// A missing key is reported through the bool, not an error.
type CartStore interface {
	Read(key string) ([]byte, bool, error)
	Write(key string, data []byte) error
	Delete(key string) error
}

// KeyedStore is the realtime store addressed by slash-delimited paths. Orders
// and daily counters live here.
type KeyedStore interface {
	Get(ctx context.Context, path string) ([]byte, bool, error)
	Set(ctx context.Context, path string, value any) error
	GetCounter(ctx context.Context, path string) (int64, error)
	SetCounter(ctx context.Context, path string, value int64) error
}

// AtomicCounter is the optional hardened counter primitive. Stores that
// support it increment-and-wrap in a single round trip.
type AtomicCounter interface {
	IncrWrap(ctx context.Context, path string, max int64) (int64, error)
}

// CatalogRepository is the read side of the menu catalog.
type CatalogRepository interface {
	ListMenuItems(restaurant string) ([]domain.MenuItem, error)
	GetMenuItem(restaurant, itemID string) (*domain.MenuItem, error)
}

// OrderPublisher emits kitchen events. Publishing is always best-effort.
type OrderPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type CartServiceInterface interface {
	AddToCart(item *domain.MenuItem, quantity int, instructions string) error
	RemoveFromCart(lineID string) error
	UpdateQuantity(lineID string, quantity int) error
	UpdateInstructions(lineID, instructions string) error
	DuplicateLine(lineID string) error
	ClearCart() error
	Lines() []domain.CartLine
	Summary(mode string) domain.CartSummary
	IsItemInCart(itemID string) bool
	ItemQuantity(itemID string) int
	ValidateCart() domain.CartValidation
}

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, lines []domain.CartLine, cfg domain.OrderConfig, total float64, note string) (*domain.OrderReceipt, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, dineIn bool, tableNumber int) error
	ValidateOrderData(lines []domain.CartLine, cfg domain.OrderConfig, total float64) domain.CartValidation
	ReceiptQR(orderID string) ([]byte, error)
}

type CatalogServiceInterface interface {
	ListMenu() ([]domain.MenuItem, error)
	GetItem(itemID string) (*domain.MenuItem, error)
}

var _ CartServiceInterface = (*CartService)(nil)
var _ OrderServiceInterface = (*OrderService)(nil)
var _ CatalogServiceInterface = (*CatalogService)(nil)
