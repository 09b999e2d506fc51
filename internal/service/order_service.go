package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"
	"time"

	"bistro-orders/internal/domain"

	"github.com/google/uuid"
)

const (
	// counterCeiling is where the daily client number wraps back to 1.
	counterCeiling = 2000

	MaxTableNumber = 999

	ModeOnSite   = "on-site"
	ModeTakeaway = "takeaway"

	totalTolerance = 0.01
)

var ErrOrderCreationFailed = errors.New("order creation failed")

// OrderService assembles validated carts into durable order records, numbers
// takeaway orders against the daily counter and emits kitchen events.
type OrderService struct {
	restaurant    string
	store         KeyedStore
	publisher     OrderPublisher
	qrEncoder     QRGenerator
	atomicCounter bool
}

// NewOrderService builds the service for one restaurant. atomicCounter
// selects the hardened increment-and-wrap primitive when the store supports
// it; the default read-then-write matches the original last-writer-wins
// behavior.
func NewOrderService(restaurant string, store KeyedStore, publisher OrderPublisher, qr QRGenerator, atomicCounter bool) *OrderService {
	return &OrderService{
		restaurant:    restaurant,
		store:         store,
		publisher:     publisher,
		qrEncoder:     qr,
		atomicCounter: atomicCounter,
	}
}

// CreateOrder persists the order record and returns its id plus, for
// takeaway, the generated client number. Callers are expected to have run
// ValidateOrderData first; any failure here surfaces as a single generic
// error with the root cause logged only.
func (s *OrderService) CreateOrder(ctx context.Context, lines []domain.CartLine, cfg domain.OrderConfig, total float64, note string) (*domain.OrderReceipt, error) {
	orderID := uuid.NewString()

	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		item := domain.OrderItem{
			ItemID:   line.ItemID,
			Name:     line.Name,
			Quantity: line.Quantity,
			Price:    line.Price,
		}
		if instructions := strings.TrimSpace(line.Instructions); instructions != "" {
			item.Instructions = instructions
		}
		items = append(items, item)
	}

	order := domain.Order{
		OrderID:    orderID,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		Status:     domain.StatusPending,
		Items:      items,
		Total:      total,
		Restaurant: s.restaurant,
		Note:       strings.TrimSpace(note),
	}

	clientNumber := 0
	if cfg.Type == domain.OrderTypeTakeaway {
		order.Mode = ModeTakeaway
		clientNumber = s.clientNumber(ctx)
		order.ClientNumber = clientNumber
	} else {
		order.Mode = ModeOnSite
		if cfg.TableNumber > 0 {
			order.TableNumber = cfg.TableNumber
		}
	}

	record, err := sanitizeRecord(order)
	if err != nil {
		log.Printf("order: sanitize failed for %s: %v", orderID, err)
		return nil, ErrOrderCreationFailed
	}

	path := s.orderPath(orderID, cfg.Type == domain.OrderTypeDineIn, cfg.TableNumber)
	if err := s.store.Set(ctx, path, record); err != nil {
		log.Printf("order: write failed for %s: %v", orderID, err)
		return nil, ErrOrderCreationFailed
	}

	if s.publisher != nil {
		_ = s.publisher.PublishOrderEvent(ctx, domain.OrderEvent{
			Type:         "order_created",
			OrderID:      orderID,
			Restaurant:   s.restaurant,
			Mode:         order.Mode,
			Total:        total,
			ClientNumber: clientNumber,
			Timestamp:    time.Now().UnixMilli(),
		})
	}

	return &domain.OrderReceipt{OrderID: orderID, ClientNumber: clientNumber}, nil
}

// UpdateOrderStatus writes only the status field at the derived path. Any
// status may follow any status; transition policy belongs to the kitchen
// tooling.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, dineIn bool, tableNumber int) error {
	path := s.orderPath(orderID, dineIn, tableNumber) + "/status"
	if err := s.store.Set(ctx, path, string(status)); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	if s.publisher != nil {
		_ = s.publisher.PublishOrderEvent(ctx, domain.OrderEvent{
			Type:       "status_updated",
			OrderID:    orderID,
			Restaurant: s.restaurant,
			Status:     string(status),
			Timestamp:  time.Now().UnixMilli(),
		})
	}
	return nil
}

// ValidateOrderData is the pre-submission gate. All checks are collected.
// The total cross-check covers subtotal plus the service fee only; the
// delivery fee is not part of the formula.
func (s *OrderService) ValidateOrderData(lines []domain.CartLine, cfg domain.OrderConfig, total float64) domain.CartValidation {
	var errs []string

	if len(lines) == 0 {
		errs = append(errs, "cart is empty")
	}
	var subtotal float64
	for i, line := range lines {
		if line.ItemID == "" || line.Name == "" {
			errs = append(errs, fmt.Sprintf("line %d is missing an id or name", i))
		}
		if line.Price <= 0 {
			errs = append(errs, fmt.Sprintf("line %d has a non-positive price", i))
		}
		if line.Quantity <= 0 {
			errs = append(errs, fmt.Sprintf("line %d has a non-positive quantity", i))
		}
		subtotal += line.Price * float64(line.Quantity)
	}

	if cfg.Type == "" {
		errs = append(errs, "order type is not set")
	}
	if cfg.Type == domain.OrderTypeDineIn && (cfg.TableNumber < 1 || cfg.TableNumber > MaxTableNumber) {
		errs = append(errs, fmt.Sprintf("dine-in orders require a table number between 1 and %d", MaxTableNumber))
	}
	if total <= 0 {
		errs = append(errs, "total must be positive")
	}

	if len(lines) > 0 && total > 0 {
		expected := Round2(subtotal * (1 + ServiceFeeRate))
		if math.Abs(total-expected) > totalTolerance {
			errs = append(errs, fmt.Sprintf("inconsistent total: got %.2f, expected %.2f", total, expected))
		}
	}

	return domain.CartValidation{IsValid: len(errs) == 0, Errors: errs}
}

func (s *OrderService) ReceiptQR(orderID string) ([]byte, error) {
	if s.qrEncoder == nil {
		return nil, errors.New("qr generation not configured")
	}
	return s.qrEncoder.Generate(orderID)
}

// clientNumber produces the short daily call number for takeaway orders.
// Numbering is best-effort: any counter failure falls back to a random
// number in [1, 2000] rather than failing order creation.
func (s *OrderService) clientNumber(ctx context.Context) int {
	day := time.Now().UTC().Format("2006-01-02")
	path := "counters/" + s.restaurant + "/" + day

	if s.atomicCounter {
		if counter, ok := s.store.(AtomicCounter); ok {
			next, err := counter.IncrWrap(ctx, path, counterCeiling)
			if err == nil {
				return int(next)
			}
			log.Printf("order: atomic counter failed, falling back: %v", err)
			return rand.Intn(counterCeiling) + 1
		}
	}

	current, err := s.store.GetCounter(ctx, path)
	if err != nil {
		log.Printf("order: counter read failed, falling back: %v", err)
		return rand.Intn(counterCeiling) + 1
	}

	next := current + 1
	if current >= counterCeiling {
		next = 1
	}

	// Read and write are separate round trips, last writer wins. Two
	// simultaneous checkouts can receive the same number.
	if err := s.store.SetCounter(ctx, path, next); err != nil {
		log.Printf("order: counter write failed, falling back: %v", err)
		return rand.Intn(counterCeiling) + 1
	}
	return int(next)
}

func (s *OrderService) orderPath(orderID string, dineIn bool, tableNumber int) string {
	if dineIn {
		return fmt.Sprintf("restaurants/%s/tables/%d/%s", s.restaurant, tableNumber, orderID)
	}
	return fmt.Sprintf("restaurants/%s/takeaway/%s", s.restaurant, orderID)
}
