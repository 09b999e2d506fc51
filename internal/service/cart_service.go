package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"bistro-orders/internal/domain"

	"github.com/google/uuid"
)

const (
	// MaxLineQuantity caps a single cart line; adds past it clamp silently.
	MaxLineQuantity = 99
	// MaxCartQuantity caps the summed quantity across all lines.
	MaxCartQuantity = 50
	// MaxInstructionsLength caps the free-text annotation on a line.
	MaxInstructionsLength = 200

	ServiceFeeRate = 0.05
	DeliveryFee    = 10.0

	ModeDelivery = "delivery"
	ModePickup   = "pickup"

	// cartStorageKey carries a schema version suffix. Changing the CartLine
	// shape requires bumping it so old payloads are not misread.
	cartStorageKey = "bistro:cart:v2"
)

var (
	ErrInvalidItem     = errors.New("item is missing an id, name or positive price")
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 99")
	ErrCartFull        = errors.New("cart cannot hold more than 50 items")
	ErrLineNotFound    = errors.New("cart line not found")
)

// CartService owns the session's cart lines. Every operation is an atomic
// read-modify-write over the full line list; the in-memory state stays the
// source of truth even when persistence fails.
type CartService struct {
	mu    sync.Mutex
	lines []domain.CartLine
	store CartStore
}

// NewCartService rehydrates the cart from durable storage. Structurally
// broken lines are dropped and the filtered list re-persisted; an unreadable
// blob is erased so corruption never blocks startup.
func NewCartService(store CartStore) *CartService {
	s := &CartService{store: store}
	s.rehydrate()
	return s
}

func (s *CartService) rehydrate() {
	if s.store == nil {
		return
	}
	data, found, err := s.store.Read(cartStorageKey)
	if err != nil {
		log.Printf("cart: storage read failed, starting empty: %v", err)
		_ = s.store.Delete(cartStorageKey)
		return
	}
	if !found {
		return
	}

	var stored []domain.CartLine
	if err := json.Unmarshal(data, &stored); err != nil {
		log.Printf("cart: corrupt blob, starting empty: %v", err)
		_ = s.store.Delete(cartStorageKey)
		return
	}

	kept := make([]domain.CartLine, 0, len(stored))
	for _, line := range stored {
		if validLine(line) {
			kept = append(kept, line)
		}
	}
	s.lines = kept

	if dropped := len(stored) - len(kept); dropped > 0 {
		log.Printf("cart: dropped %d invalid line(s) during rehydration", dropped)
		s.persist()
	}
}

// validLine is the structural predicate shared by rehydration and the cart
// validator.
func validLine(l domain.CartLine) bool {
	return l.LineID != "" &&
		l.ItemID != "" &&
		l.Name != "" &&
		l.Price > 0 &&
		l.Quantity >= 1 && l.Quantity <= MaxLineQuantity &&
		l.AddedAt > 0
}

// persist writes the full cart. Failures are logged, never surfaced; the
// caller's mutation has already happened in memory.
func (s *CartService) persist() {
	if s.store == nil {
		return
	}
	data, err := json.Marshal(s.lines)
	if err != nil {
		log.Printf("cart: marshal failed: %v", err)
		return
	}
	if err := s.store.Write(cartStorageKey, data); err != nil {
		log.Printf("cart: persist failed: %v", err)
	}
}

func (s *CartService) AddToCart(item *domain.MenuItem, quantity int, instructions string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(item, quantity, instructions)
}

func (s *CartService) addLocked(item *domain.MenuItem, quantity int, instructions string) error {
	if item == nil || item.ID == "" || item.Name == "" || item.Price <= 0 {
		return ErrInvalidItem
	}
	if quantity < 1 || quantity > MaxLineQuantity {
		return ErrInvalidQuantity
	}
	if s.totalQuantityLocked()+quantity > MaxCartQuantity {
		return ErrCartFull
	}

	instructions = trimInstructions(instructions)
	now := time.Now().UnixMilli()

	if instructions == "" {
		// Merge into an existing annotation-free line for the same item.
		for i := range s.lines {
			if s.lines[i].ItemID == item.ID && s.lines[i].Instructions == "" {
				merged := s.lines[i].Quantity + quantity
				if merged > MaxLineQuantity {
					merged = MaxLineQuantity
				}
				s.lines[i].Quantity = merged
				s.lines[i].AddedAt = now
				s.persist()
				return nil
			}
		}
	}

	// Instruction-bearing adds are always their own entity, even when the
	// instructions text matches an existing line.
	s.lines = append(s.lines, domain.CartLine{
		LineID:       uuid.NewString(),
		ItemID:       item.ID,
		Name:         item.Name,
		Price:        item.Price,
		CategoryID:   item.CategoryID,
		Emoji:        item.Emoji,
		Quantity:     quantity,
		Instructions: instructions,
		AddedAt:      now,
	})
	s.persist()
	return nil
}

func (s *CartService) RemoveFromCart(lineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(lineID)
}

func (s *CartService) removeLocked(lineID string) error {
	for i := range s.lines {
		if s.lines[i].LineID == lineID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persist()
			return nil
		}
	}
	return ErrLineNotFound
}

func (s *CartService) UpdateQuantity(lineID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return s.removeLocked(lineID)
	}
	if quantity > MaxLineQuantity {
		return ErrInvalidQuantity
	}
	for i := range s.lines {
		if s.lines[i].LineID == lineID {
			s.lines[i].Quantity = quantity
			s.lines[i].AddedAt = time.Now().UnixMilli()
			s.persist()
			return nil
		}
	}
	return ErrLineNotFound
}

// UpdateInstructions changes a line's annotation in place. The line keeps its
// identity; no merge or split of other lines is re-evaluated.
func (s *CartService) UpdateInstructions(lineID, instructions string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].LineID == lineID {
			s.lines[i].Instructions = trimInstructions(instructions)
			s.lines[i].AddedAt = time.Now().UnixMilli()
			s.persist()
			return nil
		}
	}
	return ErrLineNotFound
}

// DuplicateLine re-runs the add logic with the found line's item, quantity
// and instructions, so annotation-free duplicates may merge while
// instruction-bearing ones always create a new line.
func (s *CartService) DuplicateLine(lineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].LineID == lineID {
			line := s.lines[i]
			item := &domain.MenuItem{
				ID:         line.ItemID,
				Name:       line.Name,
				Price:      line.Price,
				CategoryID: line.CategoryID,
				Emoji:      line.Emoji,
			}
			return s.addLocked(item, line.Quantity, line.Instructions)
		}
	}
	return ErrLineNotFound
}

func (s *CartService) ClearCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	if s.store != nil {
		if err := s.store.Delete(cartStorageKey); err != nil {
			log.Printf("cart: clear storage failed: %v", err)
		}
	}
	return nil
}

func (s *CartService) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Summary computes totals for the given mode. Each monetary field is rounded
// from its own raw computation, not accumulated then rounded once.
func (s *CartService) Summary(mode string) domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	var subtotal float64
	var itemsCount int
	for _, line := range s.lines {
		subtotal += line.Price * float64(line.Quantity)
		itemsCount += line.Quantity
	}

	deliveryFee := 0.0
	if mode == ModeDelivery {
		deliveryFee = DeliveryFee
	}
	serviceFee := subtotal * ServiceFeeRate

	return domain.CartSummary{
		Subtotal:         Round2(subtotal),
		DeliveryFee:      Round2(deliveryFee),
		ServiceFee:       Round2(serviceFee),
		Total:            Round2(subtotal + deliveryFee + serviceFee),
		ItemsCount:       itemsCount,
		UniqueItemsCount: len(s.lines),
	}
}

func (s *CartService) IsItemInCart(itemID string) bool {
	return s.ItemQuantity(itemID) > 0
}

// ItemQuantity aggregates across all lines for the item, including
// instruction-bearing duplicates.
func (s *CartService) ItemQuantity(itemID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, line := range s.lines {
		if line.ItemID == itemID {
			total += line.Quantity
		}
	}
	return total
}

// ValidateCart re-checks the structural invariants before checkout. Errors
// are collected, not short-circuited, except for the empty-cart case.
func (s *CartService) ValidateCart() domain.CartValidation {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) == 0 {
		return domain.CartValidation{IsValid: false, Errors: []string{"cart is empty"}}
	}

	var errs []string
	total := 0
	for i, line := range s.lines {
		if !validLine(line) {
			name := line.Name
			if name == "" {
				name = "unknown"
			}
			errs = append(errs, fmt.Sprintf("line %d (%s) is invalid", i, name))
		}
		total += line.Quantity
	}
	if total > MaxCartQuantity {
		errs = append(errs, fmt.Sprintf("cart holds %d items, limit is %d", total, MaxCartQuantity))
	}

	return domain.CartValidation{IsValid: len(errs) == 0, Errors: errs}
}

func (s *CartService) totalQuantityLocked() int {
	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

func trimInstructions(instructions string) string {
	instructions = strings.TrimSpace(instructions)
	if len(instructions) > MaxInstructionsLength {
		instructions = instructions[:MaxInstructionsLength]
	}
	return instructions
}
