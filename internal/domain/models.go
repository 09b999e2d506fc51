package domain

// MenuItem is catalog reference data. The cart only reads it; the catalog
// service owns its lifecycle.
type MenuItem struct {
	ID           string  `json:"id"`
	RestaurantID int     `json:"restaurant_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	CategoryID   string  `json:"category_id"`
	Emoji        string  `json:"emoji,omitempty"`
	Popular      bool    `json:"popular,omitempty"`
	Special      bool    `json:"special,omitempty"`
	Available    bool    `json:"available"`
	ImageURL     string  `json:"image_url,omitempty"`
}

// CartLine is one addressable entry in the cart. Several lines may reference
// the same menu item as long as at most one of them has no instructions.
type CartLine struct {
	LineID       string  `json:"line_id"`
	ItemID       string  `json:"item_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	CategoryID   string  `json:"category_id,omitempty"`
	Emoji        string  `json:"emoji,omitempty"`
	Quantity     int     `json:"quantity"`
	Instructions string  `json:"instructions,omitempty"`
	AddedAt      int64   `json:"added_at"` // unix millis, refreshed on mutation
}

// CartSummary is derived on demand and never stored. Every monetary field is
// rounded to 2 decimals from its own raw computation.
type CartSummary struct {
	Subtotal         float64 `json:"subtotal"`
	DeliveryFee      float64 `json:"delivery_fee"`
	ServiceFee       float64 `json:"service_fee"`
	Total            float64 `json:"total"`
	ItemsCount       int     `json:"items_count"`
	UniqueItemsCount int     `json:"unique_items_count"`
}

// CartValidation is the data-shaped result of the cart and order validators.
type CartValidation struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine-in"
	OrderTypeTakeaway OrderType = "takeaway"
)

// OrderConfig is the session's order-type selection. Dine-in carries a table
// number; takeaway receives a generated client number at assembly time.
type OrderConfig struct {
	Type        OrderType `json:"type"`
	TableNumber int       `json:"table_number,omitempty"`
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// OrderItem is a cart line flattened for persistence. Instructions must be
// omitted entirely when empty; the keyed store rejects unset values.
type OrderItem struct {
	ItemID       string  `json:"item_id"`
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Instructions string  `json:"instructions,omitempty"`
}

// Order is the persisted record, created once at checkout and mutated only
// through status writes afterwards.
type Order struct {
	OrderID      string      `json:"order_id"`
	CreatedAt    string      `json:"created_at"` // RFC3339
	Status       OrderStatus `json:"status"`
	Items        []OrderItem `json:"items"`
	Total        float64     `json:"total"`
	Mode         string      `json:"mode"` // "on-site" or "takeaway"
	TableNumber  int         `json:"table_number,omitempty"`
	ClientNumber int         `json:"client_number,omitempty"`
	Note         string      `json:"note,omitempty"`
	Restaurant   string      `json:"restaurant"`
}

// OrderReceipt is what checkout returns to the caller.
type OrderReceipt struct {
	OrderID      string `json:"order_id"`
	ClientNumber int    `json:"client_number,omitempty"`
}

// OrderEvent is published to the kitchen topic after durable writes.
type OrderEvent struct {
	Type         string  `json:"type"` // "order_created" or "status_updated"
	OrderID      string  `json:"order_id"`
	Restaurant   string  `json:"restaurant"`
	Mode         string  `json:"mode,omitempty"`
	Status       string  `json:"status,omitempty"`
	Total        float64 `json:"total,omitempty"`
	ClientNumber int     `json:"client_number,omitempty"`
	Timestamp    int64   `json:"timestamp"`
}
