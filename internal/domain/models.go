package domain

type Category struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	CreatedAt string `db:"created_at" json:"created_at"`
	UpdatedAt string `db:"updated_at" json:"updated_at,omitempty"`
}

type Product struct {
	ID          string  `db:"id" json:"id"`
	CategoryID  string  `db:"category_id" json:"category_id"`
	Name        string  `db:"name" json:"name"`
	Description string  `db:"description" json:"description"`
	Price       float64 `db:"price" json:"price"`
	BasePrice   float64 `db:"base_price" json:"base_price"`
	Stock       int     `db:"stock_quantity" json:"stock_quantity"`
	ImageURL    string  `db:"image_url" json:"image_url"`
	CreatedAt   string  `db:"created_at" json:"created_at"`
	UpdatedAt   string  `db:"updated_at" json:"updated_at,omitempty"`
}

// Order statuses. Forward-only: pending -> processing -> shipped -> delivered,
// with cancelled reachable before shipping and returned after delivery.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
	StatusReturned   = "returned"
)

type Order struct {
	ID              string  `db:"id" json:"id"`
	UserID          string  `db:"user_id" json:"user_id"`
	TotalAmount     float64 `db:"total_amount" json:"total_amount"`
	DiscountAmount  float64 `db:"discount_amount" json:"discount_amount"`
	FinalAmount     float64 `db:"final_amount" json:"final_amount"`
	Status          string  `db:"status" json:"status"`
	ShippingAddress string  `db:"shipping_address" json:"shipping_address"`
	PaymentMethod   string  `db:"payment_method" json:"payment_method"`
	PaymentStatus   string  `db:"payment_status" json:"payment_status"`
	CreatedAt       string  `db:"created_at" json:"created_at"`
	ProcessingAt    string  `db:"processing_at" json:"processing_at,omitempty"`
	ShippedAt       string  `db:"shipped_at" json:"shipped_at,omitempty"`
	DeliveredAt     string  `db:"delivered_at" json:"delivered_at,omitempty"`
}

type OrderItem struct {
	ID        string  `db:"id" json:"id"`
	OrderID   string  `db:"order_id" json:"-"`
	ProductID string  `db:"product_id" json:"product_id"`
	Quantity  int     `db:"quantity" json:"quantity"`
	Price     float64 `db:"price" json:"price"`
	Name      string  `db:"name" json:"name"`
	ImageURL  string  `db:"image_url" json:"image_url"`
}

// Reward ledger entry types.
const (
	RewardEarn   = "earn"
	RewardRedeem = "redeem"
	RewardBonus  = "bonus"
)

type RewardTransaction struct {
	ID          string `db:"id" json:"id"`
	UserID      string `db:"user_id" json:"user_id"`
	Points      int    `db:"points" json:"points"` // signed: negative for redeem
	Type        string `db:"type" json:"type"`
	Description string `db:"description" json:"description"`
	CreatedAt   string `db:"created_at" json:"created_at"`
}

type SpinReward struct {
	Type  string `json:"type"` // points | none
	Value int    `json:"value"`
}

type PriceAlert struct {
	ID          string  `db:"id" json:"id"`
	UserID      string  `db:"user_id" json:"-"`
	ProductID   string  `db:"product_id" json:"product_id"`
	TargetPrice float64 `db:"target_price" json:"target_price"`
	Notified    bool    `db:"notified" json:"notified"`
	CreatedAt   string  `db:"created_at" json:"created_at"`
}
