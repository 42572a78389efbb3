package services

import (
	"database/sql"
	"errors"
	"fmt"

	"shopnest/internal/domain"
	"shopnest/internal/repos"
	"shopnest/pkg/metrics"
)

// CheckoutCommand is the validated input for order creation. Handlers build
// it from the request body; the service never touches the transport.
type CheckoutCommand struct {
	UserID        string
	Name          string
	Email         string
	Address       string
	City          string
	State         string
	ZIP           string
	PaymentMethod string
	RedeemPoints  int
}

type OrderService struct {
	Orders *repos.OrderRepo
}

func NewOrderService(orders *repos.OrderRepo) *OrderService {
	return &OrderService{Orders: orders}
}

var ErrMissingShipping = errors.New("missing required shipping or payment information")

func (s *OrderService) Place(cmd CheckoutCommand) (repos.CheckoutResult, error) {
	if cmd.Name == "" || cmd.Email == "" || cmd.Address == "" || cmd.City == "" ||
		cmd.State == "" || cmd.ZIP == "" || cmd.PaymentMethod == "" {
		return repos.CheckoutResult{}, ErrMissingShipping
	}
	if cmd.RedeemPoints < 0 {
		cmd.RedeemPoints = 0
	}

	res, err := s.Orders.Checkout(repos.CheckoutInput{
		UserID:          cmd.UserID,
		ShippingAddress: fmt.Sprintf("%s, %s, %s, %s %s", cmd.Name, cmd.Address, cmd.City, cmd.State, cmd.ZIP),
		PaymentMethod:   cmd.PaymentMethod,
		PaymentStatus:   "pending",
		RedeemPoints:    cmd.RedeemPoints,
	})
	if err != nil {
		return repos.CheckoutResult{}, err
	}
	metrics.OrdersPlaced.Inc()
	return res, nil
}

// OrderView is an order with its lines and the computed money fields the
// storefront shows.
type OrderView struct {
	domain.Order
	Subtotal float64            `json:"subtotal"`
	Discount float64            `json:"discount"`
	Total    float64            `json:"total"`
	Items    []domain.OrderItem `json:"items"`
}

func (s *OrderService) ListForUser(userID string) ([]OrderView, error) {
	orders, err := s.Orders.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.withItems(orders)
}

func (s *OrderService) ListLatest(limit int) ([]OrderView, error) {
	orders, err := s.Orders.ListLatest(limit)
	if err != nil {
		return nil, err
	}
	return s.withItems(orders)
}

func (s *OrderService) withItems(orders []domain.Order) ([]OrderView, error) {
	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		items, err := s.Orders.Items(o.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, OrderView{
			Order:    o,
			Subtotal: o.TotalAmount,
			Discount: o.DiscountAmount,
			Total:    o.FinalAmount,
			Items:    items,
		})
	}
	return out, nil
}

// legal transitions: forward-only with cancel before shipping and return
// after delivery.
var transitions = map[string][]string{
	domain.StatusPending:    {domain.StatusProcessing, domain.StatusCancelled},
	domain.StatusProcessing: {domain.StatusShipped, domain.StatusCancelled},
	domain.StatusShipped:    {domain.StatusDelivered},
	domain.StatusDelivered:  {domain.StatusReturned},
}

func canTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s *OrderService) SetStatus(orderID, status string) error {
	o, err := s.Orders.Get(orderID)
	if err != nil {
		return err
	}
	if !canTransition(o.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, status)
	}
	return s.Orders.SetStatus(orderID, status)
}

// Delete removes an order owned by the user; sql.ErrNoRows when it does not
// exist or belongs to someone else.
func (s *OrderService) Delete(orderID, userID string) error {
	ok, err := s.Orders.DeleteOwned(orderID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return sql.ErrNoRows
	}
	return nil
}
