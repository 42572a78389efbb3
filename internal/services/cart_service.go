package services

import (
	"shopnest/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

func (s *CartService) Add(userID, productID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return err
	}
	if _, err := s.Prods.Get(productID); err != nil {
		return err
	}
	return s.Carts.UpsertItem(cartID, productID, qty)
}

type CartView struct {
	Items []repos.CartLine `json:"items"`
	Total float64          `json:"total"`
}

func (s *CartService) View(userID string) (CartView, error) {
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return CartView{}, err
	}
	lines, err := s.Carts.Lines(cartID)
	if err != nil {
		return CartView{}, err
	}
	total := 0.0
	for _, it := range lines {
		total += it.Subtotal
	}
	return CartView{Items: lines, Total: total}, nil
}

func (s *CartService) Count(userID string) (int, error) {
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return 0, err
	}
	return s.Carts.Count(cartID)
}

func (s *CartService) UpdateItem(userID, itemID string, qty int) (bool, error) {
	if qty < 1 {
		qty = 1
	}
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return false, err
	}
	return s.Carts.SetItemQty(cartID, itemID, qty)
}

func (s *CartService) RemoveItem(userID, itemID string) (bool, error) {
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return false, err
	}
	return s.Carts.RemoveItem(cartID, itemID)
}
