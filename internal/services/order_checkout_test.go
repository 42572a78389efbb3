package services_test

import (
	"errors"
	"testing"

	"shopnest/internal/repos"
	"shopnest/internal/services"
)

func checkoutSvc(t *testing.T) (*services.OrderService, *repos.RewardRepo, func()) {
	t.Helper()
	db := memdb(t)
	svc := services.NewOrderService(repos.NewOrderRepo(db))
	return svc, repos.NewRewardRepo(db), func() { db.Close() }
}

func baseCommand(userID string) services.CheckoutCommand {
	return services.CheckoutCommand{
		UserID:        userID,
		Name:          "One Tester",
		Email:         "one@shopnest.test",
		Address:       "1 Main St",
		City:          "College Park",
		State:         "MD",
		ZIP:           "20740",
		PaymentMethod: "card",
	}
}

func TestCheckoutHappyPath(t *testing.T) {
	db := memdb(t)
	defer db.Close()

	seedProduct(t, db, "p-a", "Widget A", 100, 5)
	seedProduct(t, db, "p-b", "Widget B", 50, 5)
	seedCart(t, db, "c-1", "u-1")
	seedCartItem(t, db, "c-1", "p-a", 2)
	seedCartItem(t, db, "c-1", "p-b", 1)

	rewards := repos.NewRewardRepo(db)
	if err := rewards.Earn("u-1", 40, "seed"); err != nil {
		t.Fatal(err)
	}

	svc := services.NewOrderService(repos.NewOrderRepo(db))
	cmd := baseCommand("u-1")
	cmd.RedeemPoints = 30

	res, err := svc.Place(cmd)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if res.Subtotal != 250 {
		t.Errorf("subtotal = %v, want 250", res.Subtotal)
	}
	if res.Discount != 30 {
		t.Errorf("discount = %v, want 30", res.Discount)
	}
	if res.FinalAmount != 220 {
		t.Errorf("final = %v, want 220", res.FinalAmount)
	}
	if res.EarnedPoints != 22 {
		t.Errorf("earned = %d, want 22", res.EarnedPoints)
	}

	if got := stockOf(t, db, "p-a"); got != 3 {
		t.Errorf("stock of p-a = %d, want 3", got)
	}
	if got := stockOf(t, db, "p-b"); got != 4 {
		t.Errorf("stock of p-b = %d, want 4", got)
	}
	if n := count(t, db, `SELECT COUNT(*) FROM cart_items WHERE cart_id = 'c-1'`); n != 0 {
		t.Errorf("cart still has %d items after checkout", n)
	}
	if n := count(t, db, `SELECT COUNT(*) FROM order_items WHERE order_id = ?`, res.OrderID); n != 2 {
		t.Errorf("order has %d lines, want 2", n)
	}

	// 40 seeded - 30 redeemed + 22 earned.
	bal, err := rewards.Balance("u-1")
	if err != nil {
		t.Fatal(err)
	}
	if bal != 32 {
		t.Errorf("balance = %d, want 32", bal)
	}
	sum, err := rewards.LedgerSum("u-1")
	if err != nil {
		t.Fatal(err)
	}
	if sum != bal {
		t.Errorf("ledger sum %d disagrees with balance %d", sum, bal)
	}
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	db := memdb(t)
	defer db.Close()

	seedProduct(t, db, "p-a", "Widget A", 100, 1)
	seedCart(t, db, "c-1", "u-1")
	seedCartItem(t, db, "c-1", "p-a", 3)

	rewards := repos.NewRewardRepo(db)
	if err := rewards.Earn("u-1", 40, "seed"); err != nil {
		t.Fatal(err)
	}

	svc := services.NewOrderService(repos.NewOrderRepo(db))
	cmd := baseCommand("u-1")
	cmd.RedeemPoints = 10

	_, err := svc.Place(cmd)
	var se *repos.StockError
	if !errors.As(err, &se) {
		t.Fatalf("Place error = %v, want StockError", err)
	}
	if se.Product != "Widget A" {
		t.Errorf("StockError names %q, want Widget A", se.Product)
	}

	// Nothing moved.
	if n := count(t, db, `SELECT COUNT(*) FROM orders`); n != 0 {
		t.Errorf("found %d orders after failed checkout", n)
	}
	if got := stockOf(t, db, "p-a"); got != 1 {
		t.Errorf("stock of p-a = %d, want 1", got)
	}
	if n := count(t, db, `SELECT COUNT(*) FROM cart_items WHERE cart_id = 'c-1'`); n != 1 {
		t.Errorf("cart has %d items, want 1", n)
	}
	bal, _ := rewards.Balance("u-1")
	if bal != 40 {
		t.Errorf("balance = %d, want untouched 40", bal)
	}
}

func TestCheckoutInsufficientPointsRollsBack(t *testing.T) {
	db := memdb(t)
	defer db.Close()

	seedProduct(t, db, "p-a", "Widget A", 100, 5)
	seedCart(t, db, "c-1", "u-1")
	seedCartItem(t, db, "c-1", "p-a", 1)

	rewards := repos.NewRewardRepo(db)
	if err := rewards.Earn("u-1", 5, "seed"); err != nil {
		t.Fatal(err)
	}

	svc := services.NewOrderService(repos.NewOrderRepo(db))
	cmd := baseCommand("u-1")
	cmd.RedeemPoints = 50

	if _, err := svc.Place(cmd); !errors.Is(err, repos.ErrInsufficientPoints) {
		t.Fatalf("Place error = %v, want ErrInsufficientPoints", err)
	}
	if n := count(t, db, `SELECT COUNT(*) FROM orders`); n != 0 {
		t.Errorf("found %d orders after failed checkout", n)
	}
	if got := stockOf(t, db, "p-a"); got != 5 {
		t.Errorf("stock of p-a = %d, want 5", got)
	}
	bal, _ := rewards.Balance("u-1")
	if bal != 5 {
		t.Errorf("balance = %d, want untouched 5", bal)
	}
	// The failed redemption must not leave a ledger row behind.
	sum, _ := rewards.LedgerSum("u-1")
	if sum != 5 {
		t.Errorf("ledger sum = %d, want 5", sum)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _, closeDB := checkoutSvc(t)
	defer closeDB()

	if _, err := svc.Place(baseCommand("u-1")); !errors.Is(err, repos.ErrCartEmpty) {
		t.Fatalf("Place error = %v, want ErrCartEmpty", err)
	}
}

func TestCheckoutMissingShipping(t *testing.T) {
	svc, _, closeDB := checkoutSvc(t)
	defer closeDB()

	cmd := baseCommand("u-1")
	cmd.ZIP = ""
	if _, err := svc.Place(cmd); !errors.Is(err, services.ErrMissingShipping) {
		t.Fatalf("Place error = %v, want ErrMissingShipping", err)
	}
}

func TestCheckoutDiscountNeverBelowZero(t *testing.T) {
	db := memdb(t)
	defer db.Close()

	seedProduct(t, db, "p-a", "Widget A", 10, 5)
	seedCart(t, db, "c-1", "u-1")
	seedCartItem(t, db, "c-1", "p-a", 1)

	rewards := repos.NewRewardRepo(db)
	if err := rewards.Earn("u-1", 100, "seed"); err != nil {
		t.Fatal(err)
	}

	svc := services.NewOrderService(repos.NewOrderRepo(db))
	cmd := baseCommand("u-1")
	cmd.RedeemPoints = 100

	res, err := svc.Place(cmd)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if res.FinalAmount != 0 {
		t.Errorf("final = %v, want clamped 0", res.FinalAmount)
	}
	if res.EarnedPoints != 0 {
		t.Errorf("earned = %d, want 0 on a zero-total order", res.EarnedPoints)
	}
}
