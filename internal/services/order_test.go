package services

import (
	"errors"
	"testing"

	"freshmarket_back_end/internal/models"
)

func TestCreateOrderFromEmptyCart(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, models.RoleBuyer)

	// Lazily create the (empty) cart first.
	if _, err := GetCart(db, buyer.ID); err != nil {
		t.Fatalf("GetCart: %v", err)
	}

	_, err := CreateOrderFromCart(db, buyer.ID)
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("err = %v, want ErrEmptyCart", err)
	}

	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Errorf("%d orders created from an empty cart", count)
	}
}

func TestCreateOrderWithoutCart(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, models.RoleBuyer)

	_, err := CreateOrderFromCart(db, buyer.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateOrderSnapshotsCart(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, models.RoleBuyer)
	vendor := seedUser(t, db, models.RoleVendor)
	p1 := seedProduct(t, db, vendor.ID, 599, 10)
	p2 := seedProduct(t, db, vendor.ID, 649, 10)

	if err := AddToCart(db, buyer.ID, p1.ID, 2); err != nil {
		t.Fatalf("add p1: %v", err)
	}
	if err := AddToCart(db, buyer.ID, p2.ID, 1); err != nil {
		t.Fatalf("add p2: %v", err)
	}

	order, err := CreateOrderFromCart(db, buyer.ID)
	if err != nil {
		t.Fatalf("CreateOrderFromCart: %v", err)
	}

	if order.Status != models.OrderStatusPending {
		t.Errorf("status = %s, want pending", order.Status)
	}
	if order.PaymentStatus != models.PaymentStatusUnpaid {
		t.Errorf("payment status = %s, want unpaid", order.PaymentStatus)
	}
	if order.SubtotalCents != 1847 {
		t.Errorf("subtotal = %d, want 1847", order.SubtotalCents)
	}
	if order.TotalCents != order.SubtotalCents+order.TaxCents+order.ShippingCents {
		t.Errorf("total identity violated: %+v", order)
	}
	if order.Number == "" {
		t.Error("order number is empty")
	}

	// Lines match the pre-checkout cart snapshot.
	if len(order.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(order.Lines))
	}
	byProduct := map[string]models.OrderLine{}
	for _, l := range order.Lines {
		byProduct[l.ProductID] = l
	}
	if l := byProduct[p1.ID]; l.Quantity != 2 || l.UnitPriceCents != 599 {
		t.Errorf("p1 line = %+v, want qty 2 price 599", l)
	}
	if l := byProduct[p2.ID]; l.Quantity != 1 || l.UnitPriceCents != 649 {
		t.Errorf("p2 line = %+v, want qty 1 price 649", l)
	}

	// The originating cart is empty.
	view, err := GetCart(db, buyer.ID)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Errorf("%d cart lines remain after order creation", len(view.Lines))
	}

	// Exactly one order exists.
	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 1 {
		t.Errorf("%d orders exist, want 1", count)
	}

	// Stock was decremented inside the transaction.
	var got models.Product
	db.First(&got, "id = ?", p1.ID)
	if got.Stock != 8 {
		t.Errorf("p1 stock = %d, want 8", got.Stock)
	}
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, models.RoleBuyer)
	vendor := seedUser(t, db, models.RoleVendor)
	product := seedProduct(t, db, vendor.ID, 599, 1)

	if err := AddToCart(db, buyer.ID, product.ID, 3); err != nil {
		t.Fatalf("add: %v", err)
	}

	_, err := CreateOrderFromCart(db, buyer.ID)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}

	// The whole transaction rolled back: no order, cart intact, stock
	// untouched.
	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	if orders != 0 {
		t.Errorf("%d orders exist after failed checkout", orders)
	}
	view, _ := GetCart(db, buyer.ID)
	if len(view.Lines) != 1 {
		t.Errorf("cart has %d lines, want 1 preserved", len(view.Lines))
	}
	var got models.Product
	db.First(&got, "id = ?", product.ID)
	if got.Stock != 1 {
		t.Errorf("stock = %d, want untouched 1", got.Stock)
	}
}

func TestOrderImmuneToLaterPriceChange(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, models.RoleBuyer)
	vendor := seedUser(t, db, models.RoleVendor)
	product := seedProduct(t, db, vendor.ID, 599, 10)

	if err := AddToCart(db, buyer.ID, product.ID, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	order, err := CreateOrderFromCart(db, buyer.ID)
	if err != nil {
		t.Fatalf("CreateOrderFromCart: %v", err)
	}

	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("price_cents", 9999).Error; err != nil {
		t.Fatalf("price update: %v", err)
	}

	reloaded, err := GetOrder(db, buyer.ID, order.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if reloaded.Lines[0].UnitPriceCents != 599 {
		t.Errorf("historical price = %d, want 599", reloaded.Lines[0].UnitPriceCents)
	}
}

func TestMarkOrderPaid(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, models.RoleBuyer)
	vendor := seedUser(t, db, models.RoleVendor)
	product := seedProduct(t, db, vendor.ID, 599, 10)

	if err := AddToCart(db, buyer.ID, product.ID, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	order, err := CreateOrderFromCart(db, buyer.ID)
	if err != nil {
		t.Fatalf("CreateOrderFromCart: %v", err)
	}

	if err := MarkOrderPaid(db, order.ID, "sim_test"); err != nil {
		t.Fatalf("MarkOrderPaid: %v", err)
	}

	got, _ := GetOrder(db, buyer.ID, order.ID)
	if got.Status != models.OrderStatusConfirmed || got.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("order = %s/%s, want confirmed/paid", got.Status, got.PaymentStatus)
	}
	if got.PaymentRef != "sim_test" {
		t.Errorf("payment ref = %q, want sim_test", got.PaymentRef)
	}

	// A settled order cannot be settled again.
	if err := MarkOrderPaid(db, order.ID, "sim_other"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second settle err = %v, want ErrNotFound", err)
	}
}

func TestGetOrderEnforcesOwnership(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, models.RoleBuyer)
	other := seedUser(t, db, models.RoleBuyer)
	vendor := seedUser(t, db, models.RoleVendor)
	product := seedProduct(t, db, vendor.ID, 599, 10)

	if err := AddToCart(db, buyer.ID, product.ID, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	order, err := CreateOrderFromCart(db, buyer.ID)
	if err != nil {
		t.Fatalf("CreateOrderFromCart: %v", err)
	}

	if _, err := GetOrder(db, other.ID, order.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign access err = %v, want ErrNotFound", err)
	}
}

func TestAdvanceOrderStatus(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, models.RoleBuyer)
	vendor := seedUser(t, db, models.RoleVendor)
	stranger := seedUser(t, db, models.RoleVendor)
	product := seedProduct(t, db, vendor.ID, 599, 10)

	if err := AddToCart(db, buyer.ID, product.ID, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	order, err := CreateOrderFromCart(db, buyer.ID)
	if err != nil {
		t.Fatalf("CreateOrderFromCart: %v", err)
	}
	if err := MarkOrderPaid(db, order.ID, "sim_test"); err != nil {
		t.Fatalf("MarkOrderPaid: %v", err)
	}

	// A vendor with no lines in the order may not touch it.
	err = AdvanceOrderStatus(db, stranger.ID, order.ID, models.OrderStatusShipped)
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("stranger err = %v, want ErrUnauthorized", err)
	}

	// Skipping a step is rejected.
	err = AdvanceOrderStatus(db, vendor.ID, order.ID, models.OrderStatusDelivered)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("skip err = %v, want ErrValidation", err)
	}

	if err := AdvanceOrderStatus(db, vendor.ID, order.ID, models.OrderStatusShipped); err != nil {
		t.Fatalf("to shipped: %v", err)
	}

	// Going backwards is rejected.
	err = AdvanceOrderStatus(db, vendor.ID, order.ID, models.OrderStatusConfirmed)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("regress err = %v, want ErrValidation", err)
	}

	if err := AdvanceOrderStatus(db, vendor.ID, order.ID, models.OrderStatusDelivered); err != nil {
		t.Fatalf("to delivered: %v", err)
	}
}
