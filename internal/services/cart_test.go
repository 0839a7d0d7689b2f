package services

import (
	"errors"
	"testing"

	"freshmarket_back_end/internal/models"
)

func TestAddToCartMergesQuantities(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, models.RoleBuyer)
	vendor := seedUser(t, db, models.RoleVendor)
	product := seedProduct(t, db, vendor.ID, 599, 50)

	if err := AddToCart(db, buyer.ID, product.ID, 2); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := AddToCart(db, buyer.ID, product.ID, 3); err != nil {
		t.Fatalf("second add: %v", err)
	}

	view, err := GetCart(db, buyer.ID)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(view.Lines) != 1 {
		t.Fatalf("got %d lines, want 1 merged line", len(view.Lines))
	}
	if view.Lines[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", view.Lines[0].Quantity)
	}
}

func TestAddToCartUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, models.RoleBuyer)

	err := AddToCart(db, buyer.ID, "no-such-product", 1)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestAddToCartRejectsNonPositiveQuantity(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, models.RoleBuyer)
	vendor := seedUser(t, db, models.RoleVendor)
	product := seedProduct(t, db, vendor.ID, 599, 50)

	if err := AddToCart(db, buyer.ID, product.ID, 0); !errors.Is(err, ErrValidation) {
		t.Errorf("qty 0: err = %v, want ErrValidation", err)
	}
	if err := AddToCart(db, buyer.ID, product.ID, -2); !errors.Is(err, ErrValidation) {
		t.Errorf("qty -2: err = %v, want ErrValidation", err)
	}
}

func TestCapturedPriceSurvivesCatalogChange(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, models.RoleBuyer)
	vendor := seedUser(t, db, models.RoleVendor)
	product := seedProduct(t, db, vendor.ID, 599, 50)

	if err := AddToCart(db, buyer.ID, product.ID, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Vendor raises the price after the buyer added the product.
	if err := db.Model(product).Update("price_cents", 899).Error; err != nil {
		t.Fatalf("price update: %v", err)
	}

	// Re-adding increments quantity but keeps the captured price.
	if err := AddToCart(db, buyer.ID, product.ID, 1); err != nil {
		t.Fatalf("re-add: %v", err)
	}

	view, err := GetCart(db, buyer.ID)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if view.Lines[0].UnitPriceCents != 599 {
		t.Errorf("unit price = %d, want captured 599", view.Lines[0].UnitPriceCents)
	}
	if view.Lines[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2", view.Lines[0].Quantity)
	}
}

func TestSetCartQuantityZeroDeletesLine(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, models.RoleBuyer)
	vendor := seedUser(t, db, models.RoleVendor)
	product := seedProduct(t, db, vendor.ID, 599, 50)

	if err := AddToCart(db, buyer.ID, product.ID, 4); err != nil {
		t.Fatalf("add: %v", err)
	}

	for _, qty := range []int{0, -3} {
		if err := SetCartQuantity(db, buyer.ID, product.ID, qty); err != nil {
			// The second pass hits a now-missing line.
			if errors.Is(err, ErrNotFound) {
				continue
			}
			t.Fatalf("SetCartQuantity(%d): %v", qty, err)
		}
		view, err := GetCart(db, buyer.ID)
		if err != nil {
			t.Fatalf("GetCart: %v", err)
		}
		if len(view.Lines) != 0 {
			t.Errorf("after qty %d: %d lines remain, want 0", qty, len(view.Lines))
		}
	}
}

func TestSetCartQuantityUpdates(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, models.RoleBuyer)
	vendor := seedUser(t, db, models.RoleVendor)
	product := seedProduct(t, db, vendor.ID, 599, 50)

	if err := AddToCart(db, buyer.ID, product.ID, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := SetCartQuantity(db, buyer.ID, product.ID, 7); err != nil {
		t.Fatalf("SetCartQuantity: %v", err)
	}

	view, _ := GetCart(db, buyer.ID)
	if view.Lines[0].Quantity != 7 {
		t.Errorf("quantity = %d, want 7", view.Lines[0].Quantity)
	}
}

func TestCartTotals(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, models.RoleBuyer)
	vendor := seedUser(t, db, models.RoleVendor)
	p1 := seedProduct(t, db, vendor.ID, 599, 50)
	p2 := seedProduct(t, db, vendor.ID, 649, 50)

	if err := AddToCart(db, buyer.ID, p1.ID, 2); err != nil {
		t.Fatalf("add p1: %v", err)
	}
	if err := AddToCart(db, buyer.ID, p2.ID, 1); err != nil {
		t.Fatalf("add p2: %v", err)
	}

	view, err := GetCart(db, buyer.ID)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}

	tt := view.Totals
	if tt.SubtotalCents != 1847 {
		t.Errorf("subtotal = %d, want 1847", tt.SubtotalCents)
	}
	if tt.TotalCents != tt.SubtotalCents+tt.TaxCents+tt.ShippingCents {
		t.Errorf("total identity violated: %+v", tt)
	}
}

func TestClearCart(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, models.RoleBuyer)
	vendor := seedUser(t, db, models.RoleVendor)
	product := seedProduct(t, db, vendor.ID, 599, 50)

	if err := AddToCart(db, buyer.ID, product.ID, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := ClearCart(db, buyer.ID); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}

	view, _ := GetCart(db, buyer.ID)
	if len(view.Lines) != 0 {
		t.Errorf("%d lines remain after clear", len(view.Lines))
	}
}
