package handlers

import (
	"testing"

	"basina-backend/internal/models"
)

func TestCourseLinePriceAppliesPercentageDiscount(t *testing.T) {
	if got := courseLinePrice(1000000, 10); got != 900000 {
		t.Fatalf("expected 900000 for 10%% off 1000000, got %v", got)
	}
	if got := courseLinePrice(500000, 50); got != 250000 {
		t.Fatalf("expected 250000 for 50%% off 500000, got %v", got)
	}
}

func TestCourseLinePriceZeroDiscountKeepsPrice(t *testing.T) {
	if got := courseLinePrice(750000, 0); got != 750000 {
		t.Fatalf("expected unchanged price 750000, got %v", got)
	}
}

func TestOrderTotalSumsLinePrices(t *testing.T) {
	lines := []models.OrderLine{
		{Price: 900000},
		{Price: 250000},
	}
	if got := orderTotal(lines); got != 1150000 {
		t.Fatalf("expected total 1150000, got %v", got)
	}
}

func TestOrderTotalEmptyOrder(t *testing.T) {
	if got := orderTotal(nil); got != 0 {
		t.Fatalf("expected zero total for empty order, got %v", got)
	}
}

func TestOrderFinalAmountSubtractsBothDiscounts(t *testing.T) {
	if got := orderFinalAmount(1000000, 50000, 100000); got != 850000 {
		t.Fatalf("expected final amount 850000, got %v", got)
	}
	if got := orderFinalAmount(1000000, 0, 0); got != 1000000 {
		t.Fatalf("expected final amount to equal total without discounts, got %v", got)
	}
}
