package handlers

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"basina-backend/internal/models"
)

func TestBuildOrderFromRequestInitialState(t *testing.T) {
	userID := primitive.NewObjectID()
	courseID := primitive.NewObjectID()
	now := time.Now()

	order, err := buildOrderFromRequest(createOrderRequest{
		Courses:       []createOrderLineRequest{{CourseID: courseID.Hex()}},
		PaymentMethod: "online",
		CouponCode:    " WELCOME10 ",
		Notes:         "  call before class  ",
	}, userID, now)
	if err != nil {
		t.Fatalf("buildOrderFromRequest returned error: %v", err)
	}

	if order.Status != models.OrderStatusPending {
		t.Fatalf("expected pending order status, got %q", order.Status)
	}
	if order.PaymentStatus != models.PaymentStatusPending {
		t.Fatalf("expected pending payment status, got %q", order.PaymentStatus)
	}
	if len(order.Courses) != 1 || order.Courses[0].Course != courseID {
		t.Fatalf("expected one line for course %s, got %+v", courseID.Hex(), order.Courses)
	}
	if order.UserID != userID {
		t.Fatal("expected order to belong to the requesting user")
	}
	if order.CouponCode != "WELCOME10" {
		t.Fatalf("expected trimmed coupon code, got %q", order.CouponCode)
	}
	if order.Notes != "call before class" {
		t.Fatalf("expected trimmed notes, got %q", order.Notes)
	}
	if !order.CreatedAt.Equal(now) || !order.UpdatedAt.Equal(now) {
		t.Fatal("expected timestamps to match creation time")
	}
}

func TestBuildOrderFromRequestRejectsEmptyCourseList(t *testing.T) {
	_, err := buildOrderFromRequest(createOrderRequest{
		PaymentMethod: "online",
	}, primitive.NewObjectID(), time.Now())
	if err == nil {
		t.Fatal("expected error for order without courses")
	}
}

func TestBuildOrderFromRequestRejectsUnknownPaymentMethod(t *testing.T) {
	_, err := buildOrderFromRequest(createOrderRequest{
		Courses:       []createOrderLineRequest{{CourseID: primitive.NewObjectID().Hex()}},
		PaymentMethod: "crypto",
	}, primitive.NewObjectID(), time.Now())
	if err == nil {
		t.Fatal("expected error for unknown payment method")
	}
}

func TestBuildOrderFromRequestRejectsMalformedCourseID(t *testing.T) {
	_, err := buildOrderFromRequest(createOrderRequest{
		Courses:       []createOrderLineRequest{{CourseID: "not-an-object-id"}},
		PaymentMethod: "cash",
	}, primitive.NewObjectID(), time.Now())
	if err == nil {
		t.Fatal("expected error for malformed course id")
	}
}

func TestShouldConfirmOrderOnlyFromPending(t *testing.T) {
	pending := models.Order{Status: models.OrderStatusPending}
	confirmed := models.Order{Status: models.OrderStatusConfirmed}
	cancelled := models.Order{Status: models.OrderStatusCancelled}

	if !shouldConfirmOrder(pending, models.PaymentStatusCompleted) {
		t.Fatal("expected completed payment on a pending order to confirm it")
	}
	if shouldConfirmOrder(confirmed, models.PaymentStatusCompleted) {
		t.Fatal("an already confirmed order must not confirm again")
	}
	if shouldConfirmOrder(cancelled, models.PaymentStatusCompleted) {
		t.Fatal("a cancelled order must not confirm")
	}
	if shouldConfirmOrder(pending, models.PaymentStatusFailed) {
		t.Fatal("a failed payment must not confirm the order")
	}
	if shouldConfirmOrder(pending, models.PaymentStatusRefunded) {
		t.Fatal("a refunded payment must not confirm the order")
	}
	if shouldConfirmOrder(pending, models.PaymentStatusPending) {
		t.Fatal("a pending payment must not confirm the order")
	}
}

func TestOrderAmountsWithCoupon(t *testing.T) {
	lines := []models.OrderLine{
		{Price: courseLinePrice(1000000, 10)},
		{Price: courseLinePrice(500000, 0)},
	}

	total := orderTotal(lines)
	if total != 1400000 {
		t.Fatalf("expected total 1400000, got %v", total)
	}

	discount, ok := couponDiscount("SAVE20", total)
	if !ok {
		t.Fatal("expected SAVE20 to be valid")
	}

	final := orderFinalAmount(total, 0, discount)
	if final != 1120000 {
		t.Fatalf("expected final amount 1120000, got %v", final)
	}
}
