package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderLine records one purchased course with its price at purchase time.
type OrderLine struct {
	Course primitive.ObjectID `bson:"course" json:"course"`
	Price  float64            `bson:"price" json:"price"`
}

// BillingAddress is the billing snapshot captured at checkout.
type BillingAddress struct {
	Name       string `bson:"name,omitempty" json:"name,omitempty"`
	Email      string `bson:"email,omitempty" json:"email,omitempty"`
	Phone      string `bson:"phone,omitempty" json:"phone,omitempty"`
	Address    string `bson:"address,omitempty" json:"address,omitempty"`
	City       string `bson:"city,omitempty" json:"city,omitempty"`
	PostalCode string `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
}

// Order defines the persisted order document.
type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	Courses        []OrderLine        `bson:"courses" json:"courses"`
	TotalAmount    float64            `bson:"totalAmount" json:"totalAmount"`
	DiscountAmount float64            `bson:"discountAmount" json:"discountAmount"`
	FinalAmount    float64            `bson:"finalAmount" json:"finalAmount"`
	PaymentMethod  string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus  string             `bson:"paymentStatus" json:"paymentStatus"`
	PaymentID      string             `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	Status         string             `bson:"status" json:"status"`
	CouponCode     string             `bson:"couponCode,omitempty" json:"couponCode,omitempty"`
	CouponDiscount float64            `bson:"couponDiscount" json:"couponDiscount"`
	BillingAddress *BillingAddress    `bson:"billingAddress,omitempty" json:"billingAddress,omitempty"`
	Notes          string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CompletedAt    *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"

	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCancelled = "cancelled"
)

var PaymentMethods = []string{"online", "bank_transfer", "cash"}

var PaymentStatuses = []string{
	PaymentStatusPending,
	PaymentStatusCompleted,
	PaymentStatusFailed,
	PaymentStatusRefunded,
}
