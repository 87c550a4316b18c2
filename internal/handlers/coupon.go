package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Fixed coupon table. A coupon model would replace this once marketing needs
// more than two codes.
var couponPercentages = map[string]float64{
	"WELCOME10": 10,
	"SAVE20":    20,
}

// couponDiscount returns the absolute discount for a code applied to a total.
// Unknown codes yield zero.
func couponDiscount(code string, totalAmount float64) (float64, bool) {
	percent, ok := couponPercentages[code]
	if !ok {
		return 0, false
	}
	return totalAmount * percent / 100, true
}

type validateCouponRequest struct {
	CouponCode  string  `json:"couponCode" binding:"required"`
	TotalAmount float64 `json:"totalAmount" binding:"required"`
}

// ValidateCoupon previews a coupon against a total without persisting anything.
func ValidateCoupon() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validateCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		discount, isValid := couponDiscount(req.CouponCode, req.TotalAmount)

		message := "coupon code is invalid"
		if isValid {
			message = "coupon applied"
		}

		c.JSON(http.StatusOK, gin.H{
			"isValid":     isValid,
			"discount":    discount,
			"message":     message,
			"finalAmount": req.TotalAmount - discount,
		})
	}
}
