package handlers

import "basina-backend/internal/models"

// courseLinePrice applies the course's percentage discount to its base price.
// A discount of 0 leaves the price untouched.
func courseLinePrice(price, discount float64) float64 {
	if discount > 0 {
		return price - price*discount/100
	}
	return price
}

func orderTotal(lines []models.OrderLine) float64 {
	total := 0.0
	for _, line := range lines {
		total += line.Price
	}
	return total
}

// orderFinalAmount is the amount due after per-course and coupon discounts.
func orderFinalAmount(totalAmount, discountAmount, couponDiscount float64) float64 {
	return totalAmount - discountAmount - couponDiscount
}
