package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCouponDiscountKnownCodes(t *testing.T) {
	discount, ok := couponDiscount("WELCOME10", 1000000)
	if !ok {
		t.Fatal("expected WELCOME10 to be valid")
	}
	if discount != 100000 {
		t.Fatalf("expected discount 100000, got %v", discount)
	}

	discount, ok = couponDiscount("SAVE20", 1000000)
	if !ok {
		t.Fatal("expected SAVE20 to be valid")
	}
	if discount != 200000 {
		t.Fatalf("expected discount 200000, got %v", discount)
	}
}

func TestCouponDiscountUnknownCode(t *testing.T) {
	discount, ok := couponDiscount("NOPE50", 1000000)
	if ok {
		t.Fatal("expected unknown code to be invalid")
	}
	if discount != 0 {
		t.Fatalf("expected zero discount for unknown code, got %v", discount)
	}
}

func newCouponTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/orders/validate-coupon", ValidateCoupon())
	return r
}

func postCoupon(t *testing.T, r *gin.Engine, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/orders/validate-coupon", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestValidateCouponHandlerAppliesDiscount(t *testing.T) {
	r := newCouponTestRouter()

	w := postCoupon(t, r, gin.H{"couponCode": "WELCOME10", "totalAmount": 1000000})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		IsValid     bool    `json:"isValid"`
		Discount    float64 `json:"discount"`
		Message     string  `json:"message"`
		FinalAmount float64 `json:"finalAmount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.IsValid)
	assert.Equal(t, float64(100000), resp.Discount)
	assert.Equal(t, float64(900000), resp.FinalAmount)
	assert.Equal(t, "coupon applied", resp.Message)
}

func TestValidateCouponHandlerRejectsUnknownCode(t *testing.T) {
	r := newCouponTestRouter()

	w := postCoupon(t, r, gin.H{"couponCode": "EXPIRED99", "totalAmount": 500000})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		IsValid     bool    `json:"isValid"`
		Discount    float64 `json:"discount"`
		FinalAmount float64 `json:"finalAmount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.False(t, resp.IsValid)
	assert.Equal(t, float64(0), resp.Discount)
	assert.Equal(t, float64(500000), resp.FinalAmount)
}

func TestValidateCouponHandlerRequiresFields(t *testing.T) {
	r := newCouponTestRouter()

	w := postCoupon(t, r, gin.H{"couponCode": "WELCOME10"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
