package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"basina-backend/internal/models"
)

/* =========================
   REQUEST DTOs
========================= */

type createOrderLineRequest struct {
	CourseID string `json:"courseId" binding:"required"`
}

type createOrderRequest struct {
	Courses        []createOrderLineRequest `json:"courses" binding:"required"`
	PaymentMethod  string                   `json:"paymentMethod" binding:"required"`
	CouponCode     string                   `json:"couponCode"`
	BillingAddress *models.BillingAddress   `json:"billingAddress"`
	Notes          string                   `json:"notes"`
}

type updatePaymentRequest struct {
	PaymentStatus string `json:"paymentStatus" binding:"required"`
	PaymentID     string `json:"paymentId"`
}

/* =========================
   BUILD ORDER
========================= */

// buildOrderFromRequest validates the request shape and produces an order
// skeleton in the initial pending/pending state. Prices are filled in later
// from the stored course documents, never from the client.
func buildOrderFromRequest(req createOrderRequest, userID primitive.ObjectID, now time.Time) (models.Order, error) {
	if len(req.Courses) == 0 {
		return models.Order{}, errors.New("at least one course is required")
	}

	if !containsString(models.PaymentMethods, req.PaymentMethod) {
		return models.Order{}, errors.New("invalid payment method")
	}

	lines := make([]models.OrderLine, 0, len(req.Courses))
	for _, item := range req.Courses {
		courseID, err := primitive.ObjectIDFromHex(strings.TrimSpace(item.CourseID))
		if err != nil {
			return models.Order{}, errors.New("invalid courseId")
		}
		lines = append(lines, models.OrderLine{Course: courseID})
	}

	return models.Order{
		UserID:         userID,
		Courses:        lines,
		PaymentMethod:  req.PaymentMethod,
		PaymentStatus:  models.PaymentStatusPending,
		Status:         models.OrderStatusPending,
		CouponCode:     strings.TrimSpace(req.CouponCode),
		BillingAddress: req.BillingAddress,
		Notes:          strings.TrimSpace(req.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// shouldConfirmOrder reports whether a payment-status write triggers the one
// automatic order transition: pending order + completed payment.
func shouldConfirmOrder(order models.Order, incomingStatus string) bool {
	return incomingStatus == models.PaymentStatusCompleted && order.Status == models.OrderStatusPending
}

/* =========================
   CREATE ORDER
========================= */

func CreateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		order, err := buildOrderFromRequest(req, userID, time.Now())
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		// Line prices come from the course's current stored discount; the
		// order document is the price snapshot from here on.
		for i, line := range order.Courses {
			var course models.Course
			err := db.Collection("courses").FindOne(ctx, bson.M{"_id": line.Course}).Decode(&course)
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{
					"error":    "course not found",
					"courseId": line.Course.Hex(),
				})
				return
			}
			if err != nil {
				log.Println("[ORDER] [ERROR] course lookup failed:", err)
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
			if !course.IsPublished {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":    "course is not available",
					"courseId": line.Course.Hex(),
				})
				return
			}

			order.Courses[i].Price = courseLinePrice(course.Price, course.Discount)
		}

		order.TotalAmount = orderTotal(order.Courses)

		if order.CouponCode != "" {
			discount, _ := couponDiscount(order.CouponCode, order.TotalAmount)
			order.CouponDiscount = discount
		}
		order.FinalAmount = orderFinalAmount(order.TotalAmount, order.DiscountAmount, order.CouponDiscount)

		res, err := db.Collection("orders").InsertOne(ctx, order)
		if err != nil {
			log.Println("[ORDER] [ERROR] insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			order.ID = id
		}

		log.Println("[ORDER] [INFO] order created for user:", userID.Hex())
		c.JSON(http.StatusCreated, gin.H{
			"message": "order created",
			"order": gin.H{
				"id":            order.ID.Hex(),
				"totalAmount":   order.TotalAmount,
				"finalAmount":   order.FinalAmount,
				"status":        order.Status,
				"paymentStatus": order.PaymentStatus,
			},
		})
	}
}

/* =========================
   GET ORDERS
========================= */

func GetOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"), 10)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
			return
		}

		filter := bson.M{"userId": userID}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			filter["status"] = status
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("orders").CountDocuments(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		cursor, err := db.Collection("orders").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": orders,
			"pagination": gin.H{
				"current": page,
				"pages":   totalPages(total, limit),
				"total":   total,
			},
		})
	}
}

func GetOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		if err := db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		if order.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

/* =========================
   PAYMENT TRANSITION
========================= */

/*
PUT /api/orders/:id/payment
Owner-only. Any paymentStatus from the fixed set may be written. When the
incoming status is completed and the order is still pending, the order is
confirmed and the enrollment side effects fire: each course id joins the
user's enrolledCourses set (guarded against duplicates) and each course's
enrolledStudents counter goes up by one per confirmation event. All three
writes share one transaction so a crash cannot leave a confirmed order with
half-applied enrollment. Later failed/refunded transitions do not reverse
anything.
*/
func UpdateOrderPayment(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/orders/:id/payment"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		var req updatePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if !containsString(models.PaymentStatuses, req.PaymentStatus) {
			respondWithError(c, http.StatusBadRequest, route, "invalid payment status")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		if err := db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		if order.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		now := time.Now()
		set := bson.M{
			"paymentStatus": req.PaymentStatus,
			"updatedAt":     now,
		}

		paymentID := strings.TrimSpace(req.PaymentID)
		if req.PaymentStatus == models.PaymentStatusCompleted && paymentID == "" {
			paymentID = uuid.NewString()
		}
		if paymentID != "" {
			set["paymentId"] = paymentID
		}

		confirm := shouldConfirmOrder(order, req.PaymentStatus)
		if confirm {
			set["status"] = models.OrderStatusConfirmed
			set["completedAt"] = now
		}

		if !confirm {
			if _, err := db.Collection("orders").UpdateByID(ctx, orderID, bson.M{"$set": set}); err != nil {
				log.Println("[ORDER] [ERROR] payment update failed:", err)
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
		} else {
			session, err := db.Client().StartSession()
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
			defer session.EndSession(ctx)

			_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
				if _, err := db.Collection("orders").UpdateByID(sessCtx, orderID, bson.M{"$set": set}); err != nil {
					return nil, err
				}

				courseIDs := make([]primitive.ObjectID, 0, len(order.Courses))
				for _, line := range order.Courses {
					courseIDs = append(courseIDs, line.Course)
				}

				_, err := db.Collection("users").UpdateByID(sessCtx, userID, bson.M{
					"$addToSet": bson.M{"enrolledCourses": bson.M{"$each": courseIDs}},
					"$set":      bson.M{"updatedAt": now},
				})
				if err != nil {
					return nil, err
				}

				// One increment per line per confirmation event, deliberately
				// not derived from the membership set.
				for _, line := range order.Courses {
					_, err := db.Collection("courses").UpdateByID(sessCtx, line.Course, bson.M{
						"$inc": bson.M{"enrolledStudents": 1},
					})
					if err != nil {
						return nil, err
					}
				}
				return nil, nil
			})
			if err != nil {
				log.Println("[ORDER] [ERROR] payment confirmation failed:", err)
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
		}

		status := order.Status
		if confirm {
			status = models.OrderStatusConfirmed
		}

		log.Println("[ORDER] [INFO] payment status updated:", orderID.Hex(), "->", req.PaymentStatus)
		c.JSON(http.StatusOK, gin.H{
			"message": "payment status updated",
			"order": gin.H{
				"id":            orderID.Hex(),
				"status":        status,
				"paymentStatus": req.PaymentStatus,
			},
		})
	}
}
