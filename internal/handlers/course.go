package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"basina-backend/internal/models"
)

/*
GET /api/courses
- published courses only
- optional category/level/search filters and sort, paginated
*/
func GetCourses(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/courses"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		filter := bson.M{"isPublished": true}

		if category := strings.TrimSpace(c.Query("category")); category != "" {
			filter["category"] = category
		}
		if level := strings.TrimSpace(c.Query("level")); level != "" {
			filter["level"] = level
		}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["$or"] = []bson.M{
				{"title": bson.M{"$regex": search, "$options": "i"}},
				{"description": bson.M{"$regex": search, "$options": "i"}},
				{"tags": bson.M{"$regex": search, "$options": "i"}},
			}
		}

		sortOptions := bson.D{{Key: "createdAt", Value: -1}}
		switch c.Query("sort") {
		case "price":
			sortOptions = bson.D{{Key: "price", Value: 1}}
		case "price-desc":
			sortOptions = bson.D{{Key: "price", Value: -1}}
		case "rating":
			sortOptions = bson.D{{Key: "rating.average", Value: -1}}
		case "newest":
			sortOptions = bson.D{{Key: "createdAt", Value: -1}}
		}

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"), 12)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
			return
		}

		findOptions := options.Find().
			SetSort(sortOptions).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("courses").CountDocuments(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		cursor, err := db.Collection("courses").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		courses := make([]models.Course, 0)
		if err := cursor.All(ctx, &courses); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		log.Printf("[%s] returning %d courses", route, len(courses))
		c.JSON(http.StatusOK, gin.H{
			"courses": courses,
			"pagination": gin.H{
				"current": page,
				"pages":   totalPages(total, limit),
				"total":   total,
			},
		})
	}
}

/*
GET /api/courses/featured
- published + featured, newest first, capped at 6
*/
func GetFeaturedCourses(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/courses/featured"
		defer handlePanic(c, route)

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(6)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("courses").Find(ctx, bson.M{
			"isPublished": true,
			"isFeatured":  true,
		}, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		courses := make([]models.Course, 0)
		if err := cursor.All(ctx, &courses); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, courses)
	}
}

// GetCourse returns a published course by id. Unpublished courses are hidden
// from the public catalog, so both missing and unpublished answer 404.
func GetCourse(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		courseID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var course models.Course
		if err := db.Collection("courses").FindOne(ctx, bson.M{"_id": courseID}).Decode(&course); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}

		if !course.IsPublished {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}

		c.JSON(http.StatusOK, course)
	}
}
