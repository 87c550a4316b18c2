package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"basina-backend/internal/models"
)

// courseSummary is the trimmed course projection used on profile pages.
type courseSummary struct {
	ID         primitive.ObjectID `json:"id"`
	Title      string             `json:"title"`
	Thumbnail  string             `json:"thumbnail,omitempty"`
	Price      float64            `json:"price"`
	Duration   int                `json:"duration"`
	Instructor models.Instructor  `json:"instructor"`
}

func loadEnrolledCourses(ctx context.Context, db *mongo.Database, ids []primitive.ObjectID, findOptions *options.FindOptions) ([]models.Course, error) {
	if len(ids) == 0 {
		return []models.Course{}, nil
	}

	cursor, err := db.Collection("courses").Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	courses := make([]models.Course, 0, len(ids))
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func summarizeCourses(courses []models.Course) []courseSummary {
	summaries := make([]courseSummary, 0, len(courses))
	for _, course := range courses {
		summaries = append(summaries, courseSummary{
			ID:         course.ID,
			Title:      course.Title,
			Thumbnail:  course.Thumbnail,
			Price:      course.Price,
			Duration:   course.Duration,
			Instructor: course.Instructor,
		})
	}
	return summaries
}

// GetProfile returns the caller's account with enrolled course summaries.
func GetProfile(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		courses, err := loadEnrolledCourses(ctx, db, user.EnrolledCourses, options.Find())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user":            user,
			"enrolledCourses": summarizeCourses(courses),
		})
	}
}

func GetEnrolledCourses(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/users/enrolled-courses"
		defer handlePanic(c, route)

		user, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"), 10)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
			return
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		courses, err := loadEnrolledCourses(ctx, db, user.EnrolledCourses, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		total := int64(len(user.EnrolledCourses))
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

// GetDashboard aggregates the student dashboard numbers from the membership
// list; completion tracking lives elsewhere and always reads zero here.
func GetDashboard(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		courses, err := loadEnrolledCourses(ctx, db, user.EnrolledCourses, options.Find())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		totalHours := 0
		for _, course := range courses {
			totalHours += course.Duration
		}

		recent := summarizeCourses(courses)
		if len(recent) > 5 {
			recent = recent[:5]
		}

		c.JSON(http.StatusOK, gin.H{
			"totalCourses":      len(courses),
			"completedCourses":  0,
			"inProgressCourses": len(courses),
			"totalHours":        totalHours,
			"recentCourses":     recent,
		})
	}
}
