package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"basina-backend/internal/models"
)

type reviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=500"`
}

var errAlreadyEnrolled = errors.New("already enrolled")

/*
POST /api/courses/:id/enroll
Direct enrollment, used for free courses. The membership add and the counter
increment run in one transaction; the $ne filter on enrolledCourses makes the
duplicate check part of the write instead of a separate read.
*/
func EnrollInCourse(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/courses/:id/enroll"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

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

		session, err := db.Client().StartSession()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer session.EndSession(ctx)

		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			res, err := db.Collection("users").UpdateOne(
				sessCtx,
				bson.M{"_id": userID, "enrolledCourses": bson.M{"$ne": courseID}},
				bson.M{
					"$addToSet": bson.M{"enrolledCourses": courseID},
					"$set":      bson.M{"updatedAt": time.Now()},
				},
			)
			if err != nil {
				return nil, err
			}
			if res.MatchedCount == 0 {
				return nil, errAlreadyEnrolled
			}

			_, err = db.Collection("courses").UpdateByID(sessCtx, courseID, bson.M{
				"$inc": bson.M{"enrolledStudents": 1},
			})
			return nil, err
		})
		if err != nil {
			if errors.Is(err, errAlreadyEnrolled) {
				c.JSON(http.StatusConflict, gin.H{"error": "already enrolled in this course"})
				return
			}
			log.Println("[ENROLL] [ERROR] enrollment failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[ENROLL] [INFO] user enrolled:", userID.Hex(), "course:", courseID.Hex())
		c.JSON(http.StatusOK, gin.H{
			"message": "enrolled successfully",
			"course": gin.H{
				"id":        course.ID.Hex(),
				"title":     course.Title,
				"thumbnail": course.Thumbnail,
			},
		})
	}
}

/*
POST /api/courses/:id/review
One review per user per course. The "reviews.user" $ne filter on the update
keeps concurrent submissions from slipping past the duplicate check.
*/
func AddCourseReview(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/courses/:id/review"
		defer handlePanic(c, route)

		user, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		courseID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
			return
		}

		var req reviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var course models.Course
		if err := db.Collection("courses").FindOne(ctx, bson.M{"_id": courseID}).Decode(&course); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}

		if !containsObjectID(user.EnrolledCourses, courseID) {
			c.JSON(http.StatusConflict, gin.H{"error": "enrollment is required to review this course"})
			return
		}

		if hasReviewFrom(course.Reviews, user.ID) {
			c.JSON(http.StatusConflict, gin.H{"error": "you have already reviewed this course"})
			return
		}

		review := models.Review{
			User:      user.ID,
			Rating:    req.Rating,
			Comment:   strings.TrimSpace(req.Comment),
			CreatedAt: time.Now(),
		}

		rating := recomputeRating(append(course.Reviews, review))

		res, err := db.Collection("courses").UpdateOne(
			ctx,
			bson.M{"_id": courseID, "reviews.user": bson.M{"$ne": user.ID}},
			bson.M{
				"$push": bson.M{"reviews": review},
				"$set": bson.M{
					"rating":    rating,
					"updatedAt": time.Now(),
				},
			},
		)
		if err != nil {
			log.Println("[REVIEW] [ERROR] review insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "you have already reviewed this course"})
			return
		}

		log.Println("[REVIEW] [INFO] review added:", user.ID.Hex(), "course:", courseID.Hex())
		c.JSON(http.StatusOK, gin.H{
			"message": "review submitted",
			"review": gin.H{
				"rating":  review.Rating,
				"comment": review.Comment,
				"user": gin.H{
					"id":     user.ID.Hex(),
					"name":   user.Name,
					"avatar": user.Avatar,
				},
			},
		})
	}
}
