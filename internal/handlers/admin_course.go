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

/* =======================
   REQUEST DTOs
======================= */

type createCourseRequest struct {
	Title            string          `json:"title" binding:"required"`
	Description      string          `json:"description" binding:"required"`
	ShortDescription string          `json:"shortDescription" binding:"max=200"`
	Price            *float64        `json:"price" binding:"required"`
	Discount         float64         `json:"discount" binding:"min=0,max=100"`
	Category         string          `json:"category" binding:"required"`
	Level            string          `json:"level" binding:"required"`
	Duration         *int            `json:"duration" binding:"required"`
	Lessons          []models.Lesson `json:"lessons"`
	Thumbnail        string          `json:"thumbnail"`
	Tags             []string        `json:"tags"`
	Requirements     []string        `json:"requirements"`
	WhatYouWillLearn []string        `json:"whatYouWillLearn"`
	IsPublished      bool            `json:"isPublished"`
	IsFeatured       bool            `json:"isFeatured"`
	Certificate      *bool           `json:"certificate"`
	Language         string          `json:"language"`
}

type updateCourseRequest struct {
	Title            *string          `json:"title"`
	Description      *string          `json:"description"`
	ShortDescription *string          `json:"shortDescription"`
	Price            *float64         `json:"price"`
	Discount         *float64         `json:"discount"`
	Category         *string          `json:"category"`
	Level            *string          `json:"level"`
	Duration         *int             `json:"duration"`
	Lessons          *[]models.Lesson `json:"lessons"`
	Thumbnail        *string          `json:"thumbnail"`
	Tags             *[]string        `json:"tags"`
	Requirements     *[]string        `json:"requirements"`
	WhatYouWillLearn *[]string        `json:"whatYouWillLearn"`
	IsPublished      *bool            `json:"isPublished"`
	IsFeatured       *bool            `json:"isFeatured"`
	Certificate      *bool            `json:"certificate"`
	Language         *string          `json:"language"`
}

func CreateCourse(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/courses"
		defer handlePanic(c, route)

		caller, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req createCourseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if !containsString(models.CourseCategories, req.Category) {
			respondWithError(c, http.StatusBadRequest, route, "invalid category")
			return
		}
		if !containsString(models.CourseLevels, req.Level) {
			respondWithError(c, http.StatusBadRequest, route, "invalid level")
			return
		}
		if *req.Price < 0 {
			respondWithError(c, http.StatusBadRequest, route, "price must not be negative")
			return
		}

		language := strings.TrimSpace(req.Language)
		if language == "" {
			language = "persian"
		}
		certificate := true
		if req.Certificate != nil {
			certificate = *req.Certificate
		}
		lessons := req.Lessons
		if lessons == nil {
			lessons = []models.Lesson{}
		}

		now := time.Now()
		course := models.Course{
			Title:            strings.TrimSpace(req.Title),
			Description:      req.Description,
			ShortDescription: strings.TrimSpace(req.ShortDescription),
			Price:            *req.Price,
			Discount:         req.Discount,
			Category:         req.Category,
			Level:            req.Level,
			Duration:         *req.Duration,
			Lessons:          lessons,
			Instructor: models.Instructor{
				Name:   caller.Name,
				Avatar: caller.Avatar,
			},
			Thumbnail:        strings.TrimSpace(req.Thumbnail),
			Tags:             req.Tags,
			Requirements:     req.Requirements,
			WhatYouWillLearn: req.WhatYouWillLearn,
			Rating:           models.Rating{},
			Reviews:          []models.Review{},
			IsPublished:      req.IsPublished,
			IsFeatured:       req.IsFeatured,
			Certificate:      certificate,
			Language:         language,
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("courses").InsertOne(ctx, course)
		if err != nil {
			log.Println("[COURSE] [ERROR] insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			course.ID = id
		}

		log.Println("[COURSE] [INFO] course created:", course.Title)
		c.JSON(http.StatusCreated, gin.H{
			"message": "course created",
			"course":  course,
		})
	}
}

func UpdateCourse(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/courses/:id"
		defer handlePanic(c, route)

		courseID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
			return
		}

		var req updateCourseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		set := bson.M{"updatedAt": time.Now()}
		if req.Title != nil {
			set["title"] = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			set["description"] = *req.Description
		}
		if req.ShortDescription != nil {
			set["shortDescription"] = strings.TrimSpace(*req.ShortDescription)
		}
		if req.Price != nil {
			if *req.Price < 0 {
				respondWithError(c, http.StatusBadRequest, route, "price must not be negative")
				return
			}
			set["price"] = *req.Price
		}
		if req.Discount != nil {
			if *req.Discount < 0 || *req.Discount > 100 {
				respondWithError(c, http.StatusBadRequest, route, "discount must be between 0 and 100")
				return
			}
			set["discount"] = *req.Discount
		}
		if req.Category != nil {
			if !containsString(models.CourseCategories, *req.Category) {
				respondWithError(c, http.StatusBadRequest, route, "invalid category")
				return
			}
			set["category"] = *req.Category
		}
		if req.Level != nil {
			if !containsString(models.CourseLevels, *req.Level) {
				respondWithError(c, http.StatusBadRequest, route, "invalid level")
				return
			}
			set["level"] = *req.Level
		}
		if req.Duration != nil {
			set["duration"] = *req.Duration
		}
		if req.Lessons != nil {
			set["lessons"] = *req.Lessons
		}
		if req.Thumbnail != nil {
			set["thumbnail"] = strings.TrimSpace(*req.Thumbnail)
		}
		if req.Tags != nil {
			set["tags"] = *req.Tags
		}
		if req.Requirements != nil {
			set["requirements"] = *req.Requirements
		}
		if req.WhatYouWillLearn != nil {
			set["whatYouWillLearn"] = *req.WhatYouWillLearn
		}
		if req.IsPublished != nil {
			set["isPublished"] = *req.IsPublished
		}
		if req.IsFeatured != nil {
			set["isFeatured"] = *req.IsFeatured
		}
		if req.Certificate != nil {
			set["certificate"] = *req.Certificate
		}
		if req.Language != nil {
			set["language"] = strings.TrimSpace(*req.Language)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var course models.Course
		err = db.Collection("courses").FindOneAndUpdate(
			ctx,
			bson.M{"_id": courseID},
			bson.M{"$set": set},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&course)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}
		if err != nil {
			log.Println("[COURSE] [ERROR] update failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[COURSE] [INFO] course updated:", courseID.Hex())
		c.JSON(http.StatusOK, gin.H{
			"message": "course updated",
			"course":  course,
		})
	}
}

func DeleteCourse(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		courseID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("courses").DeleteOne(ctx, bson.M{"_id": courseID})
		if err != nil {
			log.Println("[COURSE] [ERROR] delete failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}

		log.Println("[COURSE] [INFO] course deleted:", courseID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "course deleted"})
	}
}
