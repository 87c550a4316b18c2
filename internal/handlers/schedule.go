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
   HELPERS
======================= */

func rosterContains(entries []models.RosterEntry, userID primitive.ObjectID) bool {
	for _, entry := range entries {
		if entry.User == userID {
			return true
		}
	}
	return false
}

func scheduleIsFull(s models.Schedule) bool {
	return len(s.EnrolledStudents) >= s.MaxStudents
}

func scheduleDurationMinutes(start, end time.Time) int {
	return int(end.Sub(start).Round(time.Minute) / time.Minute)
}

/* =======================
   REQUEST DTOs
======================= */

type createScheduleRequest struct {
	Course           string            `json:"course" binding:"required"`
	Title            string            `json:"title" binding:"required"`
	Description      string            `json:"description"`
	StartTime        time.Time         `json:"startTime" binding:"required"`
	EndTime          time.Time         `json:"endTime" binding:"required"`
	MaxStudents      int               `json:"maxStudents"`
	MeetingLink      string            `json:"meetingLink"`
	MeetingPassword  string            `json:"meetingPassword"`
	Platform         string            `json:"platform"`
	IsRecurring      bool              `json:"isRecurring"`
	RecurringPattern string            `json:"recurringPattern"`
	RecurringDays    []string          `json:"recurringDays"`
	EndDate          *time.Time        `json:"endDate"`
	Materials        []models.Material `json:"materials"`
	Notes            string            `json:"notes"`
	IsPublic         *bool             `json:"isPublic"`
}

type updateScheduleRequest struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	StartTime       *time.Time `json:"startTime"`
	EndTime         *time.Time `json:"endTime"`
	MaxStudents     *int       `json:"maxStudents"`
	MeetingLink     *string    `json:"meetingLink"`
	MeetingPassword *string    `json:"meetingPassword"`
	Platform        *string    `json:"platform"`
	Notes           *string    `json:"notes"`
	IsPublic        *bool      `json:"isPublic"`
}

type scheduleStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

/* =======================
   PUBLIC READS
======================= */

func GetSchedules(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/schedule"
		defer handlePanic(c, route)

		filter := bson.M{"isPublic": true}

		if course := strings.TrimSpace(c.Query("course")); course != "" {
			courseID, err := primitive.ObjectIDFromHex(course)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid course filter")
				return
			}
			filter["course"] = courseID
		}
		if instructor := strings.TrimSpace(c.Query("instructor")); instructor != "" {
			instructorID, err := primitive.ObjectIDFromHex(instructor)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid instructor filter")
				return
			}
			filter["instructor"] = instructorID
		}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			filter["status"] = status
		}

		timeWindow := bson.M{}
		if startDate := strings.TrimSpace(c.Query("startDate")); startDate != "" {
			parsed, err := time.Parse(time.RFC3339, startDate)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid startDate")
				return
			}
			timeWindow["$gte"] = parsed
		}
		if endDate := strings.TrimSpace(c.Query("endDate")); endDate != "" {
			parsed, err := time.Parse(time.RFC3339, endDate)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid endDate")
				return
			}
			timeWindow["$lte"] = parsed
		}
		if len(timeWindow) > 0 {
			filter["startTime"] = timeWindow
		}

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"), 20)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
			return
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "startTime", Value: 1}}).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("schedules").CountDocuments(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		cursor, err := db.Collection("schedules").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		schedules := make([]models.Schedule, 0)
		if err := cursor.All(ctx, &schedules); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"schedules": schedules,
			"pagination": gin.H{
				"current": page,
				"pages":   totalPages(total, limit),
				"total":   total,
			},
		})
	}
}

func GetMyClasses(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		findOptions := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("schedules").Find(ctx, bson.M{
			"enrolledStudents.user": userID,
		}, findOptions)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		schedules := make([]models.Schedule, 0)
		if err := cursor.All(ctx, &schedules); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, schedules)
	}
}

func GetSchedule(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheduleID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var schedule models.Schedule
		if err := db.Collection("schedules").FindOne(ctx, bson.M{"_id": scheduleID}).Decode(&schedule); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "class not found"})
			return
		}

		c.JSON(http.StatusOK, schedule)
	}
}

/* =======================
   ADMIN MUTATIONS
======================= */

func CreateSchedule(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/schedule"
		defer handlePanic(c, route)

		caller, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req createScheduleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		courseID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.Course))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid course id")
			return
		}

		if !req.EndTime.After(req.StartTime) {
			respondWithError(c, http.StatusBadRequest, route, "endTime must be after startTime")
			return
		}

		platform := strings.TrimSpace(req.Platform)
		if platform == "" {
			platform = "zoom"
		}
		if !containsString(models.SchedulePlatforms, platform) {
			respondWithError(c, http.StatusBadRequest, route, "invalid platform")
			return
		}

		maxStudents := req.MaxStudents
		if maxStudents <= 0 {
			maxStudents = 20
		}

		isPublic := true
		if req.IsPublic != nil {
			isPublic = *req.IsPublic
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := db.Collection("courses").FindOne(ctx, bson.M{"_id": courseID}).Err(); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}

		now := time.Now()
		schedule := models.Schedule{
			Course:           courseID,
			Instructor:       caller.ID,
			Title:            strings.TrimSpace(req.Title),
			Description:      req.Description,
			StartTime:        req.StartTime,
			EndTime:          req.EndTime,
			Duration:         scheduleDurationMinutes(req.StartTime, req.EndTime),
			MaxStudents:      maxStudents,
			EnrolledStudents: []models.RosterEntry{},
			MeetingLink:      strings.TrimSpace(req.MeetingLink),
			MeetingPassword:  req.MeetingPassword,
			Platform:         platform,
			Status:           models.ScheduleStatusScheduled,
			IsRecurring:      req.IsRecurring,
			RecurringPattern: req.RecurringPattern,
			RecurringDays:    req.RecurringDays,
			EndDate:          req.EndDate,
			Materials:        req.Materials,
			Notes:            req.Notes,
			IsPublic:         isPublic,
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		res, err := db.Collection("schedules").InsertOne(ctx, schedule)
		if err != nil {
			log.Println("[SCHEDULE] [ERROR] insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			schedule.ID = id
		}

		log.Println("[SCHEDULE] [INFO] class scheduled:", schedule.Title)
		c.JSON(http.StatusCreated, gin.H{
			"message":  "class scheduled",
			"schedule": schedule,
		})
	}
}

// loadOwnedSchedule fetches a schedule and enforces instructor ownership.
func loadOwnedSchedule(c *gin.Context, db *mongo.Database) (models.Schedule, bool) {
	caller, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return models.Schedule{}, false
	}

	scheduleID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule id"})
		return models.Schedule{}, false
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var schedule models.Schedule
	if err := db.Collection("schedules").FindOne(ctx, bson.M{"_id": scheduleID}).Decode(&schedule); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "class not found"})
		return models.Schedule{}, false
	}

	if schedule.Instructor != caller.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return models.Schedule{}, false
	}

	return schedule, true
}

func UpdateSchedule(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/schedule/:id"
		defer handlePanic(c, route)

		schedule, ok := loadOwnedSchedule(c, db)
		if !ok {
			return
		}

		var req updateScheduleRequest
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

		startTime := schedule.StartTime
		endTime := schedule.EndTime
		if req.StartTime != nil {
			startTime = *req.StartTime
			set["startTime"] = startTime
		}
		if req.EndTime != nil {
			endTime = *req.EndTime
			set["endTime"] = endTime
		}
		if req.StartTime != nil || req.EndTime != nil {
			if !endTime.After(startTime) {
				respondWithError(c, http.StatusBadRequest, route, "endTime must be after startTime")
				return
			}
			set["duration"] = scheduleDurationMinutes(startTime, endTime)
		}

		if req.MaxStudents != nil {
			if *req.MaxStudents < 1 {
				respondWithError(c, http.StatusBadRequest, route, "maxStudents must be at least 1")
				return
			}
			set["maxStudents"] = *req.MaxStudents
		}
		if req.MeetingLink != nil {
			set["meetingLink"] = strings.TrimSpace(*req.MeetingLink)
		}
		if req.MeetingPassword != nil {
			set["meetingPassword"] = *req.MeetingPassword
		}
		if req.Platform != nil {
			if !containsString(models.SchedulePlatforms, *req.Platform) {
				respondWithError(c, http.StatusBadRequest, route, "invalid platform")
				return
			}
			set["platform"] = *req.Platform
		}
		if req.Notes != nil {
			set["notes"] = *req.Notes
		}
		if req.IsPublic != nil {
			set["isPublic"] = *req.IsPublic
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Schedule
		err := db.Collection("schedules").FindOneAndUpdate(
			ctx,
			bson.M{"_id": schedule.ID},
			bson.M{"$set": set},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err != nil {
			log.Println("[SCHEDULE] [ERROR] update failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":  "class updated",
			"schedule": updated,
		})
	}
}

func DeleteSchedule(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		schedule, ok := loadOwnedSchedule(c, db)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if _, err := db.Collection("schedules").DeleteOne(ctx, bson.M{"_id": schedule.ID}); err != nil {
			log.Println("[SCHEDULE] [ERROR] delete failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		log.Println("[SCHEDULE] [INFO] class deleted:", schedule.ID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "class deleted"})
	}
}

func UpdateScheduleStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/schedule/:id/status"
		defer handlePanic(c, route)

		schedule, ok := loadOwnedSchedule(c, db)
		if !ok {
			return
		}

		var req scheduleStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if !containsString(models.ScheduleStatuses, req.Status) {
			respondWithError(c, http.StatusBadRequest, route, "invalid status")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		_, err := db.Collection("schedules").UpdateByID(ctx, schedule.ID, bson.M{
			"$set": bson.M{
				"status":    req.Status,
				"updatedAt": time.Now(),
			},
		})
		if err != nil {
			log.Println("[SCHEDULE] [ERROR] status update failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "class status updated",
			"status":  req.Status,
		})
	}
}

/* =======================
   ROSTER
======================= */

/*
POST /api/schedule/:id/enroll
Capacity and duplicate checks happen inside the update filter itself, so two
concurrent enrollments cannot both pass a stale read: the $size guard and the
membership $ne are evaluated against the document the write lands on.
*/
func EnrollInSchedule(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/schedule/:id/enroll"
		defer handlePanic(c, route)

		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		scheduleID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		entry := models.RosterEntry{
			User:       userID,
			EnrolledAt: time.Now(),
		}

		res, err := db.Collection("schedules").UpdateOne(
			ctx,
			bson.M{
				"_id":                   scheduleID,
				"enrolledStudents.user": bson.M{"$ne": userID},
				"$expr": bson.M{
					"$lt": bson.A{
						bson.M{"$size": "$enrolledStudents"},
						"$maxStudents",
					},
				},
			},
			bson.M{
				"$push": bson.M{"enrolledStudents": entry},
				"$set":  bson.M{"updatedAt": time.Now()},
			},
		)
		if err != nil {
			log.Println("[SCHEDULE] [ERROR] enrollment failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if res.MatchedCount == 0 {
			// Re-read only to classify the rejection.
			var schedule models.Schedule
			if err := db.Collection("schedules").FindOne(ctx, bson.M{"_id": scheduleID}).Decode(&schedule); err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "class not found"})
				return
			}
			if rosterContains(schedule.EnrolledStudents, userID) {
				c.JSON(http.StatusConflict, gin.H{"error": "already enrolled in this class"})
				return
			}
			if scheduleIsFull(schedule) {
				c.JSON(http.StatusConflict, gin.H{"error": "class is full"})
				return
			}
			c.JSON(http.StatusConflict, gin.H{"error": "enrollment rejected"})
			return
		}

		var schedule models.Schedule
		if err := db.Collection("schedules").FindOne(ctx, bson.M{"_id": scheduleID}).Decode(&schedule); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		log.Println("[SCHEDULE] [INFO] user enrolled in class:", userID.Hex(), scheduleID.Hex())
		c.JSON(http.StatusOK, gin.H{
			"message": "enrolled in class",
			"schedule": gin.H{
				"id":        schedule.ID.Hex(),
				"title":     schedule.Title,
				"startTime": schedule.StartTime,
				"endTime":   schedule.EndTime,
			},
		})
	}
}

// UnenrollFromSchedule removes the caller's roster entry. Removing an entry
// that does not exist is not an error.
func UnenrollFromSchedule(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		scheduleID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("schedules").UpdateByID(ctx, scheduleID, bson.M{
			"$pull": bson.M{"enrolledStudents": bson.M{"user": userID}},
			"$set":  bson.M{"updatedAt": time.Now()},
		})
		if err != nil {
			log.Println("[SCHEDULE] [ERROR] unenrollment failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "class not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "left the class"})
	}
}
