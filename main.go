package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"basina-backend/internal/config"
	"basina-backend/internal/database"
	"basina-backend/internal/handlers"
	"basina-backend/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("⚠️ user index warning: %v", err)
	}
	if err := database.EnsureCourseIndexes(db); err != nil {
		log.Printf("⚠️ course index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("⚠️ order index warning: %v", err)
	}
	if err := database.EnsureScheduleIndexes(db); err != nil {
		log.Printf("⚠️ schedule index warning: %v", err)
	}

	r := gin.Default()
	r.Use(cors.Default())

	auth := middleware.Auth(db, config.AppEnv.JWTSecret)
	admin := middleware.AdminOnly()

	api := r.Group("/api")

	api.GET("/health", handlers.Health(db))

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", handlers.Register(db, config.AppEnv.JWTSecret, config.AppEnv.TokenTTL))
		authGroup.POST("/login", handlers.Login(db, config.AppEnv.JWTSecret, config.AppEnv.TokenTTL))
		authGroup.GET("/me", auth, handlers.GetMe())
		authGroup.PUT("/profile", auth, handlers.UpdateProfile(db))
		authGroup.PUT("/password", auth, handlers.ChangePassword(db))
	}

	courses := api.Group("/courses")
	{
		courses.GET("", handlers.GetCourses(db))
		courses.GET("/featured", handlers.GetFeaturedCourses(db))
		courses.GET("/:id", handlers.GetCourse(db))
		courses.POST("", auth, admin, handlers.CreateCourse(db))
		courses.PUT("/:id", auth, admin, handlers.UpdateCourse(db))
		courses.DELETE("/:id", auth, admin, handlers.DeleteCourse(db))
		courses.POST("/:id/enroll", auth, handlers.EnrollInCourse(db))
		courses.POST("/:id/review", auth, handlers.AddCourseReview(db))
	}

	orders := api.Group("/orders")
	orders.Use(auth)
	{
		orders.POST("", handlers.CreateOrder(db))
		orders.GET("", handlers.GetOrders(db))
		orders.GET("/:id", handlers.GetOrder(db))
		orders.PUT("/:id/payment", handlers.UpdateOrderPayment(db))
		orders.POST("/validate-coupon", handlers.ValidateCoupon())
	}

	schedule := api.Group("/schedule")
	{
		schedule.GET("", handlers.GetSchedules(db))
		schedule.GET("/my-classes", auth, handlers.GetMyClasses(db))
		schedule.GET("/:id", handlers.GetSchedule(db))
		schedule.POST("", auth, admin, handlers.CreateSchedule(db))
		schedule.PUT("/:id", auth, admin, handlers.UpdateSchedule(db))
		schedule.DELETE("/:id", auth, admin, handlers.DeleteSchedule(db))
		schedule.PUT("/:id/status", auth, admin, handlers.UpdateScheduleStatus(db))
		schedule.POST("/:id/enroll", auth, handlers.EnrollInSchedule(db))
		schedule.DELETE("/:id/unenroll", auth, handlers.UnenrollFromSchedule(db))
	}

	users := api.Group("/users")
	users.Use(auth)
	{
		users.GET("/profile", handlers.GetProfile(db))
		users.GET("/enrolled-courses", handlers.GetEnrolledCourses(db))
		users.GET("/dashboard", handlers.GetDashboard(db))
		users.GET("", admin, handlers.GetAllUsers(db))
		users.GET("/:id", admin, handlers.GetUser(db))
		users.PUT("/:id", admin, handlers.AdminUpdateUser(db))
		users.DELETE("/:id", admin, handlers.AdminDeleteUser(db))
	}

	r.Run(":" + config.AppEnv.Port)
}
