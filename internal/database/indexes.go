package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating email_unique index")
	_, err := indexes.CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureUserIndexes: email index error:", err)
		return err
	}
	log.Println("EnsureUserIndexes: email_unique index created")
	return nil
}

func EnsureCourseIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("courses").Indexes()

	catalogIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "isPublished", Value: 1},
			{Key: "category", Value: 1},
		},
		Options: options.Index().SetName("published_category_index"),
	}

	log.Println("EnsureCourseIndexes: creating published_category_index")
	_, err := indexes.CreateOne(ctx, catalogIndex)
	if err != nil {
		log.Println("EnsureCourseIndexes: catalog index error:", err)
		return err
	}
	log.Println("EnsureCourseIndexes: published_category_index created")
	return nil
}

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	userIDIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetName("userId_index"),
	}

	log.Println("EnsureOrderIndexes: creating userId_index index")
	_, err := indexes.CreateOne(ctx, userIDIndex)
	if err != nil {
		log.Println("EnsureOrderIndexes: userId index error:", err)
		return err
	}
	log.Println("EnsureOrderIndexes: userId_index index created")
	return nil
}

func EnsureScheduleIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("schedules").Indexes()

	startTimeIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "startTime", Value: 1}},
		Options: options.Index().SetName("startTime_index"),
	}

	log.Println("EnsureScheduleIndexes: creating startTime_index index")
	_, err := indexes.CreateOne(ctx, startTimeIndex)
	if err != nil {
		log.Println("EnsureScheduleIndexes: startTime index error:", err)
		return err
	}
	log.Println("EnsureScheduleIndexes: startTime_index index created")
	return nil
}
