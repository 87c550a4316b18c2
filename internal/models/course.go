package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lesson is a single entry in a course curriculum.
type Lesson struct {
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Duration    int    `bson:"duration" json:"duration"` // minutes
	VideoURL    string `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	IsFree      bool   `bson:"isFree" json:"isFree"`
}

// Instructor holds denormalized display info, not a user reference.
type Instructor struct {
	Name   string `bson:"name" json:"name"`
	Bio    string `bson:"bio,omitempty" json:"bio,omitempty"`
	Avatar string `bson:"avatar,omitempty" json:"avatar,omitempty"`
}

type Review struct {
	User      primitive.ObjectID `bson:"user" json:"user"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Rating struct {
	Average float64 `bson:"average" json:"average"`
	Count   int     `bson:"count" json:"count"`
}

// Course defines the persisted course document.
type Course struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title            string             `bson:"title" json:"title"`
	Description      string             `bson:"description" json:"description"`
	ShortDescription string             `bson:"shortDescription,omitempty" json:"shortDescription,omitempty"`
	Price            float64            `bson:"price" json:"price"`
	Discount         float64            `bson:"discount" json:"discount"` // percentage, 0-100
	Category         string             `bson:"category" json:"category"`
	Level            string             `bson:"level" json:"level"`
	Duration         int                `bson:"duration" json:"duration"` // hours
	Lessons          []Lesson           `bson:"lessons" json:"lessons"`
	Instructor       Instructor         `bson:"instructor" json:"instructor"`
	Thumbnail        string             `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Tags             []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Requirements     []string           `bson:"requirements,omitempty" json:"requirements,omitempty"`
	WhatYouWillLearn []string           `bson:"whatYouWillLearn,omitempty" json:"whatYouWillLearn,omitempty"`
	EnrolledStudents int                `bson:"enrolledStudents" json:"enrolledStudents"`
	Rating           Rating             `bson:"rating" json:"rating"`
	Reviews          []Review           `bson:"reviews" json:"reviews"`
	IsPublished      bool               `bson:"isPublished" json:"isPublished"`
	IsFeatured       bool               `bson:"isFeatured" json:"isFeatured"`
	Certificate      bool               `bson:"certificate" json:"certificate"`
	Language         string             `bson:"language" json:"language"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

var CourseCategories = []string{
	"javascript", "python", "react", "nodejs", "database",
	"mobile", "block-programming", "web-design", "other",
}

var CourseLevels = []string{"beginner", "intermediate", "advanced"}
