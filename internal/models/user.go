package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents the application user account.
type User struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name            string               `bson:"name" json:"name"`
	Email           string               `bson:"email" json:"email"`
	PasswordHash    string               `bson:"passwordHash" json:"-"`
	Phone           string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Role            string               `bson:"role" json:"role"`
	Avatar          string               `bson:"avatar,omitempty" json:"avatar,omitempty"`
	EnrolledCourses []primitive.ObjectID `bson:"enrolledCourses" json:"enrolledCourses"`
	IsActive        bool                 `bson:"isActive" json:"isActive"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`
}

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)
