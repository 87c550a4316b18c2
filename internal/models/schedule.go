package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RosterEntry is one enrolled student on a scheduled class.
type RosterEntry struct {
	User       primitive.ObjectID `bson:"user" json:"user"`
	EnrolledAt time.Time          `bson:"enrolledAt" json:"enrolledAt"`
}

type Material struct {
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	FileURL     string `bson:"fileUrl,omitempty" json:"fileUrl,omitempty"`
	FileType    string `bson:"fileType,omitempty" json:"fileType,omitempty"`
}

// Schedule defines a scheduled live class session.
type Schedule struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Course           primitive.ObjectID `bson:"course" json:"course"`
	Instructor       primitive.ObjectID `bson:"instructor" json:"instructor"`
	Title            string             `bson:"title" json:"title"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	StartTime        time.Time          `bson:"startTime" json:"startTime"`
	EndTime          time.Time          `bson:"endTime" json:"endTime"`
	Duration         int                `bson:"duration" json:"duration"` // minutes, derived from the window
	MaxStudents      int                `bson:"maxStudents" json:"maxStudents"`
	EnrolledStudents []RosterEntry      `bson:"enrolledStudents" json:"enrolledStudents"`
	MeetingLink      string             `bson:"meetingLink,omitempty" json:"meetingLink,omitempty"`
	MeetingPassword  string             `bson:"meetingPassword,omitempty" json:"-"`
	Platform         string             `bson:"platform" json:"platform"`
	Status           string             `bson:"status" json:"status"`
	IsRecurring      bool               `bson:"isRecurring" json:"isRecurring"`
	RecurringPattern string             `bson:"recurringPattern,omitempty" json:"recurringPattern,omitempty"`
	RecurringDays    []string           `bson:"recurringDays,omitempty" json:"recurringDays,omitempty"`
	EndDate          *time.Time         `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Materials        []Material         `bson:"materials,omitempty" json:"materials,omitempty"`
	Notes            string             `bson:"notes,omitempty" json:"notes,omitempty"`
	IsPublic         bool               `bson:"isPublic" json:"isPublic"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

const (
	ScheduleStatusScheduled = "scheduled"
	ScheduleStatusOngoing   = "ongoing"
	ScheduleStatusCompleted = "completed"
	ScheduleStatusCancelled = "cancelled"
)

var SchedulePlatforms = []string{"zoom", "skype", "google_meet", "discord", "other"}

var ScheduleStatuses = []string{
	ScheduleStatusScheduled,
	ScheduleStatusOngoing,
	ScheduleStatusCompleted,
	ScheduleStatusCancelled,
}
