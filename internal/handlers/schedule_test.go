package handlers

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"basina-backend/internal/models"
)

func TestRosterContains(t *testing.T) {
	enrolled := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	roster := []models.RosterEntry{
		{User: enrolled, EnrolledAt: time.Now()},
	}

	if !rosterContains(roster, enrolled) {
		t.Fatal("expected enrolled user to be found in roster")
	}
	if rosterContains(roster, stranger) {
		t.Fatal("expected stranger to be absent from roster")
	}
	if rosterContains(nil, enrolled) {
		t.Fatal("expected empty roster to contain nobody")
	}
}

func TestScheduleIsFullAtCapacity(t *testing.T) {
	schedule := models.Schedule{
		MaxStudents: 2,
		EnrolledStudents: []models.RosterEntry{
			{User: primitive.NewObjectID()},
			{User: primitive.NewObjectID()},
		},
	}
	if !scheduleIsFull(schedule) {
		t.Fatal("expected schedule at capacity to be full")
	}

	schedule.MaxStudents = 3
	if scheduleIsFull(schedule) {
		t.Fatal("expected schedule below capacity to have room")
	}
}

func TestScheduleDurationMinutes(t *testing.T) {
	start := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	if got := scheduleDurationMinutes(start, start.Add(90*time.Minute)); got != 90 {
		t.Fatalf("expected 90 minutes, got %d", got)
	}
	if got := scheduleDurationMinutes(start, start.Add(2*time.Hour)); got != 120 {
		t.Fatalf("expected 120 minutes, got %d", got)
	}
}
