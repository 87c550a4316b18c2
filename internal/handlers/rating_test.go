package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"basina-backend/internal/models"
)

func TestRecomputeRatingAveragesAllReviews(t *testing.T) {
	reviews := []models.Review{
		{Rating: 5},
		{Rating: 4},
		{Rating: 3},
	}

	rating := recomputeRating(reviews)
	if rating.Count != 3 {
		t.Fatalf("expected count 3, got %d", rating.Count)
	}
	if rating.Average != 4 {
		t.Fatalf("expected average 4, got %v", rating.Average)
	}
}

func TestRecomputeRatingEmptyListKeepsZeroAggregate(t *testing.T) {
	rating := recomputeRating(nil)
	if rating.Average != 0 || rating.Count != 0 {
		t.Fatalf("expected zero aggregate, got average=%v count=%d", rating.Average, rating.Count)
	}
}

func TestRecomputeRatingSingleReview(t *testing.T) {
	rating := recomputeRating([]models.Review{{Rating: 2}})
	if rating.Average != 2 || rating.Count != 1 {
		t.Fatalf("expected average=2 count=1, got average=%v count=%d", rating.Average, rating.Count)
	}
}

func TestHasReviewFrom(t *testing.T) {
	author := primitive.NewObjectID()
	other := primitive.NewObjectID()

	reviews := []models.Review{
		{User: author, Rating: 5},
	}

	if !hasReviewFrom(reviews, author) {
		t.Fatal("expected author to be found in reviews")
	}
	if hasReviewFrom(reviews, other) {
		t.Fatal("expected other user to have no review")
	}
	if hasReviewFrom(nil, author) {
		t.Fatal("expected empty review list to match nobody")
	}
}
