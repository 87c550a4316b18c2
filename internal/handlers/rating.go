package handlers

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"basina-backend/internal/models"
)

// recomputeRating derives the aggregate from the embedded review list. An
// empty list keeps the zero aggregate.
func recomputeRating(reviews []models.Review) models.Rating {
	if len(reviews) == 0 {
		return models.Rating{}
	}

	total := 0
	for _, review := range reviews {
		total += review.Rating
	}

	return models.Rating{
		Average: float64(total) / float64(len(reviews)),
		Count:   len(reviews),
	}
}

func hasReviewFrom(reviews []models.Review, userID primitive.ObjectID) bool {
	for _, review := range reviews {
		if review.User == userID {
			return true
		}
	}
	return false
}
