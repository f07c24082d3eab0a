package service

import (
	"context"
	"math"
	"time"

	"bookstore/internal/models"
	"bookstore/internal/repository"
)

type ReviewService struct {
	reviews repository.Reviews
}

func NewReviewService(reviews repository.Reviews) *ReviewService {
	return &ReviewService{reviews: reviews}
}

var _ Reviews = (*ReviewService)(nil)

func (s *ReviewService) List(ctx context.Context) ([]models.CvReview, error) {
	return s.reviews.List(ctx)
}

// Get returns (nil, nil) when the ID does not exist.
func (s *ReviewService) Get(ctx context.Context, id int) (*models.CvReview, error) {
	return s.reviews.GetByID(ctx, id)
}

// Create persists the review with a server-set creation timestamp.
func (s *ReviewService) Create(ctx context.Context, r models.CvReview) (models.CvReview, error) {
	r.CreatedAt = time.Now().UTC()
	id, err := s.reviews.Create(ctx, r)
	if err != nil {
		return models.CvReview{}, err
	}
	r.ID = id
	return r, nil
}

func (s *ReviewService) Delete(ctx context.Context, id int) (bool, error) {
	return s.reviews.Delete(ctx, id)
}

// Stats returns the average rating rounded to one decimal and the total
// review count. No reviews yields {0.0, 0}.
func (s *ReviewService) Stats(ctx context.Context) (ReviewStats, error) {
	avg, count, err := s.reviews.Stats(ctx)
	if err != nil {
		return ReviewStats{}, err
	}
	return ReviewStats{
		AverageRating: math.Round(avg*10) / 10,
		TotalReviews:  count,
	}, nil
}
