package service

import (
	"context"

	"bookstore/internal/models"
	"bookstore/internal/repository"
)

// Authorization covers login, registration and principal resolution.
// Token issuing/validation lives in TokenCodec, wired separately so the
// HTTP filter and this service stay independently constructible.
type Authorization interface {
	Register(ctx context.Context, username, password string) (int, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	LookupPrincipal(ctx context.Context, username string) (*models.User, error)
	EnsureUser(ctx context.Context, username, password string, role models.Role) error
}

// BookQuery narrows a catalog listing; at most one field is honored
// (category, then author, then title).
type BookQuery struct {
	Category string
	Author   string
	Title    string
}

// Catalog exposes book CRUD with the ISBN business rules.
type Catalog interface {
	List(ctx context.Context, q BookQuery) ([]models.Book, error)
	Get(ctx context.Context, id int) (*models.Book, error)
	Create(ctx context.Context, b models.Book) (models.Book, error)
	Update(ctx context.Context, id int, b models.Book) (*models.Book, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// ReviewStats is the aggregate exposed at /api/cv-reviews/stats.
type ReviewStats struct {
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
}

// Reviews exposes CV review CRUD and aggregate stats.
type Reviews interface {
	List(ctx context.Context) ([]models.CvReview, error)
	Get(ctx context.Context, id int) (*models.CvReview, error)
	Create(ctx context.Context, r models.CvReview) (models.CvReview, error)
	Delete(ctx context.Context, id int) (bool, error)
	Stats(ctx context.Context) (ReviewStats, error)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Catalog
	Reviews
}

func NewService(repos *repository.Repository) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users),
		Catalog:       NewCatalogService(repos.Books),
		Reviews:       NewReviewService(repos.Reviews),
	}
}
