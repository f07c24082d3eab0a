package repository

import (
	"context"
	"database/sql"

	"bookstore/internal/models"
)

// Users is the credential store: usernames, password hashes, roles.
type Users interface {
	Create(ctx context.Context, username, passwordHash string, role models.Role) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// BookFilter narrows a catalog listing. At most one field is applied;
// precedence is Category, then Author, then Title.
type BookFilter struct {
	Category string
	Author   string
	Title    string
}

type Books interface {
	List(ctx context.Context, f BookFilter) ([]models.Book, error)
	GetByID(ctx context.Context, id int) (*models.Book, error)
	Create(ctx context.Context, b models.Book) (int, error)
	Update(ctx context.Context, b models.Book) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
	ExistsByISBN(ctx context.Context, isbn string, excludeID int) (bool, error)
	Count(ctx context.Context) (int, error)
}

type Reviews interface {
	List(ctx context.Context) ([]models.CvReview, error)
	GetByID(ctx context.Context, id int) (*models.CvReview, error)
	Create(ctx context.Context, r models.CvReview) (int, error)
	Delete(ctx context.Context, id int) (bool, error)
	// Stats returns the raw average rating (0 when empty) and the review count.
	Stats(ctx context.Context) (float64, int, error)
}

type Repository struct {
	Users   Users
	Books   Books
	Reviews Reviews
}

func NewRepository(conn *sql.DB) *Repository {
	return &Repository{
		Users:   NewUserRepository(conn),
		Books:   NewBookRepository(conn),
		Reviews: NewReviewRepository(conn),
	}
}
