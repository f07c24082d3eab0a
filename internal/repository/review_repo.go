package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bookstore/internal/models"
)

type ReviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

var _ Reviews = (*ReviewRepository)(nil)

const (
	reviewColumns = `id, author_name, email, comment, rating, created_at`

	selectReviewsSQL    = `SELECT ` + reviewColumns + ` FROM cv_reviews ORDER BY created_at DESC`
	selectReviewByIDSQL = `SELECT ` + reviewColumns + ` FROM cv_reviews WHERE id = ?`

	insertReviewSQL = `INSERT INTO cv_reviews (author_name, email, comment, rating, created_at)
		VALUES (?, ?, ?, ?, ?)`

	deleteReviewSQL = `DELETE FROM cv_reviews WHERE id = ?`

	reviewStatsSQL = `SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM cv_reviews`
)

// List returns all reviews, newest first.
func (r *ReviewRepository) List(ctx context.Context) ([]models.CvReview, error) {
	rows, err := r.db.QueryContext(ctx, selectReviewsSQL)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var reviews []models.CvReview
	for rows.Next() {
		var rv models.CvReview
		if err := rows.Scan(&rv.ID, &rv.AuthorName, &rv.Email, &rv.Comment, &rv.Rating, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		rv.CreatedAt = rv.CreatedAt.UTC()
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}
	return reviews, nil
}

// GetByID fetches a review by ID. Returns (nil, nil) if not found.
func (r *ReviewRepository) GetByID(ctx context.Context, id int) (*models.CvReview, error) {
	var rv models.CvReview
	err := r.db.QueryRowContext(ctx, selectReviewByIDSQL, id).
		Scan(&rv.ID, &rv.AuthorName, &rv.Email, &rv.Comment, &rv.Rating, &rv.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select review %d: %w", id, err)
	}
	rv.CreatedAt = rv.CreatedAt.UTC()
	return &rv, nil
}

func (r *ReviewRepository) Create(ctx context.Context, rv models.CvReview) (int, error) {
	ts := rv.CreatedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	res, err := r.db.ExecContext(ctx, insertReviewSQL,
		rv.AuthorName, rv.Email, rv.Comment, rv.Rating, ts.UTC())
	if err != nil {
		return 0, fmt.Errorf("insert review by %q: %w", rv.AuthorName, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for review by %q: %w", rv.AuthorName, err)
	}
	return int(lastID), nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteReviewSQL, id)
	if err != nil {
		return false, fmt.Errorf("delete review %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for review %d: %w", id, err)
	}
	return n > 0, nil
}

// Stats returns the raw (unrounded) average rating and the total count.
// An empty table yields (0, 0).
func (r *ReviewRepository) Stats(ctx context.Context) (float64, int, error) {
	var avg float64
	var count int
	if err := r.db.QueryRowContext(ctx, reviewStatsSQL).Scan(&avg, &count); err != nil {
		return 0, 0, fmt.Errorf("review stats: %w", err)
	}
	return avg, count, nil
}
