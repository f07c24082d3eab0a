package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bookstore/internal/models"
)

type BookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{db: db}
}

var _ Books = (*BookRepository)(nil)

const (
	bookColumns = `id, title, author, isbn, price, description, category, publication_year, cover_url`

	selectBooksSQL    = `SELECT ` + bookColumns + ` FROM books`
	selectBookByIDSQL = `SELECT ` + bookColumns + ` FROM books WHERE id = ?`

	insertBookSQL = `INSERT INTO books (title, author, isbn, price, description, category, publication_year, cover_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	updateBookSQL = `UPDATE books SET title = ?, author = ?, isbn = ?, price = ?, description = ?,
		category = ?, publication_year = ?, cover_url = ? WHERE id = ?`

	deleteBookSQL = `DELETE FROM books WHERE id = ?`

	existsBookByISBNSQL = `SELECT EXISTS(SELECT 1 FROM books WHERE isbn = ? AND id != ?)`
	countBooksSQL       = `SELECT COUNT(*) FROM books`
)

func scanBook(scan func(dest ...any) error) (models.Book, error) {
	var b models.Book
	err := scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.ISBN,
		&b.Price,
		&b.Description,
		&b.Category,
		&b.PublicationYear,
		&b.CoverURL,
	)
	return b, err
}

// List returns catalog entries ordered by ID, applying at most one filter
// field (category exact match, author/title case-insensitive substring).
func (r *BookRepository) List(ctx context.Context, f BookFilter) ([]models.Book, error) {
	query := selectBooksSQL
	var args []any

	switch {
	case f.Category != "":
		query += ` WHERE category = ?`
		args = append(args, f.Category)
	case f.Author != "":
		query += ` WHERE LOWER(author) LIKE ?`
		args = append(args, "%"+strings.ToLower(f.Author)+"%")
	case f.Title != "":
		query += ` WHERE LOWER(title) LIKE ?`
		args = append(args, "%"+strings.ToLower(f.Title)+"%")
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var books []models.Book
	for rows.Next() {
		b, err := scanBook(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan book row: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate book rows: %w", err)
	}
	return books, nil
}

// GetByID fetches a book by ID. Returns (nil, nil) if not found.
func (r *BookRepository) GetByID(ctx context.Context, id int) (*models.Book, error) {
	b, err := scanBook(r.db.QueryRowContext(ctx, selectBookByIDSQL, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select book %d: %w", id, err)
	}
	return &b, nil
}

func (r *BookRepository) Create(ctx context.Context, b models.Book) (int, error) {
	res, err := r.db.ExecContext(ctx, insertBookSQL,
		b.Title, b.Author, b.ISBN, b.Price, b.Description, b.Category, b.PublicationYear, b.CoverURL)
	if err != nil {
		return 0, fmt.Errorf("insert book %q: %w", b.ISBN, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for book %q: %w", b.ISBN, err)
	}
	return int(lastID), nil
}

// Update overwrites all mutable columns of the book identified by b.ID.
// Returns false if no row matched.
func (r *BookRepository) Update(ctx context.Context, b models.Book) (bool, error) {
	res, err := r.db.ExecContext(ctx, updateBookSQL,
		b.Title, b.Author, b.ISBN, b.Price, b.Description, b.Category, b.PublicationYear, b.CoverURL, b.ID)
	if err != nil {
		return false, fmt.Errorf("update book %d: %w", b.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for book %d: %w", b.ID, err)
	}
	return n > 0, nil
}

func (r *BookRepository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteBookSQL, id)
	if err != nil {
		return false, fmt.Errorf("delete book %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for book %d: %w", id, err)
	}
	return n > 0, nil
}

// ExistsByISBN reports whether another book (id != excludeID) already holds
// the ISBN. Pass excludeID=0 when creating.
func (r *BookRepository) ExistsByISBN(ctx context.Context, isbn string, excludeID int) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, existsBookByISBNSQL, isbn, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists book %q: %w", isbn, err)
	}
	return exists, nil
}

func (r *BookRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countBooksSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return n, nil
}
