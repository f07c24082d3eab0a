package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"bookstore/internal/models"
	"bookstore/internal/repository"
)

// Business-rule errors surfaced as 400s, distinct from auth errors.
var (
	ErrDuplicateISBN = errors.New("isbn already exists")
	ErrInvalidISBN   = errors.New("invalid isbn format, expected 978-XXXXXXXXXX")
)

var isbnPattern = regexp.MustCompile(`^978-\d{10}$`)

type CatalogService struct {
	books repository.Books
}

func NewCatalogService(books repository.Books) *CatalogService {
	return &CatalogService{books: books}
}

var _ Catalog = (*CatalogService)(nil)

func (s *CatalogService) List(ctx context.Context, q BookQuery) ([]models.Book, error) {
	return s.books.List(ctx, repository.BookFilter{
		Category: strings.TrimSpace(q.Category),
		Author:   strings.TrimSpace(q.Author),
		Title:    strings.TrimSpace(q.Title),
	})
}

// Get returns (nil, nil) when the ID does not exist.
func (s *CatalogService) Get(ctx context.Context, id int) (*models.Book, error) {
	return s.books.GetByID(ctx, id)
}

// Create validates the ISBN format and uniqueness, then persists the book.
func (s *CatalogService) Create(ctx context.Context, b models.Book) (models.Book, error) {
	b.ISBN = strings.TrimSpace(b.ISBN)
	if !isbnPattern.MatchString(b.ISBN) {
		return models.Book{}, ErrInvalidISBN
	}
	taken, err := s.books.ExistsByISBN(ctx, b.ISBN, 0)
	if err != nil {
		return models.Book{}, err
	}
	if taken {
		return models.Book{}, ErrDuplicateISBN
	}

	id, err := s.books.Create(ctx, b)
	if err != nil {
		return models.Book{}, err
	}
	b.ID = id
	return b, nil
}

// Update replaces the book at id. Returns (nil, nil) when the ID does not
// exist; the ISBN uniqueness check ignores the row being updated.
func (s *CatalogService) Update(ctx context.Context, id int, b models.Book) (*models.Book, error) {
	b.ISBN = strings.TrimSpace(b.ISBN)
	if !isbnPattern.MatchString(b.ISBN) {
		return nil, ErrInvalidISBN
	}
	taken, err := s.books.ExistsByISBN(ctx, b.ISBN, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateISBN
	}

	b.ID = id
	ok, err := s.books.Update(ctx, b)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (s *CatalogService) Delete(ctx context.Context, id int) (bool, error) {
	return s.books.Delete(ctx, id)
}
