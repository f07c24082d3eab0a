package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"bookstore/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockBookRepo(t *testing.T) (*BookRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewBookRepository(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func bookRows(books ...models.Book) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "title", "author", "isbn", "price",
		"description", "category", "publication_year", "cover_url",
	})
	for _, b := range books {
		rows.AddRow(b.ID, b.Title, b.Author, b.ISBN, b.Price,
			b.Description, b.Category, b.PublicationYear, b.CoverURL)
	}
	return rows
}

var sampleBook = models.Book{
	ID:              1,
	Title:           "Les Misérables",
	Author:          "Victor Hugo",
	ISBN:            "978-1234567890",
	Price:           19.99,
	Description:     "Roman classique.",
	Category:        models.CategoryRoman,
	PublicationYear: 1862,
}

func TestBookRepository_List(t *testing.T) {
	tests := []struct {
		name       string
		filter     BookFilter
		mockExpect func(sqlmock.Sqlmock)
		wantCount  int
	}{
		{
			name:   "no filter",
			filter: BookFilter{},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectBooksSQL + ` ORDER BY id`)).
					WillReturnRows(bookRows(sampleBook))
			},
			wantCount: 1,
		},
		{
			name:   "category filter",
			filter: BookFilter{Category: "ROMAN"},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectBooksSQL + ` WHERE category = ? ORDER BY id`)).
					WithArgs("ROMAN").
					WillReturnRows(bookRows(sampleBook))
			},
			wantCount: 1,
		},
		{
			name:   "author filter is lowercased substring",
			filter: BookFilter{Author: "Hugo"},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectBooksSQL + ` WHERE LOWER(author) LIKE ? ORDER BY id`)).
					WithArgs("%hugo%").
					WillReturnRows(bookRows(sampleBook))
			},
			wantCount: 1,
		},
		{
			name:   "title filter with no match",
			filter: BookFilter{Title: "nothing"},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectBooksSQL + ` WHERE LOWER(title) LIKE ? ORDER BY id`)).
					WithArgs("%nothing%").
					WillReturnRows(bookRows())
			},
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockBookRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			books, err := repo.List(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(books) != tt.wantCount {
				t.Fatalf("count: got %d, want %d", len(books), tt.wantCount)
			}
			if tt.wantCount > 0 && books[0] != sampleBook {
				t.Fatalf("book: got %+v, want %+v", books[0], sampleBook)
			}
		})
	}
}

func TestBookRepository_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock, cleanup := newMockBookRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectBookByIDSQL)).
			WithArgs(1).
			WillReturnRows(bookRows(sampleBook))

		b, err := repo.GetByID(context.Background(), 1)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if b == nil || *b != sampleBook {
			t.Fatalf("book: got %+v, want %+v", b, sampleBook)
		}
	})

	t.Run("not found yields nil", func(t *testing.T) {
		repo, mock, cleanup := newMockBookRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectBookByIDSQL)).
			WithArgs(99).
			WillReturnError(sql.ErrNoRows)

		b, err := repo.GetByID(context.Background(), 99)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if b != nil {
			t.Fatalf("expected nil, got %+v", b)
		}
	})
}

func TestBookRepository_Update(t *testing.T) {
	t.Run("row matched", func(t *testing.T) {
		repo, mock, cleanup := newMockBookRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(updateBookSQL)).
			WithArgs(sampleBook.Title, sampleBook.Author, sampleBook.ISBN, sampleBook.Price,
				sampleBook.Description, sampleBook.Category, sampleBook.PublicationYear,
				sampleBook.CoverURL, sampleBook.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.Update(context.Background(), sampleBook)
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if !ok {
			t.Fatal("expected ok=true")
		}
	})

	t.Run("no row matched", func(t *testing.T) {
		repo, mock, cleanup := newMockBookRepo(t)
		defer cleanup()

		missing := sampleBook
		missing.ID = 99

		mock.ExpectExec(regexp.QuoteMeta(updateBookSQL)).
			WithArgs(missing.Title, missing.Author, missing.ISBN, missing.Price,
				missing.Description, missing.Category, missing.PublicationYear,
				missing.CoverURL, missing.ID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.Update(context.Background(), missing)
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if ok {
			t.Fatal("expected ok=false for missing row")
		}
	})
}

func TestBookRepository_Delete(t *testing.T) {
	repo, mock, cleanup := newMockBookRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(deleteBookSQL)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.Delete(context.Background(), 1)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true")
	}
}

func TestBookRepository_ExistsByISBN(t *testing.T) {
	repo, mock, cleanup := newMockBookRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(existsBookByISBNSQL)).
		WithArgs("978-1234567890", 5).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.ExistsByISBN(context.Background(), "978-1234567890", 5)
	if err != nil {
		t.Fatalf("ExistsByISBN: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false")
	}
}

func TestBookRepository_ListQueryError(t *testing.T) {
	repo, mock, cleanup := newMockBookRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectBooksSQL + ` ORDER BY id`)).
		WillReturnError(errors.New("db query failed"))

	if _, err := repo.List(context.Background(), BookFilter{}); err == nil {
		t.Fatal("expected error, got nil")
	}
}
