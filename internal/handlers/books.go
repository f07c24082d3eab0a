package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"bookstore/internal/models"
	"bookstore/internal/service"

	"github.com/gin-gonic/gin"
)

// bookRequest carries the writable fields of a catalog entry. Field bounds
// mirror what the storefront validates client-side.
type bookRequest struct {
	Title           string  `json:"title" binding:"required,min=2,max=200"`
	Author          string  `json:"author" binding:"required,min=2,max=100"`
	ISBN            string  `json:"isbn" binding:"required"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	Description     string  `json:"description" binding:"omitempty,max=1000"`
	Category        string  `json:"category" binding:"omitempty,oneof=ROMAN POESIE THEATRE ESSAI BIOGRAPHIE"`
	PublicationYear int     `json:"publicationYear" binding:"required"`
	CoverURL        string  `json:"coverUrl" binding:"omitempty,max=500"`
}

func (r bookRequest) toModel() models.Book {
	return models.Book{
		Title:           r.Title,
		Author:          r.Author,
		ISBN:            r.ISBN,
		Price:           r.Price,
		Description:     r.Description,
		Category:        r.Category,
		PublicationYear: r.PublicationYear,
		CoverURL:        r.CoverURL,
	}
}

// idParam parses the :id path parameter, writing a 400 on garbage input.
func (h *Handler) idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// isBusinessRuleErr separates catalog rule violations (400) from storage
// failures (500).
func isBusinessRuleErr(err error) bool {
	return errors.Is(err, service.ErrDuplicateISBN) || errors.Is(err, service.ErrInvalidISBN)
}

// @Summary      List books
// @Description  Optional one-of filters: category, author, title
// @Tags         books
// @Produce      json
// @Param        category  query  string  false  "Category"  Enums(ROMAN,POESIE,THEATRE,ESSAI,BIOGRAPHIE)
// @Param        author    query  string  false  "Author substring"
// @Param        title     query  string  false  "Title substring"
// @Success      200  {array}   models.Book
// @Failure      500  {object}  map[string]string
// @Router       /api/books [get]
func (h *Handler) listBooks(c *gin.Context) {
	books, err := h.services.Catalog.List(c.Request.Context(), service.BookQuery{
		Category: c.Query("category"),
		Author:   c.Query("author"),
		Title:    c.Query("title"),
	})
	if err != nil {
		if h.log != nil {
			h.log.Errorw("books_list_failed", "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load books"})
		return
	}
	if books == nil {
		books = []models.Book{}
	}
	c.JSON(http.StatusOK, books)
}

// @Summary      Get a book
// @Tags         books
// @Produce      json
// @Success      200  {object}  models.Book
// @Failure      404  {object}  map[string]string
// @Router       /api/books/{id} [get]
func (h *Handler) getBook(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	book, err := h.services.Catalog.Get(c.Request.Context(), id)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("book_get_failed", "id", id, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load book"})
		return
	}
	if book == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}
	c.JSON(http.StatusOK, book)
}

// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.Book
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/books [post]
// @Security     BearerAuth
func (h *Handler) createBook(c *gin.Context) {
	var input bookRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	created, err := h.services.Catalog.Create(c.Request.Context(), input.toModel())
	if err != nil {
		if isBusinessRuleErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if h.log != nil {
			h.log.Errorw("book_create_failed", "isbn", input.ISBN, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create book"})
		return
	}

	c.Header("Location", fmt.Sprintf("/api/books/%d", created.ID))
	c.JSON(http.StatusCreated, created)
}

// @Summary      Update a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Success      200  {object}  models.Book
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/books/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateBook(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	var input bookRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	updated, err := h.services.Catalog.Update(c.Request.Context(), id, input.toModel())
	if err != nil {
		if isBusinessRuleErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if h.log != nil {
			h.log.Errorw("book_update_failed", "id", id, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update book"})
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary      Delete a book
// @Tags         books
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/books/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteBook(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	deleted, err := h.services.Catalog.Delete(c.Request.Context(), id)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("book_delete_failed", "id", id, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete book"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
