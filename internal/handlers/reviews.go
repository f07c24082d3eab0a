package handlers

import (
	"fmt"
	"net/http"

	"bookstore/internal/models"

	"github.com/gin-gonic/gin"
)

type reviewRequest struct {
	AuthorName string `json:"authorName" binding:"required,min=2,max=100"`
	Email      string `json:"email" binding:"omitempty,email,max=150"`
	Comment    string `json:"comment" binding:"required,min=10,max=1000"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
}

// @Summary      List reviews
// @Description  Newest first
// @Tags         reviews
// @Produce      json
// @Success      200  {array}  models.CvReview
// @Router       /api/cv-reviews [get]
func (h *Handler) listReviews(c *gin.Context) {
	reviews, err := h.services.Reviews.List(c.Request.Context())
	if err != nil {
		if h.log != nil {
			h.log.Errorw("reviews_list_failed", "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reviews"})
		return
	}
	if reviews == nil {
		reviews = []models.CvReview{}
	}
	c.JSON(http.StatusOK, reviews)
}

// @Summary      Review stats
// @Tags         reviews
// @Produce      json
// @Success      200  {object}  service.ReviewStats
// @Router       /api/cv-reviews/stats [get]
func (h *Handler) reviewStats(c *gin.Context) {
	stats, err := h.services.Reviews.Stats(c.Request.Context())
	if err != nil {
		if h.log != nil {
			h.log.Errorw("review_stats_failed", "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary      Get a review
// @Tags         reviews
// @Produce      json
// @Success      200  {object}  models.CvReview
// @Failure      404  {object}  map[string]string
// @Router       /api/cv-reviews/{id} [get]
func (h *Handler) getReview(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	review, err := h.services.Reviews.Get(c.Request.Context(), id)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("review_get_failed", "id", id, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load review"})
		return
	}
	if review == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		return
	}
	c.JSON(http.StatusOK, review)
}

// @Summary      Submit a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.CvReview
// @Failure      400  {object}  map[string]string
// @Router       /api/cv-reviews [post]
func (h *Handler) createReview(c *gin.Context) {
	var input reviewRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	created, err := h.services.Reviews.Create(c.Request.Context(), models.CvReview{
		AuthorName: input.AuthorName,
		Email:      input.Email,
		Comment:    input.Comment,
		Rating:     input.Rating,
	})
	if err != nil {
		if h.log != nil {
			h.log.Errorw("review_create_failed", "author", input.AuthorName, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create review"})
		return
	}

	c.Header("Location", fmt.Sprintf("/api/cv-reviews/%d", created.ID))
	c.JSON(http.StatusCreated, created)
}

// @Summary      Delete a review
// @Tags         reviews
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/cv-reviews/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteReview(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	deleted, err := h.services.Reviews.Delete(c.Request.Context(), id)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("review_delete_failed", "id", id, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete review"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
