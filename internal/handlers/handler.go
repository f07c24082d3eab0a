package handlers

import (
	"bookstore/internal/logger"
	"bookstore/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services, the token codec and logging.
// The codec is injected separately from the services so both sides are
// constructible on their own and composed only here.
type Handler struct {
	services *service.Service
	codec    *service.TokenCodec
	log      *logger.Logger
}

func NewHandler(services *service.Service, codec *service.TokenCodec, log *logger.Logger) *Handler {
	return &Handler{services: services, codec: codec, log: log}
}

// InitRoutes builds the Gin router. The authentication filter and the
// access-rule check run globally, in that order, before any handler.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		h.requestID,
		h.cors,
		h.authenticate,
		h.requireAccess(defaultAccessRules),
	)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Live review-stats stream (HTTP upgrade) — same port
	router.GET("/ws", h.statsStream)

	api := router.Group("/api")
	{
		h.registerAuthRoutes(api)
		h.registerBookRoutes(api)
		h.registerReviewRoutes(api)
	}

	return router
}

func (h *Handler) registerAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.GET("/me", h.me)
	}
}

func (h *Handler) registerBookRoutes(api *gin.RouterGroup) {
	books := api.Group("/books")
	{
		books.GET("", h.listBooks)
		books.GET("/:id", h.getBook)
		books.POST("", h.createBook)
		books.PUT("/:id", h.updateBook)
		books.DELETE("/:id", h.deleteBook)
	}
}

func (h *Handler) registerReviewRoutes(api *gin.RouterGroup) {
	reviews := api.Group("/cv-reviews")
	{
		reviews.GET("", h.listReviews)
		reviews.GET("/stats", h.reviewStats)
		reviews.GET("/:id", h.getReview)
		reviews.POST("", h.createReview)
		reviews.DELETE("/:id", h.deleteReview)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
