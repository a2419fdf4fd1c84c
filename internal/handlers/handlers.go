package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"bookmarkd/internal/auth"
	"bookmarkd/internal/services"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	jwtManager *auth.JWTManager,
	authSvc services.AuthService,
	librarySvc services.LibraryService,
	goalSvc services.GoalService,
	clubSvc services.ClubService,
	recommendationSvc services.RecommendationService,
) {
	r.Use(RequestID())

	authHandler := &AuthHandler{svc: authSvc, jwt: jwtManager}
	bookHandler := &BookHandler{svc: librarySvc}
	goalHandler := &GoalHandler{svc: goalSvc}
	clubHandler := &ClubHandler{svc: clubSvc}
	recommendationHandler := &RecommendationHandler{svc: recommendationSvc}

	// Public endpoints
	r.GET("/health", healthCheck(db))
	r.POST("/auth/register", authHandler.register)
	r.POST("/auth/login", authHandler.login)
	r.GET("/clubs", clubHandler.listClubs)
	r.GET("/clubs/:slug", clubHandler.getClub)

	// Authenticated endpoints
	authorized := r.Group("", AuthRequired(jwtManager))
	authorized.GET("/auth/me", authHandler.me)

	authorized.POST("/books", bookHandler.createBook)
	authorized.GET("/books", bookHandler.listBooks)
	authorized.DELETE("/books/:id", bookHandler.deleteBook)
	authorized.PUT("/books/:id/progress", bookHandler.updateProgress)
	authorized.PUT("/books/:id/rating", bookHandler.updateRating)

	authorized.POST("/recommendations", recommendationHandler.recommend)

	authorized.POST("/goals", goalHandler.createGoal)
	authorized.GET("/goals", goalHandler.listGoals)
	authorized.DELETE("/goals/:id", goalHandler.deleteGoal)
	authorized.PUT("/goals/:id", goalHandler.updateProgress)

	authorized.GET("/clubs/mine", clubHandler.listMyClubs)
	authorized.POST("/clubs", clubHandler.createClub)
	authorized.POST("/clubs/:slug/join", clubHandler.joinClub)
	authorized.POST("/clubs/:slug/posts", clubHandler.createPost)
	authorized.GET("/clubs/:slug/feed", clubHandler.feed)
	authorized.POST("/posts/:id/comments", clubHandler.createComment)
}

func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// respondError translates service errors into HTTP responses. Unrecognized
// errors are logged and answered with a generic 500 so internals never leak.
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.Is(err, services.ErrDuplicateLibraryEntry),
		errors.Is(err, services.ErrRatingNotAllowed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotClubMember):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrBookNotFound),
		errors.Is(err, services.ErrGoalNotFound),
		errors.Is(err, services.ErrClubNotFound),
		errors.Is(err, services.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
