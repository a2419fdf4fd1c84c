package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookmarkd/internal/auth"
	"bookmarkd/internal/config"
	"bookmarkd/internal/database"
	"bookmarkd/internal/handlers"
	"bookmarkd/internal/repositories"
	"bookmarkd/internal/seed"
	"bookmarkd/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
	if cfg.SeedDemoData {
		if err := seed.Run(db); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("failed to initialize JWT manager: %v", err)
	}

	userRepo := repositories.NewUserRepository(db)
	bookRepo := repositories.NewBookRepository(db)
	entryRepo := repositories.NewLibraryEntryRepository(db)
	goalRepo := repositories.NewGoalRepository(db)
	clubRepo := repositories.NewClubRepository(db)
	membershipRepo := repositories.NewMembershipRepository(db)
	postRepo := repositories.NewPostRepository(db)
	commentRepo := repositories.NewCommentRepository(db)

	authService := services.NewAuthService(db, userRepo)
	libraryService := services.NewLibraryService(db, bookRepo, entryRepo)
	goalService := services.NewGoalService(db, userRepo, goalRepo)
	clubService := services.NewClubService(db, clubRepo, membershipRepo, postRepo, commentRepo)
	recommendationService := services.NewRecommendationService(
		cfg.RecommenderAPIKey,
		cfg.RecommenderBaseURL,
		cfg.RecommenderModel,
		cfg.RecommenderTimeout,
	)

	router := gin.Default()

	handlers.RegisterRoutes(router, db, jwtManager,
		authService, libraryService, goalService, clubService, recommendationService)

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	log.Printf("Starting server on %s", cfg.ServerAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
