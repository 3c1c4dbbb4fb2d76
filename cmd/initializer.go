package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"bakbukBack/internal/config"
	"bakbukBack/internal/handlers"
	"bakbukBack/internal/repositories"
	"bakbukBack/internal/scorer"
	"bakbukBack/internal/services"
	"bakbukBack/utils"
)

type application struct {
	errorLog          *log.Logger
	infoLog           *log.Logger
	db                *sql.DB
	tokenManager      *utils.Manager
	sessionRepo       *repositories.SessionRepository
	userHandler       *handlers.UserHandler
	listingHandler    *handlers.ListingHandler
	moderationHandler *handlers.ModerationHandler
	reviewHandler     *handlers.ReviewHandler
}

func initializeApp(cfg config.Config, db *sql.DB, rdb *redis.Client, errorLog, infoLog *log.Logger) *application {
	tokenManager, err := utils.NewManager(cfg.Auth.SigningKey)
	if err != nil {
		errorLog.Fatal(err)
	}

	// Repositories
	userRepo := repositories.UserRepository{DB: db}
	listingRepo := repositories.ListingRepository{DB: db}
	reviewRepo := repositories.ReviewRepository{DB: db}
	sessionRepo := repositories.SessionRepository{RDB: rdb}

	// Services
	imageStore := utils.NewS3Storage(utils.S3Config{
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		Bucket:    cfg.S3.Bucket,
		Region:    cfg.S3.Region,
		Endpoint:  cfg.S3.Endpoint,
		PublicURL: cfg.S3.PublicURL,
	})
	userService := &services.UserService{
		UserRepo:     &userRepo,
		SessionRepo:  &sessionRepo,
		TokenManager: tokenManager,
	}
	listingService := &services.ListingService{
		ListingRepo: &listingRepo,
		Scorer:      scorer.NewSizeScorer(),
		Images:      imageStore,
	}
	reviewService := &services.ReviewService{ReviewsRepo: &reviewRepo}

	// Handlers
	userHandler := &handlers.UserHandler{Service: userService}
	listingHandler := &handlers.ListingHandler{Service: listingService}
	moderationHandler := &handlers.ModerationHandler{Service: listingService}
	reviewHandler := &handlers.ReviewHandler{Service: reviewService}

	return &application{
		errorLog:          errorLog,
		infoLog:           infoLog,
		db:                db,
		tokenManager:      tokenManager,
		sessionRepo:       &sessionRepo,
		userHandler:       userHandler,
		listingHandler:    listingHandler,
		moderationHandler: moderationHandler,
		reviewHandler:     reviewHandler,
	}
}

// openDB connects with bounded retries so a cold database container does not
// kill the server on startup. Request-path failures are never retried here.
func openDB(dsn string, infoLog *log.Logger) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)
	for attempt := 1; attempt <= 5; attempt++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
		}
		if err == nil {
			db.SetMaxIdleConns(35)
			infoLog.Println("Successfully connected to database")
			return db, nil
		}
		log.Printf("Failed to connect to DB (attempt %d/5): %v", attempt, err)
		time.Sleep(2 * time.Second)
	}
	return nil, err
}

func openRedis(cfg config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
