package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the process environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/places-api/internal/config"     // Internal config loader
	"github.com/iliyamo/places-api/internal/database"   // Database connection helper
	"github.com/iliyamo/places-api/internal/geocode"    // Geocoder adapter
	"github.com/iliyamo/places-api/internal/handler"    // HTTP handlers
	"github.com/iliyamo/places-api/internal/middleware" // Rate limiting middleware
	"github.com/iliyamo/places-api/internal/queue"      // Background event consumer
	"github.com/iliyamo/places-api/internal/repository" // Data access layer
	"github.com/iliyamo/places-api/internal/router"     // Internal router setup
	"github.com/iliyamo/places-api/internal/storage"    // Uploaded image store
)

func main() {
	_ = godotenv.Load() // Load .env if present; real env vars win
	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	images, err := storage.NewImageStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	users := repository.NewUserRepo(db)
	places := repository.NewPlaceRepo(db)
	tokens := repository.NewTokenRepo(db)
	geo := geocode.NewClient(cfg.GeocoderURL, cfg.GeocoderKey)

	e := echo.New() // Create Echo instance

	// Distributed rate limiting backed by Redis.  NewTokenBucket degrades to
	// a pass-through when the client is nil, so a missing Redis never blocks
	// startup.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e, cfg.UploadDir) // Health check and static uploads
	router.RegisterUsers(e, handler.NewUserHandler(cfg, users, tokens, images), cfg.JWTSecret)
	router.RegisterPlaces(e, handler.NewPlaceHandler(places, users, geo, images), cfg.JWTSecret)

	// The lifecycle event consumer runs for the life of the process and
	// reconnects on its own; it never takes the server down.
	go func() {
		if err := queue.StartPlaceConsumer(); err != nil {
			log.Printf("place consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
