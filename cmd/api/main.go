// cmd/api/main.go
// Main entry point for the application
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wandermatch/wandermatch-backend/internal/auth"
	"github.com/wandermatch/wandermatch-backend/internal/common/database"
	"github.com/wandermatch/wandermatch-backend/internal/config"
	"github.com/wandermatch/wandermatch-backend/internal/matching"
	"github.com/wandermatch/wandermatch-backend/internal/profile"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting WanderMatch API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// 2. Load configuration
	log.Println("\n📋 Step 2: Loading configuration...")
	cfg := config.Load()
	log.Printf("✅ Configuration loaded")

	// 3. Validate configuration
	log.Println("\n✔️  Step 3: Validating configuration...")
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed:", err)
	}
	log.Println("✅ Configuration is valid")

	// 4. Connect to PostgreSQL
	log.Println("\n🗄️  Step 4: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL successfully")

	// 5. Connect to Redis (optional)
	log.Println("\n📮 Step 5: Connecting to Redis...")
	var redisClient *redis.Client
	if cfg.EnableScoreCache && cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClientFromURL(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable: %v, continuing without score cache", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("✅ Connected to Redis successfully")
		}
	} else {
		log.Println("⚠️  Score cache disabled, skipping Redis connection")
	}

	// 6. Run database migrations
	log.Println("\n🔨 Step 6: Running database migrations...")
	if err := runMigrations(db); err != nil {
		log.Fatal("❌ Failed to run migrations: ", err)
	}
	log.Println("✅ Database migrations completed")

	// 7. Initialize matching module
	log.Println("\n💞 Step 7: Initializing matching module...")
	seed := cfg.EngineSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	engine := matching.NewEngine(seed)

	matchingRepo := matching.NewPostgresRepository(db)
	scoreCache := matching.NewScoreCache(redisClient, cfg.ScoreCacheTTL)

	hub := matching.NewHub()
	go hub.Run()
	log.Println("   ✅ Match notification hub started")

	matchingService := matching.NewService(matchingRepo, engine, scoreCache, hub)
	matchingHandler := matching.NewHandler(matchingService)
	log.Println("✅ Matching module initialized")

	// 8. Initialize profile module
	log.Println("\n👤 Step 8: Initializing profile module...")
	profileRepo := profile.NewPostgresRepository(db)
	profileHandler := profile.NewHandler(profileRepo)
	log.Println("✅ Profile module initialized")

	// 9. Setup routes
	log.Println("\n🛣️  Step 9: Setting up routes...")
	router := mux.NewRouter()

	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	authMiddleware := auth.NewMiddleware(cfg.JWTSecret)

	matching.RegisterRoutes(router, matchingHandler, hub, authMiddleware)
	log.Println("   ✅ Matching routes registered")

	profile.RegisterRoutes(router, profileHandler, authMiddleware)
	log.Println("   ✅ Profile routes registered")

	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	// 10. Start swipe cleanup scheduler
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	scheduler := matching.NewScheduler(matchingService, cfg.SwipeCleanupInterval)
	scheduler.Start(schedulerCtx)
	log.Println("   ✅ Swipe cleanup scheduler started")

	// 11. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("\n========================================")
		log.Printf("🚀 Server starting on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)
		log.Println("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n⚠️  Shutdown signal received...")
	stopScheduler()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown:", err)
	}

	log.Println("✅ Server exited gracefully")
}

// healthCheck responds to liveness probes
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"wandermatch-api"}`))
}

// Middleware functions

// loggingMiddleware logs all requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		log.Printf("← %s %s [%d] %v", r.Method, r.RequestURI, wrapped.statusCode, duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// runMigrations executes database migrations
func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		// Users table with travel profile fields
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username VARCHAR(100) UNIQUE NOT NULL,
			display_name VARCHAR(100) NOT NULL DEFAULT '',
			age INTEGER NOT NULL DEFAULT 0,
			bio TEXT NOT NULL DEFAULT '',
			location VARCHAR(100) NOT NULL DEFAULT '',
			location_lat DOUBLE PRECISION,
			location_lng DOUBLE PRECISION,
			interests TEXT[] NOT NULL DEFAULT '{}',
			travel_styles TEXT[] NOT NULL DEFAULT '{}',
			next_destination VARCHAR(100) NOT NULL DEFAULT '',
			bucket_list TEXT[] NOT NULL DEFAULT '{}',
			travel_dates VARCHAR(100) NOT NULL DEFAULT '',
			languages TEXT[] NOT NULL DEFAULT '{}',
			elo_rating INTEGER NOT NULL DEFAULT 1500,
			is_verified BOOLEAN DEFAULT FALSE,
			last_active TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)`,

		// Swipes ledger
		`CREATE TABLE IF NOT EXISTS swipes (
			id SERIAL PRIMARY KEY,
			swiper_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			swiped_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			kind VARCHAR(20) NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)`,

		// Matches with canonical pair ordering (user1_id < user2_id)
		`CREATE TABLE IF NOT EXISTS matches (
			id SERIAL PRIMARY KEY,
			match_ref UUID NOT NULL UNIQUE,
			user1_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			user2_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			matched_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			last_message_at TIMESTAMP WITH TIME ZONE,
			unread_count_user1 INTEGER NOT NULL DEFAULT 0,
			unread_count_user2 INTEGER NOT NULL DEFAULT 0,
			CONSTRAINT unique_match_pair UNIQUE(user1_id, user2_id),
			CONSTRAINT ordered_match_pair CHECK (user1_id < user2_id)
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_users_last_active ON users(last_active DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_swipes_swiper ON swipes(swiper_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_swipes_swiped ON swipes(swiped_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_swipes_pair ON swipes(swiper_id, swiped_id)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_user1 ON matches(user1_id)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_user2 ON matches(user2_id)`,
	}

	for i, migration := range migrations {
		log.Printf("   - Running migration %d/%d...", i+1, len(migrations))
		if _, err := db.Exec(migration); err != nil {
			if !strings.Contains(err.Error(), "already exists") {
				return fmt.Errorf("migration %d failed: %w", i+1, err)
			}
			log.Printf("   - Migration %d skipped (already exists)", i+1)
		}
	}

	return nil
}
