package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/studydeck/backend/internal/auth"
	"github.com/studydeck/backend/internal/database"
	"github.com/studydeck/backend/internal/middleware"
	"github.com/studydeck/backend/internal/questions"
	"github.com/studydeck/backend/internal/review"
	"github.com/studydeck/backend/internal/scheduler"
)

func main() {
	// Optional .env for local development
	godotenv.Load()

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize stores and services
	catalog := questions.NewStore(db)
	reviewStore := review.NewPGStore(db)
	reviewService := review.NewService(reviewStore, catalog)

	authHandler := auth.NewHandler(db)
	questionsHandler := questions.NewHandler(catalog)
	reviewHandler := review.NewHandler(reviewService)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	questionsHandler.RegisterRoutes(protected)
	reviewHandler.RegisterRoutes(protected)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Background reminder scheduler
	reminders := scheduler.New(db, reviewService, catalog)
	reminders.Start()
	defer reminders.Stop()

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
