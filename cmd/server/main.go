package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/english-learn/backend/internal/auth"
	"github.com/english-learn/backend/internal/content"
	"github.com/english-learn/backend/internal/database"
	"github.com/english-learn/backend/internal/exercises"
	"github.com/english-learn/backend/internal/generator"
	"github.com/english-learn/backend/internal/listening"
	"github.com/english-learn/backend/internal/metrics"
	"github.com/english-learn/backend/internal/middleware"
	"github.com/english-learn/backend/internal/notify"
	"github.com/english-learn/backend/internal/progress"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		jwtSecret = []byte("english-learn-dev-signing-key")
		log.Println("JWT_SECRET not set, using development key")
	}

	// Database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	metrics.MustRegister(registry)

	// Realtime hub
	hub := notify.NewHub()

	// Services and handlers
	progressStore := progress.NewStore(db)
	progressService := progress.NewService(progressStore, hub)
	progressHandler := progress.NewHandler(progressService)

	exerciseStore := exercises.NewStore(db)
	exerciseService := exercises.NewService(exerciseStore, progressService)
	exerciseHandler := exercises.NewHandler(exerciseService)

	contentStore := content.NewStore(db)
	contentHandler := content.NewHandler(contentStore)

	listeningStore := listening.NewStore(db)
	listeningHandler := listening.NewHandler(listeningStore)

	authHandler := auth.NewHandler(db, jwtSecret, progressService)
	notifyHandler := notify.NewHandler(hub)
	generatorHandler := generator.NewHandler(generator.NewGenerator())

	// Router
	r := mux.NewRouter()
	r.Use(metrics.Middleware)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	api.HandleFunc("/categories", contentHandler.ListCategories).Methods("GET")
	api.HandleFunc("/difficulty-levels", contentHandler.ListDifficultyLevels).Methods("GET")
	api.HandleFunc("/content", contentHandler.ListContentItems).Methods("GET")
	api.HandleFunc("/content/{id:[0-9]+}", contentHandler.GetContentItem).Methods("GET")
	api.HandleFunc("/word-lists", contentHandler.ListWordLists).Methods("GET")
	api.HandleFunc("/word-lists/{id:[0-9]+}", contentHandler.GetWordList).Methods("GET")

	api.HandleFunc("/exercise-types", exerciseHandler.ListExerciseTypes).Methods("GET")
	api.HandleFunc("/exercises", exerciseHandler.ListExercises).Methods("GET")
	api.HandleFunc("/exercises/{id:[0-9]+}", exerciseHandler.GetExercise).Methods("GET")
	api.HandleFunc("/exams", exerciseHandler.ListExams).Methods("GET")
	api.HandleFunc("/exams/{id:[0-9]+}", exerciseHandler.GetExam).Methods("GET")

	api.HandleFunc("/stories", listeningHandler.ListStories).Methods("GET")
	api.HandleFunc("/stories/{id:[0-9]+}", listeningHandler.GetStory).Methods("GET")
	api.HandleFunc("/dialogues", listeningHandler.ListDialogues).Methods("GET")
	api.HandleFunc("/dialogues/{id:[0-9]+}", listeningHandler.GetDialogue).Methods("GET")

	api.HandleFunc("/achievements", progressHandler.ListAllAchievements).Methods("GET")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(jwtSecret))

	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	protected.HandleFunc("/exercises/{id:[0-9]+}/submit", exerciseHandler.SubmitExercise).Methods("POST")
	protected.HandleFunc("/exercises/history", exerciseHandler.GetExerciseHistory).Methods("GET")
	protected.HandleFunc("/exams/{id:[0-9]+}/start", exerciseHandler.StartExam).Methods("POST")
	protected.HandleFunc("/exam-sessions/{session_id}/answer", exerciseHandler.AnswerExam).Methods("POST")
	protected.HandleFunc("/exam-sessions/{session_id}/submit", exerciseHandler.SubmitExam).Methods("POST")
	protected.HandleFunc("/exams/history", exerciseHandler.GetExamHistory).Methods("GET")

	protected.HandleFunc("/progress", progressHandler.GetProgress).Methods("GET")
	protected.HandleFunc("/progress/points", progressHandler.GetPoints).Methods("GET")
	protected.HandleFunc("/progress/streak", progressHandler.GetStreak).Methods("GET")
	protected.HandleFunc("/progress/streak", progressHandler.RecordActivity).Methods("POST")
	protected.HandleFunc("/progress/achievements", progressHandler.GetAchievements).Methods("GET")
	protected.HandleFunc("/content/{id:[0-9]+}/learned", progressHandler.MarkLearned).Methods("POST")

	protected.HandleFunc("/content/{id:[0-9]+}/bookmark", contentHandler.ToggleBookmark).Methods("POST")
	protected.HandleFunc("/bookmarks", contentHandler.ListBookmarks).Methods("GET")
	protected.HandleFunc("/statistics", contentHandler.GetStatistics).Methods("GET")
	protected.HandleFunc("/recommendations", contentHandler.GetRecommendations).Methods("GET")

	protected.HandleFunc("/notifications/ws", notifyHandler.Serve).Methods("GET")

	protected.HandleFunc("/admin/exercises/generate", generatorHandler.DraftExercise).Methods("POST")

	// Operational endpoints
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods("GET")
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

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
