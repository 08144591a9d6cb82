package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"runtime"
	"time"

	"insurisk/database"
	"insurisk/internal/advisory"
	"insurisk/internal/cache"
	"insurisk/internal/controllers"
	"insurisk/internal/hybrid"
	"insurisk/internal/ml"
	"insurisk/internal/repository"
	"insurisk/internal/services"
	"insurisk/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load("../.env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Connect to database
	database.ConnectDatabase()
	if err := database.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	database.MonitorDBConnections()

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.DB)
	questionnaireRepo := repository.NewQuestionnaireRepository(database.DB)
	historyRepo := repository.NewRiskHistoryRepository(database.DB)
	logRepo := repository.NewPredictionLogRepository(database.DB)
	jobRepo := repository.NewAnalysisJobRepository(database.DB)

	// Optional Redis for async job results
	var redisClient *cache.RedisClient
	redisClient, err := cache.NewRedisClient()
	if err != nil {
		log.Printf("Warning: Redis unavailable, job results served from Postgres only: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// Initialize ML prediction client
	mlEndpoint := os.Getenv("ML_ENDPOINT")
	if mlEndpoint == "" {
		mlEndpoint = "http://localhost:8000"
	}

	log.Printf("Using risk scoring service at %s", mlEndpoint)
	predictor := ml.NewClient(mlEndpoint, ml.NewPredictionCache(time.Hour, nil), ml.DefaultRetryPolicy())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := predictor.HealthCheck(ctx); err != nil {
		log.Printf("Warning: scoring service health check failed: %v", err)
		log.Println("The application will start, but analyses will fall back to the rule-based estimator")
	} else {
		log.Println("Scoring service connection established successfully")
	}

	// Advisory enhancement is optional; without an API key the rule-based
	// enhancement is always used.
	var enhancer advisory.Enhancer
	if geminiClient, err := advisory.NewClient(); err != nil {
		log.Printf("Advisory service disabled: %v", err)
	} else {
		enhancer = geminiClient
	}

	combiner := hybrid.New(predictor, enhancer)

	// Initialize analysis job worker
	workerCount := runtime.NumCPU()
	if workerCount < 3 {
		workerCount = 3
	}

	jobWorker := services.NewAnalysisJobWorker(
		jobRepo,
		questionnaireRepo,
		historyRepo,
		logRepo,
		userRepo,
		combiner,
		redisClient,
		workerCount,
	)

	log.Printf("Starting analysis job worker with %d workers...", workerCount)
	jobWorker.Start()
	defer jobWorker.Stop()

	// Initialize controllers
	userController := controllers.NewUserController(userRepo)
	questionnaireController := controllers.NewQuestionnaireController(questionnaireRepo)
	assessmentController := controllers.NewAssessmentController(
		questionnaireRepo,
		historyRepo,
		logRepo,
		jobRepo,
		userRepo,
		combiner,
		predictor,
		jobWorker,
		redisClient,
	)

	gin.SetMode(gin.ReleaseMode)
	// Setup Gin router
	router := gin.Default()

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message":    "InsuRisk API is running",
			"version":    "1.0.0",
			"status":     "healthy",
			"ml_service": "Hybrid (HTTP scoring service + rule-based fallback)",
			"database":   "PostgreSQL",
		})
	})

	routes.RegisterUserRoutes(router, userController)
	routes.RegisterQuestionnaireRoutes(router, questionnaireController)
	routes.RegisterAssessmentRoutes(router, assessmentController)

	// Debug endpoints
	router.GET("/debug/stats", func(c *gin.Context) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		c.JSON(200, gin.H{
			"goroutines": runtime.NumGoroutine(),
			"memory_mb":  m.Alloc / 1024 / 1024,
			"workers":    workerCount,
			"job_worker": jobWorker.GetStatus(),
		})
	})

	router.GET("/debug/database", func(c *gin.Context) {
		sqlDB, err := database.DB.DB()
		if err != nil {
			c.JSON(500, gin.H{
				"database_health": false,
				"error":           err.Error(),
			})
			return
		}

		var result int
		row := sqlDB.QueryRowContext(c.Request.Context(), "SELECT 1")
		err = row.Scan(&result)
		isHealthy := err == nil && result == 1

		c.JSON(200, gin.H{
			"database_health": isHealthy,
		})
	})

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Printf("Scoring Service Health: http://localhost:%s/assessment/predict/health", port)
	log.Printf("Database Health: http://localhost:%s/debug/database", port)

	server := &http.Server{
		Addr:           ":" + port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
	runtime.GOMAXPROCS(runtime.NumCPU())

	log.Printf("InsuRisk API Server started successfully on port %s", port)

	if err := server.ListenAndServe(); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
