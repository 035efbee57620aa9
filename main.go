package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"eyecare-service/internal/ai"
	"eyecare-service/internal/config"
	"eyecare-service/internal/db"
	"eyecare-service/internal/event"
	"eyecare-service/internal/handlers"
	"eyecare-service/internal/models"
	"eyecare-service/internal/quiz"
	"eyecare-service/internal/repository"
	"eyecare-service/internal/service"
	"eyecare-service/internal/storage"
)

func main() {
	config.Load()
	cfg := config.AppConfig
	gin.SetMode(cfg.GinMode)

	if err := db.InitMongo(cfg.MongoURI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.CloseMongo()

	if err := db.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	scanStore, err := storage.NewScanStore(cfg.MinioEndpoint, cfg.MinioAccess, cfg.MinioSecret, cfg.MinioUseSSL, cfg.ScanBucket)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	// RabbitMQ event publisher; a nil publisher silently drops events.
	var publisher *event.Publisher
	if cfg.RabbitMQURI != "" && cfg.EventExchange != "" {
		publisher, err = event.NewPublisher(cfg.RabbitMQURI, cfg.EventExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, service events will not be published")
	}

	aiClient := ai.New(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)

	database := db.Client.Database(cfg.MongoDatabase)

	userRepo := repository.NewUserRepository(database)
	profileRepo := repository.NewProfileRepository(database)
	scanRepo := repository.NewScanRepository(database)
	questionRepo := repository.NewQuestionRepository(database)
	resultRepo := repository.NewResultRepository(database)
	attemptStore := repository.NewAttemptStore(db.RedisClient, cfg.AttemptTTL)

	authService := service.NewAuthService(userRepo)
	profileService := service.NewProfileService(profileRepo)
	scanService := service.NewScanService(scanRepo, scanStore, aiClient, publisher)
	questionService := service.NewQuestionService(questionRepo)
	quizService := service.NewQuizService(
		questionRepo,
		resultRepo,
		attemptStore,
		quiz.NewSampler(rand.NewSource(time.Now().UnixNano())),
		aiClient,
		publisher,
		cfg.QuizSize,
	)

	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService)
	scanHandler := handlers.NewScanHandler(scanService)
	chatHandler := handlers.NewChatHandler(aiClient)
	quizHandler := handlers.NewQuizHandler(quizService)
	questionHandler := handlers.NewQuestionHandler(questionService)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	api := r.Group("/api", handlers.RequireAuth())
	{
		api.GET("/profile", profileHandler.GetProfile)
		api.PUT("/profile", profileHandler.SaveProfile)

		api.POST("/scans", scanHandler.Upload)
		api.GET("/scans", scanHandler.ListScans)
		api.GET("/scans/:id", scanHandler.GetScan)
		api.DELETE("/scans/:id", scanHandler.DeleteScan)
		api.GET("/scans/:id/pdf", scanHandler.DownloadPDF)

		api.POST("/chat", chatHandler.Ask)

		api.POST("/quiz/start", quizHandler.Start)
		api.GET("/quiz/:token/questions/:index", quizHandler.GetQuestion)
		api.POST("/quiz/:token/answers", quizHandler.SubmitAnswer)
		api.POST("/quiz/:token/finish", quizHandler.Finish)
		api.GET("/quiz/history", quizHandler.History)
	}

	tech := r.Group("/api/tech", handlers.RequireAuth(), handlers.RequireRole(models.RoleTechnician))
	{
		tech.GET("/scans", scanHandler.ListAllScans)
		tech.POST("/scans/:id/validate", scanHandler.ValidateScan)

		tech.GET("/questions", questionHandler.ListQuestions)
		tech.POST("/questions", questionHandler.CreateQuestion)
		tech.PUT("/questions/:id", questionHandler.UpdateQuestion)
		tech.DELETE("/questions/:id", questionHandler.DeleteQuestion)
		tech.POST("/questions/import", questionHandler.ImportWorkbook)
	}

	log.Printf("eyecare-service listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
