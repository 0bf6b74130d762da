package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"securitybot_go_backend/cmd/api/config"
	"securitybot_go_backend/internal/api"
	"securitybot_go_backend/internal/auth"
	"securitybot_go_backend/internal/database"
	"securitybot_go_backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	genaiAPIKey := os.Getenv("GOOGLE_AI_STUDIO_API_KEY")
	if genaiAPIKey == "" {
		log.Fatal("GOOGLE_AI_STUDIO_API_KEY is not set in the environment")
	}
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET is not set in the environment")
	}

	ctx := context.Background()

	database.InitDB()

	genaiClient, err := genai.NewClient(ctx, option.WithAPIKey(genaiAPIKey))
	if err != nil {
		log.Fatalf("Failed to create GenAI client: %v", err)
	}
	defer genaiClient.Close()

	modelName := os.Getenv("GEMINI_MODEL")
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}

	cfg := config.NewConfig()

	// Initialize internal services
	generator := services.NewGenAITextGenerator(genaiClient, modelName)
	titleService := services.NewTitleService(generator, cfg.TitleMaxLength)
	chatStore := services.NewChatStoreDB(database.DB)
	chatService := services.NewChatService(
		chatStore,
		generator,
		titleService,
		cfg.HistoryWindowSize,
		cfg.GenerateTimeout,
	)
	gamificationStore := services.NewGamificationStoreDB(database.DB)
	gamificationService := services.NewGamificationService(gamificationStore, cfg.MaxPointsPerAward)
	userService := services.NewUserService(services.NewUserStoreDB(database.DB))

	r := gin.Default()

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:5173" // Default to your local frontend
	}

	// CORS middleware configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(allowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r, chatService, gamificationService, userService)
	auth.SetupRoutes(r, userService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
