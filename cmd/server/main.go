package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"loop-backend/internal/config"
	"loop-backend/internal/handlers"
	"loop-backend/internal/middleware"
	"loop-backend/internal/repository"
	"loop-backend/internal/services"
	"loop-backend/internal/vectorstore"
)

func main() {
	// Load .env if present; real env vars win.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfg := config.Load()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	repo, err := repository.NewProjectRepository(cfg.DataFile)
	if err != nil {
		log.Fatalf("Failed to open project store: %v", err)
	}

	vectorStore, err := vectorstore.New(cfg.VectorDBPath)
	if err != nil {
		log.Fatalf("Failed to open vector store: %v", err)
	}

	projectService := services.NewProjectService(repo)
	knowledgeService := services.NewKnowledgeService(cfg.KnowledgeDir)

	projectsHandler := handlers.NewProjectsHandler(projectService)
	knowledgeHandler := handlers.NewKnowledgeHandler(knowledgeService)
	collectionsHandler := handlers.NewCollectionsHandler(vectorStore)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	// Health and status (no auth)
	router.GET("/health", handlers.HealthHandler)
	router.GET("/status", handlers.StatusRoot)
	router.GET("/status/health", handlers.StatusHealth)
	router.GET("/welcome", handlers.Welcome)
	router.GET("/api/status", handlers.APIStatus)
	router.GET("/api/status/health", handlers.StatusHealth)

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))

	// Project routes
	projects := api.Group("/projects")
	projects.GET("", projectsHandler.ListProjects)
	projects.POST("", projectsHandler.CreateProject)
	projects.GET("/:project_id", projectsHandler.GetProject)
	projects.PATCH("/:project_id", projectsHandler.UpdateProject)
	projects.DELETE("/:project_id", projectsHandler.DeleteProject)

	// Asset routes
	projects.GET("/:project_id/assets", projectsHandler.ListAssets)
	projects.POST("/:project_id/assets", projectsHandler.CreateAsset)
	projects.GET("/:project_id/assets/:asset_id", projectsHandler.GetAsset)
	projects.PATCH("/:project_id/assets/:asset_id", projectsHandler.UpdateAsset)
	projects.DELETE("/:project_id/assets/:asset_id", projectsHandler.DeleteAsset)

	// Timelines and generation
	projects.PUT("/:project_id/timelines/:timeline_name", projectsHandler.ReplaceTimeline)
	projects.POST("/:project_id/generate", projectsHandler.GenerateOutline)

	// Knowledge base
	api.GET("/knowledge", knowledgeHandler.GetKnowledge)

	// Vector collections
	collections := api.Group("/collections")
	collections.GET("", collectionsHandler.ListCollections)
	collections.POST("/:collection_name", collectionsHandler.CreateCollection)
	collections.GET("/:collection_name", collectionsHandler.GetCollectionInfo)
	collections.POST("/:collection_name/documents", collectionsHandler.AddDocuments)
	collections.POST("/:collection_name/query", collectionsHandler.QueryDocuments)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
