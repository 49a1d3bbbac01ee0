package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/mobility-backend-go/internal/config"
	"github.com/jengzang/mobility-backend-go/internal/handler"
	"github.com/jengzang/mobility-backend-go/internal/middleware"
	"github.com/jengzang/mobility-backend-go/internal/repository"
	"github.com/jengzang/mobility-backend-go/internal/service"
)

// SetupRouter wires repositories, services, and handlers into the HTTP API
func SetupRouter(cfg *config.Config, db *sql.DB) *gin.Engine {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(cfg.RateLimit, time.Minute))

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Mobility Backend API is running",
		})
	})

	seriesRepo := repository.NewSeriesRepository(db)
	featureRepo := repository.NewFeatureRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	seriesService := service.NewSeriesService(seriesRepo)
	featureService := service.NewFeatureService(seriesRepo, featureRepo, cfg.AlgoVersion)
	taskService := service.NewTaskService(db, taskRepo)

	seriesHandler := handler.NewSeriesHandler(seriesService)
	featureHandler := handler.NewFeatureHandler(featureService)
	taskHandler := handler.NewTaskHandler(taskService)

	api := r.Group("/api/v1")
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		series := api.Group("/series")
		{
			series.POST("", seriesHandler.CreateSeries)
			series.GET("", seriesHandler.ListSeries)
			series.GET("/:id", seriesHandler.GetSeries)
			series.DELETE("/:id", seriesHandler.DeleteSeries)
			series.GET("/:id/features", featureHandler.ComputeFeatures)
			series.GET("/:id/features/stored", featureHandler.GetStoredFeatures)
		}

		tasks := api.Group("/analysis/tasks")
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTask)
		}
	}

	return r
}
