package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"tripspark/internal/config"
	"tripspark/internal/features/jobs"
	"tripspark/internal/features/recommendations"
	"tripspark/internal/pkg/ratelimit"
)

// SetupRoutes wires every feature under /api/v1. The job store is shared
// between the recommendation pipeline, which writes job state, and the jobs
// feature, which serves the polling endpoint.
func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config) error {
	api := router.Group("/api/v1")

	limiter := ratelimit.New(60, time.Minute)
	limiter.StartCleanup(5 * time.Minute)
	api.Use(ratelimit.Middleware(limiter))

	jobStore := jobs.NewMemoryStore()

	if err := recommendations.RegisterRoutes(api, db, cfg, jobStore); err != nil {
		return err
	}
	jobs.RegisterRoutes(api, jobStore)

	return nil
}
