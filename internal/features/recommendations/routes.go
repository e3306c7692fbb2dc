package recommendations

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"tripspark/internal/config"
	"tripspark/internal/features/jobs"
	"tripspark/internal/pkg/catalog"
	"tripspark/internal/pkg/itinerary"
	"tripspark/internal/pkg/userservice"
)

func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config, jobStore jobs.Store) error {
	users, err := userservice.NewClient(cfg.UserServiceURL, cfg.UpstreamTimeout)
	if err != nil {
		return err
	}
	pois, err := catalog.NewClient(cfg.CatalogURL, cfg.UpstreamTimeout)
	if err != nil {
		return err
	}

	repo := NewRepository(db)
	service := NewService(users, pois, repo, jobStore, itinerary.NewTemplateGenerator())
	handler := NewHandler(service)

	recGroup := router.Group("/recommendations")
	{
		recGroup.GET("/users/:userId", handler.GetRecommendations)
		recGroup.POST("/users/:userId/async", handler.StartAsync)
		recGroup.GET("/:recId", handler.GetByID)
		recGroup.DELETE("/:recId", handler.Delete)
	}

	userGroup := router.Group("/users")
	{
		userGroup.GET("/:userId/recommendations", handler.History)
	}

	return nil
}
