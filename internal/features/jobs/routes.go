package jobs

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, store Store) {
	handler := NewHandler(store)

	jobGroup := router.Group("/jobs")
	{
		jobGroup.GET("/:jobId", handler.GetJob)
	}
}
