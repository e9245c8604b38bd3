package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/stray-app/api-go/controllers"
)

func SetupFeedRoutes(protected *gin.RouterGroup, feedController *controllers.FeedController) {
	protected.GET("/feed", feedController.GetFeed)
}
