package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/stray-app/api-go/controllers"
)

func SetupInteractionRoutes(protected *gin.RouterGroup, interactionController *controllers.InteractionController) {
	reports := protected.Group("/reports")
	{
		reports.POST("/:id/comments", interactionController.CreateComment)
		reports.GET("/:id/comments", interactionController.GetComments)
		reports.GET("/:id/comments/stream", interactionController.StreamComments)
		reports.POST("/:id/favorite", interactionController.ToggleFavorite)
		reports.GET("/:id/favorite", interactionController.GetFavoriteStatus)
	}

	protected.GET("/favorites", interactionController.GetFavorites)
}
