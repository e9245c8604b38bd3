package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/stray-app/api-go/controllers"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	upload := protected.Group("/upload")
	{
		upload.POST("/image", uploadController.UploadImage)
		upload.POST("/presign", uploadController.GetPresignedURL)
		upload.POST("/confirm", uploadController.ConfirmUpload)
		upload.DELETE("/:key", uploadController.DeleteFile)
	}
}
