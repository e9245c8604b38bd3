package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/stray-app/api-go/controllers"
)

func SetupReportRoutes(protected *gin.RouterGroup, reportController *controllers.ReportController) {
	reports := protected.Group("/reports")
	{
		reports.POST("", reportController.CreateReport)
		reports.GET("", reportController.GetReports)
		reports.GET("/nearby", reportController.GetNearbyReports)
		reports.GET("/:id", reportController.GetReportDetail)
		reports.PUT("/:id", reportController.UpdateReport)
		reports.DELETE("/:id", reportController.DeleteReport)
	}

	// User reports routes
	protected.GET("/my-reports", reportController.GetMyReports)
	protected.GET("/users/:userId/reports", reportController.GetUserReports)
}
