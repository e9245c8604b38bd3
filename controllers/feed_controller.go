package controllers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stray-app/api-go/models"
	"gorm.io/gorm"
)

type FeedController struct {
	DB *gorm.DB
}

type FeedQuery struct {
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"pageSize,default=20" binding:"min=1,max=50"`
	Status   string `form:"status" binding:"omitempty,oneof=healthy sick injured unknown"`
	HasFood  *bool  `form:"hasFood"`
}

func NewFeedController(db *gorm.DB) *FeedController {
	return &FeedController{DB: db}
}

// GetFeed godoc
// @Summary Get the recent reports feed
// @Description Returns reports newest first with comment and favorite counts
// @Tags feed
// @Accept json
// @Produce json
// @Param page query integer false "Page number (default: 1)"
// @Param pageSize query integer false "Items per page (default: 20, max: 50)"
// @Param status query string false "Filter by health status"
// @Success 200 {object} map[string]interface{}
// @Router /feed [get]
func (fc *FeedController) GetFeed(c *gin.Context) {
	var query FeedQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := fc.DB.Model(&models.Report{})
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if query.HasFood != nil {
		db = db.Where("has_food = ?", *query.HasFood)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": MsgGenericError})
		return
	}

	var reports []models.Report
	offset := (query.Page - 1) * query.PageSize
	if err := db.Order("created_at DESC").Offset(offset).Limit(query.PageSize).Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": MsgGenericError})
		return
	}

	items := make([]gin.H, 0, len(reports))
	for _, report := range reports {
		var commentCount, favoriteCount int64
		fc.DB.Model(&models.Comment{}).Where("report_id = ?", report.ID).Count(&commentCount)
		fc.DB.Model(&models.Favorite{}).Where("report_id = ?", report.ID).Count(&favoriteCount)

		item := reportView(report)
		item["commentCount"] = commentCount
		item["favoriteCount"] = favoriteCount
		items = append(items, item)
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    items,
		Pagination: &PaginationMeta{
			CurrentPage: query.Page,
			PageSize:    query.PageSize,
			TotalItems:  total,
			TotalPages:  int(math.Ceil(float64(total) / float64(query.PageSize))),
		},
	})
}
