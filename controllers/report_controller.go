package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stray-app/api-go/models"
	"github.com/stray-app/api-go/services"
	"github.com/stray-app/api-go/utils"
	"gorm.io/gorm"
)

type ReportController struct {
	DB      *gorm.DB
	Reports *services.ReportService
}

type CreateReportRequest struct {
	Name      string   `json:"name"`
	Status    string   `json:"status" binding:"required"`
	Latitude  float64  `json:"latitude" binding:"required"`
	Longitude float64  `json:"longitude" binding:"required"`
	Notes     string   `json:"notes"`
	HasFood   bool     `json:"hasFood"`
	Photos    []string `json:"photos" binding:"required,min=1"`
}

type UpdateReportRequest struct {
	Name      *string  `json:"name"`
	Status    *string  `json:"status"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Notes     *string  `json:"notes"`
	HasFood   *bool    `json:"hasFood"`
	Photos    []string `json:"photos"`
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{
		DB:      db,
		Reports: services.NewReportService(db),
	}
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

// reportView decorates a report with its display mapping so clients never
// have to interpret raw status strings.
func reportView(r models.Report) gin.H {
	return gin.H{
		"id":            r.ID,
		"name":          r.Name,
		"status":        r.Status,
		"statusIcon":    models.StatusIcon(r.Status),
		"statusColor":   models.StatusColor(r.Status),
		"latitude":      r.Latitude,
		"longitude":     r.Longitude,
		"notes":         r.Notes,
		"hasFood":       r.HasFood,
		"photos":        r.Photos,
		"createdBy":     r.CreatedBy,
		"lastUpdatedBy": r.LastUpdatedBy,
		"createdAt":     r.CreatedAt,
		"updatedAt":     r.UpdatedAt,
	}
}

func reportViews(reports []models.Report) []gin.H {
	views := make([]gin.H, 0, len(reports))
	for _, r := range reports {
		views = append(views, reportView(r))
	}
	return views
}

func mapReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrReportNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
	case errors.Is(err, services.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only modify your own reports"})
	case errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be one of healthy, sick, injured, unknown"})
	case errors.Is(err, services.ErrInvalidLocation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Location coordinates are out of range"})
	case errors.Is(err, services.ErrNoPhotos):
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one photo is required"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": MsgGenericError})
	}
}

// CreateReport godoc
// @Summary Create a new stray report
// @Tags reports
// @Accept json
// @Produce json
// @Param report body CreateReportRequest true "Report creation request"
// @Success 201 {object} map[string]interface{}
// @Router /reports [post]
func (rc *ReportController) CreateReport(c *gin.Context) {
	user := utils.GetUser(c)
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := rc.Reports.Create(c.Request.Context(), services.CreateReportInput{
		Name:      req.Name,
		Status:    req.Status,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Notes:     req.Notes,
		HasFood:   req.HasFood,
		Photos:    req.Photos,
	}, user.UserID)
	if err != nil {
		mapReportError(c, err)
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    reportView(*report),
		Message: "Report created successfully",
	})
}

// GetReports returns every report, for the map view.
func (rc *ReportController) GetReports(c *gin.Context) {
	reports, err := rc.Reports.GetAll(c.Request.Context())
	if err != nil {
		mapReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    reportViews(reports),
	})
}

// GetNearbyReports returns reports within radius kilometers of the given
// point, closest first.
func (rc *ReportController) GetNearbyReports(c *gin.Context) {
	latitude, err1 := strconv.ParseFloat(c.Query("latitude"), 64)
	longitude, err2 := strconv.ParseFloat(c.Query("longitude"), 64)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude are required"})
		return
	}

	radius := 5.0
	if r := c.Query("radius"); r != "" {
		if parsed, err := strconv.ParseFloat(r, 64); err == nil && parsed > 0 {
			radius = parsed
		}
	}

	var reports []models.Report
	// Haversine distance in kilometers
	err := rc.DB.WithContext(c.Request.Context()).Model(&models.Report{}).
		Select("*, (6371 * acos(cos(radians(?)) * cos(radians(latitude)) * cos(radians(longitude) - radians(?)) + sin(radians(?)) * sin(radians(latitude)))) AS distance",
			latitude, longitude, latitude).
		Where("(6371 * acos(cos(radians(?)) * cos(radians(latitude)) * cos(radians(longitude) - radians(?)) + sin(radians(?)) * sin(radians(latitude)))) <= ?",
			latitude, longitude, latitude, radius).
		Order("distance").
		Find(&reports).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": MsgGenericError})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    reportViews(reports),
	})
}

// GetReportDetail returns one report plus the caller's favorite state.
func (rc *ReportController) GetReportDetail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	report, err := rc.Reports.GetByID(c.Request.Context(), id)
	if err != nil {
		mapReportError(c, err)
		return
	}

	view := reportView(*report)

	if user := utils.GetUser(c); user != nil {
		favorited, err := services.NewFavoriteService(rc.DB).IsFavorited(c.Request.Context(), id, user.UserID)
		if err == nil {
			view["favorited"] = favorited
		}
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    view,
	})
}

// UpdateReport merges partial fields; only the creator may update.
func (rc *ReportController) UpdateReport(c *gin.Context) {
	user := utils.GetUser(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := rc.Reports.Update(c.Request.Context(), id, services.UpdateReportInput{
		Name:      req.Name,
		Status:    req.Status,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Notes:     req.Notes,
		HasFood:   req.HasFood,
		Photos:    req.Photos,
	}, user.UserID)
	if err != nil {
		mapReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    reportView(*report),
		Message: "Report updated successfully",
	})
}

// DeleteReport removes the report and its comments and favorites.
func (rc *ReportController) DeleteReport(c *gin.Context) {
	user := utils.GetUser(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := rc.Reports.Delete(c.Request.Context(), id, user.UserID); err != nil {
		mapReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Message: "Report deleted successfully",
	})
}

// GetMyReports returns the caller's reports, newest first.
func (rc *ReportController) GetMyReports(c *gin.Context) {
	user := utils.GetUser(c)

	reports, err := rc.Reports.GetByUserID(c.Request.Context(), user.UserID)
	if err != nil {
		mapReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    reportViews(reports),
	})
}

// GetUserReports returns another user's reports, newest first.
func (rc *ReportController) GetUserReports(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	reports, err := rc.Reports.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		mapReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    reportViews(reports),
	})
}
