package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stray-app/api-go/models"
	"github.com/stray-app/api-go/services"
	"github.com/stray-app/api-go/utils"
	"gorm.io/gorm"
)

type InteractionController struct {
	DB        *gorm.DB
	Comments  *services.CommentService
	Favorites *services.FavoriteService
	Hub       *services.Hub
}

func NewInteractionController(db *gorm.DB) *InteractionController {
	hub := services.NewHub()
	return &InteractionController{
		DB:        db,
		Comments:  services.NewCommentService(db, hub),
		Favorites: services.NewFavoriteService(db),
		Hub:       hub,
	}
}

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

// CreateComment adds an immutable comment to a report.
func (ic *InteractionController) CreateComment(c *gin.Context) {
	user := utils.GetUser(c)
	reportID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := ic.Comments.Create(c.Request.Context(), reportID, req.Body, user.UserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReportNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		case errors.Is(err, services.ErrEmptyComment):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Comment body must not be empty"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": MsgGenericError})
		}
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    comment,
		Message: "Comment added successfully",
	})
}

// GetComments lists a report's comments newest first.
func (ic *InteractionController) GetComments(c *gin.Context) {
	reportID, ok := parseID(c, "id")
	if !ok {
		return
	}

	comments, err := ic.Comments.ListByReport(c.Request.Context(), reportID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": MsgGenericError})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    comments,
	})
}

// StreamComments pushes new comments for a report as server-sent events.
// The subscription is released when the client disconnects.
func (ic *InteractionController) StreamComments(c *gin.Context) {
	reportID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var report models.Report
	if err := ic.DB.First(&report, reportID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	sub := ic.Hub.Subscribe(reportID)
	defer sub.Close()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case comment, open := <-sub.C:
			if !open {
				return false
			}
			c.SSEvent("comment", comment)
			return true
		case <-ctx.Done():
			return false
		}
	})
}

// ToggleFavorite flips the caller's favorite state for a report.
func (ic *InteractionController) ToggleFavorite(c *gin.Context) {
	user := utils.GetUser(c)
	reportID, ok := parseID(c, "id")
	if !ok {
		return
	}

	favorited, err := ic.Favorites.Toggle(c.Request.Context(), reportID, user.UserID)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": MsgGenericError})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorited": favorited})
}

// GetFavoriteStatus checks the (caller, report) pair by direct lookup.
func (ic *InteractionController) GetFavoriteStatus(c *gin.Context) {
	user := utils.GetUser(c)
	reportID, ok := parseID(c, "id")
	if !ok {
		return
	}

	favorited, err := ic.Favorites.IsFavorited(c.Request.Context(), reportID, user.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": MsgGenericError})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorited": favorited})
}

// GetFavorites returns the reports the caller has favorited.
func (ic *InteractionController) GetFavorites(c *gin.Context) {
	user := utils.GetUser(c)

	reports, err := ic.Favorites.ListReports(c.Request.Context(), user.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": MsgGenericError})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    reportViews(reports),
	})
}
