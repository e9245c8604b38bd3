package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stray-app/api-go/models"
	"gorm.io/gorm"
)

var ErrEmptyComment = fmt.Errorf("comment body must not be empty")

// CommentService writes and lists report comments. New comments are also
// published to the stream hub so open detail views see them live.
type CommentService struct {
	DB  *gorm.DB
	Hub *Hub
}

func NewCommentService(db *gorm.DB, hub *Hub) *CommentService {
	return &CommentService{DB: db, Hub: hub}
}

// Create appends an immutable comment to an existing report.
func (s *CommentService) Create(ctx context.Context, reportID uint, body string, actorID uint) (*models.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyComment
	}

	var report models.Report
	if err := s.DB.WithContext(ctx).First(&report, reportID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("get report: %w", err)
	}

	comment := models.Comment{
		ReportID:  reportID,
		UserID:    actorID,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := s.DB.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	if s.Hub != nil {
		s.Hub.Publish(reportID, comment)
	}
	return &comment, nil
}

// ListByReport returns the report's comments newest first.
func (s *CommentService) ListByReport(ctx context.Context, reportID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.DB.WithContext(ctx).
		Where("report_id = ?", reportID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}
