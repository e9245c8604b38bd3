package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stray-app/api-go/models"
	"gorm.io/gorm"
)

// FavoriteService manages user-to-report bookmarks. A favorite row may
// outlive its report when the report is deleted concurrently; lookups treat
// such dangling rows as not-favorited and prune them.
type FavoriteService struct {
	DB *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{DB: db}
}

// Toggle flips the favorite state for (actorID, reportID) and returns the
// new state.
func (s *FavoriteService) Toggle(ctx context.Context, reportID uint, actorID uint) (bool, error) {
	var report models.Report
	if err := s.DB.WithContext(ctx).First(&report, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrReportNotFound
		}
		return false, fmt.Errorf("get report: %w", err)
	}

	var existing models.Favorite
	result := s.DB.WithContext(ctx).
		Where("report_id = ? AND user_id = ?", reportID, actorID).
		First(&existing)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			favorite := models.Favorite{
				ReportID:  reportID,
				UserID:    actorID,
				CreatedAt: time.Now(),
			}
			if err := tx.Create(&favorite).Error; err != nil {
				return err
			}
			activity := models.ActivityLog{
				UserID:    actorID,
				ReportID:  reportID,
				Activity:  "report_favorited",
				CreatedAt: time.Now(),
			}
			return tx.Create(&activity).Error
		})
		if err != nil {
			return false, fmt.Errorf("favorite report: %w", err)
		}
		return true, nil
	}
	if result.Error != nil {
		return false, fmt.Errorf("lookup favorite: %w", result.Error)
	}

	if err := s.DB.WithContext(ctx).Delete(&existing).Error; err != nil {
		return false, fmt.Errorf("unfavorite report: %w", err)
	}
	return false, nil
}

// IsFavorited checks the (actorID, reportID) pair by direct lookup. When the
// report itself no longer exists the dangling favorite row is removed and
// the pair reports as not favorited.
func (s *FavoriteService) IsFavorited(ctx context.Context, reportID uint, actorID uint) (bool, error) {
	var favorite models.Favorite
	err := s.DB.WithContext(ctx).
		Where("report_id = ? AND user_id = ?", reportID, actorID).
		First(&favorite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup favorite: %w", err)
	}

	var report models.Report
	err = s.DB.WithContext(ctx).First(&report, reportID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.DB.WithContext(ctx).Delete(&favorite)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get report: %w", err)
	}
	return true, nil
}

// ListReports returns the reports the actor has favorited, newest favorite
// first, skipping rows whose report has since been deleted.
func (s *FavoriteService) ListReports(ctx context.Context, actorID uint) ([]models.Report, error) {
	var favorites []models.Favorite
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", actorID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	reports := make([]models.Report, 0, len(favorites))
	for _, favorite := range favorites {
		var report models.Report
		err := s.DB.WithContext(ctx).First(&report, favorite.ReportID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get report: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}
