package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/stray-app/api-go/models"
	"gorm.io/gorm"
)

// ReportService is the only mediator between handlers and the reports table.
// It stamps audit fields and enforces that update and delete are owner-only.
type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

type CreateReportInput struct {
	Name      string
	Status    string
	Latitude  float64
	Longitude float64
	Notes     string
	HasFood   bool
	Photos    []string
}

// UpdateReportInput carries a partial merge; nil fields are left untouched.
// Latitude and longitude move together or not at all.
type UpdateReportInput struct {
	Name      *string
	Status    *string
	Latitude  *float64
	Longitude *float64
	Notes     *string
	HasFood   *bool
	Photos    []string
}

func validateLocation(lat, lng float64) error {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return ErrInvalidLocation
	}
	return nil
}

// Create persists a new report for actorID. Both audit actor fields are set
// to the caller and the creation and update timestamps are equal.
func (s *ReportService) Create(ctx context.Context, input CreateReportInput, actorID uint) (*models.Report, error) {
	if !models.ValidStatus(input.Status) {
		return nil, ErrInvalidStatus
	}
	if err := validateLocation(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}
	if len(input.Photos) == 0 {
		return nil, ErrNoPhotos
	}

	now := time.Now()
	report := models.Report{
		Name:          input.Name,
		Status:        input.Status,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		Notes:         input.Notes,
		HasFood:       input.HasFood,
		Photos:        input.Photos,
		CreatedBy:     actorID,
		LastUpdatedBy: actorID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&report).Error; err != nil {
			return err
		}
		activity := models.ActivityLog{
			UserID:    actorID,
			ReportID:  report.ID,
			Activity:  "report_created",
			Latitude:  input.Latitude,
			Longitude: input.Longitude,
			CreatedAt: now,
		}
		return tx.Create(&activity).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	return &report, nil
}

// GetAll returns every report in store default order, for the map view.
func (s *ReportService) GetAll(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report
	if err := s.DB.WithContext(ctx).Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// GetByID returns one report or ErrReportNotFound.
func (s *ReportService) GetByID(ctx context.Context, id uint) (*models.Report, error) {
	var report models.Report
	if err := s.DB.WithContext(ctx).First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("get report: %w", err)
	}
	return &report, nil
}

// Update merges the provided fields into the report, refreshes the update
// timestamp and sets the last-updater to actorID. The id and creator never
// change. Only the creator may update.
func (s *ReportService) Update(ctx context.Context, id uint, input UpdateReportInput, actorID uint) (*models.Report, error) {
	report, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.CreatedBy != actorID {
		return nil, ErrNotOwner
	}

	updates := make(map[string]interface{})
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Status != nil {
		if !models.ValidStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		updates["status"] = *input.Status
	}
	if input.Latitude != nil && input.Longitude != nil {
		if err := validateLocation(*input.Latitude, *input.Longitude); err != nil {
			return nil, err
		}
		updates["latitude"] = *input.Latitude
		updates["longitude"] = *input.Longitude
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if input.HasFood != nil {
		updates["has_food"] = *input.HasFood
	}
	if len(input.Photos) > 0 {
		updates["photos"] = pq.StringArray(input.Photos)
	}
	updates["updated_at"] = time.Now()
	updates["last_updated_by"] = actorID

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(report).Updates(updates).Error; err != nil {
			return err
		}
		activity := models.ActivityLog{
			UserID:    actorID,
			ReportID:  report.ID,
			Activity:  "report_updated",
			CreatedAt: time.Now(),
		}
		return tx.Create(&activity).Error
	})
	if err != nil {
		return nil, fmt.Errorf("update report: %w", err)
	}

	return s.GetByID(ctx, id)
}

// Delete removes the report together with its comments and favorites in a
// single transaction. Only the creator may delete.
func (s *ReportService) Delete(ctx context.Context, id uint, actorID uint) error {
	report, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if report.CreatedBy != actorID {
		return ErrNotOwner
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("report_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Report{}, id).Error; err != nil {
			return err
		}
		activity := models.ActivityLog{
			UserID:    actorID,
			ReportID:  id,
			Activity:  "report_deleted",
			CreatedAt: time.Now(),
		}
		return tx.Create(&activity).Error
	})
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	return nil
}

// GetByUserID returns the actor's own reports, newest first.
func (s *ReportService) GetByUserID(ctx context.Context, actorID uint) ([]models.Report, error) {
	var reports []models.Report
	err := s.DB.WithContext(ctx).
		Where("created_by = ?", actorID).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("list user reports: %w", err)
	}
	return reports, nil
}
