package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stray-app/api-go/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Report{}, &models.Comment{}, &models.Favorite{}, &models.ActivityLog{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func validInput() CreateReportInput {
	return CreateReportInput{
		Name:      "Boncuk",
		Status:    models.StatusHealthy,
		Latitude:  41.0082,
		Longitude: 28.9784,
		Notes:     "Near the park entrance",
		HasFood:   true,
		Photos:    []string{"https://cdn.example.com/p1.jpg"},
	}
}

func TestCreateStampsAuditFields(t *testing.T) {
	svc := NewReportService(newTestDB(t))
	ctx := context.Background()

	const actorID uint = 7
	report, err := svc.Create(ctx, validInput(), actorID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if report.ID == 0 {
		t.Error("expected a store-assigned id")
	}
	if report.CreatedBy != actorID {
		t.Errorf("CreatedBy = %d, want %d", report.CreatedBy, actorID)
	}
	if report.LastUpdatedBy != actorID {
		t.Errorf("LastUpdatedBy = %d, want %d", report.LastUpdatedBy, actorID)
	}
	if !report.CreatedAt.Equal(report.UpdatedAt) {
		t.Errorf("CreatedAt %v != UpdatedAt %v at creation", report.CreatedAt, report.UpdatedAt)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewReportService(newTestDB(t))
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*CreateReportInput)
		wantErr error
	}{
		{"unknown status string", func(in *CreateReportInput) { in.Status = "limping" }, ErrInvalidStatus},
		{"latitude out of range", func(in *CreateReportInput) { in.Latitude = 91 }, ErrInvalidLocation},
		{"longitude out of range", func(in *CreateReportInput) { in.Longitude = -181 }, ErrInvalidLocation},
		{"no photos", func(in *CreateReportInput) { in.Photos = nil }, ErrNoPhotos},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)
			if _, err := svc.Create(ctx, input, 1); !errors.Is(err, tt.wantErr) {
				t.Errorf("Create error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdatePreservesIdentityAndRefreshesAudit(t *testing.T) {
	svc := NewReportService(newTestDB(t))
	ctx := context.Background()

	const actorID uint = 3
	created, err := svc.Create(ctx, validInput(), actorID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	status := models.StatusInjured
	notes := "Moved to the vet"
	updated, err := svc.Update(ctx, created.ID, UpdateReportInput{
		Status: &status,
		Notes:  &notes,
	}, actorID)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.ID != created.ID {
		t.Errorf("ID changed: %d -> %d", created.ID, updated.ID)
	}
	if updated.CreatedBy != created.CreatedBy {
		t.Errorf("CreatedBy changed: %d -> %d", created.CreatedBy, updated.CreatedBy)
	}
	if updated.LastUpdatedBy != actorID {
		t.Errorf("LastUpdatedBy = %d, want %d", updated.LastUpdatedBy, actorID)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("UpdatedAt not refreshed: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}
	if updated.Status != models.StatusInjured {
		t.Errorf("Status = %q, want %q", updated.Status, models.StatusInjured)
	}
	// Untouched fields survive a partial merge.
	if updated.Name != created.Name {
		t.Errorf("Name changed by partial update: %q -> %q", created.Name, updated.Name)
	}
	if updated.Latitude != created.Latitude || updated.Longitude != created.Longitude {
		t.Error("location changed by partial update")
	}
}

func TestUpdateAndDeleteRejectNonOwner(t *testing.T) {
	svc := NewReportService(newTestDB(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(), 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	notes := "not yours"
	if _, err := svc.Update(ctx, created.ID, UpdateReportInput{Notes: &notes}, 2); !errors.Is(err, ErrNotOwner) {
		t.Errorf("Update by non-owner: err = %v, want ErrNotOwner", err)
	}
	if err := svc.Delete(ctx, created.ID, 2); !errors.Is(err, ErrNotOwner) {
		t.Errorf("Delete by non-owner: err = %v, want ErrNotOwner", err)
	}

	// The record is untouched.
	if _, err := svc.GetByID(ctx, created.ID); err != nil {
		t.Errorf("GetByID after rejected mutations: %v", err)
	}
}

func TestGetByUserIDFiltersAndOrdersNewestFirst(t *testing.T) {
	svc := NewReportService(newTestDB(t))
	ctx := context.Background()

	first, err := svc.Create(ctx, validInput(), 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	second, err := svc.Create(ctx, validInput(), 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, validInput(), 2); err != nil {
		t.Fatalf("Create: %v", err)
	}

	reports, err := svc.GetByUserID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}

	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	for _, r := range reports {
		if r.CreatedBy != 1 {
			t.Errorf("report %d has CreatedBy = %d, want 1", r.ID, r.CreatedBy)
		}
	}
	if reports[0].ID != second.ID || reports[1].ID != first.ID {
		t.Errorf("order = [%d %d], want newest first [%d %d]",
			reports[0].ID, reports[1].ID, second.ID, first.ID)
	}
}

func TestDeleteThenGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(), 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	comments := NewCommentService(db, nil)
	if _, err := comments.Create(ctx, created.ID, "Poor thing", 2); err != nil {
		t.Fatalf("Create comment: %v", err)
	}

	if err := svc.Delete(ctx, created.ID, 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, ErrReportNotFound) {
		t.Errorf("GetByID after delete: err = %v, want ErrReportNotFound", err)
	}

	var commentCount int64
	db.Model(&models.Comment{}).Where("report_id = ?", created.ID).Count(&commentCount)
	if commentCount != 0 {
		t.Errorf("comments left behind after delete: %d", commentCount)
	}
}

func TestFavoriteSurvivesOwnerDelete(t *testing.T) {
	db := newTestDB(t)
	reports := NewReportService(db)
	favorites := NewFavoriteService(db)
	ctx := context.Background()

	// U1 creates, U2 favorites, U1 deletes.
	created, err := reports.Create(ctx, validInput(), 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	favorited, err := favorites.Toggle(ctx, created.ID, 2)
	if err != nil || !favorited {
		t.Fatalf("Toggle: favorited=%v err=%v", favorited, err)
	}

	if err := reports.Delete(ctx, created.ID, 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	stillFavorited, err := favorites.IsFavorited(ctx, created.ID, 2)
	if err != nil {
		t.Fatalf("IsFavorited after delete: %v", err)
	}
	if stillFavorited {
		t.Error("favorite still resolves to a deleted report")
	}

	listed, err := favorites.ListReports(ctx, 2)
	if err != nil {
		t.Fatalf("ListReports after delete: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("ListReports returned %d reports for a deleted favorite", len(listed))
	}
}

func TestDanglingFavoriteRowIsPruned(t *testing.T) {
	db := newTestDB(t)
	favorites := NewFavoriteService(db)
	ctx := context.Background()

	// Simulate a favorite row that outlived its report.
	dangling := models.Favorite{ReportID: 999, UserID: 5, CreatedAt: time.Now()}
	if err := db.Create(&dangling).Error; err != nil {
		t.Fatalf("insert dangling favorite: %v", err)
	}

	favorited, err := favorites.IsFavorited(ctx, 999, 5)
	if err != nil {
		t.Fatalf("IsFavorited: %v", err)
	}
	if favorited {
		t.Error("dangling favorite reported as favorited")
	}

	var count int64
	db.Model(&models.Favorite{}).Where("report_id = ? AND user_id = ?", 999, 5).Count(&count)
	if count != 0 {
		t.Error("dangling favorite row was not pruned")
	}
}
