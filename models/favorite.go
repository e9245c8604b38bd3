package models

import (
	"time"
)

// Favorite is a user-to-report bookmark. The (user, report) pair is unique;
// existence is checked by direct lookup rather than a query.
type Favorite struct {
	FavoriteID uint      `gorm:"column:favorite_id;primaryKey;autoIncrement" json:"id"`
	ReportID   uint      `gorm:"column:report_id;not null;uniqueIndex:idx_favorites_user_report" json:"reportId"`
	UserID     uint      `gorm:"column:user_id;not null;uniqueIndex:idx_favorites_user_report" json:"userId"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
