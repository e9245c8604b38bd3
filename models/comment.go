package models

import (
	"time"
)

// Comment is immutable once written; there is no edit or delete path.
type Comment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ReportID  uint      `gorm:"not null;index" json:"reportId"`
	UserID    uint      `gorm:"not null" json:"userId"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Body      string    `gorm:"not null;type:text" json:"body"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
