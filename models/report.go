package models

import (
	"time"

	"github.com/lib/pq"
)

// Health status values a report can carry.
const (
	StatusHealthy = "healthy"
	StatusSick    = "sick"
	StatusInjured = "injured"
	StatusUnknown = "unknown"
)

// Report is a single stray-animal sighting pinned to a map location.
// Deletes are hard deletes: a removed report must not resolve afterwards.
type Report struct {
	ID            uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string         `json:"name" gorm:"type:varchar(100)"`
	Status        string         `json:"status" gorm:"not null;type:varchar(20);default:'unknown'"`
	Latitude      float64        `json:"latitude" gorm:"not null;type:decimal(10,8)"`
	Longitude     float64        `json:"longitude" gorm:"not null;type:decimal(11,8)"`
	Notes         string         `json:"notes" gorm:"type:text"`
	HasFood       bool           `json:"hasFood" gorm:"default:false"`
	Photos        pq.StringArray `json:"photos" gorm:"type:text[]"`
	CreatedBy     uint           `json:"createdBy" gorm:"not null;index"`
	LastUpdatedBy uint           `json:"lastUpdatedBy" gorm:"not null"`
	Comments      []Comment      `json:"comments,omitempty" gorm:"foreignKey:ReportID"`
	Favorites     []Favorite     `json:"-" gorm:"foreignKey:ReportID"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	Distance      float64        `json:"distance,omitempty" gorm:"-"`
}

// ValidStatus reports whether s is one of the four known health states.
func ValidStatus(s string) bool {
	switch s {
	case StatusHealthy, StatusSick, StatusInjured, StatusUnknown:
		return true
	}
	return false
}

// StatusIcon maps a health status to the icon name clients render.
// Unrecognized strings fall back to the generic icon.
func StatusIcon(status string) string {
	switch status {
	case StatusHealthy:
		return "checkmark-circle"
	case StatusSick:
		return "medical"
	case StatusInjured:
		return "bandage"
	default:
		return "help-circle"
	}
}

// StatusColor maps a health status to its display color, grey for anything
// unrecognized.
func StatusColor(status string) string {
	switch status {
	case StatusHealthy:
		return "#4CAF50"
	case StatusSick:
		return "#FF6B6B"
	case StatusInjured:
		return "#FFA000"
	default:
		return "#9E9E9E"
	}
}
