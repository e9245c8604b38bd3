package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  *string        `json:"-"` // nil for social-login accounts
	GoogleID  *string        `gorm:"unique" json:"-"`
	Provider  string         `gorm:"default:'email'" json:"provider"`
	Reports   []Report       `json:"reports,omitempty" gorm:"foreignKey:CreatedBy"`
	Comments  []Comment      `json:"comments,omitempty" gorm:"foreignKey:UserID"`
	Favorites []Favorite     `json:"favorites,omitempty" gorm:"foreignKey:UserID"`
}
