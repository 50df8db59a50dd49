package models

import (
	"time"

	"gorm.io/gorm"
)

// MenuItem is a dish on a hotel's menu. Deletion defaults to a soft delete
// (DeletedAt marker) so historical orders keep a resolvable reference; all
// read paths go through GORM's default scope, which hides soft-deleted rows.
type MenuItem struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	HotelID     uint           `gorm:"not null;index" json:"hotelId"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	Price       float64        `gorm:"not null;check:price >= 0" json:"price"`
	Category    string         `json:"category"`
	Available   bool           `gorm:"not null;default:true" json:"available"`
	ImageS3Key  *string        `json:"imageS3Key,omitempty"`        // nullable, S3 key for the dish photo
	ImageURL    *string        `gorm:"-" json:"imageUrl,omitempty"` // computed field, presigned URL for the photo
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}
