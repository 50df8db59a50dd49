package models

import (
	"time"

	"gorm.io/gorm"
)

// Hotel represents a restaurant tenant. Hotel records are managed by an
// external admin service; the ordering core only reads them.
type Hotel struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Name              string         `gorm:"not null" json:"name"`
	Address           string         `json:"address"`
	MaxOrdersPerTable int            `gorm:"not null;default:3" json:"maxOrdersPerTable"`
	MenuItems         []MenuItem     `gorm:"foreignKey:HotelID" json:"menuItems,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Hotel model
func (Hotel) TableName() string {
	return "hotels"
}
