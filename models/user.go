package models

import (
	"time"

	"gorm.io/gorm"
)

// Staff roles. Admin accounts may act on any hotel; staff are scoped to
// their own hotel.
const (
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

// User represents a staff account. Account provisioning and authentication
// live in the external admin service; the core only resolves the record
// behind a validated JWT.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Auth0ID   string         `gorm:"uniqueIndex;not null" json:"auth0_id"` // subject claim of the staff JWT
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Role      string         `gorm:"not null;default:'staff'" json:"role"` // "staff" or "admin"
	HotelID   uint           `gorm:"index" json:"hotel_id"`                // zero for admins
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// CanAccessHotel reports whether the user may act on the given hotel.
func (u *User) CanAccessHotel(hotelID uint) bool {
	if u.Role == RoleAdmin {
		return true
	}
	return u.HotelID == hotelID
}
