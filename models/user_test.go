package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserCanAccessHotel(t *testing.T) {
	tests := []struct {
		name     string
		user     User
		hotelID  uint
		expected bool
	}{
		{
			name:     "Staff can access own hotel",
			user:     User{Role: RoleStaff, HotelID: 1},
			hotelID:  1,
			expected: true,
		},
		{
			name:     "Staff cannot access another hotel",
			user:     User{Role: RoleStaff, HotelID: 1},
			hotelID:  2,
			expected: false,
		},
		{
			name:     "Admin can access any hotel",
			user:     User{Role: RoleAdmin, HotelID: 0},
			hotelID:  42,
			expected: true,
		},
		{
			name:     "Unknown role falls back to hotel scoping",
			user:     User{Role: "manager", HotelID: 3},
			hotelID:  3,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.user.CanAccessHotel(tt.hotelID))
		})
	}
}

func TestUserTableName(t *testing.T) {
	assert.Equal(t, "users", User{}.TableName())
}
