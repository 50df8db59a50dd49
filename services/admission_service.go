package services

import (
	"gorm.io/gorm"

	"github.com/foodslinkx/foodslinkx-api/models"
)

// CountActiveTableOrders returns how many orders are currently open
// (pending, cooking or served) for the given table at the given hotel.
// Historical paid/cancelled orders for the same table do not count.
func CountActiveTableOrders(db *gorm.DB, hotelID uint, table string) (int64, error) {
	var count int64
	err := db.Model(&models.Order{}).
		Where("hotel_id = ? AND table_no = ? AND status IN ?", hotelID, table, models.ActiveStatuses).
		Count(&count).Error
	return count, err
}

// TableLimitReached reports whether the hotel's per-table admission limit
// leaves no room for one more order on the table. The count is not atomic
// with the subsequent insert: two concurrent creations for one table can
// both pass and overshoot the limit by one.
func TableLimitReached(db *gorm.DB, hotel *models.Hotel, table string) (bool, error) {
	count, err := CountActiveTableOrders(db, hotel.ID, table)
	if err != nil {
		return false, err
	}
	return count >= int64(hotel.MaxOrdersPerTable), nil
}
