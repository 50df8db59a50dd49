package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/foodslinkx/foodslinkx-api/models"
)

// ErrMenuItemInUse is returned when a menu item cannot be deleted because
// open orders still reference it.
var ErrMenuItemInUse = errors.New("menu item is referenced by active orders")

// CountActiveMenuReferences counts the orders still open in the kitchen
// (pending, cooking or served) that carry at least one line for the given
// menu item. Paid and cancelled orders keep their snapshot lines but do
// not block deletion.
func CountActiveMenuReferences(db *gorm.DB, menuItemID uint) (int64, error) {
	var count int64
	err := db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.menu_item_id = ? AND orders.status IN ?", menuItemID, models.ActiveStatuses).
		Distinct("order_items.order_id").
		Count(&count).Error
	return count, err
}

// DeleteMenuItem removes a menu item after verifying that no open order
// still references it. The reference check and the delete run inside one
// transaction, so an order created concurrently either blocks the delete
// or never sees the item. Soft delete is the default; permanent removes
// the row entirely.
//
// On a reference conflict the returned count says how many open orders
// blocked the delete and the transaction is rolled back untouched.
func DeleteMenuItem(db *gorm.DB, item *models.MenuItem, permanent bool) (int64, error) {
	var activeOrders int64

	err := db.Transaction(func(tx *gorm.DB) error {
		count, err := CountActiveMenuReferences(tx, item.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			activeOrders = count
			return ErrMenuItemInUse
		}

		if permanent {
			return tx.Unscoped().Delete(item).Error
		}
		return tx.Delete(item).Error
	})

	return activeOrders, err
}
