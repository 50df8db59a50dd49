package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/foodslinkx/foodslinkx-api/models"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Hotel{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.AdditionalCharge{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func seedTableOrder(t *testing.T, db *gorm.DB, hotelID uint, table, status string) models.Order {
	t.Helper()
	order := models.Order{
		HotelID:  hotelID,
		Table:    table,
		DeviceID: fmt.Sprintf("device-%s-%s", table, status),
		Items: []models.OrderItem{
			{MenuItemID: 1, Name: "Pizza", Price: 200, Quantity: 1},
		},
		SubTotal:      200,
		Total:         200,
		Status:        status,
		PaymentStatus: models.PaymentPending,
		PaymentMethod: models.MethodUndecided,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("Failed to seed order: %v", err)
	}
	return order
}

func TestCountActiveTableOrders(t *testing.T) {
	db := setupServiceTestDB(t)

	hotel := models.Hotel{Name: "Test Hotel", MaxOrdersPerTable: 3}
	db.Create(&hotel)
	other := models.Hotel{Name: "Other Hotel", MaxOrdersPerTable: 3}
	db.Create(&other)

	// Only pending, cooking and served count toward the table
	seedTableOrder(t, db, hotel.ID, "5", models.StatusPending)
	seedTableOrder(t, db, hotel.ID, "5", models.StatusCooking)
	seedTableOrder(t, db, hotel.ID, "5", models.StatusServed)
	seedTableOrder(t, db, hotel.ID, "5", models.StatusPaid)
	seedTableOrder(t, db, hotel.ID, "5", models.StatusCancelled)

	// Other tables and other hotels are separate pools
	seedTableOrder(t, db, hotel.ID, "6", models.StatusPending)
	seedTableOrder(t, db, other.ID, "5", models.StatusPending)

	count, err := CountActiveTableOrders(db, hotel.ID, "5")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = CountActiveTableOrders(db, hotel.ID, "6")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = CountActiveTableOrders(db, hotel.ID, "7")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestTableLimitReached(t *testing.T) {
	db := setupServiceTestDB(t)

	hotel := models.Hotel{Name: "Test Hotel", MaxOrdersPerTable: 2}
	db.Create(&hotel)

	reached, err := TableLimitReached(db, &hotel, "5")
	assert.NoError(t, err)
	assert.False(t, reached)

	seedTableOrder(t, db, hotel.ID, "5", models.StatusPending)
	reached, err = TableLimitReached(db, &hotel, "5")
	assert.NoError(t, err)
	assert.False(t, reached, "one short of the limit still admits")

	seedTableOrder(t, db, hotel.ID, "5", models.StatusCooking)
	reached, err = TableLimitReached(db, &hotel, "5")
	assert.NoError(t, err)
	assert.True(t, reached, "at the limit no new order is admitted")

	// Settling an order frees a seat
	db.Model(&models.Order{}).
		Where("hotel_id = ? AND table_no = ? AND status = ?", hotel.ID, "5", models.StatusPending).
		Updates(map[string]interface{}{"status": models.StatusPaid, "payment_status": models.PaymentPaid})

	reached, err = TableLimitReached(db, &hotel, "5")
	assert.NoError(t, err)
	assert.False(t, reached)
}
