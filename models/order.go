package models

import (
	"time"
)

// Order statuses describing the kitchen workflow.
const (
	StatusPending   = "pending"
	StatusCooking   = "cooking"
	StatusServed    = "served"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
)

// Payment statuses. Tracked independently of the kitchen status.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// Payment methods. Online payment is recorded as a tag only, never processed.
const (
	MethodCash      = "cash"
	MethodOnline    = "online"
	MethodUndecided = "not-decide"
)

// DashboardDevice is the device id assigned to staff-entered walk-in
// invoices, as opposed to a customer table session.
const DashboardDevice = "dashboard"

// ActiveStatuses are the statuses under which an order is still open: it
// counts against the table limit, is the target for item appends and keeps
// its menu items protected from deletion.
var ActiveStatuses = []string{StatusPending, StatusCooking, StatusServed}

// Customer holds the guest details attached to an order.
type Customer struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// Order represents one table tab (or one dashboard walk-in invoice).
type Order struct {
	ID                uint               `gorm:"primaryKey" json:"id"`
	HotelID           uint               `gorm:"not null;index" json:"hotelId"`
	Table             string             `gorm:"column:table_no;not null" json:"table"` // "table" is reserved in SQL
	DeviceID          string             `gorm:"not null;index" json:"deviceId"`
	Customer          Customer           `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`
	Items             []OrderItem        `gorm:"foreignKey:OrderID" json:"items"`
	AdditionalCharges []AdditionalCharge `gorm:"foreignKey:OrderID" json:"additionalCharges"`
	SubTotal          float64            `gorm:"not null" json:"subTotal"`
	Total             float64            `gorm:"not null" json:"total"`
	Status            string             `gorm:"not null;default:'pending'" json:"status"`
	PaymentStatus     string             `gorm:"not null;default:'pending'" json:"paymentStatus"`
	PaymentMethod     string             `gorm:"not null;default:'not-decide'" json:"paymentMethod"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// IsActive reports whether the order is still open in the kitchen.
func (o *Order) IsActive() bool {
	switch o.Status {
	case StatusPending, StatusCooking, StatusServed:
		return true
	}
	return false
}

// OrderItem is one line entry on an order. Name and price are snapshots
// taken when the item was added; later menu edits never touch them.
type OrderItem struct {
	ID            uint    `gorm:"primaryKey" json:"-"`
	OrderID       uint    `gorm:"not null;index" json:"-"`
	MenuItemID    uint    `gorm:"not null;index" json:"menuItemId"`
	Name          string  `gorm:"not null" json:"name"`
	Price         float64 `gorm:"not null" json:"price"`
	Quantity      int     `gorm:"not null;check:quantity > 0" json:"quantity"`
	Customization string  `json:"customization,omitempty"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// Additional charge types.
const (
	ChargeFixed   = "fixed"
	ChargePercent = "percent"
)

// AdditionalCharge is a staff-entered extra (service charge, discount line,
// GST) stored verbatim on the order. The customer flow never creates these.
type AdditionalCharge struct {
	ID      uint    `gorm:"primaryKey" json:"-"`
	OrderID uint    `gorm:"not null;index" json:"-"`
	Label   string  `gorm:"not null" json:"label"`
	Amount  float64 `gorm:"not null" json:"amount"`
	Type    string  `gorm:"not null;default:'fixed'" json:"type"` // fixed or percent
}

// TableName specifies the table name for the AdditionalCharge model
func (AdditionalCharge) TableName() string {
	return "additional_charges"
}

// IsValidStatus reports whether s is a known order status. Membership is
// all that is checked; any status may move to any other status so staff
// can correct mis-clicks (e.g. served back to cooking).
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusCooking, StatusServed, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// IsValidPaymentStatus reports whether s is a known payment status.
func IsValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

// IsValidPaymentMethod reports whether s is a known payment method.
func IsValidPaymentMethod(s string) bool {
	switch s {
	case MethodCash, MethodOnline, MethodUndecided:
		return true
	}
	return false
}

// IsValidChargeType reports whether s is a known additional charge type.
func IsValidChargeType(s string) bool {
	return s == ChargeFixed || s == ChargePercent
}
