package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderIsActive(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{StatusPending, true},
		{StatusCooking, true},
		{StatusServed, true},
		{StatusPaid, false},
		{StatusCancelled, false},
		{"unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			order := Order{Status: tt.status}
			assert.Equal(t, tt.expected, order.IsActive())
		})
	}
}

func TestActiveStatuses(t *testing.T) {
	assert.ElementsMatch(t, []string{StatusPending, StatusCooking, StatusServed}, ActiveStatuses)
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusCooking, StatusServed, StatusPaid, StatusCancelled} {
		assert.True(t, IsValidStatus(s), s)
	}
	for _, s := range []string{"", "done", "Pending", "ready"} {
		assert.False(t, IsValidStatus(s), s)
	}
}

func TestIsValidPaymentStatus(t *testing.T) {
	for _, s := range []string{PaymentPending, PaymentPaid, PaymentFailed} {
		assert.True(t, IsValidPaymentStatus(s), s)
	}
	for _, s := range []string{"", "refunded", "Paid"} {
		assert.False(t, IsValidPaymentStatus(s), s)
	}
}

func TestIsValidPaymentMethod(t *testing.T) {
	for _, s := range []string{MethodCash, MethodOnline, MethodUndecided} {
		assert.True(t, IsValidPaymentMethod(s), s)
	}
	for _, s := range []string{"", "card", "upi"} {
		assert.False(t, IsValidPaymentMethod(s), s)
	}
}

func TestIsValidChargeType(t *testing.T) {
	assert.True(t, IsValidChargeType(ChargeFixed))
	assert.True(t, IsValidChargeType(ChargePercent))
	assert.False(t, IsValidChargeType(""))
	assert.False(t, IsValidChargeType("variable"))
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "orders", Order{}.TableName())
	assert.Equal(t, "order_items", OrderItem{}.TableName())
	assert.Equal(t, "additional_charges", AdditionalCharge{}.TableName())
}
