package services

import (
	"sync"

	"github.com/foodslinkx/foodslinkx-api/models"
)

// MockReceiptMailer records receipts instead of delivering them
type MockReceiptMailer struct {
	sent []models.Order
	err  error
	mu   sync.Mutex
}

// NewMockReceiptMailer creates a new mock receipt mailer
func NewMockReceiptMailer() *MockReceiptMailer {
	return &MockReceiptMailer{}
}

// SetAsMockForTesting sets this mock as the global receipt mailer for testing
func (m *MockReceiptMailer) SetAsMockForTesting() {
	SetReceiptMailer(m)
}

// FailWith makes subsequent SendReceipt calls return err
func (m *MockReceiptMailer) FailWith(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

// SendReceipt records the order instead of mailing it
func (m *MockReceiptMailer) SendReceipt(order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, *order)
	return nil
}

// SentReceipts returns the orders receipted so far (for testing assertions)
func (m *MockReceiptMailer) SentReceipts() []models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	sent := make([]models.Order, len(m.sent))
	copy(sent, m.sent)
	return sent
}
