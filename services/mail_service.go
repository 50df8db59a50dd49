package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/foodslinkx/foodslinkx-api/config"
	"github.com/foodslinkx/foodslinkx-api/models"
)

// ReceiptMailer delivers order receipts to customers. Actual mail delivery
// lives in an external service; this client only posts the receipt payload
// to it.
type ReceiptMailer interface {
	SendReceipt(order *models.Order) error
}

// HTTPReceiptMailer posts receipts to the mail delivery API
type HTTPReceiptMailer struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

var receiptMailerInstance ReceiptMailer

// InitReceiptMailer initializes the receipt mailer from configuration
func InitReceiptMailer(cfg *config.Config) ReceiptMailer {
	receiptMailerInstance = &HTTPReceiptMailer{
		endpoint: cfg.MailAPIURL,
		apiKey:   cfg.MailAPIKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	return receiptMailerInstance
}

// GetReceiptMailer returns the initialized receipt mailer instance
func GetReceiptMailer() ReceiptMailer {
	return receiptMailerInstance
}

// SetReceiptMailer sets the receipt mailer instance (primarily for testing)
func SetReceiptMailer(mailer ReceiptMailer) {
	receiptMailerInstance = mailer
}

// receiptPayload is the body posted to the mail delivery API
type receiptPayload struct {
	To            string             `json:"to"`
	CustomerName  string             `json:"customerName"`
	OrderID       uint               `json:"orderId"`
	Table         string             `json:"table"`
	Items         []models.OrderItem `json:"items"`
	SubTotal      float64            `json:"subTotal"`
	Total         float64            `json:"total"`
	PaymentMethod string             `json:"paymentMethod"`
}

// SendReceipt posts the paid order's receipt to the mail delivery API.
// With no endpoint configured, or no customer contact on the order, the
// receipt is silently skipped.
func (m *HTTPReceiptMailer) SendReceipt(order *models.Order) error {
	if m.endpoint == "" || order.Customer.Contact == "" {
		return nil
	}

	payload := receiptPayload{
		To:            order.Customer.Contact,
		CustomerName:  order.Customer.Name,
		OrderID:       order.ID,
		Table:         order.Table,
		Items:         order.Items,
		SubTotal:      order.SubTotal,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode receipt: %w", err)
	}

	req, err := http.NewRequest("POST", m.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if m.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.apiKey)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call mail API: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("mail API returned status %d", resp.StatusCode)
	}

	return nil
}
