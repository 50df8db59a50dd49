package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodslinkx/foodslinkx-api/config"
	"github.com/foodslinkx/foodslinkx-api/middleware"
	"github.com/foodslinkx/foodslinkx-api/models"
	"github.com/foodslinkx/foodslinkx-api/services"
	"github.com/foodslinkx/foodslinkx-api/utils"
)

// OrderItemPayload is one cart line in an order submission
type OrderItemPayload struct {
	MenuItemID    uint    `json:"menuItemId" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	Price         float64 `json:"price" binding:"gte=0"`
	Quantity      int     `json:"quantity" binding:"required,gt=0"`
	Customization string  `json:"customization"`
}

func (p OrderItemPayload) toModel() models.OrderItem {
	return models.OrderItem{
		MenuItemID:    p.MenuItemID,
		Name:          p.Name,
		Price:         p.Price,
		Quantity:      p.Quantity,
		Customization: p.Customization,
	}
}

// CustomerPayload holds optional guest details on an order submission
type CustomerPayload struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// ChargePayload is one staff-entered additional charge line
type ChargePayload struct {
	Label  string  `json:"label" binding:"required"`
	Amount float64 `json:"amount"`
	Type   string  `json:"type" binding:"omitempty,oneof=fixed percent"`
}

// CreateOrderRequest represents the customer cart submission body
type CreateOrderRequest struct {
	HotelID       uint               `json:"hotelId" binding:"required"`
	DeviceID      string             `json:"deviceId" binding:"required"`
	Table         string             `json:"table" binding:"required"`
	Items         []OrderItemPayload `json:"items" binding:"required,min=1,dive"`
	Customer      *CustomerPayload   `json:"customer"`
	PaymentMethod string             `json:"paymentMethod" binding:"omitempty,oneof=cash online not-decide"`
	FinalTotal    *float64           `json:"finalTotal"`
}

// loadOrder fetches an order with its items and charges
func loadOrder(db *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Items").Preload("AdditionalCharges").First(&order, id).Error
	return &order, err
}

// CreateOrder handles POST /api/v1/orders - the customer cart submission.
// When the device already has an open, unpaid order at the hotel, the cart
// is appended to it; otherwise a new order is created, subject to the
// table admission limit.
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	// Resolve the hotel. This is the only write path that validates the
	// hotel reference; later mutations trust the stored hotelId.
	var hotel models.Hotel
	if err := db.First(&hotel, req.HotelID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "HOTEL_NOT_FOUND",
				"message": "Hotel not found",
			},
		})
		return
	}

	// Look for an open, unpaid order for this device session. The find and
	// the write below are not one transaction; two concurrent submissions
	// from the same device can both land in the create branch.
	var existing models.Order
	err := db.Preload("Items").Preload("AdditionalCharges").
		Where("hotel_id = ? AND device_id = ? AND status IN ? AND payment_status <> ?",
			req.HotelID, req.DeviceID, models.ActiveStatuses, models.PaymentPaid).
		Order("created_at DESC").
		First(&existing).Error

	if err == nil {
		appendToOrder(c, db, &existing, &req)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to look up existing orders",
			},
		})
		return
	}

	// Create branch: the table admission limit applies here only, never to
	// appends.
	limitReached, err := services.TableLimitReached(db, &hotel, req.Table)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check table capacity",
			},
		})
		return
	}
	if limitReached {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LIMIT_REACHED",
				"message": "This table has reached the maximum number of active orders",
			},
		})
		return
	}

	order := models.Order{
		HotelID:       req.HotelID,
		Table:         req.Table,
		DeviceID:      req.DeviceID,
		Customer:      models.Customer{Name: "Guest"},
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentPending,
		PaymentMethod: models.MethodUndecided,
	}
	if req.Customer != nil {
		if req.Customer.Name != "" {
			order.Customer.Name = req.Customer.Name
		}
		order.Customer.Contact = req.Customer.Contact
	}
	if req.PaymentMethod != "" {
		order.PaymentMethod = req.PaymentMethod
	}
	for _, p := range req.Items {
		order.Items = append(order.Items, p.toModel())
	}
	order.SubTotal = utils.ComputeSubTotal(order.Items)
	order.Total = utils.ResolveTotal(req.FinalTotal, order.Items)

	if err := db.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// appendToOrder pushes the submitted cart onto an existing open order.
// Repeated menu items stay separate line entries; there is no merge by
// menuItemId.
func appendToOrder(c *gin.Context, db *gorm.DB, order *models.Order, req *CreateOrderRequest) {
	newItems := make([]models.OrderItem, 0, len(req.Items))
	for _, p := range req.Items {
		item := p.toModel()
		item.OrderID = order.ID
		newItems = append(newItems, item)
	}

	if err := db.Create(&newItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to add items to order",
			},
		})
		return
	}

	// Subtotal is recomputed over the full item list; the final total is
	// whatever the caller sent, or the item sum when absent.
	allItems := append(order.Items, newItems...)
	updates := map[string]interface{}{
		"sub_total": utils.ComputeSubTotal(allItems),
		"total":     utils.ResolveTotal(req.FinalTotal, allItems),
	}
	if err := db.Model(order).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order totals",
			},
		})
		return
	}

	updated, err := loadOrder(db, order.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    updated,
	})
}

// ListDeviceOrders handles GET /api/v1/orders?hotelId=&deviceId= - lists a
// device session's orders, newest first
func ListDeviceOrders(c *gin.Context) {
	hotelIDParam := c.Query("hotelId")
	deviceID := c.Query("deviceId")
	if hotelIDParam == "" || deviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "hotelId and deviceId query parameters are required",
			},
		})
		return
	}

	hotelID, err := strconv.ParseUint(hotelIDParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "hotelId must be a number",
			},
		})
		return
	}

	db := config.GetDB()
	var orders []models.Order
	if err := db.Preload("Items").Preload("AdditionalCharges").
		Where("hotel_id = ? AND device_id = ?", uint(hotelID), deviceID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// ListHotelOrders handles GET /api/v1/hotels/:id/orders - lists every order
// for a hotel, newest first (staff only)
func ListHotelOrders(c *gin.Context) {
	hotelID, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
	staff, ok := currentStaff(c, db)
	if !ok {
		return
	}
	if !staff.CanAccessHotel(hotelID) {
		respondForbidden(c)
		return
	}

	var orders []models.Order
	if err := db.Preload("Items").Preload("AdditionalCharges").
		Where("hotel_id = ?", hotelID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// DashboardOrderRequest represents the staff walk-in invoice body
type DashboardOrderRequest struct {
	Table             string             `json:"table" binding:"required"`
	Items             []OrderItemPayload `json:"items" binding:"required,min=1,dive"`
	Customer          *CustomerPayload   `json:"customer"`
	AdditionalCharges []ChargePayload    `json:"additionalCharges" binding:"omitempty,dive"`
	SubTotal          *float64           `json:"subTotal"`
	Total             *float64           `json:"total"`
	Status            string             `json:"status" binding:"omitempty,oneof=pending cooking served paid cancelled"`
	PaymentStatus     string             `json:"paymentStatus" binding:"omitempty,oneof=pending paid failed"`
	PaymentMethod     string             `json:"paymentMethod" binding:"omitempty,oneof=cash online not-decide"`
}

// CreateDashboardOrder handles POST /api/v1/hotels/:id/orders - creates a
// staff-entered walk-in invoice. Always a fresh order: no append search and
// no table admission check; only customer sessions are limited.
func CreateDashboardOrder(c *gin.Context) {
	hotelID, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
	staff, ok := currentStaff(c, db)
	if !ok {
		return
	}
	if !staff.CanAccessHotel(hotelID) {
		respondForbidden(c)
		return
	}

	var hotel models.Hotel
	if err := db.First(&hotel, hotelID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "HOTEL_NOT_FOUND",
				"message": "Hotel not found",
			},
		})
		return
	}

	var req DashboardOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	order := models.Order{
		HotelID:       hotelID,
		Table:         req.Table,
		DeviceID:      models.DashboardDevice,
		Customer:      models.Customer{Name: "Walk-in"},
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentPending,
		PaymentMethod: models.MethodUndecided,
	}
	if req.Customer != nil {
		if req.Customer.Name != "" {
			order.Customer.Name = req.Customer.Name
		}
		order.Customer.Contact = req.Customer.Contact
	}
	if req.Status != "" {
		order.Status = req.Status
	}
	if req.PaymentStatus != "" {
		order.PaymentStatus = req.PaymentStatus
	}
	if req.PaymentMethod != "" {
		order.PaymentMethod = req.PaymentMethod
	}
	for _, p := range req.Items {
		order.Items = append(order.Items, p.toModel())
	}
	// Charges are stored verbatim and never folded into the total; the
	// dashboard is expected to have summed them into the total it sends.
	for _, ch := range req.AdditionalCharges {
		chargeType := ch.Type
		if chargeType == "" {
			chargeType = models.ChargeFixed
		}
		order.AdditionalCharges = append(order.AdditionalCharges, models.AdditionalCharge{
			Label:  ch.Label,
			Amount: ch.Amount,
			Type:   chargeType,
		})
	}
	// The submitted subTotal is ignored; it is always recomputed from the
	// items.
	order.SubTotal = utils.ComputeSubTotal(order.Items)
	order.Total = utils.ResolveTotal(req.Total, order.Items)

	if err := db.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrderRequest represents the generic order PATCH body
type UpdateOrderRequest struct {
	Status        *string          `json:"status"`
	PaymentStatus *string          `json:"paymentStatus"`
	PaymentMethod *string          `json:"paymentMethod"`
	Table         *string          `json:"table"`
	Customer      *CustomerPayload `json:"customer"`
	Total         *float64         `json:"total"`
}

// UpdateOrder handles PATCH /api/v1/orders/:id - merge-updates workflow and
// billing fields (staff only). Enum values are validated; transitions are
// not: any status may replace any other so the kitchen can move an order
// backward to fix a mis-click.
func UpdateOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
	staff, ok := currentStaff(c, db)
	if !ok {
		return
	}

	order, err := loadOrder(db, orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}
	if !staff.CanAccessHotel(order.HotelID) {
		respondForbidden(c)
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	updates := make(map[string]interface{})
	if req.Status != nil {
		if !models.IsValidStatus(*req.Status) {
			respondInvalidEnum(c, "status")
			return
		}
		updates["status"] = *req.Status
	}
	if req.PaymentStatus != nil {
		if !models.IsValidPaymentStatus(*req.PaymentStatus) {
			respondInvalidEnum(c, "paymentStatus")
			return
		}
		updates["payment_status"] = *req.PaymentStatus
	}
	if req.PaymentMethod != nil {
		if !models.IsValidPaymentMethod(*req.PaymentMethod) {
			respondInvalidEnum(c, "paymentMethod")
			return
		}
		updates["payment_method"] = *req.PaymentMethod
	}
	if req.Table != nil {
		updates["table_no"] = *req.Table
	}
	if req.Customer != nil {
		updates["customer_name"] = req.Customer.Name
		updates["customer_contact"] = req.Customer.Contact
	}
	if req.Total != nil {
		updates["total"] = *req.Total
	}

	// If no fields to update, return the current order
	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    order,
		})
		return
	}

	if err := db.Model(order).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order",
			},
		})
		return
	}

	updated, err := loadOrder(db, orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order details",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
	})
}

// MarkPaidRequest represents the PATCH /orders/:id/pay body
type MarkPaidRequest struct {
	Status        string `json:"status" binding:"omitempty,oneof=pending cooking served paid cancelled"`
	PaymentStatus string `json:"paymentStatus" binding:"omitempty,oneof=pending paid failed"`
	PaymentMethod string `json:"paymentMethod" binding:"omitempty,oneof=cash online not-decide"`
}

// MarkOrderPaid handles PATCH /api/v1/orders/:id/pay - settles an order
// (staff only). This is the one operation that couples the two status axes:
// both default to "paid" unless the caller overrides them.
func MarkOrderPaid(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
	staff, ok := currentStaff(c, db)
	if !ok {
		return
	}

	order, err := loadOrder(db, orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}
	if !staff.CanAccessHotel(order.HotelID) {
		respondForbidden(c)
		return
	}

	var req MarkPaidRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Invalid request data",
					"details": err.Error(),
				},
			})
			return
		}
	}

	updates := map[string]interface{}{
		"status":         models.StatusPaid,
		"payment_status": models.PaymentPaid,
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.PaymentStatus != "" {
		updates["payment_status"] = req.PaymentStatus
	}
	if req.PaymentMethod != "" {
		updates["payment_method"] = req.PaymentMethod
	}

	if err := db.Model(order).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order",
			},
		})
		return
	}

	updated, err := loadOrder(db, orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order details",
			},
		})
		return
	}

	// Receipt delivery is best effort; a mail failure never fails the
	// payment.
	if mailer := services.GetReceiptMailer(); mailer != nil && updated.PaymentStatus == models.PaymentPaid {
		if err := mailer.SendReceipt(updated); err != nil {
			log.Printf("warning: failed to send receipt for order %d: %v", updated.ID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
	})
}

// parseIDParam parses the :id path parameter, responding 400 on garbage
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Invalid id parameter",
			},
		})
		return 0, false
	}
	return uint(id), true
}

// currentStaff resolves the staff record behind the validated JWT,
// responding with the appropriate error when it cannot
func currentStaff(c *gin.Context, db *gorm.DB) (*models.User, bool) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return nil, false
	}

	var staff models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&staff).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "Staff profile not found",
			},
		})
		return nil, false
	}

	return &staff, true
}

func respondForbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "FORBIDDEN",
			"message": "You do not have permission to act on this hotel",
		},
	})
}

func respondInvalidEnum(c *gin.Context, field string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid " + field + " value",
		},
	})
}
