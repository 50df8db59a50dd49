package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/foodslinkx/foodslinkx-api/config"
	"github.com/foodslinkx/foodslinkx-api/models"
	"github.com/foodslinkx/foodslinkx-api/services"
	"github.com/foodslinkx/foodslinkx-api/utils"
)

// CreateMenuItem handles POST /api/v1/hotels/:id/menu-items - adds a dish
// to the hotel menu, with an optional PNG photo stored in S3 (staff only)
func CreateMenuItem(c *gin.Context) {
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

	name := c.PostForm("name")
	priceParam := c.PostForm("price")
	if name == "" || priceParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "name and price form fields are required",
			},
		})
		return
	}

	price, err := strconv.ParseFloat(priceParam, 64)
	if err != nil || price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "price must be a non-negative number",
			},
		})
		return
	}

	item := models.MenuItem{
		HotelID:     hotelID,
		Name:        name,
		Description: c.PostForm("description"),
		Price:       price,
		Category:    c.PostForm("category"),
		Available:   true,
	}

	// The photo is optional; a missing file is not an error.
	if fileHeader, err := c.FormFile("image"); err == nil {
		if err := utils.ValidateImageFile(fileHeader); err != nil {
			var uploadErr *utils.FileUploadError
			code := "INVALID_FILE"
			if errors.As(err, &uploadErr) {
				code = uploadErr.Code
			}
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    code,
					"message": err.Error(),
				},
			})
			return
		}

		s3Service := services.GetS3Service()
		if s3Service == nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "STORAGE_ERROR",
					"message": "Image storage is not configured",
				},
			})
			return
		}

		s3Key, err := s3Service.UploadFile(fileHeader)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "STORAGE_ERROR",
					"message": "Failed to upload menu image",
				},
			})
			return
		}
		item.ImageS3Key = &s3Key
	}

	if err := db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create menu item",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    item,
	})
}

// ListMenu handles GET /api/v1/hotels/:id/menu - lists a hotel's menu for
// the customer web client. Soft-deleted items never appear; photo URLs are
// short-lived presigned links.
func ListMenu(c *gin.Context) {
	hotelID, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
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

	var items []models.MenuItem
	if err := db.Where("hotel_id = ?", hotelID).
		Order("category ASC, name ASC").
		Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch menu",
			},
		})
		return
	}

	if s3Service := services.GetS3Service(); s3Service != nil {
		for i := range items {
			if items[i].ImageS3Key == nil {
				continue
			}
			url, err := s3Service.GetPresignedURL(*items[i].ImageS3Key)
			if err != nil {
				log.Printf("warning: failed to presign image for menu item %d: %v", items[i].ID, err)
				continue
			}
			items[i].ImageURL = &url
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}

// DeleteMenuItem handles DELETE /api/v1/menu-items/:id - removes a dish
// from the menu (staff only). The delete is refused while any open order
// still references the item; check and delete share one transaction. Soft
// delete by default, permanent with ?permanent=true.
func DeleteMenuItem(c *gin.Context) {
	itemID, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
	staff, ok := currentStaff(c, db)
	if !ok {
		return
	}

	var item models.MenuItem
	if err := db.First(&item, itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MENU_ITEM_NOT_FOUND",
				"message": "Menu item not found",
			},
		})
		return
	}
	if !staff.CanAccessHotel(item.HotelID) {
		respondForbidden(c)
		return
	}

	permanent := c.Query("permanent") == "true"

	activeOrders, err := services.DeleteMenuItem(db, &item, permanent)
	if errors.Is(err, services.ErrMenuItemInUse) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":             "MENU_ITEM_IN_USE",
				"message":          fmt.Sprintf("Cannot delete: %d active order(s) still reference this item", activeOrders),
				"activeOrderCount": activeOrders,
			},
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete menu item",
			},
		})
		return
	}

	// The stored photo goes after the transaction commits; S3 has no
	// rollback, so an orphaned object beats a menu row pointing nowhere.
	if permanent && item.ImageS3Key != nil {
		if s3Service := services.GetS3Service(); s3Service != nil {
			if err := s3Service.DeleteFile(*item.ImageS3Key); err != nil {
				log.Printf("warning: failed to delete image for menu item %d: %v", item.ID, err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Menu item deleted",
	})
}
