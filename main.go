package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/foodslinkx/foodslinkx-api/config"
	"github.com/foodslinkx/foodslinkx-api/controllers"
	"github.com/foodslinkx/foodslinkx-api/middleware"
	"github.com/foodslinkx/foodslinkx-api/models"
	"github.com/foodslinkx/foodslinkx-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Foodslinkx API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.Hotel{},
		&models.User{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.AdditionalCharge{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Menu images live in S3; without a bucket the API still runs, just
	// without photos
	if cfg.AWSS3Bucket != "" {
		if _, err := services.InitS3Service(); err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
	} else {
		log.Println("AWS_S3_BUCKET not set, menu images disabled")
	}

	// Receipt mail is best effort and optional
	services.InitReceiptMailer(cfg)

	// Initialize Gin router
	router := gin.Default()

	// Both front ends (customer web menu, staff dashboard) are served from
	// other origins
	router.Use(cors.Default())

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Customer device session endpoints (no auth, keyed by deviceId)
		v1.GET("/orders", controllers.ListDeviceOrders)
		v1.POST("/orders", controllers.CreateOrder)
		v1.GET("/hotels/:id/menu", controllers.ListMenu)

		// Staff endpoints behind the JWT middleware
		staff := v1.Group("", middleware.EnsureValidToken(cfg))
		{
			staff.GET("/hotels/:id/orders", controllers.ListHotelOrders)
			staff.POST("/hotels/:id/orders", controllers.CreateDashboardOrder)
			staff.PATCH("/orders/:id", controllers.UpdateOrder)
			staff.PATCH("/orders/:id/pay", controllers.MarkOrderPaid)
			staff.POST("/hotels/:id/menu-items", controllers.CreateMenuItem)
			staff.DELETE("/menu-items/:id", controllers.DeleteMenuItem)
		}
	}

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Foodslinkx API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
