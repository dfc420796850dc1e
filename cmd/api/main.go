package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-production-tracker/internal/handler"
	"go-production-tracker/internal/middleware"
	"go-production-tracker/internal/model"
	"go-production-tracker/internal/repository"
	"go-production-tracker/internal/service"
	"go-production-tracker/internal/ws"
	"go-production-tracker/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.User{}, &model.Product{}, &model.DailyEntry{})

	// 3. Seed default super admin
	seedSuperAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	entryRepo := repository.NewEntryRepo(db)
	userRepo := repository.NewUserRepo(db)

	productService := service.NewProductService(productRepo, wsHub, nil)
	entryService := service.NewEntryService(productRepo, entryRepo, db, wsHub, nil)
	reportService := service.NewReportService(entryRepo)
	dashService := service.NewDashboardService(entryRepo, nil)
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)

	productHandler := handler.NewProductHandler(productService)
	entryHandler := handler.NewEntryHandler(entryService)
	reportHandler := handler.NewReportHandler(reportService)
	dashHandler := handler.NewDashboardHandler(dashService)
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Production Tracker v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Profile
	protected.Get("/auth/me", authHandler.Me)
	protected.Put("/auth/profile", authHandler.UpdateProfile)
	protected.Put("/auth/change-password", authHandler.ChangePassword)

	// Shift status for the daily sheet
	protected.Get("/shifts/status", entryHandler.ShiftStatus)

	// Dashboard
	protected.Get("/dashboard/stats", dashHandler.GetStats)
	protected.Get("/dashboard/production-movement", dashHandler.GetProductionMovement)

	// Products (definitions managed by super admins only)
	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/active", productHandler.GetActiveProducts)
	protected.Post("/products", middleware.RequireRole(model.RoleSuperAdmin), productHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequireRole(model.RoleSuperAdmin), productHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequireRole(model.RoleSuperAdmin), productHandler.DeleteProduct)

	// Daily entries
	protected.Post("/entries", entryHandler.RecordEntry)
	protected.Get("/entries", entryHandler.GetEntries)

	// Monthly reports
	protected.Get("/reports/monthly", middleware.RequireRole(model.RoleAdmin, model.RoleSuperAdmin), reportHandler.GetMonthlyReport)

	// User Management (super admin only)
	users := protected.Group("/users", middleware.RequireRole(model.RoleSuperAdmin))
	users.Get("/", userHandler.GetUsers)
	users.Get("/:id", userHandler.GetUser)
	users.Put("/:id/role", userHandler.UpdateRole)
	users.Put("/:id/team", userHandler.UpdateTeam)
	users.Put("/:id/status", userHandler.UpdateStatus)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "5000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedSuperAdmin creates the default super admin account if none exists
func seedSuperAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByEmail("admin@example.com"); err == nil {
		return
	}

	admin := &model.User{
		Email:    "admin@example.com",
		FullName: "Super Administrator",
		Team:     model.TeamVideo,
		Role:     model.RoleSuperAdmin,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword("Admin123!"); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create super admin: %v", err)
	} else {
		log.Println("✅ Super admin created: admin@example.com / Admin123! (SUPER_ADMIN)")
	}
}
