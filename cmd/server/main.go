package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/auth"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/config"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/database"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/handlers"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/middleware"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/repository"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/services"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/storage"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/pkg/logging"
	"github.com/gin-gonic/gin"
)

func main() {
	logging.Setup()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	receipts, err := storage.NewReceiptStore(cfg.UploadDir, "/uploads/receipts")
	if err != nil {
		slog.Error("failed to initialize receipt storage", "error", err)
		os.Exit(1)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	houseRepo := repository.NewHouseRepository(db)
	billRepo := repository.NewBillRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	ruleRepo := repository.NewRuleRepository(db)

	authService := services.NewAuthService(userRepo)
	houseService := services.NewHouseService(houseRepo, userRepo)
	billService := services.NewBillService(billRepo, paymentRepo, houseRepo, userRepo)
	paymentService := services.NewPaymentService(paymentRepo, receipts)
	ruleService := services.NewRuleService(ruleRepo, userRepo)
	analyticsService := services.NewAnalyticsService(db)
	searchService := services.NewSearchService(db)

	authHandler := handlers.NewAuthHandler(authService, jwtManager)
	houseHandler := handlers.NewHouseHandler(houseService)
	billHandler := handlers.NewBillHandler(billService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	ruleHandler := handlers.NewRuleHandler(ruleService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	searchHandler := handlers.NewSearchHandler(searchService)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.Static("/uploads/receipts", cfg.UploadDir)

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/me", middleware.RequireAuth(jwtManager), authHandler.Me)
		}

		protected := api.Group("")
		protected.Use(middleware.RequireAuth(jwtManager))
		{
			houses := protected.Group("/houses")
			{
				houses.GET("", houseHandler.GetHouse)
				houses.POST("", houseHandler.CreateHouse)
				houses.POST("/join", houseHandler.JoinHouse)
				houses.GET("/:id/members", houseHandler.ListMembers)
				houses.PUT("/:id", houseHandler.UpdateHouse)
				houses.DELETE("/:id", houseHandler.DeleteHouse)
			}

			bills := protected.Group("/bills")
			{
				bills.GET("", billHandler.ListBills)
				bills.POST("", billHandler.CreateBill)
				bills.GET("/:id", billHandler.GetBill)
				bills.PUT("/:id", billHandler.UpdateBill)
				bills.DELETE("/:id", billHandler.DeleteBill)
			}

			payments := protected.Group("/payments")
			{
				payments.GET("", paymentHandler.ListPayments)
				payments.GET("/:id", paymentHandler.GetPayment)
				payments.PUT("/:id", paymentHandler.SettlePayment)
			}

			rules := protected.Group("/house-rules")
			{
				rules.GET("", ruleHandler.ListRules)
				rules.POST("", ruleHandler.CreateRule)
				rules.PUT("/:id", ruleHandler.UpdateRule)
				rules.DELETE("/:id", ruleHandler.DeleteRule)
			}

			protected.GET("/analytics", analyticsHandler.GetAnalytics)
			protected.GET("/search", searchHandler.Search)
		}
	}

	slog.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
