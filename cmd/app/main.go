package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"credix/cmd/fx/admin_fx"
	"credix/cmd/fx/db_fx"
	"credix/cmd/fx/payment_fx"
	"credix/cmd/fx/wallet_fx"
	"credix/cmd/fx/webhook_fx"
	"credix/internal/api/controllers"
	"credix/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	app := fx.New(
		db_fx.Module,
		payment_fx.Module,
		webhook_fx.Module,
		wallet_fx.Module,
		admin_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	walletController *controllers.WalletController,
	paymentController *controllers.PaymentController,
	webhookController *controllers.WebhookController,
	adminController *controllers.AdminController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, walletController, paymentController, webhookController, adminController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	walletController *controllers.WalletController,
	paymentController *controllers.PaymentController,
	webhookController *controllers.WebhookController,
	adminController *controllers.AdminController) {

	// Provider notifications authenticate via HMAC, not bearer tokens.
	r.POST("/webhooks/provider", webhookController.HandleProviderWebhook)

	walletGroup := r.Group("/wallet")
	walletGroup.Use(middleware.JWTAuthMiddleware())
	walletGroup.GET("", walletController.GetWallet)
	walletGroup.GET("/transactions", walletController.GetTransactions)
	walletGroup.POST("/purchase", walletController.Purchase)

	paymentsGroup := r.Group("/payments")
	paymentsGroup.Use(middleware.JWTAuthMiddleware())
	paymentsGroup.GET("", paymentController.ListPayments)
	paymentsGroup.GET("/:id", paymentController.GetPayment)

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(), middleware.RoleMiddleware("admin"))
	adminGroup.GET("/metrics", adminController.GetMetrics)
	adminGroup.GET("/payments", adminController.ListPayments)
	adminGroup.GET("/payments/:id", adminController.GetPaymentDetail)
	adminGroup.GET("/webhooks", adminController.ListWebhooks)
}
