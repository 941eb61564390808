package webhook_fx

import (
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"credix/cmd/fx/payment_fx"
	"credix/internal/api/controllers"
	"credix/internal/repositories"
	"credix/internal/services"
)

var Module = fx.Provide(
	provideWebhookLogRepository,
	provideWebhookProcessor,
	provideWebhookController,
)

func provideWebhookLogRepository(db *gorm.DB) repositories.WebhookLogRepositoryInterface {
	return repositories.NewWebhookLogRepository(db)
}

func provideWebhookProcessor(
	logs repositories.WebhookLogRepositoryInterface,
	paymentService services.PaymentService,
) services.WebhookProcessorInterface {
	return services.NewWebhookProcessor(logs, paymentService, services.WebhookConfig{
		HMACKey:           os.Getenv("WEBHOOK_HMAC_KEY"),
		CaptureDelayHours: payment_fx.CaptureDelayHours(),
	})
}

func provideWebhookController(processor services.WebhookProcessorInterface) *controllers.WebhookController {
	return controllers.NewWebhookController(processor)
}
