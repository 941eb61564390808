package payment_fx

import (
	"os"
	"strconv"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"credix/internal/api/controllers"
	"credix/internal/infra"
	"credix/internal/repositories"
	"credix/internal/services"
)

var Module = fx.Provide(
	provideCheckoutProvider,
	providePaymentRepository,
	services.NewPaymentCapturedBus,
	providePaymentService,
	providePaymentController,
)

func provideCheckoutProvider() services.CheckoutProvider {
	return infra.NewCheckoutClient(infra.CheckoutConfig{
		APIKey:                os.Getenv("CHECKOUT_API_KEY"),
		MerchantAccount:       os.Getenv("CHECKOUT_MERCHANT_ACCOUNT"),
		ClientKey:             os.Getenv("CHECKOUT_CLIENT_KEY"),
		Environment:           os.Getenv("CHECKOUT_ENVIRONMENT"),
		LiveEndpointURLPrefix: os.Getenv("CHECKOUT_LIVE_ENDPOINT_PREFIX"),
	})
}

func providePaymentRepository(db *gorm.DB) repositories.PaymentRepositoryInterface {
	return repositories.NewPaymentRepository(db)
}

func providePaymentService(
	payments repositories.PaymentRepositoryInterface,
	checkout services.CheckoutProvider,
	captured *services.PaymentCapturedBus,
) services.PaymentService {
	return services.NewPaymentService(payments, checkout, captured)
}

func providePaymentController(paymentService services.PaymentService) *controllers.PaymentController {
	return controllers.NewPaymentController(paymentService)
}

// CaptureDelayHours reads the deployment-wide capture delay; zero (the
// default) means auto-capture.
func CaptureDelayHours() int {
	raw := os.Getenv("CAPTURE_DELAY_HOURS")
	if raw == "" {
		return 0
	}
	hours, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return hours
}
