package wallet_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"credix/internal/api/controllers"
	"credix/internal/repositories"
	"credix/internal/services"
)

var Module = fx.Options(
	fx.Provide(
		provideLedgerRepository,
		provideWalletService,
		provideWalletController,
	),
	// The wallet consumes captured payments; the bus delivers them
	// synchronously after the status write commits.
	fx.Invoke(registerCapturedListener),
)

func provideLedgerRepository(db *gorm.DB) repositories.LedgerRepositoryInterface {
	return repositories.NewLedgerRepository(db)
}

func provideWalletService(ledger repositories.LedgerRepositoryInterface) services.WalletService {
	return services.NewWalletService(ledger)
}

func provideWalletController(
	walletService services.WalletService,
	paymentService services.PaymentService,
) *controllers.WalletController {
	return controllers.NewWalletController(walletService, paymentService)
}

func registerCapturedListener(bus *services.PaymentCapturedBus, walletService services.WalletService) {
	bus.Subscribe(func(ctx context.Context, event services.PaymentCapturedEvent) error {
		_, err := walletService.AllocateCredits(ctx, &event.Payment)
		return err
	})
}
