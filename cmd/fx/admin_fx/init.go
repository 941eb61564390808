package admin_fx

import (
	"go.uber.org/fx"

	"credix/internal/api/controllers"
	"credix/internal/repositories"
	"credix/internal/services"
)

var Module = fx.Provide(
	provideAdminService,
	provideAdminController,
)

func provideAdminService(
	payments repositories.PaymentRepositoryInterface,
	logs repositories.WebhookLogRepositoryInterface,
) services.AdminService {
	return services.NewAdminService(payments, logs)
}

func provideAdminController(adminService services.AdminService) *controllers.AdminController {
	return controllers.NewAdminController(adminService)
}
