package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"credix/internal/services"
	"credix/pkg/utils"
)

type AdminController struct {
	adminService services.AdminService
}

func NewAdminController(adminService services.AdminService) *AdminController {
	return &AdminController{adminService: adminService}
}

// GetMetrics godoc
// @Summary Seven-day payment volume and status metrics
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/metrics [get]
func (a *AdminController) GetMetrics(c *gin.Context) {

	metrics, err := a.adminService.GetMetrics(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, metrics, "Metrics fetched successfully")
}

// ListPayments godoc
// @Summary List payments across all users
// @Tags Admin
// @Produce json
// @Param status query string false "Filter by payment status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/payments [get]
func (a *AdminController) ListPayments(c *gin.Context) {

	page := parseIntQuery(c, "page", 1)
	limit := parseIntQuery(c, "limit", 20)
	status := c.Query("status")

	result, err := a.adminService.ListPayments(c.Request.Context(), status, page, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Payments fetched successfully")
}

// GetPaymentDetail godoc
// @Summary A payment with its full transition audit trail
// @Tags Admin
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/payments/{id} [get]
func (a *AdminController) GetPaymentDetail(c *gin.Context) {

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid payment id")
		return
	}

	detail, err := a.adminService.GetPaymentDetail(c.Request.Context(), paymentID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, detail, "Payment detail fetched successfully")
}

// ListWebhooks godoc
// @Summary Inbound webhook log, newest first
// @Tags Admin
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/webhooks [get]
func (a *AdminController) ListWebhooks(c *gin.Context) {

	page := parseIntQuery(c, "page", 1)
	limit := parseIntQuery(c, "limit", 20)

	result, err := a.adminService.ListWebhooks(c.Request.Context(), page, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Webhook logs fetched successfully")
}
