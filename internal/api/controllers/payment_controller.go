package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"credix/internal/models/response_models"
	"credix/internal/services"
	"credix/pkg/utils"
)

type PaymentController struct {
	paymentService services.PaymentService
}

func NewPaymentController(paymentService services.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

// GetPayment godoc
// @Summary Fetch a single payment owned by the caller
// @Tags Payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/{id} [get]
func (p *PaymentController) GetPayment(c *gin.Context) {

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid payment id")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	payment, err := p.paymentService.FindByID(c.Request.Context(), paymentID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	if payment.UserID != userID {
		utils.HandleServiceError(c, utils.ErrForbidden)
		return
	}

	utils.RespondSuccess(c, response_models.PaymentResponseFromModel(payment), "Payment fetched successfully")
}

// ListPayments godoc
// @Summary List the caller's payments, newest first
// @Tags Payments
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments [get]
func (p *PaymentController) ListPayments(c *gin.Context) {

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	payments, err := p.paymentService.FindUserPayments(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	out := make([]response_models.PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, response_models.PaymentResponseFromModel(&payments[i]))
	}

	utils.RespondSuccess(c, out, "Payments fetched successfully")
}

// currentUserID pulls the authenticated user id set by the JWT middleware.
// Responds 401 and returns ok=false when it is missing or malformed.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString("user_id")
	if raw == "" {
		utils.RespondError(c, http.StatusUnauthorized, "user_id is required")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "user_id is invalid")
		return uuid.Nil, false
	}
	return userID, true
}
