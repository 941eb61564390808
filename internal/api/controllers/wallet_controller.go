package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"credix/internal/models/request_models"
	"credix/internal/models/response_models"
	"credix/internal/services"
	"credix/pkg/utils"
)

type WalletController struct {
	walletService  services.WalletService
	paymentService services.PaymentService
}

func NewWalletController(walletService services.WalletService, paymentService services.PaymentService) *WalletController {
	return &WalletController{
		walletService:  walletService,
		paymentService: paymentService,
	}
}

// GetWallet godoc
// @Summary Current balance plus the most recent ledger entries
// @Tags Wallet
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /wallet [get]
func (w *WalletController) GetWallet(c *gin.Context) {

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	balance, err := w.walletService.GetBalance(ctx, userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	entries, err := w.walletService.GetRecentEntries(ctx, userID, 5)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	recent := make([]response_models.LedgerEntryResponse, 0, len(entries))
	for i := range entries {
		recent = append(recent, response_models.LedgerEntryResponseFromModel(&entries[i]))
	}

	utils.RespondSuccess(c, response_models.WalletResponse{
		Balance:       balance,
		RecentEntries: recent,
	}, "Wallet fetched successfully")
}

// GetTransactions godoc
// @Summary Paginated ledger history for the caller
// @Tags Wallet
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /wallet/transactions [get]
func (w *WalletController) GetTransactions(c *gin.Context) {

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	page := parseIntQuery(c, "page", 1)
	limit := parseIntQuery(c, "limit", 20)

	result, err := w.walletService.GetTransactions(c.Request.Context(), userID, page, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Transactions fetched successfully")
}

// Purchase godoc
// @Summary Start a credit bundle purchase
// @Description Creates the payment record and a hosted checkout session
// @Tags Wallet
// @Accept json
// @Produce json
// @Param request body request_models.PurchaseRequest true "Purchase Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /wallet/purchase [post]
func (w *WalletController) Purchase(c *gin.Context) {

	var request request_models.PurchaseRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	checkout, err := w.paymentService.InitiatePayment(c.Request.Context(), userID, request.BundleID, request.ReturnURL)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, checkout, "Checkout session created successfully")
}

func parseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
