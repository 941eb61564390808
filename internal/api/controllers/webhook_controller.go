package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"credix/internal/services"
	"credix/pkg/utils"
)

type WebhookController struct {
	processor services.WebhookProcessorInterface
}

func NewWebhookController(processor services.WebhookProcessorInterface) *WebhookController {
	return &WebhookController{processor: processor}
}

// HandleProviderWebhook godoc
// @Summary Inbound payment-provider notifications
// @Description Acknowledges with [accepted] once the signature checks out;
// per-item outcomes are visible in the webhook log, not the response.
// @Tags Webhooks
// @Accept json
// @Produce plain
// @Param HMAC-Signature header string false "Provider HMAC signature"
// @Success 200 {string} string "[accepted]"
// @Router /webhooks/provider [post]
func (w *WebhookController) HandleProviderWebhook(c *gin.Context) {

	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Failed to read request body")
		return
	}

	signature := c.GetHeader("HMAC-Signature")

	if err := w.processor.ProcessWebhook(c.Request.Context(), rawBody, signature); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.String(http.StatusOK, "[accepted]")
}
