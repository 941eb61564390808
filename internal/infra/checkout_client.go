package infra

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/adyen/adyen-go-api-library/v16/src/adyen"
	"github.com/adyen/adyen-go-api-library/v16/src/checkout"
	"github.com/adyen/adyen-go-api-library/v16/src/common"

	"credix/internal/services"
)

type CheckoutConfig struct {
	APIKey          string // provider API key
	MerchantAccount string
	ClientKey       string // public key handed to the drop-in widget
	Environment     string // "test" or "live"
	// Required by the provider for live traffic, e.g. "1797a841fbb37ca7-AdyenDemo".
	LiveEndpointURLPrefix string
	Timeout               time.Duration
}

// checkoutClient creates hosted checkout sessions through the provider SDK.
// The session API is an opaque collaborator; only the handful of fields in
// CheckoutSession matter to this service.
type checkoutClient struct {
	api *checkout.APIClient
	cfg CheckoutConfig
}

func NewCheckoutClient(cfg CheckoutConfig) services.CheckoutProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	env := common.TestEnv
	if strings.EqualFold(cfg.Environment, "live") {
		env = common.LiveEnv
	}

	client := adyen.NewClient(&common.Config{
		ApiKey:                cfg.APIKey,
		Environment:           env,
		LiveEndpointURLPrefix: cfg.LiveEndpointURLPrefix,
		HTTPClient:            &http.Client{Timeout: timeout},
	})

	return &checkoutClient{
		api: client.Checkout(),
		cfg: cfg,
	}
}

func (a *checkoutClient) CreateSession(ctx context.Context, params services.CheckoutSessionParams) (*services.CheckoutSession, error) {
	log.Printf("Creating checkout session for ref=%s", params.MerchantReference)

	req := a.api.PaymentsApi.SessionsInput().
		IdempotencyKey(params.IdempotencyKey).
		CreateCheckoutSessionRequest(checkout.CreateCheckoutSessionRequest{
			Amount: checkout.Amount{
				Value:    params.AmountMinor,
				Currency: params.Currency,
			},
			MerchantAccount:  a.cfg.MerchantAccount,
			Reference:        params.MerchantReference,
			ShopperReference: common.PtrString(params.ShopperReference),
			ReturnUrl:        params.ReturnURL,
			Channel:          common.PtrString("Web"),
			CountryCode:      common.PtrString("US"),
		})

	res, httpRes, err := a.api.PaymentsApi.Sessions(ctx, req)
	if err != nil {
		if httpRes != nil {
			return nil, fmt.Errorf("create checkout session: %s: %w", httpRes.Status, err)
		}
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	return &services.CheckoutSession{
		SessionID:   res.GetId(),
		SessionData: res.GetSessionData(),
	}, nil
}

func (a *checkoutClient) ClientKey() string {
	return a.cfg.ClientKey
}

func (a *checkoutClient) Environment() string {
	if a.cfg.Environment == "" {
		return "test"
	}
	return a.cfg.Environment
}
