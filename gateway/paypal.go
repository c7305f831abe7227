package gateway

import (
	"context"
	"fmt"

	"github.com/plutov/paypal/v4"
)

// Outcome states reported by the gateway for captures and refunds.
const (
	StateCompleted = "COMPLETED"
)

// Client is the narrow contract the payment service needs from the payment
// gateway. Implementations report business declines through the returned
// state and transport or protocol failures through the error.
type Client interface {
	// CreateOrder registers a remote order for the given amount and returns
	// the gateway's order id together with the URL the payer must be sent to
	// for approval.
	CreateOrder(ctx context.Context, amount float64, description, returnURL, cancelURL string) (orderID, approvalURL string, err error)
	// GetOrder returns the gateway's current state for a remote order.
	GetOrder(ctx context.Context, orderID string) (state string, err error)
	// ExecuteOrder captures an approved order and returns the outcome state
	// and the gateway-assigned capture id.
	ExecuteOrder(ctx context.Context, orderID, payerID string) (state, captureID string, err error)
	// Refund reverses a completed capture and returns the outcome state.
	Refund(ctx context.Context, captureID string) (state string, err error)
}

// Config carries the gateway credentials and mode. It is filled from the
// application config at startup; nothing in the business logic reads the
// environment directly.
type Config struct {
	ClientID string
	Secret   string
	Mode     string // "sandbox" or "live"
	Currency string
}

// PayPalClient implements Client against the PayPal REST API.
type PayPalClient struct {
	client   *paypal.Client
	currency string
}

// NewPayPalClient builds a PayPal-backed gateway client and fetches an initial
// access token so credential problems surface at startup rather than on the
// first checkout.
func NewPayPalClient(cfg Config) (*PayPalClient, error) {
	apiBase := paypal.APIBaseSandBox
	if cfg.Mode == "live" {
		apiBase = paypal.APIBaseLive
	}

	client, err := paypal.NewClient(cfg.ClientID, cfg.Secret, apiBase)
	if err != nil {
		return nil, fmt.Errorf("paypal client: %w", err)
	}
	if _, err := client.GetAccessToken(context.Background()); err != nil {
		return nil, fmt.Errorf("paypal access token: %w", err)
	}

	currency := cfg.Currency
	if currency == "" {
		currency = "USD"
	}
	return &PayPalClient{client: client, currency: currency}, nil
}

func (p *PayPalClient) CreateOrder(ctx context.Context, amount float64, description, returnURL, cancelURL string) (string, string, error) {
	units := []paypal.PurchaseUnitRequest{
		{
			Amount: &paypal.PurchaseUnitAmount{
				Currency: p.currency,
				Value:    fmt.Sprintf("%.2f", amount),
			},
			Description: description,
		},
	}
	appContext := &paypal.ApplicationContext{
		ReturnURL: returnURL,
		CancelURL: cancelURL,
	}

	order, err := p.client.CreateOrder(ctx, paypal.OrderIntentCapture, units, nil, appContext)
	if err != nil {
		return "", "", err
	}

	for _, link := range order.Links {
		if link.Rel == "approve" {
			return order.ID, link.Href, nil
		}
	}
	return "", "", fmt.Errorf("no approval link in response for order %s", order.ID)
}

func (p *PayPalClient) GetOrder(ctx context.Context, orderID string) (string, error) {
	order, err := p.client.GetOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	return order.Status, nil
}

func (p *PayPalClient) ExecuteOrder(ctx context.Context, orderID, payerID string) (string, string, error) {
	// PayPal's Orders v2 captures by order id alone; the payer id from the
	// redirect is not part of the capture request.
	_ = payerID

	res, err := p.client.CaptureOrder(ctx, orderID, paypal.CaptureOrderRequest{})
	if err != nil {
		return "", "", err
	}

	captureID := ""
	if len(res.PurchaseUnits) > 0 && res.PurchaseUnits[0].Payments != nil &&
		len(res.PurchaseUnits[0].Payments.Captures) > 0 {
		captureID = res.PurchaseUnits[0].Payments.Captures[0].ID
	}
	return res.Status, captureID, nil
}

func (p *PayPalClient) Refund(ctx context.Context, captureID string) (string, error) {
	res, err := p.client.RefundCapture(ctx, captureID, paypal.RefundCaptureRequest{})
	if err != nil {
		return "", err
	}
	return res.Status, nil
}
