// Package payment wraps the payment gateway: order creation at booking time
// and signature verification of the confirmation callback.
package payment

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"go.uber.org/zap"
)

// Gateway creates payment orders that the client completes out of band.
// Amounts are in the gateway's minor currency unit (paise).
type Gateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (string, error)
}

// RazorpayGateway is the production Gateway backed by the Razorpay Orders
// API.
type RazorpayGateway struct {
	client *razorpay.Client
	logger *zap.Logger
}

func NewRazorpayGateway(keyID, keySecret string, logger *zap.Logger) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
		logger: logger,
	}
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create gateway order: %w", err)
	}
	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("gateway order response missing id")
	}
	g.logger.Info("gateway order created",
		zap.String("order_id", orderID),
		zap.Int64("amount", amountMinor),
		zap.String("receipt", receipt))
	return orderID, nil
}

// MinorUnits converts a rupee amount to paise.
func MinorUnits(amount float64) int64 {
	return int64(amount*100 + 0.5)
}
