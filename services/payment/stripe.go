package payment

import (
	"context"
	"fmt"
	"math"

	"medibook/models"
	"medibook/services/booking"

	"github.com/stripe/stripe-go/v76"
	checkoutsession "github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

// StripeCheckoutService creates hosted Stripe Checkout links for
// appointment payments. The gateway is opaque to the booking core: only
// the checkout URL comes back.
type StripeCheckoutService struct {
	logger *zap.Logger
}

func NewStripeCheckoutService(logger *zap.Logger) *StripeCheckoutService {
	return &StripeCheckoutService{logger: logger}
}

// CreateCheckout creates a one-off payment session and returns its URL.
// The global stripe.Key must be set before use (done in main).
func (s *StripeCheckoutService) CreateCheckout(ctx context.Context, req models.CheckoutRequest) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(req.CustomerEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("%s Appointment", booking.FormatCategory(req.Category))),
					},
					UnitAmount: stripe.Int64(int64(math.Round(req.Amount * 100))),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("appointment_type", req.Category)
	params.AddMetadata("customer_name", req.CustomerName)
	params.AddMetadata("source", "appointment_booking")
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	s.logger.Info("checkout link generated",
		zap.String("customer", req.CustomerEmail),
		zap.Float64("amount", req.Amount))
	return sess.URL, nil
}
