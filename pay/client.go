package pay

import (
	"os"

	"github.com/stripe/stripe-go/v82"
)

var stripeClient *stripe.Client

// GetStripeClient lazily builds the shared Stripe client from
// STRIPE_SECRET_KEY.
func GetStripeClient() *stripe.Client {
	if stripeClient != nil {
		return stripeClient
	}
	apiKey := os.Getenv("STRIPE_SECRET_KEY")
	sc := stripe.NewClient(apiKey)
	stripeClient = sc

	return sc
}

// SetStripeClient swaps the shared client, used by tests.
func SetStripeClient(c *stripe.Client) {
	stripeClient = c
}
