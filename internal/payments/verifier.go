// Package payments wraps the Stripe SDK: webhook signature verification
// and hosted checkout-session creation. The API key and webhook secret
// are injected at construction, never read from the environment here.
package payments

import (
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

// Verifier validates webhook payloads against the endpoint's shared secret.
type Verifier struct {
	secret string
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

// Verify checks the Stripe-Signature header against the raw payload and
// returns the parsed event envelope. No event is trusted without passing
// this check.
func (v *Verifier) Verify(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, v.secret)
}
