package model

import "time"

const (
	ProviderStripe = "stripe"
	ProviderPayPal = "paypal"
)

const (
	WebhookStatusActive = "active"
)

// KnownProvider reports whether p is a provider this service manages.
func KnownProvider(p string) bool {
	return p == ProviderStripe || p == ProviderPayPal
}

// WebhookRecord is the canonical webhook shape, independent of the
// provider-specific response it was normalized from.
type WebhookRecord struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Events    []string  `json:"events"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// EventType is one selectable webhook event for a provider.
type EventType struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var stripeEvents = []EventType{
	{Value: "payment_intent.succeeded", Label: "Payment Intent Succeeded"},
	{Value: "checkout.session.completed", Label: "Checkout Session Completed"},
	{Value: "invoice.payment_failed", Label: "Invoice Payment Failed"},
}

var paypalEvents = []EventType{
	{Value: "PAYMENT.SALE.COMPLETED", Label: "Payment Sale Completed"},
	{Value: "BILLING.SUBSCRIPTION.CREATED", Label: "Billing Subscription Created"},
	{Value: "CHECKOUT.ORDER.APPROVED", Label: "Checkout Order Approved"},
}

// ProviderEvents returns the event catalog offered for a provider.
// The catalog is advisory; the remote endpoint may accept more.
func ProviderEvents(provider string) []EventType {
	switch provider {
	case ProviderStripe:
		return stripeEvents
	case ProviderPayPal:
		return paypalEvents
	default:
		return nil
	}
}
