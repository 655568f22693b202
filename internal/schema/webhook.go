// Package schema normalizes the two provider webhook response shapes into
// the canonical WebhookRecord. Raw responses carry no discriminator field,
// so the variant is determined once, here, by which event field is present;
// nothing past this package inspects provider shapes again.
package schema

import (
	"encoding/json"
	"time"

	"github.com/stripe/stripe-go/v81"

	"github.com/paymentops/connecthub/internal/model"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindStripe
	KindPayPal
)

// PayPalEventType is one subscribed event on a PayPal webhook.
type PayPalEventType struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PayPalLink is a HATEOAS link returned with a PayPal webhook.
type PayPalLink struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

// PayPalWebhook is the webhook shape returned by the PayPal connection API.
// It has no creation timestamp.
type PayPalWebhook struct {
	ID         string            `json:"id"`
	URL        string            `json:"url"`
	EventTypes []PayPalEventType `json:"event_types"`
	Links      []PayPalLink      `json:"links"`
}

// Webhook is the tagged variant over the provider webhook shapes.
// Exactly one of Stripe/PayPal is set, matching Kind.
type Webhook struct {
	Kind   Kind
	Stripe *stripe.WebhookEndpoint
	PayPal *PayPalWebhook
}

// DecodeWebhook inspects the raw webhookInfo payload and picks the variant:
// enabled_events means Stripe, event_types means PayPal. Undecodable input
// yields KindUnknown rather than an error.
func DecodeWebhook(raw json.RawMessage) Webhook {
	var probe struct {
		EnabledEvents json.RawMessage `json:"enabled_events"`
		EventTypes    json.RawMessage `json:"event_types"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Webhook{Kind: KindUnknown}
	}

	switch {
	case present(probe.EnabledEvents):
		var endpoint stripe.WebhookEndpoint
		if err := json.Unmarshal(raw, &endpoint); err != nil {
			return Webhook{Kind: KindUnknown}
		}
		return Webhook{Kind: KindStripe, Stripe: &endpoint}

	case present(probe.EventTypes):
		var webhook PayPalWebhook
		if err := json.Unmarshal(raw, &webhook); err != nil {
			return Webhook{Kind: KindUnknown}
		}
		return Webhook{Kind: KindPayPal, PayPal: &webhook}

	default:
		return Webhook{Kind: KindUnknown}
	}
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// Normalize converts the variant into the canonical record. Stripe carries
// an authoritative Unix-seconds creation time; PayPal does not, so at is
// used as a display-only fallback. Total: KindUnknown yields an empty
// record stamped at.
func (w Webhook) Normalize(at time.Time) model.WebhookRecord {
	switch w.Kind {
	case KindStripe:
		return model.WebhookRecord{
			ID:        w.Stripe.ID,
			URL:       w.Stripe.URL,
			Events:    w.Stripe.EnabledEvents,
			Status:    w.Stripe.Status,
			CreatedAt: time.Unix(w.Stripe.Created, 0),
		}

	case KindPayPal:
		events := make([]string, 0, len(w.PayPal.EventTypes))
		for _, et := range w.PayPal.EventTypes {
			events = append(events, et.Name)
		}
		return model.WebhookRecord{
			ID:        w.PayPal.ID,
			URL:       w.PayPal.URL,
			Events:    events,
			CreatedAt: at,
		}

	default:
		return model.WebhookRecord{
			Events:    []string{},
			CreatedAt: at,
		}
	}
}
