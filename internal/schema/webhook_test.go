package schema

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestDecodeWebhook_StripeShape(t *testing.T) {
	raw := json.RawMessage(`{
		"id": "we_1",
		"object": "webhook_endpoint",
		"url": "https://example.com/hook",
		"enabled_events": ["a", "b"],
		"created": 1700000000,
		"status": "enabled",
		"livemode": false
	}`)

	wh := DecodeWebhook(raw)
	if wh.Kind != KindStripe {
		t.Fatalf("Expected stripe kind, got %v", wh.Kind)
	}

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	record := wh.Normalize(at)

	if record.ID != "we_1" {
		t.Errorf("Expected id we_1, got %s", record.ID)
	}
	if record.URL != "https://example.com/hook" {
		t.Errorf("Expected url, got %s", record.URL)
	}
	if !reflect.DeepEqual(record.Events, []string{"a", "b"}) {
		t.Errorf("Expected events [a b], got %v", record.Events)
	}
	if !record.CreatedAt.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("Expected creation time from unix seconds, got %v", record.CreatedAt)
	}
	if record.Status != "enabled" {
		t.Errorf("Expected provider status carried over, got %s", record.Status)
	}
}

func TestDecodeWebhook_PayPalShape(t *testing.T) {
	raw := json.RawMessage(`{
		"id": "WH-1",
		"url": "https://example.com/hook",
		"event_types": [
			{"name": "X", "description": "x happened"},
			{"name": "Y", "description": "y happened"}
		],
		"links": [{"href": "https://api.paypal.com/WH-1", "rel": "self", "method": "GET"}]
	}`)

	wh := DecodeWebhook(raw)
	if wh.Kind != KindPayPal {
		t.Fatalf("Expected paypal kind, got %v", wh.Kind)
	}

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	record := wh.Normalize(at)

	if record.ID != "WH-1" {
		t.Errorf("Expected id WH-1, got %s", record.ID)
	}
	if !reflect.DeepEqual(record.Events, []string{"X", "Y"}) {
		t.Errorf("Expected projected event names, got %v", record.Events)
	}
	if !record.CreatedAt.Equal(at) {
		t.Errorf("Expected fallback creation time %v, got %v", at, record.CreatedAt)
	}
}

func TestDecodeWebhook_UnknownShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty object", `{}`},
		{"null event fields", `{"enabled_events": null, "event_types": null}`},
		{"garbage", `not json`},
		{"unrelated fields", `{"id": "x", "url": "https://example.com"}`},
	}

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wh := DecodeWebhook(json.RawMessage(tt.raw))
			if wh.Kind != KindUnknown {
				t.Fatalf("Expected unknown kind, got %v", wh.Kind)
			}

			record := wh.Normalize(at)
			if len(record.Events) != 0 {
				t.Errorf("Expected empty events, got %v", record.Events)
			}
			if !record.CreatedAt.Equal(at) {
				t.Errorf("Expected fallback creation time, got %v", record.CreatedAt)
			}
		})
	}
}

func TestDecodeWebhook_StripeWinsWhenBothPresent(t *testing.T) {
	// Real responses carry exactly one of the two fields; enabled_events is checked first.
	raw := json.RawMessage(`{"enabled_events": ["a"], "event_types": [{"name": "X"}], "created": 1700000000}`)

	wh := DecodeWebhook(raw)
	if wh.Kind != KindStripe {
		t.Fatalf("Expected stripe kind, got %v", wh.Kind)
	}
}
