// Package handoff delivers a composed order message to WhatsApp, either
// as a deep link for the shopper to open or directly through the Cloud
// API.
package handoff

import "context"

// Order carries a submitted order's message and totals.
type Order struct {
	SessionID  string
	Message    string
	TotalCents int64
}

// Result is what the shopper's client needs to complete the handoff.
// DeepLink is empty when the message was delivered server-side.
type Result struct {
	DeepLink string `json:"deep_link,omitempty"`
}

// Sender hands an order message over to the messaging channel.
type Sender interface {
	Send(ctx context.Context, order Order) (*Result, error)
}
