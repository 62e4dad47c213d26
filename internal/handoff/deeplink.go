package handoff

import (
	"context"
	"net/url"
	"strings"
)

// DeepLinkSender builds a wa.me link carrying the order message. The
// shopper's client opens the link; nothing leaves the server.
type DeepLinkSender struct {
	phoneNumber string
}

// NewDeepLinkSender creates a sender targeting the given phone number
// in international format without the plus sign, e.g. "5548992082828".
func NewDeepLinkSender(phoneNumber string) *DeepLinkSender {
	return &DeepLinkSender{phoneNumber: phoneNumber}
}

// Send builds the deep link. It never fails.
func (s *DeepLinkSender) Send(_ context.Context, order Order) (*Result, error) {
	// QueryEscape encodes spaces as "+"; wa.me expects percent encoding.
	text := strings.ReplaceAll(url.QueryEscape(order.Message), "+", "%20")
	return &Result{
		DeepLink: "https://wa.me/" + s.phoneNumber + "?text=" + text,
	}, nil
}
