package handoff

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	apperrors "github.com/MobissOficial/mobiss-catalog/pkg/errors"
	"github.com/MobissOficial/mobiss-catalog/pkg/httpclient"
)

// CloudAPIConfig holds WhatsApp Cloud API settings.
type CloudAPIConfig struct {
	// BaseURL of the Graph API, overridable in tests.
	BaseURL string

	// PhoneNumberID is the sending business number's Cloud API id.
	PhoneNumberID string

	// Recipient is the number that receives order messages.
	Recipient string

	// AccessToken authenticates against the Cloud API.
	AccessToken string
}

// CloudAPISender posts the order message to the WhatsApp Cloud API
// through the retrying, breaker-protected HTTP client.
type CloudAPISender struct {
	client *httpclient.CircuitBreakerClient
	cfg    CloudAPIConfig
}

// NewCloudAPISender creates a Cloud API sender.
func NewCloudAPISender(client *httpclient.CircuitBreakerClient, cfg CloudAPIConfig) *CloudAPISender {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://graph.facebook.com/v18.0"
	}
	return &CloudAPISender{client: client, cfg: cfg}
}

type cloudAPIText struct {
	Body string `json:"body"`
}

type cloudAPIMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             cloudAPIText `json:"text"`
}

// Send delivers the order message. The breaker shields the checkout
// path from a degraded API.
func (s *CloudAPISender) Send(ctx context.Context, order Order) (*Result, error) {
	payload, err := json.Marshal(cloudAPIMessage{
		MessagingProduct: "whatsapp",
		To:               s.cfg.Recipient,
		Type:             "text",
		Text:             cloudAPIText{Body: order.Message},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal cloud api message: %w", err)
	}

	url := s.cfg.BaseURL + "/" + s.cfg.PhoneNumberID + "/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create cloud api request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.AccessToken)

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return nil, apperrors.Unavailable("whatsapp cloud api", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, apperrors.Unavailable("whatsapp cloud api",
			fmt.Errorf("cloud api responded %d", resp.StatusCode))
	}

	return &Result{}, nil
}
