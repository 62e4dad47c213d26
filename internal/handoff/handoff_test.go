package handoff

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/MobissOficial/mobiss-catalog/pkg/errors"
	"github.com/MobissOficial/mobiss-catalog/pkg/httpclient"
)

func TestDeepLinkSender_Send(t *testing.T) {
	sender := NewDeepLinkSender("5548992082828")

	res, err := sender.Send(context.Background(), Order{
		Message: "Oi! Quero fazer um pedido:\n\n1x Capinha - R$ 50,00\n\n*Total: R$ 50,00*",
	})

	require.NoError(t, err)
	assert.Contains(t, res.DeepLink, "https://wa.me/5548992082828?text=")
	// Spaces must be percent encoded, not "+".
	assert.NotContains(t, res.DeepLink, "+")
	assert.Contains(t, res.DeepLink, "Oi!%20Quero%20fazer%20um%20pedido")
}

func newBreakerClient(t *testing.T) *httpclient.CircuitBreakerClient {
	t.Helper()
	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	cfg.Timeout = 2 * time.Second
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return httpclient.NewCircuitBreakerClient(httpclient.New(cfg),
		httpclient.DefaultCircuitBreakerConfig("whatsapp-test-"+t.Name()), logger)
}

func TestCloudAPISender_Send(t *testing.T) {
	var gotAuth string
	var gotBody cloudAPIMessage

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := NewCloudAPISender(newBreakerClient(t), CloudAPIConfig{
		BaseURL:       srv.URL,
		PhoneNumberID: "12345",
		Recipient:     "5548992082828",
		AccessToken:   "token-abc",
	})

	res, err := sender.Send(context.Background(), Order{Message: "pedido"})
	require.NoError(t, err)
	assert.Empty(t, res.DeepLink)

	assert.Equal(t, "Bearer token-abc", gotAuth)
	assert.Equal(t, "whatsapp", gotBody.MessagingProduct)
	assert.Equal(t, "5548992082828", gotBody.To)
	assert.Equal(t, "pedido", gotBody.Text.Body)
}

func TestCloudAPISender_Send_ErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sender := NewCloudAPISender(newBreakerClient(t), CloudAPIConfig{
		BaseURL:       srv.URL,
		PhoneNumberID: "12345",
	})

	_, err := sender.Send(context.Background(), Order{Message: "pedido"})
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}
