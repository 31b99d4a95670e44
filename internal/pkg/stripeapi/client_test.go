package stripeapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewClient(Config{
		APIKey:  "sk_test_key",
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	}, log)
}

func TestCreateIntent(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "30000", r.PostForm.Get("amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, "42", r.PostForm.Get("metadata[booking_id]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "pi_1",
			"client_secret": "cs_1",
			"amount": 30000,
			"currency": "usd",
			"status": "requires_payment_method",
			"metadata": {"booking_id": "42"}
		}`))
	})

	intent, err := client.CreateIntent(context.Background(), CreateIntentRequest{
		Amount:   30000,
		Currency: "usd",
		Metadata: map[string]string{"booking_id": "42"},
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_1", intent.ID)
	assert.Equal(t, int64(30000), intent.Amount)
	assert.Equal(t, StatusRequiresPaymentMethod, intent.Status)
	assert.Equal(t, "42", intent.Metadata["booking_id"])
}

func TestRetrieveIntent(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/payment_intents/pi_1", r.URL.Path)
		assert.Empty(t, r.Header.Get("Idempotency-Key"))

		_, _ = w.Write([]byte(`{"id": "pi_1", "amount": 30000, "currency": "usd", "status": "succeeded"}`))
	})

	intent, err := client.RetrieveIntent(context.Background(), "pi_1")
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, intent.Status)
}

func TestConfirmIntent(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents/pi_1/confirm", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "pm_card_visa", r.PostForm.Get("payment_method"))

		_, _ = w.Write([]byte(`{"id": "pi_1", "amount": 30000, "currency": "usd", "status": "succeeded"}`))
	})

	intent, err := client.ConfirmIntent(context.Background(), "pi_1", "pm_card_visa")
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, intent.Status)
}

func TestCancelIntent(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_intents/pi_1/cancel", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))

		_, _ = w.Write([]byte(`{"id": "pi_1", "amount": 30000, "currency": "usd", "status": "canceled"}`))
	})

	intent, err := client.CancelIntent(context.Background(), "pi_1")
	require.NoError(t, err)
	assert.Equal(t, StatusCanceled, intent.Status)
}

func TestCreateRefund(t *testing.T) {
	t.Run("partial amount", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/refunds", r.URL.Path)
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "pi_1", r.PostForm.Get("payment_intent"))
			assert.Equal(t, "5000", r.PostForm.Get("amount"))

			_, _ = w.Write([]byte(`{"id": "re_1", "amount": 5000, "status": "succeeded", "payment_intent": "pi_1"}`))
		})

		amount := int64(5000)
		refund, err := client.CreateRefund(context.Background(), "pi_1", &amount)
		require.NoError(t, err)
		assert.Equal(t, "re_1", refund.ID)
		assert.Equal(t, int64(5000), refund.Amount)
	})

	t.Run("full refund omits amount", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Empty(t, r.PostForm.Get("amount"))

			_, _ = w.Write([]byte(`{"id": "re_2", "amount": 30000, "status": "succeeded", "payment_intent": "pi_1"}`))
		})

		refund, err := client.CreateRefund(context.Background(), "pi_1", nil)
		require.NoError(t, err)
		assert.Equal(t, int64(30000), refund.Amount)
	})
}

func TestAPIErrorMapping(t *testing.T) {
	t.Run("structured provider error", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
			_, _ = w.Write([]byte(`{"error": {"type": "card_error", "code": "card_declined", "message": "Your card was declined."}}`))
		})

		_, err := client.ConfirmIntent(context.Background(), "pi_1", "pm_card")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusPaymentRequired, apiErr.HTTPStatus)
		assert.Equal(t, "card_declined", apiErr.Code)
		assert.Equal(t, "Your card was declined.", apiErr.Message)
	})

	t.Run("unparseable error body falls back to status text", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`upstream exploded`))
		})

		_, err := client.RetrieveIntent(context.Background(), "pi_1")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.HTTPStatus)
		assert.Equal(t, http.StatusText(http.StatusInternalServerError), apiErr.Message)
	})
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusSucceeded))
	assert.True(t, IsTerminal(StatusCanceled))
	assert.False(t, IsTerminal(StatusProcessing))
	assert.False(t, IsTerminal(StatusRequiresAction))
}
