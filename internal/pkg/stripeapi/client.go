// Package stripeapi is a minimal client for the Stripe payment-intents
// REST API. Amounts are integer minor-currency units throughout.
package stripeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	StatusRequiresPaymentMethod = "requires_payment_method"
	StatusRequiresConfirmation  = "requires_confirmation"
	StatusRequiresAction        = "requires_action"
	StatusProcessing            = "processing"
	StatusSucceeded             = "succeeded"
	StatusCanceled              = "canceled"
)

// IsTerminal reports whether the provider will never move the intent again.
func IsTerminal(status string) bool {
	return status == StatusSucceeded || status == StatusCanceled
}

type Intent struct {
	ID           string            `json:"id"`
	ClientSecret string            `json:"client_secret"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	Status       string            `json:"status"`
	Metadata     map[string]string `json:"metadata"`
}

type Refund struct {
	ID            string `json:"id"`
	Amount        int64  `json:"amount"`
	Status        string `json:"status"`
	PaymentIntent string `json:"payment_intent"`
}

type CreateIntentRequest struct {
	Amount      int64
	Currency    string
	Description string
	Metadata    map[string]string
}

// APIError is a rejection returned by the provider, as opposed to a
// transport failure. The diagnostic code stays internal to logs.
type APIError struct {
	HTTPStatus int
	Type       string `json:"type"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("stripe: %s (%s, http %d)", e.Message, e.Code, e.HTTPStatus)
}

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	log     logrus.FieldLogger
}

func NewClient(cfg Config, log logrus.FieldLogger) *Client {
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	if base == "" {
		base = "https://api.stripe.com"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *Client) CreateIntent(ctx context.Context, req CreateIntentRequest) (*Intent, error) {
	form := url.Values{}
	form.Set("amount", fmt.Sprintf("%d", req.Amount))
	form.Set("currency", req.Currency)
	form.Set("capture_method", "automatic")
	form.Set("payment_method_types[]", "card")
	if req.Description != "" {
		form.Set("description", req.Description)
	}
	for k, v := range req.Metadata {
		form.Set("metadata["+k+"]", v)
	}

	var intent Intent
	if err := c.do(ctx, http.MethodPost, "/v1/payment_intents", form, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func (c *Client) RetrieveIntent(ctx context.Context, ref string) (*Intent, error) {
	var intent Intent
	if err := c.do(ctx, http.MethodGet, "/v1/payment_intents/"+url.PathEscape(ref), nil, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func (c *Client) ConfirmIntent(ctx context.Context, ref, paymentMethod string) (*Intent, error) {
	form := url.Values{}
	if paymentMethod != "" {
		form.Set("payment_method", paymentMethod)
	}

	var intent Intent
	if err := c.do(ctx, http.MethodPost, "/v1/payment_intents/"+url.PathEscape(ref)+"/confirm", form, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// CancelIntent voids an intent that has not yet captured. A succeeded
// intent cannot be cancelled; the provider rejects it with an APIError.
func (c *Client) CancelIntent(ctx context.Context, ref string) (*Intent, error) {
	var intent Intent
	if err := c.do(ctx, http.MethodPost, "/v1/payment_intents/"+url.PathEscape(ref)+"/cancel", url.Values{}, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// CreateRefund refunds the intent; amount == nil refunds the full
// remaining captured amount.
func (c *Client) CreateRefund(ctx context.Context, ref string, amount *int64) (*Refund, error) {
	form := url.Values{}
	form.Set("payment_intent", ref)
	if amount != nil {
		form.Set("amount", fmt.Sprintf("%d", *amount))
	}

	var refund Refund
	if err := c.do(ctx, http.MethodPost, "/v1/refunds", form, &refund); err != nil {
		return nil, err
	}
	return &refund, nil
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values, out interface{}) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if method == http.MethodPost {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("stripe response read failed: %w", err)
	}

	if resp.StatusCode >= 400 {
		var wrapper struct {
			Error APIError `json:"error"`
		}
		if err := json.Unmarshal(raw, &wrapper); err != nil || wrapper.Error.Message == "" {
			wrapper.Error.Message = http.StatusText(resp.StatusCode)
		}
		wrapper.Error.HTTPStatus = resp.StatusCode
		c.log.WithFields(logrus.Fields{
			"path":   path,
			"status": resp.StatusCode,
			"code":   wrapper.Error.Code,
		}).Warn("stripe API rejected request")
		return &wrapper.Error
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("stripe response decode failed: %w", err)
		}
	}
	return nil
}
