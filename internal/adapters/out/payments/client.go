// Package payments implements the PaymentGateway port against the payment
// collaborator's HTTP API.
package payments

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/imroc/req/v3"
)

// Client talks to the payment collaborator.
type Client struct {
	req *req.Client
}

// NewClient creates a payment client for the given API address and key.
func NewClient(addr, apiKey string) *Client {
	return &Client{
		req: req.C().
			SetBaseURL(addr).
			SetCommonBearerAuthToken(apiKey).
			SetTimeout(10 * time.Second),
	}
}

type paymentIntentRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

type paymentIntentResponse struct {
	ID string `json:"id"`
}

// CreatePaymentIntent registers a charge and returns the gateway's payment
// reference.
func (c *Client) CreatePaymentIntent(ctx context.Context, amount kernel.Money, currency string) (string, error) {
	if amount <= 0 {
		return "", errs.NewValueIsInvalidError("amount")
	}
	if currency == "" {
		return "", errs.NewValueIsRequiredError("currency")
	}

	var respBody paymentIntentResponse
	resp, err := c.req.R().
		SetContext(ctx).
		SetBody(&paymentIntentRequest{
			AmountCents: amount.Cents(),
			Currency:    currency,
		}).
		SetSuccessResult(&respBody).
		Post("/v1/payment_intents")
	if err != nil {
		return "", errs.NewPaymentError("createPaymentIntent", err)
	}

	if resp.IsErrorState() {
		return "", errs.NewPaymentError("createPaymentIntent",
			fmt.Errorf("server responded with status code %d", resp.StatusCode))
	}

	if respBody.ID == "" {
		return "", errs.NewPaymentError("createPaymentIntent",
			fmt.Errorf("response carried no payment reference"))
	}

	return respBody.ID, nil
}

type refundRequest struct {
	PaymentReference string `json:"payment_reference"`

	// AmountCents absent means a full refund.
	AmountCents *int64 `json:"amount_cents,omitempty"`
}

// Refund returns money against a previous payment. A nil amount requests a
// full refund.
func (c *Client) Refund(ctx context.Context, paymentReference string, amount *kernel.Money) error {
	if paymentReference == "" {
		return errs.NewValueIsRequiredError("paymentReference")
	}

	body := refundRequest{PaymentReference: paymentReference}
	if amount != nil {
		cents := amount.Cents()
		body.AmountCents = &cents
	}

	resp, err := c.req.R().
		SetContext(ctx).
		SetBody(&body).
		Post("/v1/refunds")
	if err != nil {
		return errs.NewPaymentError("refund", err)
	}

	if resp.IsErrorState() {
		return errs.NewPaymentError("refund",
			fmt.Errorf("server responded with status code %d", resp.StatusCode))
	}

	return nil
}
