package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/imroc/req/v3"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddr = "https://payments.loc"

func newMockedClient() *Client {
	r := req.C().SetBaseURL(testAddr)
	httpmock.ActivateNonDefault(r.GetClient())
	return &Client{req: r}
}

func TestClient_CreatePaymentIntent(t *testing.T) {
	ctx := context.Background()
	client := newMockedClient()
	defer httpmock.DeactivateAndReset()

	var captured paymentIntentRequest
	httpmock.RegisterResponder(http.MethodPost, testAddr+"/v1/payment_intents",
		func(request *http.Request) (*http.Response, error) {
			if err := json.NewDecoder(request.Body).Decode(&captured); err != nil {
				return nil, err
			}
			return httpmock.NewJsonResponse(http.StatusCreated, map[string]string{"id": "pi_123"})
		})

	reference, err := client.CreatePaymentIntent(ctx, kernel.Money(10000), "USD")
	require.NoError(t, err)
	assert.Equal(t, "pi_123", reference)
	assert.Equal(t, int64(10000), captured.AmountCents)
	assert.Equal(t, "USD", captured.Currency)
}

func TestClient_CreatePaymentIntent_ServerError(t *testing.T) {
	ctx := context.Background()
	client := newMockedClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, testAddr+"/v1/payment_intents",
		httpmock.NewStringResponder(http.StatusBadGateway, ""))

	_, err := client.CreatePaymentIntent(ctx, kernel.Money(10000), "USD")
	require.ErrorIs(t, err, errs.ErrPaymentFailed)
}

func TestClient_CreatePaymentIntent_RejectsBadInput(t *testing.T) {
	ctx := context.Background()
	client := newMockedClient()
	defer httpmock.DeactivateAndReset()

	_, err := client.CreatePaymentIntent(ctx, kernel.Money(0), "USD")
	require.Error(t, err)

	_, err = client.CreatePaymentIntent(ctx, kernel.Money(100), "")
	require.Error(t, err)

	assert.Zero(t, httpmock.GetTotalCallCount(), "invalid input never reaches the gateway")
}

func TestClient_Refund_Full(t *testing.T) {
	ctx := context.Background()
	client := newMockedClient()
	defer httpmock.DeactivateAndReset()

	var captured refundRequest
	httpmock.RegisterResponder(http.MethodPost, testAddr+"/v1/refunds",
		func(request *http.Request) (*http.Response, error) {
			if err := json.NewDecoder(request.Body).Decode(&captured); err != nil {
				return nil, err
			}
			return httpmock.NewStringResponse(http.StatusOK, `{}`), nil
		})

	require.NoError(t, client.Refund(ctx, "pi_123", nil))
	assert.Equal(t, "pi_123", captured.PaymentReference)
	assert.Nil(t, captured.AmountCents, "nil amount asks for a full refund")
}

func TestClient_Refund_Partial(t *testing.T) {
	ctx := context.Background()
	client := newMockedClient()
	defer httpmock.DeactivateAndReset()

	var captured refundRequest
	httpmock.RegisterResponder(http.MethodPost, testAddr+"/v1/refunds",
		func(request *http.Request) (*http.Response, error) {
			if err := json.NewDecoder(request.Body).Decode(&captured); err != nil {
				return nil, err
			}
			return httpmock.NewStringResponse(http.StatusOK, `{}`), nil
		})

	amount := kernel.Money(1500)
	require.NoError(t, client.Refund(ctx, "pi_123", &amount))
	require.NotNil(t, captured.AmountCents)
	assert.Equal(t, int64(1500), *captured.AmountCents)
}

func TestClient_Refund_ServerError(t *testing.T) {
	ctx := context.Background()
	client := newMockedClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, testAddr+"/v1/refunds",
		httpmock.NewStringResponder(http.StatusInternalServerError, ""))

	err := client.Refund(ctx, "pi_123", nil)
	require.ErrorIs(t, err, errs.ErrPaymentFailed)
}
