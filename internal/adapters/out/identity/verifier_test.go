package identity

import (
	"context"
	"net/http"
	"testing"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/imroc/req/v3"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddr = "https://identity.loc"

func newMockedVerifier() *Verifier {
	r := req.C().SetBaseURL(testAddr)
	httpmock.ActivateNonDefault(r.GetClient())
	return &Verifier{req: r}
}

func TestVerifier_Verify(t *testing.T) {
	ctx := context.Background()
	verifier := newMockedVerifier()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet, testAddr+"/v1/me",
		func(request *http.Request) (*http.Response, error) {
			switch request.Header.Get("Authorization") {
			case "Bearer mover-token":
				return httpmock.NewJsonResponse(http.StatusOK, map[string]string{
					"id":   "123e4567-e89b-12d3-a456-426614174000",
					"role": "mover",
				})
			case "Bearer weird-token":
				return httpmock.NewJsonResponse(http.StatusOK, map[string]string{
					"id":   "123e4567-e89b-12d3-a456-426614174000",
					"role": "janitor",
				})
			default:
				return httpmock.NewStringResponse(http.StatusUnauthorized, ""), nil
			}
		})

	got, err := verifier.Verify(ctx, "mover-token")
	require.NoError(t, err)
	assert.Equal(t, ports.RoleMover, got.Role)
	assert.Equal(t, "123e4567-e89b-12d3-a456-426614174000", got.ID.String())

	_, err = verifier.Verify(ctx, "expired-token")
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	_, err = verifier.Verify(ctx, "weird-token")
	require.Error(t, err, "unknown roles never pass")

	_, err = verifier.Verify(ctx, "")
	require.ErrorIs(t, err, errs.ErrUnauthorized)
}
