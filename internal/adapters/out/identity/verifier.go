// Package identity implements the CredentialVerifier port against the
// user-management collaborator's HTTP API.
package identity

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/imroc/req/v3"
)

// Verifier resolves opaque bearer tokens to caller identities.
type Verifier struct {
	req *req.Client
}

// NewVerifier creates a verifier for the given identity API address.
func NewVerifier(addr string) *Verifier {
	return &Verifier{
		req: req.C().
			SetBaseURL(addr).
			SetTimeout(5 * time.Second),
	}
}

type identityResponse struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// Verify asks the identity collaborator who the token belongs to. An
// unknown or expired token is an Unauthorized error, not a transport
// failure.
func (v *Verifier) Verify(ctx context.Context, token string) (ports.Identity, error) {
	if token == "" {
		return ports.Identity{}, errs.NewUnauthorizedError("anonymous", "authenticate")
	}

	var respBody identityResponse
	resp, err := v.req.R().
		SetContext(ctx).
		SetBearerAuthToken(token).
		SetSuccessResult(&respBody).
		Get("/v1/me")
	if err != nil {
		return ports.Identity{}, err
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ports.Identity{}, errs.NewUnauthorizedError("anonymous", "authenticate")
	}

	if resp.IsErrorState() {
		return ports.Identity{}, fmt.Errorf("identity service responded with status code %d", resp.StatusCode)
	}

	id, err := kernel.UUIDFromString(respBody.ID)
	if err != nil {
		return ports.Identity{}, err
	}

	role := ports.Role(respBody.Role)
	if role != ports.RoleStudent && role != ports.RoleMover {
		return ports.Identity{}, errs.NewValueIsInvalidError("role")
	}

	return ports.Identity{ID: id, Role: role}, nil
}
