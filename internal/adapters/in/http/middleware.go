package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"dispatch/internal/core/ports"
)

// identityKey is where the auth middleware stores the resolved caller.
const identityKey = "identity"

// BearerAuth resolves the Authorization header to a caller identity and
// stores it on the request context. Requests without a resolvable identity
// are rejected before reaching a handler.
func BearerAuth(verifier ports.CredentialVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token := bearerToken(ctx.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "missing bearer credential",
				})
			}

			identity, err := verifier.Verify(ctx.Request().Context(), token)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "credential rejected",
				})
			}

			ctx.Set(identityKey, identity)
			return next(ctx)
		}
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

// callerIdentity returns the identity placed by BearerAuth.
func callerIdentity(ctx echo.Context) (ports.Identity, bool) {
	identity, ok := ctx.Get(identityKey).(ports.Identity)
	return identity, ok
}

// requireRole returns the caller identity if it carries the wanted role,
// or writes a 403 response and reports false.
func requireRole(ctx echo.Context, role ports.Role) (ports.Identity, bool) {
	identity, ok := callerIdentity(ctx)
	if !ok {
		_ = ctx.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    http.StatusUnauthorized,
			Message: "missing identity",
		})
		return ports.Identity{}, false
	}
	if identity.Role != role {
		_ = ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "caller role may not perform this action",
		})
		return ports.Identity{}, false
	}
	return identity, true
}
