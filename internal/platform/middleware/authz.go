// Copyright (c) 2026 CampusFM. All rights reserved.
// Author: platform@campusfm.dev

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/campusfm/facility/internal/platform/apperr"
	"github.com/campusfm/facility/internal/platform/ctxutil"
	requestutil "github.com/campusfm/facility/internal/platform/request"
	"github.com/campusfm/facility/internal/platform/respond"
	"github.com/campusfm/facility/internal/platform/sec"
	"github.com/campusfm/facility/pkg/pointer"
)

// Guard failures carry fixed messages so callers learn nothing about which check failed.
const (
	msgUnauthorized = "Unauthorized"
	msgForbidden    = "Forbidden"
)

// TokenVerifier checks a bearer token. Implemented by [sec.TokenService].
type TokenVerifier interface {
	Verify(token string) (*sec.Claims, error)
}

// PrincipalLoader resolves the caller's current role from the User Directory.
// It returns (nil, nil) when the account no longer exists.
type PrincipalLoader interface {
	FindPrincipal(ctx context.Context, id int64) (*sec.Principal, error)
}

/*
RequireAccess guards a route with policy.

Every request is checked against persisted state, so a role change applies to
the next request without reissuing tokens.

# Flow
 1. Read "Authorization: Bearer <token>"; 401 when absent or malformed.
 2. Verify the token; 401 when invalid or expired.
 3. Load the account by the token's userId; 401 when it no longer exists.
 4. Match the stored role against policy; 403 when it does not pass.
 5. Store the [sec.Principal] in the request context.

A storage failure while loading the account is reported as a 500.
*/
func RequireAccess(verifier TokenVerifier, loader PrincipalLoader, policy sec.Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			token, ok := requestutil.BearerToken(request)
			if !ok {
				respond.Error(writer, request, apperr.Unauthorized(msgUnauthorized))
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				ctxutil.GetLogger(ctx).DebugContext(ctx, "guard_token_rejected", slog.Any("error", err))
				respond.Error(writer, request, apperr.Unauthorized(msgUnauthorized))
				return
			}

			principal, err := loader.FindPrincipal(ctx, claims.UserID)
			if err != nil {
				respond.Error(writer, request, apperr.Internal(err))
				return
			}
			if principal == nil {
				respond.Error(writer, request, apperr.Unauthorized(msgUnauthorized))
				return
			}

			if !policy.Allows(principal.Role) {
				ctxutil.GetLogger(ctx).InfoContext(ctx, "guard_access_denied",
					slog.Int64("user_id", principal.ID),
					slog.String("role", principal.Role),
					slog.String("username", pointer.Val(principal.Username)),
				)
				respond.Error(writer, request, apperr.Forbidden(msgForbidden))
				return
			}

			recordPrincipal(ctx, principal.ID)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithPrincipal(ctx, principal)))
		})
	}
}
