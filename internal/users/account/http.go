// Copyright (c) 2026 CampusFM. All rights reserved.
// Author: platform@campusfm.dev

/*
Package account provides the protected profile endpoints.

# Security

Every route is mounted behind [middleware.RequireAccess]. /me admits any
authenticated caller; /users/{id} requires the Facility management policy.
*/
package account

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusfm/facility/internal/platform/middleware"
	requestutil "github.com/campusfm/facility/internal/platform/request"
	"github.com/campusfm/facility/internal/platform/respond"
	"github.com/campusfm/facility/internal/platform/sec"
	"github.com/campusfm/facility/internal/users/auth"
)

// ProfileReader loads public profiles. Implemented by [auth.Service].
type ProfileReader interface {
	Profile(ctx context.Context, id int64) (*auth.PublicUser, error)
}

// Handler implements the account HTTP endpoints.
type Handler struct {
	profiles ProfileReader
	verifier middleware.TokenVerifier
	loader   middleware.PrincipalLoader
}

// NewHandler constructs an account [Handler] with the guard's collaborators.
func NewHandler(profiles ProfileReader, verifier middleware.TokenVerifier, loader middleware.PrincipalLoader) *Handler {
	return &Handler{profiles: profiles, verifier: verifier, loader: loader}
}

// Routes returns a [chi.Router] with guarded account routes.
//
// # Endpoints
//   - GET /me         : Caller's own profile (any authenticated user).
//   - GET /users/{id} : Any profile (Facility management only).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAccess(handler.verifier, handler.loader, sec.Policy{}))
		r.Get("/me", handler.getMe)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAccess(handler.verifier, handler.loader, sec.FacilityManagementPolicy))
		r.Get("/users/{id}", handler.getUser)
	})

	return router
}

/*
GET /api/v1/account/me.

Response:
  - 200: PublicUser
  - 401: Missing, invalid or expired access token
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.profiles.Profile(request.Context(), principal.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
GET /api/v1/account/users/{id}.

Response:
  - 200: PublicUser
  - 400: id is not a positive integer
  - 403: Caller is not Facility management
  - 404: No such account
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.profiles.Profile(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}
