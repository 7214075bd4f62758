// Copyright (c) 2026 CampusFM. All rights reserved.
// Author: platform@campusfm.dev

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusfm/facility/internal/platform/apperr"
	requestutil "github.com/campusfm/facility/internal/platform/request"
	"github.com/campusfm/facility/internal/platform/respond"
	"github.com/campusfm/facility/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the authentication HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
// The server mounts it under /api/v1/auth.
//
// # Endpoints
//   - POST /register : Creates a new account.
//   - POST /login    : Issues an access/refresh pair.
//   - POST /refresh  : Mints a new access token.
//   - POST /logout   : Revokes the bearer refresh token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)

	return router
}

// # Request Payloads

type registerRequest struct {
	Role     string `json:"role"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

type loginRequest struct {
	Role     string `json:"role"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

/*
Register creates a new account.

POST /api/v1/auth/register

Response:
  - 201: PublicUser
  - 400: Invalid body or missing role/password
  - 409: Role, email or username already taken
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldRole, input.Role).
		MaxLen(FieldRole, input.Role, 100).
		Required(FieldPassword, input.Password).
		OptionalEmail(FieldEmail, input.Email).
		MaxLen(FieldName, input.Name, 100).
		MaxLen(FieldUsername, input.Username, 100)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Role:     input.Role,
		Password: input.Password,
		Email:    input.Email,
		Name:     input.Name,
		Username: input.Username,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Login authenticates by role and password.

POST /api/v1/auth/login

Response:
  - 200: LoginResult
  - 400: Invalid body
  - 401: role or password incorrect
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldRole, input.Role)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Role:     input.Role,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
Refresh issues a new access token for a live refresh token.

POST /api/v1/auth/refresh

Response:
  - 200: {accessToken}
  - 400: Missing or too short refreshToken
  - 401: Invalid refresh token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	var input refreshRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldRefreshToken, input.RefreshToken).
		MinLen(FieldRefreshToken, input.RefreshToken, MinRefreshTokenLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Refresh(request.Context(), input.RefreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
Logout revokes the refresh token sent as the bearer credential.

POST /api/v1/auth/logout

Response:
  - 200: {message: "Logged out"}
  - 401: Missing refresh token
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	token, ok := requestutil.BearerToken(request)
	if !ok {
		respond.Error(writer, request, apperr.Unauthorized(MsgMissingRefreshToken))
		return
	}

	if err := handler.authService.Logout(request.Context(), token); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, MsgLoggedOut)
}
