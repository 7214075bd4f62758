// Copyright (c) 2026 CampusFM. All rights reserved.
// Author: platform@campusfm.dev

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the router's parameter extraction, body decoding and
bearer-token parsing so handlers share one set of error semantics.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/campusfm/facility/internal/platform/apperr"
	"github.com/campusfm/facility/internal/platform/constants"
	"github.com/campusfm/facility/internal/platform/ctxutil"
	"github.com/campusfm/facility/internal/platform/sec"
	"github.com/campusfm/facility/internal/platform/validate"
)

// maxBodyBytes caps JSON bodies; auth payloads are tiny.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if request.Body == nil {
		return validate.ErrInvalidJSON
	}
	decoder := json.NewDecoder(http.MaxBytesReader(nil, request.Body, maxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
BearerToken extracts the token from an "Authorization: Bearer <token>" header.

The scheme is matched case-insensitively. It returns false when the header is
absent, uses another scheme, or carries an empty token.
*/
func BearerToken(request *http.Request) (string, bool) {
	header := strings.TrimSpace(request.Header.Get(constants.HeaderAuthorization))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, constants.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

/*
Int64Param parses a named URL parameter as a positive integer id.

Returns:
  - error: apperr.ValidationError if the parameter is not a positive integer
*/
func Int64Param(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   name,
			Message: "Must be a positive integer",
		})
	}
	return value, nil
}

/*
RequiredPrincipal returns the guard-verified caller.

Returns:
  - error: apperr.Unauthorized if the route was not guarded or the caller is anonymous
*/
func RequiredPrincipal(request *http.Request) (*sec.Principal, error) {
	principal := ctxutil.GetPrincipal(request.Context())
	if principal == nil {
		return nil, apperr.Unauthorized("Unauthorized")
	}
	return principal, nil
}
