// Copyright (c) 2026 Shelfmark. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shelfmark/shelfmark/internal/platform/ctxutil"
	"github.com/shelfmark/shelfmark/internal/platform/sec"
	"github.com/shelfmark/shelfmark/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Identity resolves the acting identity from the request context.

Returns:
  - sec.Identity: The authenticated identity, or sec.Anonymous for anonymous
    requests. Handlers pass this explicitly into the service layer, where the
    authorization gate enforces access.
*/
func Identity(request *http.Request) sec.Identity {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return sec.Anonymous
	}
	return claims.Identity()
}

/*
QueryInt parses an integer query parameter with a fallback default.

Returns:
  - int: The parsed value, or defaultVal when the parameter is absent
  - error: A field-level validation error when the value is not an integer
*/
func QueryInt(request *http.Request, name string, defaultVal int) (int, error) {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return defaultVal, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validate.RequiredError(name, "Must be an integer")
	}

	return value, nil
}
