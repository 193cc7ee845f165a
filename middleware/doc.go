// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging and Metrics

	mux.HandleFunc(pattern, middleware.WithMetrics(pattern, middleware.WithLogging(handler)))

WithLogging logs completion with status and duration_ms. WithMetrics counts
requests by method, route pattern and status.

# Signed Requests

RequireSigner verifies X-Signer and X-Signature (see package auth) and
rejects the request with 401 when they do not match. The verified signer is
available to the handler:

	signer, _ := middleware.SignerFromContext(r.Context())

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows GET, POST and OPTIONS with the Content-Type and signature headers.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponseWithCode(w, http.StatusConflict, "DuplicateVote", msg)

ParseJSONBody accepts an empty body so instructions without arguments can
be sent bare.
*/
package middleware
