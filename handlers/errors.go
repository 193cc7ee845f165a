// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gagliardetto/solana-go"

	"github.com/danielhkuo/nft-contest/middleware"
	"github.com/danielhkuo/nft-contest/program"
)

var kindStatus = map[program.Kind]int{
	program.KindValidation: http.StatusBadRequest,
	program.KindNotFound:   http.StatusNotFound,
	program.KindDuplicate:  http.StatusConflict,
	program.KindAuthority:  http.StatusForbidden,
	program.KindFunds:      http.StatusUnprocessableEntity,
	program.KindInternal:   http.StatusInternalServerError,
}

// writeProgramError maps a program or token error onto an HTTP status.
func writeProgramError(w http.ResponseWriter, r *http.Request, err error) {
	kind := program.KindOf(err)
	status := kindStatus[kind]

	if kind == program.KindInternal {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		middleware.ErrorResponseWithCode(w, status, program.Code(err), "Internal error")
		return
	}
	middleware.ErrorResponseWithCode(w, status, program.Code(err), err.Error())
}

// pathKey parses a base58 path segment.
func pathKey(w http.ResponseWriter, r *http.Request, name string) (solana.PublicKey, bool) {
	key, err := solana.PublicKeyFromBase58(r.PathValue(name))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, name+" must be a base58 address")
		return solana.PublicKey{}, false
	}
	return key, true
}

// requireSigner returns the verified signer placed in the context by
// middleware.RequireSigner.
func requireSigner(w http.ResponseWriter, r *http.Request) (solana.PublicKey, bool) {
	key, ok := middleware.SignerFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "signed request required")
		return solana.PublicKey{}, false
	}
	return key, true
}
