// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"

	"github.com/gagliardetto/solana-go"

	"github.com/danielhkuo/nft-contest/middleware"
	"github.com/danielhkuo/nft-contest/models"
	"github.com/danielhkuo/nft-contest/program"
)

type ClaimHandler struct {
	prog *program.Program
}

func NewClaimHandler(prog *program.Program) *ClaimHandler {
	return &ClaimHandler{prog: prog}
}

type claimFunc func(ctx context.Context, claimant, contest solana.PublicKey, req models.ClaimRequest) (models.ClaimResponse, error)

// ClaimByArtist handles POST /contests/{contest}/claims/artist
func (h *ClaimHandler) ClaimByArtist(w http.ResponseWriter, r *http.Request) {
	h.claim(w, r, h.prog.ClaimByArtist)
}

// ClaimByVoter handles POST /contests/{contest}/claims/voter
func (h *ClaimHandler) ClaimByVoter(w http.ResponseWriter, r *http.Request) {
	h.claim(w, r, h.prog.ClaimByVoter)
}

// ClaimByContestOwner handles POST /contests/{contest}/claims/owner
func (h *ClaimHandler) ClaimByContestOwner(w http.ResponseWriter, r *http.Request) {
	h.claim(w, r, h.prog.ClaimByContestOwner)
}

func (h *ClaimHandler) claim(w http.ResponseWriter, r *http.Request, fn claimFunc) {
	claimant, ok := requireSigner(w, r)
	if !ok {
		return
	}
	contestAddr, ok := pathKey(w, r, "contest")
	if !ok {
		return
	}

	var req models.ClaimRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp, err := fn(r.Context(), claimant, contestAddr, req)
	if err != nil {
		writeProgramError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
