// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/nft-contest/middleware"
	"github.com/danielhkuo/nft-contest/models"
	"github.com/danielhkuo/nft-contest/program"
)

type VotingHandler struct {
	prog *program.Program
}

func NewVotingHandler(prog *program.Program) *VotingHandler {
	return &VotingHandler{prog: prog}
}

// Vote handles POST /contests/{contest}/votes
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	voter, ok := requireSigner(w, r)
	if !ok {
		return
	}
	contestAddr, ok := pathKey(w, r, "contest")
	if !ok {
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	vote, err := h.prog.Vote(r.Context(), voter, contestAddr, req)
	if err != nil {
		writeProgramError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, vote)
}

// GetVote handles GET /contests/{contest}/votes/{voter}
func (h *VotingHandler) GetVote(w http.ResponseWriter, r *http.Request) {
	contestAddr, ok := pathKey(w, r, "contest")
	if !ok {
		return
	}
	voter, ok := pathKey(w, r, "voter")
	if !ok {
		return
	}

	vote, err := h.prog.GetVoteData(r.Context(), contestAddr, voter)
	if err != nil {
		writeProgramError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, vote)
}
