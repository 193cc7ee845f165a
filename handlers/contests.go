// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/nft-contest/middleware"
	"github.com/danielhkuo/nft-contest/models"
	"github.com/danielhkuo/nft-contest/program"
)

type ContestHandler struct {
	prog *program.Program
}

func NewContestHandler(prog *program.Program) *ContestHandler {
	return &ContestHandler{prog: prog}
}

// Initialize handles POST /initialize
func (h *ContestHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	signer, ok := requireSigner(w, r)
	if !ok {
		return
	}

	counter, err := h.prog.Initialize(r.Context(), signer)
	if err != nil {
		writeProgramError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, counter)
}

// Launch handles POST /contests
func (h *ContestHandler) Launch(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireSigner(w, r)
	if !ok {
		return
	}

	var req models.LaunchRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp, err := h.prog.Launch(r.Context(), owner, req)
	if err != nil {
		writeProgramError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// GetCounter handles GET /counter
func (h *ContestHandler) GetCounter(w http.ResponseWriter, r *http.Request) {
	counter, err := h.prog.GetCounter(r.Context())
	if err != nil {
		writeProgramError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, counter)
}

// GetContest handles GET /contests/{contest}
func (h *ContestHandler) GetContest(w http.ResponseWriter, r *http.Request) {
	contestAddr, ok := pathKey(w, r, "contest")
	if !ok {
		return
	}

	contest, err := h.prog.GetContest(r.Context(), contestAddr)
	if err != nil {
		writeProgramError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ContestResponse{
		Contest: contest,
		Title:   string(contest.TitleOfContest),
		Link:    string(contest.LinkToProject),
	})
}

// GetWinner handles GET /contests/{contest}/winner
func (h *ContestHandler) GetWinner(w http.ResponseWriter, r *http.Request) {
	contestAddr, ok := pathKey(w, r, "contest")
	if !ok {
		return
	}

	winner, err := h.prog.GetWinner(r.Context(), contestAddr)
	if err != nil {
		writeProgramError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, winner)
}
