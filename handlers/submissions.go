// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/nft-contest/middleware"
	"github.com/danielhkuo/nft-contest/models"
	"github.com/danielhkuo/nft-contest/program"
)

type SubmissionHandler struct {
	prog *program.Program
}

func NewSubmissionHandler(prog *program.Program) *SubmissionHandler {
	return &SubmissionHandler{prog: prog}
}

// Submit handles POST /contests/{contest}/artworks
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	artist, ok := requireSigner(w, r)
	if !ok {
		return
	}
	contestAddr, ok := pathKey(w, r, "contest")
	if !ok {
		return
	}

	var req models.SubmitRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	artwork, err := h.prog.Submit(r.Context(), artist, contestAddr, req)
	if err != nil {
		writeProgramError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, artwork)
}

// GetArtwork handles GET /contests/{contest}/artworks/{artist}
func (h *SubmissionHandler) GetArtwork(w http.ResponseWriter, r *http.Request) {
	contestAddr, ok := pathKey(w, r, "contest")
	if !ok {
		return
	}
	artist, ok := pathKey(w, r, "artist")
	if !ok {
		return
	}

	artwork, err := h.prog.GetArtwork(r.Context(), contestAddr, artist)
	if err != nil {
		writeProgramError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, artwork)
}
