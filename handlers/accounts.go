// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gagliardetto/solana-go"

	"github.com/danielhkuo/nft-contest/middleware"
	"github.com/danielhkuo/nft-contest/models"
	"github.com/danielhkuo/nft-contest/pda"
	"github.com/danielhkuo/nft-contest/program"
)

type AccountHandler struct {
	prog *program.Program
}

func NewAccountHandler(prog *program.Program) *AccountHandler {
	return &AccountHandler{prog: prog}
}

// GetTokenAccount handles GET /token-accounts/{address}
func (h *AccountHandler) GetTokenAccount(w http.ResponseWriter, r *http.Request) {
	addr, ok := pathKey(w, r, "address")
	if !ok {
		return
	}

	acc, err := h.prog.GetTokenAccount(r.Context(), addr)
	if err != nil {
		writeProgramError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, acc)
}

// DeriveAddress handles GET /pda/{kind}. Seeds are passed as query
// parameters named after the seed: owner, count, contest, artist, voter.
func (h *AccountHandler) DeriveAddress(w http.ResponseWriter, r *http.Request) {
	kind := r.PathValue("kind")

	addr, err := derive(h.prog.PDA(), kind, r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AddressResponse{Kind: kind, Address: addr})
}

func derive(d pda.Deriver, kind string, r *http.Request) (solana.PublicKey, error) {
	q := r.URL.Query()
	key := func(name string) (solana.PublicKey, error) {
		v := q.Get(name)
		if v == "" {
			return solana.PublicKey{}, fmt.Errorf("%s is required", name)
		}
		k, err := solana.PublicKeyFromBase58(v)
		if err != nil {
			return solana.PublicKey{}, fmt.Errorf("%s must be a base58 address", name)
		}
		return k, nil
	}
	count := func() (uint64, error) {
		n, err := strconv.ParseUint(q.Get("count"), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("count must be an unsigned integer")
		}
		return n, nil
	}

	switch kind {
	case "counter":
		return d.Counter()

	case "contest", "prize-vault":
		owner, err := key("owner")
		if err != nil {
			return solana.PublicKey{}, err
		}
		n, err := count()
		if err != nil {
			return solana.PublicKey{}, err
		}
		if kind == "contest" {
			return d.Contest(owner, n)
		}
		return d.PrizeVault(owner, n)

	case "prize-vault-authority":
		contest, err := key("contest")
		if err != nil {
			return solana.PublicKey{}, err
		}
		return d.PrizeVaultAuthority(contest)

	case "artwork", "nft-vault", "nft-vault-authority":
		contest, err := key("contest")
		if err != nil {
			return solana.PublicKey{}, err
		}
		artist, err := key("artist")
		if err != nil {
			return solana.PublicKey{}, err
		}
		switch kind {
		case "artwork":
			return d.Artwork(contest, artist)
		case "nft-vault":
			return d.NftVault(contest, artist)
		default:
			return d.NftVaultAuthority(contest, artist)
		}

	case "vote":
		contest, err := key("contest")
		if err != nil {
			return solana.PublicKey{}, err
		}
		voter, err := key("voter")
		if err != nil {
			return solana.PublicKey{}, err
		}
		return d.Vote(contest, voter)
	}

	return solana.PublicKey{}, fmt.Errorf("unknown address kind %q", kind)
}
