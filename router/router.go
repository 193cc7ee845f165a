// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/nft-contest/cliparse"
	"github.com/danielhkuo/nft-contest/handlers"
	"github.com/danielhkuo/nft-contest/middleware"
	"github.com/danielhkuo/nft-contest/program"
)

func NewRouter(prog *program.Program, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	contestHandler := handlers.NewContestHandler(prog)
	submissionHandler := handlers.NewSubmissionHandler(prog)
	votingHandler := handlers.NewVotingHandler(prog)
	claimHandler := handlers.NewClaimHandler(prog)
	accountHandler := handlers.NewAccountHandler(prog)

	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithMetrics(pattern, middleware.WithLogging(h)))
	}
	signed := func(pattern string, h http.HandlerFunc) {
		handle(pattern, middleware.RequireSigner(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if cfg.MetricsEnabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	// Instructions (signed)
	signed("POST /initialize", contestHandler.Initialize)
	signed("POST /contests", contestHandler.Launch)
	signed("POST /contests/{contest}/artworks", submissionHandler.Submit)
	signed("POST /contests/{contest}/votes", votingHandler.Vote)
	signed("POST /contests/{contest}/claims/artist", claimHandler.ClaimByArtist)
	signed("POST /contests/{contest}/claims/voter", claimHandler.ClaimByVoter)
	signed("POST /contests/{contest}/claims/owner", claimHandler.ClaimByContestOwner)

	// Reads
	handle("GET /counter", contestHandler.GetCounter)
	handle("GET /contests/{contest}", contestHandler.GetContest)
	handle("GET /contests/{contest}/winner", contestHandler.GetWinner)
	handle("GET /contests/{contest}/artworks/{artist}", submissionHandler.GetArtwork)
	handle("GET /contests/{contest}/votes/{voter}", votingHandler.GetVote)
	handle("GET /token-accounts/{address}", accountHandler.GetTokenAccount)
	handle("GET /pda/{kind}", accountHandler.DeriveAddress)

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("nft-contest API v1"))
	})

	return mux
}
