// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the contest API.

	mux := router.NewRouter(prog, cfg)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics (unless started with --no-metrics)

Instructions (signed with X-Signer and X-Signature):

	POST /initialize                         - Create the global counter
	POST /contests                           - Launch a contest and escrow the prize
	POST /contests/{contest}/artworks        - Submit an NFT
	POST /contests/{contest}/votes           - Vote for an artwork
	POST /contests/{contest}/claims/artist   - Winning artist's share
	POST /contests/{contest}/claims/voter    - Winning voter's share
	POST /contests/{contest}/claims/owner    - Winning NFT to the contest owner

Reads:

	GET /counter
	GET /contests/{contest}
	GET /contests/{contest}/winner
	GET /contests/{contest}/artworks/{artist}
	GET /contests/{contest}/votes/{voter}
	GET /token-accounts/{address}
	GET /pda/{kind}

Every route except /health and /metrics is wrapped with request logging and
the HTTP metrics middleware, keyed by route pattern.
*/
package router
