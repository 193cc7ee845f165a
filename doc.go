// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the nft-contest API server.

nft-contest runs NFT art contests: an owner escrows a token prize, artists
escrow one NFT each during the submission window, wallets vote once each
during the voting window, and after voting closes the winning artist and
the voters who backed them split the prize while the owner receives the
winning NFT.

# Starting the Server

With defaults (SQLite file nft-contest.db, port 3318):

	go run .

Against PostgreSQL:

	go run . -t postgres -d "postgres://..."

# Configuration

Flags take precedence over the environment, which may be seeded from a
.env file (--env-file):

  - PORT (-p): server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - PROGRAM_ID (--program-id): base58 program id used for address derivation
  - METRICS_ENABLED (--no-metrics): serve /metrics
  - VERBOSE (-v): debug logging

# Architecture

  - program: the contest instructions and their invariants
  - token: SQL-backed mint and token account ledger
  - pda: program-derived address derivation
  - auth: ed25519 request signatures
  - handlers, router, middleware: the HTTP surface
  - db: connections and goose migrations
  - metrics: Prometheus collectors
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
