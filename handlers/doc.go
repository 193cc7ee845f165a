// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers exposes the contest program over HTTP.

# Handler Types

Each handler is a struct holding the program it drives:

  - ContestHandler: counter initialization, contest launch, contest and winner reads
  - SubmissionHandler: artwork submission and reads
  - VotingHandler: votes and vote reads
  - ClaimHandler: the artist, voter and contest owner claims
  - AccountHandler: token account reads and address derivation

Handlers are created via constructor functions:

	contestHandler := handlers.NewContestHandler(prog)

# Signed Instructions

Every POST is an instruction. The router wraps them with
middleware.RequireSigner, and the handler treats the verified signer as the
authority for the instruction (contest owner, artist, voter or claimant).

# Errors

Program errors are mapped by kind:

	validation         400
	not found          404
	duplicate          409
	authority          403
	insufficient funds 422
	internal           500

The response carries a stable code such as "DuplicateVote" alongside the
message. Internal errors are logged and their details withheld.
*/
package handlers
