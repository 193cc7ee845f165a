// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines record, request, and response types for the API.

# Records

Program records, each stored at a program-derived address:

  - Counter: process-wide contest sequence
  - Contest: configuration, phase timestamps, vote tally
  - Artwork: one per (contest, artist), dense artwork id
  - VoteData: one per (contest, voter)

Token ledger records:

  - Mint: decimals and supply
  - TokenAccount: balance of one mint, moved only by its owner

# Request Types

  - LaunchRequest: prize, split, windows, title, link, tally capacity
  - SubmitRequest: nft mint and the artist's token account
  - VoteRequest: voted_artwork_id
  - ClaimRequest: destination token account

Address fields in requests are verified against the derived address; a
mismatch is rejected rather than silently replaced. LaunchRequest.Contest is
required, the others may be left zero.

# Capacity

	MaxTitleLen = 128
	MaxLinkLen  = 256
	MaxVecSize  = 4096
*/
package models
