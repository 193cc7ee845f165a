// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package program implements the contest instructions: initialize, launch,
// submit, vote and the three claims.
//
// Records live at program-derived addresses (see package pda) and balances
// live in the token ledger (see package token). Every instruction runs in a
// single database transaction, so a failure leaves no partial state behind.
//
// Time windows are half-open and measured in unix seconds from the
// configured clock:
//
//	submit  [SubmitStartAt, SubmitEndAt)
//	vote    [VoteStartAt, VoteEndAt)
//	claims  from VoteEndAt onward
//
// The winner is the first artwork with the highest vote count. The artist
// receives floor(prize * pct / 100); every voter who backed the winner
// receives floor(floor(prize * (100 - pct) / 100) / votes). The contest
// owner receives the winning NFT. Remainders stay in the vault.
package program
