// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package token is a minimal fungible token ledger: mints, accounts owned
// by an authority, and journaled transfers between accounts of one mint.
//
// Functions take a Querier so they compose inside the caller's transaction.
// Balances are stored as BIGINT, so no account or supply may exceed
// math.MaxInt64.
package token
