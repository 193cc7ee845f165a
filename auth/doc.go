// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth verifies request signatures.

# Signed Requests

Every instruction is signed by the account that authorizes it. The client
sends two headers:

	X-Signer:    base58 ed25519 public key
	X-Signature: base58 ed25519 signature

The signed message is the method, a space, the URL path, a newline and the
raw request body:

	POST /contests/{contest}/votes
	{"voted_artwork_id":0}

Query strings are not signed.

# Verification

	signer, err := auth.VerifyRequest(r, body)

VerifyRequest returns the signer's public key, which handlers pass to the
program as the instruction's authority.

# Test Helpers

SignRequest produces the headers for a solana.PrivateKey:

	err := auth.SignRequest(req, key, body)
*/
package auth
