// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package pda derives the program addresses used by the contest program.

Every record and vault lives at an address computed from a fixed seed tuple
with Solana's FindProgramAddress, so the same address can be reproduced by
any client holding the program id:

	d := pda.New(pda.DefaultProgramID)
	contest, err := d.Contest(owner, 0)

# Seeds

	counter                "counter"
	contest                "contest", owner, decimal(count)
	prize vault            "prize_vault", owner, decimal(count)
	prize vault authority  "prize_vault_authority", contest
	artwork                "artwork", contest, artist
	nft vault              "nft_vault", contest, artist
	nft vault authority    "nft_vault_authority", contest, artist
	vote                   "vote", contest, voter

A vault authority derived with the wrong seeds does not match the vault's
recorded authority, and the funds cannot be released through it.
*/
package pda
