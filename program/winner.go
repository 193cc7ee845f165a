// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package program

import "math/bits"

// WinningArtwork returns the index of the highest tally entry and its vote
// count. Ties go to the lowest index. ok is false for an empty tally.
func WinningArtwork(tally []uint64) (id uint64, votes uint64, ok bool) {
	if len(tally) == 0 {
		return 0, 0, false
	}
	for i, v := range tally {
		if v > votes {
			votes = v
			id = uint64(i)
		}
	}
	return id, votes, true
}

// ArtistShare is floor(prize * pct / 100).
func ArtistShare(prize uint64, pct uint8) uint64 {
	if pct > 100 {
		pct = 100
	}
	return mulDiv100(prize, uint64(pct))
}

// VoterShare is floor(floor(prize * (100 - pct) / 100) / votes), the payout
// of each voter who backed the winner. Zero votes pay nothing.
func VoterShare(prize uint64, pct uint8, votes uint64) uint64 {
	if votes == 0 || pct > 100 {
		return 0
	}
	return mulDiv100(prize, uint64(100-pct)) / votes
}

// mulDiv100 computes floor(a*b/100) with a 128-bit intermediate; b <= 100
// keeps the high word below the divisor.
func mulDiv100(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	q, _ := bits.Div64(hi, lo, 100)
	return q
}
