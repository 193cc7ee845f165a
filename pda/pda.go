// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pda

import (
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
)

// DefaultProgramID is the address the contest program was deployed under.
var DefaultProgramID = solana.MustPublicKeyFromBase58("8wRhhgnw55z1QELi6wDoAnKbnYsU9X9U5kZnMQ12vopf")

// Seed prefixes. Order and spelling are part of the wire contract.
const (
	SeedCounter             = "counter"
	SeedContest             = "contest"
	SeedPrizeVault          = "prize_vault"
	SeedPrizeVaultAuthority = "prize_vault_authority"
	SeedArtwork             = "artwork"
	SeedNftVault            = "nft_vault"
	SeedNftVaultAuthority   = "nft_vault_authority"
	SeedVote                = "vote"
)

// Deriver computes program-derived addresses for a single program id.
// Addresses are never stored as a lookup table; they are recomputed from
// their seeds whenever needed.
type Deriver struct {
	programID solana.PublicKey
}

func New(programID solana.PublicKey) Deriver {
	return Deriver{programID: programID}
}

func (d Deriver) ProgramID() solana.PublicKey {
	return d.programID
}

func (d Deriver) Counter() (solana.PublicKey, error) {
	return d.find(SeedCounter, []byte(SeedCounter))
}

// Contest derives the contest record address. count is the counter value
// before the launch that creates the contest, encoded as a decimal string.
func (d Deriver) Contest(owner solana.PublicKey, count uint64) (solana.PublicKey, error) {
	return d.find(SeedContest, []byte(SeedContest), owner.Bytes(), countSeed(count))
}

func (d Deriver) PrizeVault(owner solana.PublicKey, count uint64) (solana.PublicKey, error) {
	return d.find(SeedPrizeVault, []byte(SeedPrizeVault), owner.Bytes(), countSeed(count))
}

func (d Deriver) PrizeVaultAuthority(contest solana.PublicKey) (solana.PublicKey, error) {
	return d.find(SeedPrizeVaultAuthority, []byte(SeedPrizeVaultAuthority), contest.Bytes())
}

func (d Deriver) Artwork(contest, artist solana.PublicKey) (solana.PublicKey, error) {
	return d.find(SeedArtwork, []byte(SeedArtwork), contest.Bytes(), artist.Bytes())
}

func (d Deriver) NftVault(contest, artist solana.PublicKey) (solana.PublicKey, error) {
	return d.find(SeedNftVault, []byte(SeedNftVault), contest.Bytes(), artist.Bytes())
}

func (d Deriver) NftVaultAuthority(contest, artist solana.PublicKey) (solana.PublicKey, error) {
	return d.find(SeedNftVaultAuthority, []byte(SeedNftVaultAuthority), contest.Bytes(), artist.Bytes())
}

func (d Deriver) Vote(contest, voter solana.PublicKey) (solana.PublicKey, error) {
	return d.find(SeedVote, []byte(SeedVote), contest.Bytes(), voter.Bytes())
}

func (d Deriver) find(kind string, seeds ...[]byte) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(seeds, d.programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive %s address: %w", kind, err)
	}
	return addr, nil
}

func countSeed(count uint64) []byte {
	return []byte(strconv.FormatUint(count, 10))
}
