// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package program

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/danielhkuo/nft-contest/models"
	"github.com/danielhkuo/nft-contest/token"
)

func (p *Program) GetCounter(ctx context.Context) (models.Counter, error) {
	addr, err := p.pda.Counter()
	if err != nil {
		return models.Counter{}, err
	}
	return getCounter(ctx, p.db, addr)
}

func (p *Program) GetContest(ctx context.Context, contest solana.PublicKey) (models.Contest, error) {
	return getContest(ctx, p.db, contest)
}

func (p *Program) GetArtwork(ctx context.Context, contest, artist solana.PublicKey) (models.Artwork, error) {
	addr, err := p.pda.Artwork(contest, artist)
	if err != nil {
		return models.Artwork{}, err
	}
	return getArtwork(ctx, p.db, addr)
}

func (p *Program) GetVoteData(ctx context.Context, contest, voter solana.PublicKey) (models.VoteData, error) {
	addr, err := p.pda.Vote(contest, voter)
	if err != nil {
		return models.VoteData{}, err
	}
	return getVoteData(ctx, p.db, addr)
}

// GetWinner reports the current leader and the payouts it would earn.
// Final is set once voting has ended and the tally can no longer change.
func (p *Program) GetWinner(ctx context.Context, contestAddr solana.PublicKey) (models.Winner, error) {
	contest, err := getContest(ctx, p.db, contestAddr)
	if err != nil {
		return models.Winner{}, err
	}
	if contest.ArtworkCount == 0 {
		return models.Winner{}, ErrNoSubmissions
	}

	id, votes, _ := WinningArtwork(contest.ArtworksVoteCounter)
	return models.Winner{
		Contest:      contestAddr,
		ArtworkID:    id,
		Votes:        votes,
		ArtistPayout: ArtistShare(contest.PrizeAmount, contest.PercentageToArtist),
		VoterPayout:  VoterShare(contest.PrizeAmount, contest.PercentageToArtist, votes),
		Final:        p.now().Unix() >= contest.VoteEndAt,
	}, nil
}

func (p *Program) GetTokenAccount(ctx context.Context, addr solana.PublicKey) (models.TokenAccount, error) {
	return token.GetAccount(ctx, p.db, addr)
}
