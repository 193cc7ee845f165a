// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package program

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/danielhkuo/nft-contest/models"
)

// Vote records the voter's single vote in a contest.
func (p *Program) Vote(ctx context.Context, voter, contestAddr solana.PublicKey, req models.VoteRequest) (models.VoteData, error) {
	voteAddr, err := p.pda.Vote(contestAddr, voter)
	if err != nil {
		return models.VoteData{}, err
	}
	if err := checkAddress("vote", req.VoteData, voteAddr); err != nil {
		return models.VoteData{}, err
	}

	var vote models.VoteData
	err = p.execute(ctx, "vote", func(tx *sql.Tx) error {
		contest, err := getContest(ctx, tx, contestAddr)
		if err != nil {
			return err
		}

		now := p.now().Unix()
		if !within(now, contest.VoteStartAt, contest.VoteEndAt) {
			return fmt.Errorf("voting runs [%d, %d), now %d: %w",
				contest.VoteStartAt, contest.VoteEndAt, now, ErrWindowClosed)
		}
		if req.VotedArtworkID >= contest.ArtworkCount {
			return fmt.Errorf("artwork %d of %d: %w", req.VotedArtworkID, contest.ArtworkCount, ErrInvalidArtworkID)
		}

		exists, err := voteExists(ctx, tx, voteAddr)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateVote
		}

		vote = models.VoteData{
			Address:        voteAddr,
			IsInitialized:  true,
			VoterKey:       voter,
			VotedArtworkID: req.VotedArtworkID,
		}
		if err := insertVoteData(ctx, tx, contestAddr, vote, now); err != nil {
			return err
		}
		return incrementVotes(ctx, tx, contestAddr, req.VotedArtworkID)
	})
	if err != nil {
		return models.VoteData{}, err
	}

	p.log.Debug("vote recorded", "contest", contestAddr, "voter", voter, "artwork_id", req.VotedArtworkID)
	return vote, nil
}
