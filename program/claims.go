// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package program

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gagliardetto/solana-go"

	"github.com/danielhkuo/nft-contest/metrics"
	"github.com/danielhkuo/nft-contest/models"
	"github.com/danielhkuo/nft-contest/token"
)

// ClaimByArtist pays the winning artist their share of the prize.
func (p *Program) ClaimByArtist(ctx context.Context, artist, contestAddr solana.PublicKey, req models.ClaimRequest) (models.ClaimResponse, error) {
	artworkAddr, err := p.pda.Artwork(contestAddr, artist)
	if err != nil {
		return models.ClaimResponse{}, err
	}
	authority, err := p.pda.PrizeVaultAuthority(contestAddr)
	if err != nil {
		return models.ClaimResponse{}, err
	}
	if err := checkAddress("prize vault authority", req.VaultAuthority, authority); err != nil {
		return models.ClaimResponse{}, err
	}

	var resp models.ClaimResponse
	err = p.execute(ctx, "claim_by_artist", func(tx *sql.Tx) error {
		contest, err := p.loadClaimable(ctx, tx, contestAddr)
		if err != nil {
			return err
		}

		artwork, err := getArtwork(ctx, tx, artworkAddr)
		if err != nil {
			return err
		}
		if !artwork.ArtistKey.Equals(artist) {
			return fmt.Errorf("artwork belongs to %s: %w", artwork.ArtistKey, ErrAuthorityMismatch)
		}

		winnerID, _, _ := WinningArtwork(contest.ArtworksVoteCounter)
		if artwork.ArtworkID != winnerID {
			return fmt.Errorf("artwork %d, winner %d: %w", artwork.ArtworkID, winnerID, ErrNotWinner)
		}
		if err := checkDestination(ctx, tx, req.TokenAccount, contest.PrizeMint, artist); err != nil {
			return err
		}
		if err := markArtworkClaimed(ctx, tx, artworkAddr); err != nil {
			return err
		}

		amount := ArtistShare(contest.PrizeAmount, contest.PercentageToArtist)
		resp, err = p.payout(ctx, tx, contest.PrizeVault, req.TokenAccount, authority, amount)
		return err
	})
	if err != nil {
		return models.ClaimResponse{}, err
	}

	metrics.TokensTransferredTotal.WithLabelValues("payout").Add(float64(resp.Amount))
	p.log.Info("artist claimed prize",
		"contest", contestAddr,
		"artist", artist,
		"amount", humanize.Comma(int64(resp.Amount)),
	)
	return resp, nil
}

// ClaimByVoter pays a voter who backed the winning artwork an equal share
// of the voters' pool.
func (p *Program) ClaimByVoter(ctx context.Context, voter, contestAddr solana.PublicKey, req models.ClaimRequest) (models.ClaimResponse, error) {
	voteAddr, err := p.pda.Vote(contestAddr, voter)
	if err != nil {
		return models.ClaimResponse{}, err
	}
	authority, err := p.pda.PrizeVaultAuthority(contestAddr)
	if err != nil {
		return models.ClaimResponse{}, err
	}
	if err := checkAddress("prize vault authority", req.VaultAuthority, authority); err != nil {
		return models.ClaimResponse{}, err
	}

	var resp models.ClaimResponse
	err = p.execute(ctx, "claim_by_voter", func(tx *sql.Tx) error {
		contest, err := p.loadClaimable(ctx, tx, contestAddr)
		if err != nil {
			return err
		}

		vote, err := getVoteData(ctx, tx, voteAddr)
		if err != nil {
			return err
		}
		if !vote.VoterKey.Equals(voter) {
			return fmt.Errorf("vote belongs to %s: %w", vote.VoterKey, ErrAuthorityMismatch)
		}

		winnerID, votes, _ := WinningArtwork(contest.ArtworksVoteCounter)
		if vote.VotedArtworkID != winnerID {
			return fmt.Errorf("voted %d, winner %d: %w", vote.VotedArtworkID, winnerID, ErrNotWinningVote)
		}
		if err := checkDestination(ctx, tx, req.TokenAccount, contest.PrizeMint, voter); err != nil {
			return err
		}
		if err := markVoteClaimed(ctx, tx, voteAddr); err != nil {
			return err
		}

		amount := VoterShare(contest.PrizeAmount, contest.PercentageToArtist, votes)
		resp, err = p.payout(ctx, tx, contest.PrizeVault, req.TokenAccount, authority, amount)
		return err
	})
	if err != nil {
		return models.ClaimResponse{}, err
	}

	metrics.TokensTransferredTotal.WithLabelValues("payout").Add(float64(resp.Amount))
	p.log.Info("voter claimed prize",
		"contest", contestAddr,
		"voter", voter,
		"amount", humanize.Comma(int64(resp.Amount)),
	)
	return resp, nil
}

// ClaimByContestOwner transfers the winning artwork's NFT to the owner.
func (p *Program) ClaimByContestOwner(ctx context.Context, owner, contestAddr solana.PublicKey, req models.ClaimRequest) (models.ClaimResponse, error) {
	var resp models.ClaimResponse
	err := p.execute(ctx, "claim_by_contest_owner", func(tx *sql.Tx) error {
		contest, err := p.loadClaimable(ctx, tx, contestAddr)
		if err != nil {
			return err
		}
		if !contest.ContestOwner.Equals(owner) {
			return fmt.Errorf("contest owned by %s: %w", contest.ContestOwner, ErrAuthorityMismatch)
		}
		if contest.ArtworkCount == 0 {
			return ErrNoSubmissions
		}

		winnerID, _, _ := WinningArtwork(contest.ArtworksVoteCounter)
		artwork, err := getArtworkByID(ctx, tx, contestAddr, winnerID)
		if err != nil {
			return err
		}

		authority, err := p.pda.NftVaultAuthority(contestAddr, artwork.ArtistKey)
		if err != nil {
			return err
		}
		if err := checkAddress("nft vault authority", req.VaultAuthority, authority); err != nil {
			return err
		}
		if err := checkDestination(ctx, tx, req.TokenAccount, artwork.NftMint, owner); err != nil {
			return err
		}
		if err := markNftClaimed(ctx, tx, contestAddr); err != nil {
			return err
		}

		resp, err = p.payout(ctx, tx, artwork.NftVault, req.TokenAccount, authority, 1)
		return err
	})
	if err != nil {
		return models.ClaimResponse{}, err
	}

	metrics.TokensTransferredTotal.WithLabelValues("payout").Inc()
	p.log.Info("contest owner claimed nft", "contest", contestAddr, "owner", owner)
	return resp, nil
}

// loadClaimable loads a contest whose voting has ended.
func (p *Program) loadClaimable(ctx context.Context, tx *sql.Tx, contestAddr solana.PublicKey) (models.Contest, error) {
	contest, err := getContest(ctx, tx, contestAddr)
	if err != nil {
		return models.Contest{}, err
	}
	if now := p.now().Unix(); now < contest.VoteEndAt {
		return models.Contest{}, fmt.Errorf("voting ends at %d, now %d: %w", contest.VoteEndAt, now, ErrClaimNotOpen)
	}
	return contest, nil
}

func (p *Program) payout(ctx context.Context, tx *sql.Tx, vault, dest, authority solana.PublicKey, amount uint64) (models.ClaimResponse, error) {
	id, err := token.Transfer(ctx, tx, vault, dest, authority, amount, p.now())
	if err != nil {
		return models.ClaimResponse{}, fmt.Errorf("payout: %w", err)
	}
	return models.ClaimResponse{
		Source:      vault,
		Destination: dest,
		Amount:      amount,
		TransferID:  id,
	}, nil
}

// checkDestination requires a claimant's account to hold mint and be owned
// by the claimant.
func checkDestination(ctx context.Context, q querier, addr, mint, owner solana.PublicKey) error {
	if addr.IsZero() {
		return fmt.Errorf("token account is required: %w", ErrInvalidArgument)
	}
	acc, err := token.GetAccount(ctx, q, addr)
	if err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	if !acc.Mint.Equals(mint) {
		return fmt.Errorf("destination: %w", token.ErrMintMismatch)
	}
	if !acc.Owner.Equals(owner) {
		return fmt.Errorf("destination: %w", ErrAuthorityMismatch)
	}
	return nil
}
