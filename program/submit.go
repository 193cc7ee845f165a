// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package program

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/danielhkuo/nft-contest/metrics"
	"github.com/danielhkuo/nft-contest/models"
	"github.com/danielhkuo/nft-contest/token"
)

// Submit enters the artist's NFT into a contest. The NFT moves into a vault
// controlled by the program until the contest owner claims the winner.
func (p *Program) Submit(ctx context.Context, artist, contestAddr solana.PublicKey, req models.SubmitRequest) (models.Artwork, error) {
	if req.NftMint.IsZero() || req.ArtworkTokenAccount.IsZero() {
		return models.Artwork{}, fmt.Errorf("nft mint and artwork token account are required: %w", ErrInvalidArgument)
	}

	artworkAddr, err := p.pda.Artwork(contestAddr, artist)
	if err != nil {
		return models.Artwork{}, err
	}
	if err := checkAddress("artwork", req.Artwork, artworkAddr); err != nil {
		return models.Artwork{}, err
	}
	vault, err := p.pda.NftVault(contestAddr, artist)
	if err != nil {
		return models.Artwork{}, err
	}
	if err := checkAddress("nft vault", req.NftVault, vault); err != nil {
		return models.Artwork{}, err
	}
	vaultAuthority, err := p.pda.NftVaultAuthority(contestAddr, artist)
	if err != nil {
		return models.Artwork{}, err
	}

	var artwork models.Artwork
	err = p.execute(ctx, "submit", func(tx *sql.Tx) error {
		contest, err := getContest(ctx, tx, contestAddr)
		if err != nil {
			return err
		}

		now := p.now()
		if !within(now.Unix(), contest.SubmitStartAt, contest.SubmitEndAt) {
			return fmt.Errorf("submissions run [%d, %d), now %d: %w",
				contest.SubmitStartAt, contest.SubmitEndAt, now.Unix(), ErrWindowClosed)
		}

		exists, err := artworkExists(ctx, tx, artworkAddr)
		if err != nil {
			return err
		}
		if exists {
			return ErrAccountAlreadyInUse
		}

		mint, err := token.GetMint(ctx, tx, req.NftMint)
		if err != nil {
			return fmt.Errorf("nft mint: %w", err)
		}
		if mint.Decimals != 0 {
			return fmt.Errorf("nft mint has %d decimals: %w", mint.Decimals, ErrInvalidArgument)
		}
		src, err := token.GetAccount(ctx, tx, req.ArtworkTokenAccount)
		if err != nil {
			return fmt.Errorf("artwork token account: %w", err)
		}
		if !src.Mint.Equals(req.NftMint) {
			return fmt.Errorf("artwork token account: %w", token.ErrMintMismatch)
		}
		if !src.Owner.Equals(artist) {
			return fmt.Errorf("artwork token account: %w", ErrAuthorityMismatch)
		}
		if src.Amount != 1 {
			return fmt.Errorf("artwork token account holds %d units, want 1: %w", src.Amount, ErrInvalidArgument)
		}

		id, err := reserveArtworkSlot(ctx, tx, contestAddr)
		if err != nil {
			return err
		}

		artwork = models.Artwork{
			Address:             artworkAddr,
			IsInitialized:       true,
			ArtworkID:           id,
			AssociatedContestID: contest.ContestID,
			ArtistKey:           artist,
			NftMint:             req.NftMint,
			ArtworkTokenAccount: req.ArtworkTokenAccount,
			NftVault:            vault,
		}
		if err := insertArtwork(ctx, tx, contestAddr, artwork, now.Unix()); err != nil {
			return err
		}

		if err := token.CreateAccount(ctx, tx, vault, req.NftMint, artist); err != nil {
			if errors.Is(err, token.ErrAccountExists) {
				return fmt.Errorf("nft vault: %w", ErrAccountAlreadyInUse)
			}
			return fmt.Errorf("nft vault: %w", err)
		}
		if err := token.SetAuthority(ctx, tx, vault, artist, vaultAuthority); err != nil {
			return fmt.Errorf("nft vault: %w", err)
		}
		if _, err := token.Transfer(ctx, tx, req.ArtworkTokenAccount, vault, artist, 1, now); err != nil {
			return fmt.Errorf("nft deposit: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Artwork{}, err
	}

	metrics.TokensTransferredTotal.WithLabelValues("deposit").Inc()
	p.log.Info("artwork submitted",
		"contest", contestAddr,
		"artwork", artwork.Address,
		"artwork_id", artwork.ArtworkID,
		"artist", artist,
	)
	return artwork, nil
}
