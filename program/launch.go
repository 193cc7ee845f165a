// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package program

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/gagliardetto/solana-go"

	"github.com/danielhkuo/nft-contest/metrics"
	"github.com/danielhkuo/nft-contest/models"
	"github.com/danielhkuo/nft-contest/token"
)

// Initialize creates the global counter. It succeeds exactly once per
// program id.
func (p *Program) Initialize(ctx context.Context, signer solana.PublicKey) (models.Counter, error) {
	addr, err := p.pda.Counter()
	if err != nil {
		return models.Counter{}, err
	}

	err = p.execute(ctx, "initialize", func(tx *sql.Tx) error {
		return insertCounter(ctx, tx, addr)
	})
	if err != nil {
		return models.Counter{}, err
	}

	p.log.Info("counter initialized", "address", addr, "signer", signer)
	return models.Counter{Address: addr, IsInitialized: true}, nil
}

// Launch opens a contest owned by the signer and escrows the prize.
func (p *Program) Launch(ctx context.Context, owner solana.PublicKey, req models.LaunchRequest) (models.LaunchResponse, error) {
	if err := validateLaunch(req); err != nil {
		return models.LaunchResponse{}, err
	}

	counterAddr, err := p.pda.Counter()
	if err != nil {
		return models.LaunchResponse{}, err
	}

	var resp models.LaunchResponse
	err = p.execute(ctx, "launch", func(tx *sql.Tx) error {
		contestID, err := reserveContestID(ctx, tx, counterAddr)
		if err != nil {
			return err
		}

		contestAddr, err := p.pda.Contest(owner, contestID)
		if err != nil {
			return err
		}
		if err := checkAddress("contest", req.Contest, contestAddr); err != nil {
			return err
		}
		vault, err := p.pda.PrizeVault(owner, contestID)
		if err != nil {
			return err
		}
		if err := checkAddress("prize vault", req.PrizeVault, vault); err != nil {
			return err
		}
		vaultAuthority, err := p.pda.PrizeVaultAuthority(contestAddr)
		if err != nil {
			return err
		}

		// The counter read is not trusted on its own.
		exists, err := contestExists(ctx, tx, contestAddr)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateContest
		}

		src, err := token.GetAccount(ctx, tx, req.PrizeTokenAccount)
		if err != nil {
			return fmt.Errorf("prize token account: %w", err)
		}
		if !src.Mint.Equals(req.PrizeMint) {
			return fmt.Errorf("prize token account: %w", token.ErrMintMismatch)
		}
		if !src.Owner.Equals(owner) {
			return fmt.Errorf("prize token account: %w", ErrAuthorityMismatch)
		}

		now := p.now()
		contest := models.Contest{
			Address:             contestAddr,
			IsInitialized:       true,
			ContestID:           contestID,
			ContestOwner:        owner,
			PrizeMint:           req.PrizeMint,
			PrizeVault:          vault,
			PrizeAmount:         req.PrizeAmount,
			PercentageToArtist:  req.PercentageToArtist,
			SubmitStartAt:       req.SubmitStartAt,
			SubmitEndAt:         req.SubmitEndAt,
			VoteStartAt:         req.VoteStartAt,
			VoteEndAt:           req.VoteEndAt,
			TitleOfContest:      []byte(req.Title),
			LinkToProject:       []byte(req.Link),
			VecSize:             req.VecSize,
			ArtworksVoteCounter: make([]uint64, req.VecSize),
		}
		if err := insertContest(ctx, tx, contest, now.Unix()); err != nil {
			return err
		}

		if err := token.CreateAccount(ctx, tx, vault, req.PrizeMint, owner); err != nil {
			if errors.Is(err, token.ErrAccountExists) {
				return fmt.Errorf("prize vault: %w", ErrDuplicateContest)
			}
			return fmt.Errorf("prize vault: %w", err)
		}
		if err := token.SetAuthority(ctx, tx, vault, owner, vaultAuthority); err != nil {
			return fmt.Errorf("prize vault: %w", err)
		}
		if _, err := token.Transfer(ctx, tx, req.PrizeTokenAccount, vault, owner, req.PrizeAmount, now); err != nil {
			return fmt.Errorf("prize deposit: %w", err)
		}

		resp = models.LaunchResponse{Contest: contest, PrizeVaultAuthority: vaultAuthority}
		return nil
	})
	if err != nil {
		return models.LaunchResponse{}, err
	}

	metrics.TokensTransferredTotal.WithLabelValues("deposit").Add(float64(req.PrizeAmount))
	p.log.Info("contest launched",
		"contest", resp.Contest.Address,
		"contest_id", resp.Contest.ContestID,
		"owner", owner,
		"prize", humanize.Comma(int64(req.PrizeAmount)),
		"percentage_to_artist", req.PercentageToArtist,
		"vec_size", req.VecSize,
	)
	return resp, nil
}

func validateLaunch(req models.LaunchRequest) error {
	switch {
	case req.PrizeAmount == 0:
		return fmt.Errorf("prize amount must be positive: %w", ErrInvalidArgument)
	case req.PrizeAmount > math.MaxInt64:
		return fmt.Errorf("prize amount exceeds %d: %w", int64(math.MaxInt64), ErrInvalidArgument)
	case req.PercentageToArtist > 100:
		return fmt.Errorf("percentage to artist must be at most 100: %w", ErrInvalidArgument)
	case req.SubmitStartAt >= req.SubmitEndAt:
		return fmt.Errorf("submit window must end after it starts: %w", ErrInvalidArgument)
	case req.SubmitEndAt > req.VoteStartAt:
		return fmt.Errorf("vote window must not start before submissions end: %w", ErrInvalidArgument)
	case req.VoteStartAt >= req.VoteEndAt:
		return fmt.Errorf("vote window must end after it starts: %w", ErrInvalidArgument)
	case req.VecSize == 0:
		return fmt.Errorf("vec size must be positive: %w", ErrInvalidArgument)
	case req.VecSize > models.MaxVecSize:
		return fmt.Errorf("vec size exceeds %d: %w", models.MaxVecSize, ErrInvalidArgument)
	case len(req.Title) > models.MaxTitleLen:
		return fmt.Errorf("title exceeds %d bytes: %w", models.MaxTitleLen, ErrInvalidArgument)
	case len(req.Link) > models.MaxLinkLen:
		return fmt.Errorf("link exceeds %d bytes: %w", models.MaxLinkLen, ErrInvalidArgument)
	case req.PrizeMint.IsZero():
		return fmt.Errorf("prize mint is required: %w", ErrInvalidArgument)
	case req.PrizeTokenAccount.IsZero():
		return fmt.Errorf("prize token account is required: %w", ErrInvalidArgument)
	case req.Contest.IsZero():
		return fmt.Errorf("contest address is required: %w", ErrInvalidArgument)
	}
	return nil
}
