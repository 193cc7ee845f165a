// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package program

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/danielhkuo/nft-contest/models"
	"github.com/danielhkuo/nft-contest/token"
)

type querier interface {
	token.Querier
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Counter

func insertCounter(ctx context.Context, q querier, addr solana.PublicKey) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO counter (address, is_initialized, contest_count)
		VALUES ($1, TRUE, 0)
	`, addr.String())
	if err != nil {
		if token.IsUniqueViolation(err) {
			return ErrAlreadyInitialized
		}
		return fmt.Errorf("failed to insert counter: %w", err)
	}
	return nil
}

func getCounter(ctx context.Context, q querier, addr solana.PublicKey) (models.Counter, error) {
	var (
		c     models.Counter
		count int64
	)
	err := q.QueryRowContext(ctx, `
		SELECT is_initialized, contest_count FROM counter WHERE address = $1
	`, addr.String()).Scan(&c.IsInitialized, &count)
	if err == sql.ErrNoRows {
		return models.Counter{}, fmt.Errorf("counter: %w", ErrNotFound)
	}
	if err != nil {
		return models.Counter{}, fmt.Errorf("failed to query counter: %w", err)
	}
	c.Address = addr
	c.ContestCount = uint64(count)
	return c, nil
}

// reserveContestID increments the counter and returns the pre-increment
// value. The update takes the row lock before the value is read, so racing
// launches receive distinct ids.
func reserveContestID(ctx context.Context, q querier, addr solana.PublicKey) (uint64, error) {
	var next int64
	err := q.QueryRowContext(ctx, `
		UPDATE counter SET contest_count = contest_count + 1
		WHERE address = $1 AND is_initialized = TRUE
		RETURNING contest_count
	`, addr.String()).Scan(&next)
	if err == sql.ErrNoRows {
		return 0, ErrCounterNotInitialized
	}
	if err != nil {
		return 0, fmt.Errorf("failed to reserve contest id: %w", err)
	}
	return uint64(next - 1), nil
}

// Contest

const contestColumns = `
	address, is_initialized, contest_id, contest_owner, prize_mint, prize_vault,
	prize_amount, percentage_to_artist, submit_start_at, submit_end_at,
	vote_start_at, vote_end_at, title_of_contest, link_to_project,
	artwork_count, vec_size, nft_claimed`

func contestExists(ctx context.Context, q querier, addr solana.PublicKey) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM contest WHERE address = $1)
	`, addr.String()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check contest: %w", err)
	}
	return exists, nil
}

func insertContest(ctx context.Context, q querier, c models.Contest, createdAt int64) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO contest (`+contestColumns+`, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`,
		c.Address.String(), c.IsInitialized, int64(c.ContestID), c.ContestOwner.String(),
		c.PrizeMint.String(), c.PrizeVault.String(), int64(c.PrizeAmount), int(c.PercentageToArtist),
		c.SubmitStartAt, c.SubmitEndAt, c.VoteStartAt, c.VoteEndAt,
		c.TitleOfContest, c.LinkToProject, int64(c.ArtworkCount), int64(c.VecSize), c.NftClaimed,
		createdAt,
	)
	if err != nil {
		if token.IsUniqueViolation(err) {
			return ErrDuplicateContest
		}
		return fmt.Errorf("failed to insert contest: %w", err)
	}
	return nil
}

// getContest loads a contest and materialises its tally. Entries at or
// above artwork_count are always zero since votes must reference an
// existing artwork.
func getContest(ctx context.Context, q querier, addr solana.PublicKey) (models.Contest, error) {
	var (
		c                                models.Contest
		address, owner, mint, vault      string
		contestID, prize, count, vecSize int64
		pct                              int
	)
	err := q.QueryRowContext(ctx, `
		SELECT `+contestColumns+` FROM contest WHERE address = $1
	`, addr.String()).Scan(
		&address, &c.IsInitialized, &contestID, &owner, &mint, &vault,
		&prize, &pct, &c.SubmitStartAt, &c.SubmitEndAt,
		&c.VoteStartAt, &c.VoteEndAt, &c.TitleOfContest, &c.LinkToProject,
		&count, &vecSize, &c.NftClaimed,
	)
	if err == sql.ErrNoRows {
		return models.Contest{}, fmt.Errorf("contest %s: %w", addr, ErrNotFound)
	}
	if err != nil {
		return models.Contest{}, fmt.Errorf("failed to query contest: %w", err)
	}

	c.Address = addr
	c.ContestID = uint64(contestID)
	c.PrizeAmount = uint64(prize)
	c.PercentageToArtist = uint8(pct)
	c.ArtworkCount = uint64(count)
	c.VecSize = uint32(vecSize)
	if c.ContestOwner, err = parseKey("contest owner", owner); err != nil {
		return models.Contest{}, err
	}
	if c.PrizeMint, err = parseKey("prize mint", mint); err != nil {
		return models.Contest{}, err
	}
	if c.PrizeVault, err = parseKey("prize vault", vault); err != nil {
		return models.Contest{}, err
	}

	c.ArtworksVoteCounter = make([]uint64, c.VecSize)
	rows, err := q.QueryContext(ctx, `
		SELECT artwork_id, votes FROM artwork WHERE contest = $1
	`, addr.String())
	if err != nil {
		return models.Contest{}, fmt.Errorf("failed to query tally: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, votes int64
		if err := rows.Scan(&id, &votes); err != nil {
			return models.Contest{}, fmt.Errorf("failed to scan tally: %w", err)
		}
		if id < 0 || id >= int64(len(c.ArtworksVoteCounter)) {
			return models.Contest{}, fmt.Errorf("artwork id %d outside tally of %d", id, len(c.ArtworksVoteCounter))
		}
		c.ArtworksVoteCounter[id] = uint64(votes)
	}
	if err := rows.Err(); err != nil {
		return models.Contest{}, fmt.Errorf("failed to read tally: %w", err)
	}

	return c, nil
}

// reserveArtworkSlot increments artwork_count while it is below vec_size
// and returns the pre-increment value.
func reserveArtworkSlot(ctx context.Context, q querier, contest solana.PublicKey) (uint64, error) {
	var next int64
	err := q.QueryRowContext(ctx, `
		UPDATE contest SET artwork_count = artwork_count + 1
		WHERE address = $1 AND artwork_count < vec_size
		RETURNING artwork_count
	`, contest.String()).Scan(&next)
	if err == sql.ErrNoRows {
		return 0, ErrCapacityExceeded
	}
	if err != nil {
		return 0, fmt.Errorf("failed to reserve artwork slot: %w", err)
	}
	return uint64(next - 1), nil
}

func markNftClaimed(ctx context.Context, q querier, contest solana.PublicKey) error {
	return markClaimed(ctx, q, `
		UPDATE contest SET nft_claimed = TRUE
		WHERE address = $1 AND nft_claimed = FALSE
	`, contest)
}

// Artwork

const artworkColumns = `
	is_initialized, artwork_id, associated_contest_id, artist_key,
	nft_mint, artwork_token_account, nft_vault, claimed`

func insertArtwork(ctx context.Context, q querier, contest solana.PublicKey, a models.Artwork, createdAt int64) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO artwork (address, contest, `+artworkColumns+`, votes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0, $11)
	`,
		a.Address.String(), contest.String(), a.IsInitialized, int64(a.ArtworkID),
		int64(a.AssociatedContestID), a.ArtistKey.String(), a.NftMint.String(),
		a.ArtworkTokenAccount.String(), a.NftVault.String(), a.Claimed, createdAt,
	)
	if err != nil {
		if token.IsUniqueViolation(err) {
			return ErrAccountAlreadyInUse
		}
		return fmt.Errorf("failed to insert artwork: %w", err)
	}
	return nil
}

func getArtwork(ctx context.Context, q querier, addr solana.PublicKey) (models.Artwork, error) {
	return scanArtwork(q.QueryRowContext(ctx, `
		SELECT address, `+artworkColumns+` FROM artwork WHERE address = $1
	`, addr.String()))
}

func getArtworkByID(ctx context.Context, q querier, contest solana.PublicKey, id uint64) (models.Artwork, error) {
	return scanArtwork(q.QueryRowContext(ctx, `
		SELECT address, `+artworkColumns+` FROM artwork WHERE contest = $1 AND artwork_id = $2
	`, contest.String(), int64(id)))
}

func scanArtwork(row *sql.Row) (models.Artwork, error) {
	var (
		a                                 models.Artwork
		address, artist, mint, src, vault string
		id, contestID                     int64
	)
	err := row.Scan(&address, &a.IsInitialized, &id, &contestID, &artist, &mint, &src, &vault, &a.Claimed)
	if err == sql.ErrNoRows {
		return models.Artwork{}, fmt.Errorf("artwork: %w", ErrNotFound)
	}
	if err != nil {
		return models.Artwork{}, fmt.Errorf("failed to query artwork: %w", err)
	}

	a.ArtworkID = uint64(id)
	a.AssociatedContestID = uint64(contestID)
	for _, f := range []struct {
		name string
		s    string
		dst  *solana.PublicKey
	}{
		{"artwork address", address, &a.Address},
		{"artist", artist, &a.ArtistKey},
		{"nft mint", mint, &a.NftMint},
		{"artwork token account", src, &a.ArtworkTokenAccount},
		{"nft vault", vault, &a.NftVault},
	} {
		if *f.dst, err = parseKey(f.name, f.s); err != nil {
			return models.Artwork{}, err
		}
	}
	return a, nil
}

func artworkExists(ctx context.Context, q querier, addr solana.PublicKey) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM artwork WHERE address = $1)
	`, addr.String()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check artwork: %w", err)
	}
	return exists, nil
}

func incrementVotes(ctx context.Context, q querier, contest solana.PublicKey, id uint64) error {
	res, err := q.ExecContext(ctx, `
		UPDATE artwork SET votes = votes + 1 WHERE contest = $1 AND artwork_id = $2
	`, contest.String(), int64(id))
	if err != nil {
		return fmt.Errorf("failed to update tally: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update tally: %w", err)
	}
	if n == 0 {
		return ErrInvalidArtworkID
	}
	return nil
}

func markArtworkClaimed(ctx context.Context, q querier, addr solana.PublicKey) error {
	return markClaimed(ctx, q, `
		UPDATE artwork SET claimed = TRUE
		WHERE address = $1 AND claimed = FALSE
	`, addr)
}

// VoteData

func insertVoteData(ctx context.Context, q querier, contest solana.PublicKey, v models.VoteData, createdAt int64) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO vote_data (address, contest, is_initialized, voter_key, voted_artwork_id, claimed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, v.Address.String(), contest.String(), v.IsInitialized, v.VoterKey.String(),
		int64(v.VotedArtworkID), v.Claimed, createdAt)
	if err != nil {
		if token.IsUniqueViolation(err) {
			return ErrDuplicateVote
		}
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	return nil
}

func getVoteData(ctx context.Context, q querier, addr solana.PublicKey) (models.VoteData, error) {
	var (
		v     models.VoteData
		voter string
		id    int64
	)
	err := q.QueryRowContext(ctx, `
		SELECT is_initialized, voter_key, voted_artwork_id, claimed FROM vote_data WHERE address = $1
	`, addr.String()).Scan(&v.IsInitialized, &voter, &id, &v.Claimed)
	if err == sql.ErrNoRows {
		return models.VoteData{}, fmt.Errorf("vote: %w", ErrNotFound)
	}
	if err != nil {
		return models.VoteData{}, fmt.Errorf("failed to query vote: %w", err)
	}

	v.Address = addr
	v.VotedArtworkID = uint64(id)
	if v.VoterKey, err = parseKey("voter", voter); err != nil {
		return models.VoteData{}, err
	}
	return v, nil
}

func voteExists(ctx context.Context, q querier, addr solana.PublicKey) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM vote_data WHERE address = $1)
	`, addr.String()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check vote: %w", err)
	}
	return exists, nil
}

func markVoteClaimed(ctx context.Context, q querier, addr solana.PublicKey) error {
	return markClaimed(ctx, q, `
		UPDATE vote_data SET claimed = TRUE
		WHERE address = $1 AND claimed = FALSE
	`, addr)
}

// markClaimed flips a claim flag exactly once.
func markClaimed(ctx context.Context, q querier, query string, addr solana.PublicKey) error {
	res, err := q.ExecContext(ctx, query, addr.String())
	if err != nil {
		return fmt.Errorf("failed to set claim flag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to set claim flag: %w", err)
	}
	if n == 0 {
		return ErrAlreadyClaimed
	}
	return nil
}

func parseKey(name, s string) (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("corrupt %s %q: %w", name, s, err)
	}
	return key, nil
}
