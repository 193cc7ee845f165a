// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package token

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"

	"github.com/danielhkuo/nft-contest/models"
)

var (
	ErrAccountNotFound   = errors.New("token account not found")
	ErrAccountExists     = errors.New("token account already exists")
	ErrMintNotFound      = errors.New("mint not found")
	ErrMintExists        = errors.New("mint already exists")
	ErrMintMismatch      = errors.New("token account mint mismatch")
	ErrOwnerMismatch     = errors.New("token account owner mismatch")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAmountOverflow    = errors.New("amount overflows account balance")
)

// Querier is satisfied by *sql.DB and *sql.Tx. Every function in this
// package runs against whatever transaction the caller holds.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CreateMint registers a mint with zero supply.
func CreateMint(ctx context.Context, q Querier, address solana.PublicKey, decimals uint8, authority solana.PublicKey) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO mint (address, decimals, supply, mint_authority)
		VALUES ($1, $2, 0, $3)
	`, address.String(), int(decimals), authority.String())
	if err != nil {
		if IsUniqueViolation(err) {
			return ErrMintExists
		}
		return fmt.Errorf("failed to insert mint: %w", err)
	}
	return nil
}

func GetMint(ctx context.Context, q Querier, address solana.PublicKey) (models.Mint, error) {
	var (
		m         models.Mint
		decimals  int
		supply    int64
		authority string
	)
	err := q.QueryRowContext(ctx, `
		SELECT decimals, supply, mint_authority FROM mint WHERE address = $1
	`, address.String()).Scan(&decimals, &supply, &authority)
	if err == sql.ErrNoRows {
		return models.Mint{}, ErrMintNotFound
	}
	if err != nil {
		return models.Mint{}, fmt.Errorf("failed to query mint: %w", err)
	}

	m.Address = address
	m.Decimals = uint8(decimals)
	m.Supply = uint64(supply)
	if m.MintAuthority, err = solana.PublicKeyFromBase58(authority); err != nil {
		return models.Mint{}, fmt.Errorf("corrupt mint authority: %w", err)
	}
	return m, nil
}

// CreateAccount opens an empty account for mint at address, owned by owner.
func CreateAccount(ctx context.Context, q Querier, address, mint, owner solana.PublicKey) error {
	if _, err := GetMint(ctx, q, mint); err != nil {
		return err
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO token_account (address, mint, owner, amount)
		VALUES ($1, $2, $3, 0)
	`, address.String(), mint.String(), owner.String())
	if err != nil {
		if IsUniqueViolation(err) {
			return ErrAccountExists
		}
		return fmt.Errorf("failed to insert token account: %w", err)
	}
	return nil
}

func GetAccount(ctx context.Context, q Querier, address solana.PublicKey) (models.TokenAccount, error) {
	var (
		mint, owner string
		amount      int64
	)
	err := q.QueryRowContext(ctx, `
		SELECT mint, owner, amount FROM token_account WHERE address = $1
	`, address.String()).Scan(&mint, &owner, &amount)
	if err == sql.ErrNoRows {
		return models.TokenAccount{}, ErrAccountNotFound
	}
	if err != nil {
		return models.TokenAccount{}, fmt.Errorf("failed to query token account: %w", err)
	}

	acc := models.TokenAccount{Address: address, Amount: uint64(amount)}
	if acc.Mint, err = solana.PublicKeyFromBase58(mint); err != nil {
		return models.TokenAccount{}, fmt.Errorf("corrupt token account mint: %w", err)
	}
	if acc.Owner, err = solana.PublicKeyFromBase58(owner); err != nil {
		return models.TokenAccount{}, fmt.Errorf("corrupt token account owner: %w", err)
	}
	return acc, nil
}

// MintTo issues amount new units of mint into dest. authority must be the
// mint authority.
func MintTo(ctx context.Context, q Querier, mint, dest, authority solana.PublicKey, amount uint64) error {
	m, err := GetMint(ctx, q, mint)
	if err != nil {
		return err
	}
	if !m.MintAuthority.Equals(authority) {
		return fmt.Errorf("mint authority: %w", ErrOwnerMismatch)
	}

	acc, err := GetAccount(ctx, q, dest)
	if err != nil {
		return err
	}
	if !acc.Mint.Equals(mint) {
		return ErrMintMismatch
	}
	if amount > math.MaxInt64-acc.Amount || amount > math.MaxInt64-m.Supply {
		return ErrAmountOverflow
	}

	if _, err := q.ExecContext(ctx, `
		UPDATE mint SET supply = supply + $1 WHERE address = $2
	`, int64(amount), mint.String()); err != nil {
		return fmt.Errorf("failed to update supply: %w", err)
	}
	if _, err := q.ExecContext(ctx, `
		UPDATE token_account SET amount = amount + $1 WHERE address = $2
	`, int64(amount), dest.String()); err != nil {
		return fmt.Errorf("failed to credit account: %w", err)
	}
	return nil
}

// SetAuthority hands ownership of an account to newOwner. current must be
// the present owner.
func SetAuthority(ctx context.Context, q Querier, account, current, newOwner solana.PublicKey) error {
	res, err := q.ExecContext(ctx, `
		UPDATE token_account SET owner = $1 WHERE address = $2 AND owner = $3
	`, newOwner.String(), account.String(), current.String())
	if err != nil {
		return fmt.Errorf("failed to set authority: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to set authority: %w", err)
	}
	if n == 0 {
		if _, err := GetAccount(ctx, q, account); err != nil {
			return err
		}
		return ErrOwnerMismatch
	}
	return nil
}

// Transfer moves amount from one account to another of the same mint and
// journals the movement. authority must own the source account. The debit
// is a guarded update, so concurrent transfers can never overdraw.
func Transfer(ctx context.Context, q Querier, from, to, authority solana.PublicKey, amount uint64, now time.Time) (string, error) {
	src, err := GetAccount(ctx, q, from)
	if err != nil {
		return "", fmt.Errorf("source: %w", err)
	}
	dst, err := GetAccount(ctx, q, to)
	if err != nil {
		return "", fmt.Errorf("destination: %w", err)
	}
	if !src.Owner.Equals(authority) {
		return "", ErrOwnerMismatch
	}
	if !src.Mint.Equals(dst.Mint) {
		return "", ErrMintMismatch
	}
	if amount > math.MaxInt64 {
		return "", ErrAmountOverflow
	}
	if !from.Equals(to) && amount > math.MaxInt64-dst.Amount {
		return "", ErrAmountOverflow
	}

	res, err := q.ExecContext(ctx, `
		UPDATE token_account SET amount = amount - $1
		WHERE address = $2 AND amount >= $1
	`, int64(amount), from.String())
	if err != nil {
		return "", fmt.Errorf("failed to debit account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("failed to debit account: %w", err)
	}
	if n == 0 {
		return "", ErrInsufficientFunds
	}

	if _, err := q.ExecContext(ctx, `
		UPDATE token_account SET amount = amount + $1 WHERE address = $2
	`, int64(amount), to.String()); err != nil {
		return "", fmt.Errorf("failed to credit account: %w", err)
	}

	id := uuid.NewString()
	if _, err := q.ExecContext(ctx, `
		INSERT INTO token_transfer (id, source, destination, authority, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, from.String(), to.String(), authority.String(), int64(amount), now.Unix()); err != nil {
		return "", fmt.Errorf("failed to journal transfer: %w", err)
	}

	return id, nil
}

// IsUniqueViolation reports whether err is a primary key or unique
// constraint failure from either supported driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
