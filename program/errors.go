// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package program

import (
	"errors"

	"github.com/danielhkuo/nft-contest/token"
)

var (
	ErrAlreadyInitialized    = errors.New("counter account is already initialized")
	ErrCounterNotInitialized = errors.New("counter account is not initialized")
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrWindowClosed          = errors.New("outside of the allowed time window")
	ErrClaimNotOpen          = errors.New("claims open after voting ends")
	ErrCapacityExceeded      = errors.New("contest artwork capacity exceeded")
	ErrInvalidArtworkID      = errors.New("artwork id does not reference a submission")
	ErrDuplicateContest      = errors.New("contest account already exists")
	ErrAccountAlreadyInUse   = errors.New("account already in use")
	ErrDuplicateVote         = errors.New("voter has already voted in this contest")
	ErrAlreadyClaimed        = errors.New("already claimed")
	ErrNotWinner             = errors.New("artwork is not the winning artwork")
	ErrNotWinningVote        = errors.New("vote did not back the winning artwork")
	ErrNoSubmissions         = errors.New("contest has no submissions")
	ErrAddressMismatch       = errors.New("supplied address does not match derived address")
	ErrAuthorityMismatch     = errors.New("signer is not the required authority")
	ErrNotFound              = errors.New("account not found")
)

// Kind groups errors by how a caller should react to them.
type Kind string

const (
	KindValidation Kind = "validation"
	KindDuplicate  Kind = "duplicate"
	KindAuthority  Kind = "authority"
	KindFunds      Kind = "insufficient_funds"
	KindNotFound   Kind = "not_found"
	KindInternal   Kind = "internal"
)

// KindOf classifies err. Unknown errors are internal.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrInvalidArgument),
		errors.Is(err, ErrWindowClosed),
		errors.Is(err, ErrClaimNotOpen),
		errors.Is(err, ErrCapacityExceeded),
		errors.Is(err, ErrInvalidArtworkID),
		errors.Is(err, ErrCounterNotInitialized),
		errors.Is(err, ErrNoSubmissions),
		errors.Is(err, ErrNotWinner),
		errors.Is(err, ErrNotWinningVote),
		errors.Is(err, token.ErrMintMismatch),
		errors.Is(err, token.ErrAmountOverflow):
		return KindValidation
	case errors.Is(err, ErrAlreadyInitialized),
		errors.Is(err, ErrDuplicateContest),
		errors.Is(err, ErrAccountAlreadyInUse),
		errors.Is(err, ErrDuplicateVote),
		errors.Is(err, ErrAlreadyClaimed),
		errors.Is(err, token.ErrAccountExists),
		errors.Is(err, token.ErrMintExists):
		return KindDuplicate
	case errors.Is(err, ErrAddressMismatch),
		errors.Is(err, ErrAuthorityMismatch),
		errors.Is(err, token.ErrOwnerMismatch):
		return KindAuthority
	case errors.Is(err, token.ErrInsufficientFunds):
		return KindFunds
	case errors.Is(err, ErrNotFound),
		errors.Is(err, token.ErrAccountNotFound),
		errors.Is(err, token.ErrMintNotFound):
		return KindNotFound
	default:
		return KindInternal
	}
}

// Code returns a stable name for err suitable for API clients.
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "Internal"
}

var codes = []struct {
	err  error
	code string
}{
	{ErrAlreadyInitialized, "AlreadyInitialized"},
	{ErrCounterNotInitialized, "CounterNotInitialized"},
	{ErrWindowClosed, "WindowClosed"},
	{ErrClaimNotOpen, "ClaimNotOpen"},
	{ErrCapacityExceeded, "CapacityExceeded"},
	{ErrInvalidArtworkID, "InvalidArtworkId"},
	{ErrDuplicateContest, "DuplicateContest"},
	{ErrAccountAlreadyInUse, "AccountAlreadyInUse"},
	{ErrDuplicateVote, "DuplicateVote"},
	{ErrAlreadyClaimed, "AlreadyClaimed"},
	{ErrNotWinner, "NotWinner"},
	{ErrNotWinningVote, "NotWinningVote"},
	{ErrNoSubmissions, "NoSubmissions"},
	{ErrAddressMismatch, "AddressMismatch"},
	{ErrAuthorityMismatch, "AuthorityMismatch"},
	{ErrNotFound, "NotFound"},
	{ErrInvalidArgument, "InvalidArgument"},
	{token.ErrInsufficientFunds, "InsufficientFunds"},
	{token.ErrMintMismatch, "MintMismatch"},
	{token.ErrOwnerMismatch, "AuthorityMismatch"},
	{token.ErrAccountNotFound, "NotFound"},
	{token.ErrMintNotFound, "NotFound"},
	{token.ErrAccountExists, "AccountAlreadyInUse"},
	{token.ErrAmountOverflow, "InvalidArgument"},
}
