// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package program

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/nft-contest/token"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{ErrInvalidArgument, KindValidation},
		{ErrWindowClosed, KindValidation},
		{ErrClaimNotOpen, KindValidation},
		{ErrCapacityExceeded, KindValidation},
		{ErrNotWinner, KindValidation},
		{ErrAlreadyInitialized, KindDuplicate},
		{ErrDuplicateContest, KindDuplicate},
		{fmt.Errorf("prize vault: %w", ErrDuplicateContest), KindDuplicate},
		{ErrDuplicateVote, KindDuplicate},
		{ErrAlreadyClaimed, KindDuplicate},
		{ErrAddressMismatch, KindAuthority},
		{ErrAuthorityMismatch, KindAuthority},
		{token.ErrOwnerMismatch, KindAuthority},
		{token.ErrInsufficientFunds, KindFunds},
		{ErrNotFound, KindNotFound},
		{token.ErrAccountNotFound, KindNotFound},
		{fmt.Errorf("prize deposit: %w", token.ErrInsufficientFunds), KindFunds},
		{errors.New("disk on fire"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			require.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestCode(t *testing.T) {
	require.Equal(t, "DuplicateVote", Code(fmt.Errorf("vote: %w", ErrDuplicateVote)))
	require.Equal(t, "InsufficientFunds", Code(token.ErrInsufficientFunds))
	require.Equal(t, "AuthorityMismatch", Code(token.ErrOwnerMismatch))
	require.Equal(t, "Internal", Code(errors.New("boom")))
}
