// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pda

import (
	"strconv"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestDeriver_Deterministic(t *testing.T) {
	d := New(DefaultProgramID)
	owner := solana.NewWallet().PublicKey()

	a, err := d.Contest(owner, 7)
	require.NoError(t, err)
	b, err := d.Contest(owner, 7)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestDeriver_MatchesCreateProgramAddress(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	seeds := [][]byte{[]byte("contest"), owner.Bytes(), []byte(strconv.FormatUint(3, 10))}

	want, bump, err := solana.FindProgramAddress(seeds, DefaultProgramID)
	require.NoError(t, err)

	got, err := New(DefaultProgramID).Contest(owner, 3)
	require.NoError(t, err)
	require.Equal(t, want, got)

	recreated, err := solana.CreateProgramAddress(append(seeds, []byte{bump}), DefaultProgramID)
	require.NoError(t, err)
	require.Equal(t, got, recreated)
}

func TestDeriver_DistinctSeedsDistinctAddresses(t *testing.T) {
	d := New(DefaultProgramID)
	owner := solana.NewWallet().PublicKey()
	artist := solana.NewWallet().PublicKey()

	contest, err := d.Contest(owner, 0)
	require.NoError(t, err)

	derive := []func() (solana.PublicKey, error){
		func() (solana.PublicKey, error) { return d.Counter() },
		func() (solana.PublicKey, error) { return d.Contest(owner, 1) },
		func() (solana.PublicKey, error) { return d.PrizeVault(owner, 0) },
		func() (solana.PublicKey, error) { return d.PrizeVaultAuthority(contest) },
		func() (solana.PublicKey, error) { return d.Artwork(contest, artist) },
		func() (solana.PublicKey, error) { return d.NftVault(contest, artist) },
		func() (solana.PublicKey, error) { return d.NftVaultAuthority(contest, artist) },
		func() (solana.PublicKey, error) { return d.Vote(contest, artist) },
	}

	seen := map[solana.PublicKey]int{contest: -1}
	for i, fn := range derive {
		addr, err := fn()
		require.NoError(t, err)
		prev, dup := seen[addr]
		require.Falsef(t, dup, "derivation %d collides with %d", i, prev)
		seen[addr] = i
	}
}

func TestDeriver_CountIsDecimalString(t *testing.T) {
	d := New(DefaultProgramID)
	owner := solana.NewWallet().PublicKey()

	// The count seed is its decimal text, not its little-endian bytes.
	ten, err := d.Contest(owner, 10)
	require.NoError(t, err)
	want, _, err := solana.FindProgramAddress([][]byte{[]byte("contest"), owner.Bytes(), []byte("10")}, DefaultProgramID)
	require.NoError(t, err)
	require.Equal(t, want, ten)
}

func TestDeriver_ProgramIDScopesAddresses(t *testing.T) {
	other := solana.NewWallet().PublicKey()
	a, err := New(DefaultProgramID).Counter()
	require.NoError(t, err)
	b, err := New(other).Counter()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestDeriver_SeedOrder(t *testing.T) {
	d := New(DefaultProgramID)
	owner := solana.NewWallet().PublicKey()
	artist := solana.NewWallet().PublicKey()
	voter := solana.NewWallet().PublicKey()
	contest, err := d.Contest(owner, 4)
	require.NoError(t, err)

	mustDerive := func(addr solana.PublicKey, err error) solana.PublicKey {
		t.Helper()
		require.NoError(t, err)
		return addr
	}

	tests := []struct {
		name  string
		seeds [][]byte
		got   solana.PublicKey
	}{
		{
			name:  "prize_vault",
			seeds: [][]byte{[]byte("prize_vault"), owner.Bytes(), []byte("4")},
			got:   mustDerive(d.PrizeVault(owner, 4)),
		},
		{
			name:  "prize_vault_authority",
			seeds: [][]byte{[]byte("prize_vault_authority"), contest.Bytes()},
			got:   mustDerive(d.PrizeVaultAuthority(contest)),
		},
		{
			name:  "artwork",
			seeds: [][]byte{[]byte("artwork"), contest.Bytes(), artist.Bytes()},
			got:   mustDerive(d.Artwork(contest, artist)),
		},
		{
			name:  "nft_vault",
			seeds: [][]byte{[]byte("nft_vault"), contest.Bytes(), artist.Bytes()},
			got:   mustDerive(d.NftVault(contest, artist)),
		},
		{
			name:  "nft_vault_authority",
			seeds: [][]byte{[]byte("nft_vault_authority"), contest.Bytes(), artist.Bytes()},
			got:   mustDerive(d.NftVaultAuthority(contest, artist)),
		},
		{
			name:  "vote",
			seeds: [][]byte{[]byte("vote"), contest.Bytes(), voter.Bytes()},
			got:   mustDerive(d.Vote(contest, voter)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, _, err := solana.FindProgramAddress(tt.seeds, DefaultProgramID)
			require.NoError(t, err)
			require.Equal(t, want, tt.got)
		})
	}
}

func TestDeriver_KnownAddresses(t *testing.T) {
	d := New(DefaultProgramID)

	counter, err := d.Counter()
	require.NoError(t, err)
	require.Equal(t, "6nU4aT99hsAWudGDfckT6524cBdvRL2NCmpWCW524vBR", counter.String())

	contest, err := d.Contest(solana.PublicKey{}, 0)
	require.NoError(t, err)
	require.Equal(t, "J7U7PveZNb7mStp3o1RV9Z8gs27CrWjWzsyagEYbLjtx", contest.String())
}
