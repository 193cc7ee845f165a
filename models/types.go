package models

import (
	"github.com/gagliardetto/solana-go"
)

// Capacity limits of the contest record
const (
	MaxTitleLen = 128
	MaxLinkLen  = 256
	MaxVecSize  = 4096
)

// Record types

type Counter struct {
	Address       solana.PublicKey `json:"address"`
	IsInitialized bool             `json:"is_initialized"`
	ContestCount  uint64           `json:"contest_count"`
}

type Contest struct {
	Address             solana.PublicKey `json:"address"`
	IsInitialized       bool             `json:"is_initialized"`
	ContestID           uint64           `json:"contest_id"`
	ContestOwner        solana.PublicKey `json:"contest_owner"`
	PrizeMint           solana.PublicKey `json:"prize_mint"`
	PrizeVault          solana.PublicKey `json:"prize_vault"`
	PrizeAmount         uint64           `json:"prize_amount"`
	PercentageToArtist  uint8            `json:"percentage_to_artist"`
	SubmitStartAt       int64            `json:"submit_start_at"`
	SubmitEndAt         int64            `json:"submit_end_at"`
	VoteStartAt         int64            `json:"vote_start_at"`
	VoteEndAt           int64            `json:"vote_end_at"`
	TitleOfContest      []byte           `json:"-"`
	LinkToProject       []byte           `json:"-"`
	ArtworkCount        uint64           `json:"artwork_count"`
	VecSize             uint32           `json:"vec_size"`
	ArtworksVoteCounter []uint64         `json:"artworks_vote_counter"`
	NftClaimed          bool             `json:"nft_claimed"`
}

type Artwork struct {
	Address             solana.PublicKey `json:"address"`
	IsInitialized       bool             `json:"is_initialized"`
	ArtworkID           uint64           `json:"artwork_id"`
	AssociatedContestID uint64           `json:"associated_contest_id"`
	ArtistKey           solana.PublicKey `json:"artist_key"`
	NftMint             solana.PublicKey `json:"nft_mint"`
	ArtworkTokenAccount solana.PublicKey `json:"artwork_token_account"`
	NftVault            solana.PublicKey `json:"nft_vault"`
	Claimed             bool             `json:"claimed"`
}

type VoteData struct {
	Address        solana.PublicKey `json:"address"`
	IsInitialized  bool             `json:"is_initialized"`
	VoterKey       solana.PublicKey `json:"voter_key"`
	VotedArtworkID uint64           `json:"voted_artwork_id"`
	Claimed        bool             `json:"claimed"`
}

// Token ledger types

type Mint struct {
	Address       solana.PublicKey `json:"address"`
	Decimals      uint8            `json:"decimals"`
	Supply        uint64           `json:"supply"`
	MintAuthority solana.PublicKey `json:"mint_authority"`
}

// TokenAccount holds a balance of one mint. Owner is the authority allowed
// to move funds out; for vaults it is a program-derived address.
type TokenAccount struct {
	Address solana.PublicKey `json:"address"`
	Mint    solana.PublicKey `json:"mint"`
	Owner   solana.PublicKey `json:"owner"`
	Amount  uint64           `json:"amount"`
}

// Request types

// Contest must be the address the launch will derive, which binds a signed
// request to a single counter value. PrizeVault is checked only when set.
type LaunchRequest struct {
	PrizeAmount        uint64           `json:"prize_amount"`
	PercentageToArtist uint8            `json:"percentage_to_artist"`
	SubmitStartAt      int64            `json:"submit_start_at"`
	SubmitEndAt        int64            `json:"submit_end_at"`
	VoteStartAt        int64            `json:"vote_start_at"`
	VoteEndAt          int64            `json:"vote_end_at"`
	Title              string           `json:"title"`
	Link               string           `json:"link"`
	VecSize            uint32           `json:"vec_size"`
	PrizeMint          solana.PublicKey `json:"prize_mint"`
	PrizeTokenAccount  solana.PublicKey `json:"prize_token_account"`
	Contest            solana.PublicKey `json:"contest"`
	PrizeVault         solana.PublicKey `json:"prize_vault,omitempty"`
}

type SubmitRequest struct {
	NftMint             solana.PublicKey `json:"nft_mint"`
	ArtworkTokenAccount solana.PublicKey `json:"artwork_token_account"`
	Artwork             solana.PublicKey `json:"artwork,omitempty"`
	NftVault            solana.PublicKey `json:"nft_vault,omitempty"`
}

type VoteRequest struct {
	VotedArtworkID uint64           `json:"voted_artwork_id"`
	VoteData       solana.PublicKey `json:"vote_data,omitempty"`
}

// ClaimRequest is shared by the three claim instructions. TokenAccount is
// the claimant's destination account; VaultAuthority is optional.
type ClaimRequest struct {
	TokenAccount   solana.PublicKey `json:"token_account"`
	VaultAuthority solana.PublicKey `json:"vault_authority,omitempty"`
}

// Response types

type LaunchResponse struct {
	Contest             Contest          `json:"contest"`
	PrizeVaultAuthority solana.PublicKey `json:"prize_vault_authority"`
}

type ClaimResponse struct {
	Source      solana.PublicKey `json:"source"`
	Destination solana.PublicKey `json:"destination"`
	Amount      uint64           `json:"amount"`
	TransferID  string           `json:"transfer_id"`
}

type Winner struct {
	Contest      solana.PublicKey `json:"contest"`
	ArtworkID    uint64           `json:"artwork_id"`
	Votes        uint64           `json:"votes"`
	ArtistPayout uint64           `json:"artist_payout"`
	VoterPayout  uint64           `json:"voter_payout"`
	Final        bool             `json:"final"`
}

type ContestResponse struct {
	Contest
	Title string `json:"title"`
	Link  string `json:"link"`
}

type AddressResponse struct {
	Kind    string           `json:"kind"`
	Address solana.PublicKey `json:"address"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}
