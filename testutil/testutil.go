// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/nft-contest/auth"
	"github.com/danielhkuo/nft-contest/cliparse"
	"github.com/danielhkuo/nft-contest/db"
	"github.com/danielhkuo/nft-contest/models"
	"github.com/danielhkuo/nft-contest/pda"
	"github.com/danielhkuo/nft-contest/program"
	"github.com/danielhkuo/nft-contest/token"
)

// MintAuthority signs every mint created by these helpers.
var MintAuthority = solana.NewWallet().PublicKey()

// Epoch is the fake clock's starting time in tests.
var Epoch = time.Unix(1_700_000_000, 0)

// SetupTestDB creates a fresh SQLite database with the full schema. The
// file lives in the test's temp directory and is closed on cleanup.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, db.TypeSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    "test.db",
		DatabaseType:   db.TypeSQLite,
		ProgramID:      pda.DefaultProgramID,
		MetricsEnabled: true,
	}
}

// NewProgram returns a program over conn driven by clock. Logs are
// discarded.
func NewProgram(t *testing.T, conn *sql.DB, clock clockwork.Clock) *program.Program {
	t.Helper()

	prog, err := program.New(program.Config{
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Clock:     clock,
		DB:        conn,
		ProgramID: pda.DefaultProgramID,
	})
	if err != nil {
		t.Fatalf("Failed to create program: %v", err)
	}
	return prog
}

// NewClock returns a fake clock set to Epoch.
func NewClock() *clockwork.FakeClock {
	return clockwork.NewFakeClockAt(Epoch)
}

// NewKeypair returns a fresh signing key.
func NewKeypair(t *testing.T) solana.PrivateKey {
	t.Helper()

	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatalf("Failed to generate keypair: %v", err)
	}
	return key
}

// CreateMint registers a mint with the given decimals under MintAuthority.
func CreateMint(t *testing.T, conn *sql.DB, decimals uint8) solana.PublicKey {
	t.Helper()

	mint := solana.NewWallet().PublicKey()
	if err := token.CreateMint(context.Background(), conn, mint, decimals, MintAuthority); err != nil {
		t.Fatalf("Failed to create mint: %v", err)
	}
	return mint
}

// CreateTokenAccount opens an account of mint for owner holding amount.
func CreateTokenAccount(t *testing.T, conn *sql.DB, mint, owner solana.PublicKey, amount uint64) solana.PublicKey {
	t.Helper()

	ctx := context.Background()
	addr := solana.NewWallet().PublicKey()
	if err := token.CreateAccount(ctx, conn, addr, mint, owner); err != nil {
		t.Fatalf("Failed to create token account: %v", err)
	}
	if amount > 0 {
		if err := token.MintTo(ctx, conn, mint, addr, MintAuthority, amount); err != nil {
			t.Fatalf("Failed to fund token account: %v", err)
		}
	}
	return addr
}

// CreateNFT mints a single zero-decimal token to owner and returns the mint
// and the account holding it.
func CreateNFT(t *testing.T, conn *sql.DB, owner solana.PublicKey) (mint, account solana.PublicKey) {
	t.Helper()

	mint = CreateMint(t, conn, 0)
	return mint, CreateTokenAccount(t, conn, mint, owner, 1)
}

// Balance returns the amount held by a token account.
func Balance(t *testing.T, conn *sql.DB, addr solana.PublicKey) uint64 {
	t.Helper()

	acc, err := token.GetAccount(context.Background(), conn, addr)
	if err != nil {
		t.Fatalf("Failed to load token account %s: %v", addr, err)
	}
	return acc.Amount
}

// LaunchArgs returns a valid launch request whose windows are laid out
// relative to Epoch: submissions [+0, +100), voting [+100, +200).
func LaunchArgs(prizeMint, prizeAccount solana.PublicKey, prize uint64, pct uint8, vecSize uint32) models.LaunchRequest {
	start := Epoch.Unix()
	return models.LaunchRequest{
		PrizeAmount:        prize,
		PercentageToArtist: pct,
		SubmitStartAt:      start,
		SubmitEndAt:        start + 100,
		VoteStartAt:        start + 100,
		VoteEndAt:          start + 200,
		Title:              "Test Contest",
		Link:               "https://example.com/contest",
		VecSize:            vecSize,
		PrizeMint:          prizeMint,
		PrizeTokenAccount:  prizeAccount,
	}
}

// BindContest fills in the contest address the next launch by owner will
// derive. An uninitialized counter counts as zero.
func BindContest(t *testing.T, prog *program.Program, owner solana.PublicKey, req models.LaunchRequest) models.LaunchRequest {
	t.Helper()

	counter, err := prog.GetCounter(context.Background())
	if err != nil && !errors.Is(err, program.ErrNotFound) {
		t.Fatalf("Failed to read counter: %v", err)
	}
	req.Contest, err = prog.PDA().Contest(owner, counter.ContestCount)
	if err != nil {
		t.Fatalf("Failed to derive contest address: %v", err)
	}
	return req
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeSignedRequest creates an HTTP test request signed by key
func MakeSignedRequest(t *testing.T, method, path string, body interface{}, key solana.PrivateKey) *http.Request {
	t.Helper()

	var raw []byte
	if body != nil {
		var err error
		if raw, err = json.Marshal(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if err := auth.SignRequest(req, key, raw); err != nil {
		t.Fatalf("Failed to sign request: %v", err)
	}
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
