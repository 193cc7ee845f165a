// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/nft-contest/auth"
	"github.com/danielhkuo/nft-contest/middleware"
	"github.com/danielhkuo/nft-contest/models"
	"github.com/danielhkuo/nft-contest/program"
	"github.com/danielhkuo/nft-contest/testutil"
)

type testEnv struct {
	db    *sql.DB
	clock *clockwork.FakeClock
	prog  *program.Program
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	clock := testutil.NewClock()
	return &testEnv{db: db, clock: clock, prog: testutil.NewProgram(t, db, clock)}
}

// serve runs a signed request through RequireSigner and the handler.
func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	middleware.RequireSigner(h)(w, req)
	return w
}

func (e *testEnv) initialize(t *testing.T) {
	t.Helper()

	h := NewContestHandler(e.prog)
	w := serve(h.Initialize, testutil.MakeSignedRequest(t, "POST", "/initialize", nil, testutil.NewKeypair(t)))
	testutil.AssertStatus(t, w, http.StatusCreated)
}

// launch creates a contest through the handler and returns the response
// along with the owner's key and prize mint.
func (e *testEnv) launch(t *testing.T, prize uint64, pct uint8, vecSize uint32) (models.LaunchResponse, solana.PrivateKey, solana.PublicKey) {
	t.Helper()

	owner := testutil.NewKeypair(t)
	mint := testutil.CreateMint(t, e.db, 9)
	acc := testutil.CreateTokenAccount(t, e.db, mint, owner.PublicKey(), prize)

	req := testutil.BindContest(t, e.prog, owner.PublicKey(), testutil.LaunchArgs(mint, acc, prize, pct, vecSize))
	h := NewContestHandler(e.prog)
	w := serve(h.Launch, testutil.MakeSignedRequest(t, "POST", "/contests", req, owner))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.LaunchResponse
	testutil.AssertJSON(t, w, &resp)
	return resp, owner, mint
}

func TestInitializeHandler(t *testing.T) {
	env := setupEnv(t)
	handler := NewContestHandler(env.prog)

	w := serve(handler.Initialize, testutil.MakeSignedRequest(t, "POST", "/initialize", nil, testutil.NewKeypair(t)))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var counter models.Counter
	testutil.AssertJSON(t, w, &counter)
	if !counter.IsInitialized {
		t.Error("Expected initialized counter")
	}

	w = serve(handler.Initialize, testutil.MakeSignedRequest(t, "POST", "/initialize", nil, testutil.NewKeypair(t)))
	testutil.AssertStatus(t, w, http.StatusConflict)

	var errResp models.ErrorResponse
	testutil.AssertJSON(t, w, &errResp)
	if errResp.Code != "AlreadyInitialized" {
		t.Errorf("Expected code AlreadyInitialized, got %q", errResp.Code)
	}
}

func TestInitializeHandler_Unsigned(t *testing.T) {
	env := setupEnv(t)
	handler := NewContestHandler(env.prog)

	// Without the signature middleware there is no signer in the context.
	w := httptest.NewRecorder()
	handler.Initialize(w, httptest.NewRequest("POST", "/initialize", nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestLaunchHandler(t *testing.T) {
	env := setupEnv(t)
	env.initialize(t)
	handler := NewContestHandler(env.prog)

	owner := testutil.NewKeypair(t)
	mint := testutil.CreateMint(t, env.db, 9)
	acc := testutil.CreateTokenAccount(t, env.db, mint, owner.PublicKey(), 1_000)
	bind := func(r models.LaunchRequest) models.LaunchRequest {
		return testutil.BindContest(t, env.prog, owner.PublicKey(), r)
	}

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "percentage over 100",
			body: func() models.LaunchRequest {
				r := bind(testutil.LaunchArgs(mint, acc, 100, 50, 4))
				r.PercentageToArtist = 101
				return r
			}(),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "InvalidArgument",
		},
		{
			name:           "insufficient funds",
			body:           bind(testutil.LaunchArgs(mint, acc, 5_000, 50, 4)),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "InsufficientFunds",
		},
		{
			name:           "unknown token account",
			body:           bind(testutil.LaunchArgs(mint, solana.NewWallet().PublicKey(), 100, 50, 4)),
			expectedStatus: http.StatusNotFound,
			expectedCode:   "NotFound",
		},
		{
			name:           "missing contest address",
			body:           testutil.LaunchArgs(mint, acc, 100, 50, 4),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "InvalidArgument",
		},
		{
			name:           "stale contest address",
			body:           testutil.BindContest(t, env.prog, solana.NewWallet().PublicKey(), testutil.LaunchArgs(mint, acc, 100, 50, 4)),
			expectedStatus: http.StatusForbidden,
			expectedCode:   "AddressMismatch",
		},
		{
			name:           "valid launch",
			body:           bind(testutil.LaunchArgs(mint, acc, 1_000, 50, 4)),
			expectedStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(handler.Launch, testutil.MakeSignedRequest(t, "POST", "/contests", tt.body, owner))
			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedCode != "" {
				var errResp models.ErrorResponse
				testutil.AssertJSON(t, w, &errResp)
				if errResp.Code != tt.expectedCode {
					t.Errorf("Expected code %q, got %q", tt.expectedCode, errResp.Code)
				}
			}
		})
	}

	t.Run("invalid JSON", func(t *testing.T) {
		body := []byte("{not json")
		req := httptest.NewRequest("POST", "/contests", bytes.NewReader(body))
		if err := auth.SignRequest(req, owner, body); err != nil {
			t.Fatal(err)
		}
		w := serve(handler.Launch, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

// TestLaunchHandler_ReplayRejected sends the same signed launch twice. The
// body names the contest for the counter value it was signed against, so
// the second copy no longer matches and moves no funds.
func TestLaunchHandler_ReplayRejected(t *testing.T) {
	env := setupEnv(t)
	env.initialize(t)
	handler := NewContestHandler(env.prog)

	owner := testutil.NewKeypair(t)
	mint := testutil.CreateMint(t, env.db, 9)
	acc := testutil.CreateTokenAccount(t, env.db, mint, owner.PublicKey(), 1_000)

	body, err := json.Marshal(testutil.BindContest(t, env.prog, owner.PublicKey(), testutil.LaunchArgs(mint, acc, 400, 50, 4)))
	if err != nil {
		t.Fatal(err)
	}
	signed := httptest.NewRequest("POST", "/contests", bytes.NewReader(body))
	if err := auth.SignRequest(signed, owner, body); err != nil {
		t.Fatal(err)
	}

	replay := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/contests", bytes.NewReader(body))
		req.Header = signed.Header.Clone()
		return serve(handler.Launch, req)
	}

	testutil.AssertStatus(t, replay(), http.StatusCreated)

	w := replay()
	testutil.AssertStatus(t, w, http.StatusForbidden)
	var errResp models.ErrorResponse
	testutil.AssertJSON(t, w, &errResp)
	if errResp.Code != "AddressMismatch" {
		t.Errorf("Expected code AddressMismatch, got %q", errResp.Code)
	}

	if got := testutil.Balance(t, env.db, acc); got != 600 {
		t.Errorf("Owner balance is %d after replay, want 600", got)
	}
	counter, err := env.prog.GetCounter(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if counter.ContestCount != 1 {
		t.Errorf("Expected contest_count 1, got %d", counter.ContestCount)
	}
}

func TestGetContestHandler(t *testing.T) {
	env := setupEnv(t)
	env.initialize(t)
	launched, _, _ := env.launch(t, 1_000, 40, 3)
	handler := NewContestHandler(env.prog)

	t.Run("existing contest", func(t *testing.T) {
		addr := launched.Contest.Address.String()
		req := httptest.NewRequest("GET", "/contests/"+addr, nil)
		req.SetPathValue("contest", addr)
		w := httptest.NewRecorder()

		handler.GetContest(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ContestResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Title != "Test Contest" {
			t.Errorf("Expected title 'Test Contest', got %q", resp.Title)
		}
		if resp.PrizeAmount != 1_000 || resp.PercentageToArtist != 40 {
			t.Errorf("Unexpected prize terms: %d / %d", resp.PrizeAmount, resp.PercentageToArtist)
		}
		if len(resp.ArtworksVoteCounter) != 3 {
			t.Errorf("Expected tally of 3, got %d", len(resp.ArtworksVoteCounter))
		}
	})

	t.Run("unknown contest", func(t *testing.T) {
		addr := solana.NewWallet().PublicKey().String()
		req := httptest.NewRequest("GET", "/contests/"+addr, nil)
		req.SetPathValue("contest", addr)
		w := httptest.NewRecorder()

		handler.GetContest(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("malformed address", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/contests/not-an-address", nil)
		req.SetPathValue("contest", "not-an-address")
		w := httptest.NewRecorder()

		handler.GetContest(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestGetCounterHandler(t *testing.T) {
	env := setupEnv(t)
	handler := NewContestHandler(env.prog)

	w := httptest.NewRecorder()
	handler.GetCounter(w, httptest.NewRequest("GET", "/counter", nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	env.initialize(t)
	env.launch(t, 10, 50, 1)

	w = httptest.NewRecorder()
	handler.GetCounter(w, httptest.NewRequest("GET", "/counter", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var counter models.Counter
	testutil.AssertJSON(t, w, &counter)
	if counter.ContestCount != 1 {
		t.Errorf("Expected contest_count 1, got %d", counter.ContestCount)
	}
}

func TestWriteProgramError_HidesInternalDetails(t *testing.T) {
	w := httptest.NewRecorder()
	writeProgramError(w, httptest.NewRequest("GET", "/x", nil), sql.ErrConnDone)

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
	if strings.Contains(w.Body.String(), sql.ErrConnDone.Error()) {
		t.Errorf("Internal error leaked to client: %s", w.Body.String())
	}
}
