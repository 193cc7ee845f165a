// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

func TestSigningMessage(t *testing.T) {
	got := string(SigningMessage("POST", "/contests", []byte(`{"a":1}`)))
	want := "POST /contests\n{\"a\":1}"
	if got != want {
		t.Errorf("SigningMessage() = %q, want %q", got, want)
	}

	if got := string(SigningMessage("POST", "/initialize", nil)); got != "POST /initialize\n" {
		t.Errorf("SigningMessage() with empty body = %q", got)
	}
}

func TestVerify(t *testing.T) {
	key := solana.NewWallet().PrivateKey
	other := solana.NewWallet().PrivateKey
	msg := SigningMessage("POST", "/contests/abc/votes", []byte(`{"voted_artwork_id":0}`))

	sig, err := key.Sign(msg)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		signer    string
		signature string
		message   []byte
		wantErr   error
	}{
		{"valid", key.PublicKey().String(), sig.String(), msg, nil},
		{"missing signer", "", sig.String(), msg, ErrMissingSignature},
		{"missing signature", key.PublicKey().String(), "", msg, ErrMissingSignature},
		{"signer not base58", "0OIl", sig.String(), msg, ErrInvalidSigner},
		{"signer wrong length", base58.Encode([]byte("short")), sig.String(), msg, ErrInvalidSigner},
		{"signature wrong length", key.PublicKey().String(), base58.Encode([]byte("short")), msg, ErrInvalidSignature},
		{"wrong signer", other.PublicKey().String(), sig.String(), msg, ErrInvalidSignature},
		{"tampered message", key.PublicKey().String(), sig.String(), []byte(string(msg) + " "), ErrInvalidSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signer, err := Verify(tt.signer, tt.signature, tt.message)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Verify() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if !signer.Equals(key.PublicKey()) {
				t.Errorf("Verify() signer = %s, want %s", signer, key.PublicKey())
			}
		})
	}
}

func TestSignRequest_RoundTrip(t *testing.T) {
	key := solana.NewWallet().PrivateKey
	body := []byte(`{"prize_amount":100}`)

	req := httptest.NewRequest("POST", "/contests", strings.NewReader(string(body)))
	if err := SignRequest(req, key, body); err != nil {
		t.Fatal(err)
	}

	if req.Header.Get(HeaderSigner) != key.PublicKey().String() {
		t.Errorf("signer header = %q", req.Header.Get(HeaderSigner))
	}

	signer, err := VerifyRequest(req, body)
	if err != nil {
		t.Fatalf("VerifyRequest() error = %v", err)
	}
	if !signer.Equals(key.PublicKey()) {
		t.Errorf("VerifyRequest() signer = %s", signer)
	}

	// The path is part of the message.
	moved := httptest.NewRequest("POST", "/initialize", strings.NewReader(string(body)))
	moved.Header = req.Header.Clone()
	if _, err := VerifyRequest(moved, body); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("signature replayed on another path: err = %v", err)
	}
}
