// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

const (
	HeaderSigner    = "X-Signer"
	HeaderSignature = "X-Signature"
)

var (
	ErrMissingSignature = errors.New("missing signer or signature header")
	ErrInvalidSigner    = errors.New("invalid signer public key")
	ErrInvalidSignature = errors.New("invalid signature")
)

// SigningMessage is the byte string a client signs for a request:
// METHOD + " " + PATH + "\n" + body.
func SigningMessage(method, path string, body []byte) []byte {
	msg := make([]byte, 0, len(method)+len(path)+2+len(body))
	msg = append(msg, method...)
	msg = append(msg, ' ')
	msg = append(msg, path...)
	msg = append(msg, '\n')
	return append(msg, body...)
}

// Verify checks a base58 ed25519 signature of message by a base58 public
// key and returns the signer.
func Verify(signerBase58, signatureBase58 string, message []byte) (solana.PublicKey, error) {
	if signerBase58 == "" || signatureBase58 == "" {
		return solana.PublicKey{}, ErrMissingSignature
	}

	publicKeyBytes, err := base58.Decode(signerBase58)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: %v", ErrInvalidSigner, err)
	}
	if len(publicKeyBytes) != ed25519.PublicKeySize {
		return solana.PublicKey{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSigner, ed25519.PublicKeySize, len(publicKeyBytes))
	}

	signatureBytes, err := base58.Decode(signatureBase58)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if len(signatureBytes) != ed25519.SignatureSize {
		return solana.PublicKey{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSignature, ed25519.SignatureSize, len(signatureBytes))
	}

	if !ed25519.Verify(ed25519.PublicKey(publicKeyBytes), message, signatureBytes) {
		return solana.PublicKey{}, ErrInvalidSignature
	}
	return solana.PublicKeyFromBytes(publicKeyBytes), nil
}

// VerifyRequest authenticates r, whose body has already been read into body.
func VerifyRequest(r *http.Request, body []byte) (solana.PublicKey, error) {
	return Verify(
		r.Header.Get(HeaderSigner),
		r.Header.Get(HeaderSignature),
		SigningMessage(r.Method, r.URL.Path, body),
	)
}

// SignRequest sets the signer and signature headers on r for body.
func SignRequest(r *http.Request, key solana.PrivateKey, body []byte) error {
	sig, err := key.Sign(SigningMessage(r.Method, r.URL.Path, body))
	if err != nil {
		return fmt.Errorf("failed to sign request: %w", err)
	}
	r.Header.Set(HeaderSigner, key.PublicKey().String())
	r.Header.Set(HeaderSignature, sig.String())
	return nil
}
