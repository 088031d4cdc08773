package engine

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer is a per-request signing identity derived from the credential that
// arrived with the request. It lives on the stack of one pipeline run and is
// never logged or stored.
type Signer struct {
	Key     *ecdsa.PrivateKey
	Address common.Address
}

// NewSigner parses a hex-encoded private key, with or without 0x prefix.
func NewSigner(credential string) (*Signer, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(credential), "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse signer key: %w", err)
	}
	return &Signer{
		Key:     key,
		Address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}
