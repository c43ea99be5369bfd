package main

import (
	"encoding/hex"
	"fmt"

	"github.com/emppress/cryptography/dh"
)

// runDH mirrors lab_4/cmd/main.go's handshake demo: two parties agree a
// safe-prime Diffie-Hellman group, exchange public keys, confirm they
// land on the same shared secret, then seal a message under the
// session key derived from it.
func runDH(log logger, bits int, message string) error {
	log.Infof("generating a %d-bit safe-prime Diffie-Hellman group", bits)
	params, err := dh.NewParameters(bits)
	if err != nil {
		return fmt.Errorf("generating parameters: %w", err)
	}

	alice, err := dh.NewParty("alice", params)
	if err != nil {
		return fmt.Errorf("creating alice: %w", err)
	}
	bob, err := dh.NewParty("bob", params)
	if err != nil {
		return fmt.Errorf("creating bob: %w", err)
	}

	if err := alice.ExchangeKeys(bob.Keys.PublicKey); err != nil {
		return fmt.Errorf("alice exchanging keys: %w", err)
	}
	if err := bob.ExchangeKeys(alice.Keys.PublicKey); err != nil {
		return fmt.Errorf("bob exchanging keys: %w", err)
	}

	if alice.SharedKey.Cmp(bob.SharedKey) != 0 {
		return fmt.Errorf("alice and bob disagree on the shared secret")
	}
	log.Infof("shared secret established")

	sessionKey := dh.DeriveSessionKey(alice.SharedKeyBytes(32), 32)
	fmt.Printf("session key: %s\n", hex.EncodeToString(sessionKey))

	sealed, err := dh.SealSession([]byte(message), sessionKey)
	if err != nil {
		return fmt.Errorf("sealing message: %w", err)
	}
	fmt.Printf("sealed:      %s\n", hex.EncodeToString(sealed))

	opened, err := dh.OpenSession(sealed, dh.DeriveSessionKey(bob.SharedKeyBytes(32), 32))
	if err != nil {
		return fmt.Errorf("bob opening message: %w", err)
	}
	fmt.Printf("recovered:   %s\n", string(opened))
	return nil
}
