package dh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeAgreesOnSameSecret(t *testing.T) {
	params, err := NewParameters(256)
	require.NoError(t, err)

	alice, err := NewParty("alice", params)
	require.NoError(t, err)
	bob, err := NewParty("bob", params)
	require.NoError(t, err)

	require.NoError(t, alice.ExchangeKeys(bob.Keys.PublicKey))
	require.NoError(t, bob.ExchangeKeys(alice.Keys.PublicKey))

	assert.Equal(t, 0, alice.SharedKey.Cmp(bob.SharedKey))
}

func TestComputeSharedSecretRejectsOutOfRangeKey(t *testing.T) {
	params, err := NewParameters(256)
	require.NoError(t, err)
	priv, err := params.GeneratePrivateKey()
	require.NoError(t, err)

	_, err = params.ComputeSharedSecret(priv, params.Prime)
	assert.Error(t, err)
}

func TestSessionSealOpenRoundTrip(t *testing.T) {
	params, err := NewParameters(256)
	require.NoError(t, err)
	alice, err := NewParty("alice", params)
	require.NoError(t, err)
	bob, err := NewParty("bob", params)
	require.NoError(t, err)
	require.NoError(t, alice.ExchangeKeys(bob.Keys.PublicKey))
	require.NoError(t, bob.ExchangeKeys(alice.Keys.PublicKey))

	key := DeriveSessionKey(alice.SharedKeyBytes(32), 32)
	ct, err := SealSession([]byte("top secret message"), key)
	require.NoError(t, err)

	otherKey := DeriveSessionKey(bob.SharedKeyBytes(32), 32)
	pt, err := OpenSession(ct, otherKey)
	require.NoError(t, err)
	assert.Equal(t, "top secret message", string(pt))
}
