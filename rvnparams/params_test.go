package rvnparams

import (
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/stretchr/testify/require"
)

// TestMainNetAddressRoundTrip tests that mainnet P2PKH and P2SH addresses
// encode with the expected version prefix and decode back to the same hash.
func TestMainNetAddressRoundTrip(t *testing.T) {
	t.Parallel()

	hash := make([]byte, 20)
	for i := range hash {
		hash[i] = byte(i)
	}

	pkh, err := btcutil.NewAddressPubKeyHash(hash, &MainNetParams)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(pkh.EncodeAddress(), "R"))

	decoded, err := btcutil.DecodeAddress(
		pkh.EncodeAddress(), &MainNetParams,
	)
	require.NoError(t, err)
	require.True(t, decoded.IsForNet(&MainNetParams))
	require.Equal(t, hash, decoded.ScriptAddress())

	sh, err := btcutil.NewAddressScriptHashFromHash(hash, &MainNetParams)
	require.NoError(t, err)

	decoded, err = btcutil.DecodeAddress(
		sh.EncodeAddress(), &MainNetParams,
	)
	require.NoError(t, err)
	require.True(t, decoded.IsForNet(&MainNetParams))
	require.Equal(t, hash, decoded.ScriptAddress())
}

// TestNetworkSeparation tests that a mainnet address does not validate for
// the test network.
func TestNetworkSeparation(t *testing.T) {
	t.Parallel()

	hash := make([]byte, 20)
	pkh, err := btcutil.NewAddressPubKeyHash(hash, &MainNetParams)
	require.NoError(t, err)

	decoded, err := btcutil.DecodeAddress(
		pkh.EncodeAddress(), &TestNetParams,
	)
	if err == nil {
		require.False(t, decoded.IsForNet(&TestNetParams))
	}

	testPkh, err := btcutil.NewAddressPubKeyHash(hash, &TestNetParams)
	require.NoError(t, err)
	require.NotEqual(t, pkh.EncodeAddress(), testPkh.EncodeAddress())
	require.True(t, testPkh.IsForNet(&TestNetParams))
}
