// Package test houses small helpers shared by the unit tests of the asset
// packages.
package test

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

// RandBytes returns a slice of num random bytes.
func RandBytes(t *testing.T, num int) []byte {
	t.Helper()

	randBytes := make([]byte, num)
	_, err := rand.Read(randBytes)
	require.NoError(t, err)

	return randBytes
}

// RandUint64 returns a random amount below the given maximum.
func RandUint64(t *testing.T, max uint64) uint64 {
	t.Helper()

	n, err := rand.Int(rand.Reader, new(big.Int).SetUint64(max))
	require.NoError(t, err)

	return n.Uint64()
}

// RandBool rolls a random boolean.
func RandBool(t *testing.T) bool {
	t.Helper()

	return RandBytes(t, 1)[0]%2 == 0
}
