package assetscript

import (
	"encoding/binary"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/stretchr/testify/require"

	"github.com/ravenlabs/raven-assets/asset"
	"github.com/ravenlabs/raven-assets/internal/test"
	"github.com/ravenlabs/raven-assets/rvnparams"
)

// testAddress returns a fresh mainnet P2PKH address and its base spending
// script.
func testAddress(t *testing.T) (string, []byte) {
	t.Helper()

	addr, err := btcutil.NewAddressPubKeyHash(
		test.RandBytes(t, hash160Len), &rvnparams.MainNetParams,
	)
	require.NoError(t, err)

	baseScript, err := txscript.PayToAddrScript(addr)
	require.NoError(t, err)

	return addr.EncodeAddress(), baseScript
}

// requireKind asserts that an encoding error carries the expected
// precondition kind.
func requireKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()

	var encErr Error
	require.ErrorAs(t, err, &encErr)
	require.Equal(t, kind, encErr.Kind)
}

// TestGenerateTransferScript tests the exact byte layout of a memo-less
// transfer payload.
func TestGenerateTransferScript(t *testing.T) {
	t.Parallel()

	script, err := GenerateTransferScriptFromBase(nil, "FOO", 500, nil)
	require.NoError(t, err)

	// rvn 't' <len> FOO <amount LE>
	payload := append([]byte("rvnt"), 0x03)
	payload = append(payload, []byte("FOO")...)
	var amount [8]byte
	binary.LittleEndian.PutUint64(amount[:], 500)
	payload = append(payload, amount[:]...)

	expected := []byte{OpRvnAsset, byte(len(payload))}
	expected = append(expected, payload...)
	expected = append(expected, txscript.OP_DROP)
	require.Equal(t, expected, script)

	size, err := TransferScriptExtraSize("FOO")
	require.NoError(t, err)
	require.Equal(t, len(script), size)
}

// TestGenerateScriptAppendsToBase tests that value scripts are the base
// spending script with the asset portion appended.
func TestGenerateScriptAppendsToBase(t *testing.T) {
	t.Parallel()

	addr, baseScript := testAddress(t)

	script, err := GenerateCreateScript(
		addr, &rvnparams.MainNetParams, "FOO", 100*asset.Coin, 0,
		true, nil,
	)
	require.NoError(t, err)
	require.Equal(t, baseScript, script[:len(baseScript)])
	require.Equal(t, byte(OpRvnAsset), script[len(baseScript)])
}

// TestGenerateOwnerScript tests that the owner marker is appended when
// missing and that the payload carries only the name.
func TestGenerateOwnerScript(t *testing.T) {
	t.Parallel()

	withMarker, err := GenerateOwnerScriptFromBase(nil, "FOO!")
	require.NoError(t, err)

	withoutMarker, err := GenerateOwnerScriptFromBase(nil, "FOO")
	require.NoError(t, err)
	require.Equal(t, withMarker, withoutMarker)

	// rvn 'o' <len> FOO!
	payload := append([]byte("rvno"), 0x04)
	payload = append(payload, []byte("FOO!")...)
	expected := []byte{OpRvnAsset, byte(len(payload))}
	expected = append(expected, payload...)
	expected = append(expected, txscript.OP_DROP)
	require.Equal(t, expected, withMarker)
}

// TestEncodePreconditions tests that every precondition is rejected with a
// typed error before any bytes are produced.
func TestEncodePreconditions(t *testing.T) {
	t.Parallel()

	data := test.RandBytes(t, asset.AssociatedDataLength)

	// Names are validated for create, reissue, owner and the tag
	// scripts.
	_, err := GenerateCreateScriptFromBase(
		nil, "foo", asset.Coin, 0, true, nil,
	)
	requireKind(t, err, ErrBadName)

	_, err = GenerateReissueScriptFromBase(
		nil, "RVN", asset.Coin, 0, true, nil,
	)
	requireKind(t, err, ErrBadName)

	_, err = GenerateOwnerScriptFromBase(nil, "fo")
	requireKind(t, err, ErrBadName)

	_, err = GenerateFreezeTag("#KYC", true)
	requireKind(t, err, ErrBadName)

	// Amount bounds.
	_, err = GenerateCreateScriptFromBase(nil, "FOO", 0, 0, true, nil)
	requireKind(t, err, ErrBadAmount)

	_, err = GenerateCreateScriptFromBase(
		nil, "FOO", asset.MaxSatAmount+1, 0, true, nil,
	)
	requireKind(t, err, ErrBadAmount)

	// A zero amount reissue only changes metadata and is fine.
	_, err = GenerateReissueScriptFromBase(nil, "FOO", 0, 0, true, nil)
	require.NoError(t, err)

	// Divisions: create has no sentinel, reissue accepts it.
	_, err = GenerateCreateScriptFromBase(
		nil, "FOO", asset.Coin, asset.MaxDivisions+1, true, nil,
	)
	requireKind(t, err, ErrBadDivisions)

	_, err = GenerateCreateScriptFromBase(
		nil, "FOO", asset.Coin, asset.DivisionsUnchanged, true, nil,
	)
	requireKind(t, err, ErrBadDivisions)

	_, err = GenerateReissueScriptFromBase(
		nil, "FOO", asset.Coin, asset.DivisionsUnchanged, true, nil,
	)
	require.NoError(t, err)

	// Associated data must be exactly 34 bytes when present.
	_, err = GenerateCreateScriptFromBase(
		nil, "FOO", asset.Coin, 0, true, data[:33],
	)
	requireKind(t, err, ErrBadAssociatedData)

	_, err = GenerateTransferScriptFromBase(
		nil, "FOO", 500, &Memo{Data: data[:33]},
	)
	requireKind(t, err, ErrBadAssociatedData)

	// Null tags need a 20 byte hash.
	_, err = GenerateNullTag(data[:19], "#KYC", true)
	requireKind(t, err, ErrBadHash)

	// Verifier strings are capped for generation.
	_, err = GenerateVerifierTag("")
	requireKind(t, err, ErrBadVerifier)

	_, err = GenerateVerifierTag(string(make([]byte, 76)))
	requireKind(t, err, ErrBadVerifier)

	// Addresses must decode for the requested network.
	_, err = AddressScript("notanaddress", &rvnparams.MainNetParams)
	requireKind(t, err, ErrBadAddress)
}

// TestTransferSkipsNameValidation tests that transfers accept names the
// create path would reject: assets issued by other implementations must
// still be movable.
func TestTransferSkipsNameValidation(t *testing.T) {
	t.Parallel()

	script, err := GenerateTransferScriptFromBase(nil, "weird", 1, nil)
	require.NoError(t, err)

	info, err := ExtractVoutInfo(script)
	require.NoError(t, err)
	require.Equal(t, VoutNone, info.Type)

	// The marker sits at position 0 here because there is no base
	// script, which makes this a tag script layout; with a base script
	// in front the transfer decodes normally.
	script, err = GenerateTransferScriptFromBase(
		[]byte{txscript.OP_TRUE}, "weird", 1, nil,
	)
	require.NoError(t, err)

	info, err = ExtractVoutInfo(script)
	require.NoError(t, err)
	require.Equal(t, VoutTransfer, info.Type)
	require.Equal(t, "weird", info.Name)
}
