package assetscript

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"github.com/ravenlabs/raven-assets/asset"
	"github.com/ravenlabs/raven-assets/verifier"
)

// ErrorKind uniquely identifies the precondition an encoding request
// violated. Precondition failures are detected before any script bytes are
// produced.
type ErrorKind uint8

const (
	// ErrBadName represents an asset name that fails grammar validation.
	ErrBadName ErrorKind = iota

	// ErrBadAmount represents an amount outside the valid range of the
	// requested operation.
	ErrBadAmount

	// ErrBadDivisions represents a divisions value outside 0-8 (or, for
	// reissues, the "unchanged" sentinel).
	ErrBadDivisions

	// ErrBadAssociatedData represents associated data or memo data that
	// is not exactly 34 bytes.
	ErrBadAssociatedData

	// ErrBadVerifier represents a verifier string too long to embed.
	ErrBadVerifier

	// ErrBadHash represents an address hash that is not 20 bytes.
	ErrBadHash

	// ErrBadAddress represents a destination address that does not decode
	// for the requested network.
	ErrBadAddress
)

// String returns a human-readable description of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrBadName:
		return "invalid asset name"
	case ErrBadAmount:
		return "invalid asset amount"
	case ErrBadDivisions:
		return "invalid divisions"
	case ErrBadAssociatedData:
		return "invalid associated data"
	case ErrBadVerifier:
		return "invalid verifier string"
	case ErrBadHash:
		return "invalid address hash"
	case ErrBadAddress:
		return "invalid address"
	default:
		return "unknown"
	}
}

// Error represents an encoding precondition failure.
type Error struct {
	Kind  ErrorKind
	Inner error
}

func newErrKind(kind ErrorKind) Error {
	return Error{Kind: kind}
}

func newErrInner(kind ErrorKind, inner error) Error {
	return Error{Kind: kind, Inner: inner}
}

// Error returns the description of the precondition failure.
func (e Error) Error() string {
	if e.Inner == nil {
		return e.Kind.String()
	}
	return fmt.Errorf("%v: %w", e.Kind, e.Inner).Error()
}

// Unwrap returns the wrapped cause, if any.
func (e Error) Unwrap() error {
	return e.Inner
}

// AddressScript converts a destination address into its base spending
// script for the given network.
func AddressScript(addr string, net *chaincfg.Params) ([]byte, error) {
	decoded, err := btcutil.DecodeAddress(addr, net)
	if err != nil {
		return nil, newErrInner(ErrBadAddress, err)
	}
	script, err := txscript.PayToAddrScript(decoded)
	if err != nil {
		return nil, newErrInner(ErrBadAddress, err)
	}
	return script, nil
}

// appendAssetScript wraps an asset payload as a canonical push followed by a
// drop and appends it to the base spending script.
func appendAssetScript(baseScript, payload []byte) ([]byte, error) {
	assetScript, err := txscript.NewScriptBuilder().
		AddOp(OpRvnAsset).
		AddData(payload).
		AddOp(txscript.OP_DROP).
		Script()
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, baseScript...), assetScript...), nil
}

// namePayload starts a value payload: protocol prefix, operation
// discriminator, then the length prefixed name.
func namePayload(opType byte, name string) *bytes.Buffer {
	var buf bytes.Buffer
	buf.Write(assetPrefix)
	buf.WriteByte(opType)
	buf.WriteByte(byte(len(name)))
	buf.WriteString(name)
	return &buf
}

// GenerateCreateScript builds the output script that issues a new asset to
// the given address.
func GenerateCreateScript(addr string, net *chaincfg.Params, name string,
	amount uint64, divisions uint8, reissuable bool,
	associatedData []byte) ([]byte, error) {

	baseScript, err := AddressScript(addr, net)
	if err != nil {
		return nil, err
	}
	return GenerateCreateScriptFromBase(
		baseScript, name, amount, divisions, reissuable,
		associatedData,
	)
}

// GenerateCreateScriptFromBase builds a create script on top of a caller
// supplied base spending script. All preconditions are checked before any
// bytes are produced.
func GenerateCreateScriptFromBase(baseScript []byte, name string,
	amount uint64, divisions uint8, reissuable bool,
	associatedData []byte) ([]byte, error) {

	if err := asset.ValidateName(name); err != nil {
		return nil, newErrInner(ErrBadName, err)
	}
	if amount == 0 || amount > asset.MaxSatAmount {
		return nil, newErrKind(ErrBadAmount)
	}
	if divisions > asset.MaxDivisions {
		return nil, newErrKind(ErrBadDivisions)
	}
	if err := asset.ValidateAssociatedData(associatedData); err != nil {
		return nil, newErrInner(ErrBadAssociatedData, err)
	}

	buf := namePayload(typeCreate, name)
	_ = binary.Write(buf, binary.LittleEndian, amount)
	buf.WriteByte(divisions)
	buf.WriteByte(boolByte(reissuable))
	buf.WriteByte(boolByte(associatedData != nil))
	buf.Write(associatedData)

	return appendAssetScript(baseScript, buf.Bytes())
}

// GenerateReissueScript builds the output script that reissues an existing
// asset to the given address.
func GenerateReissueScript(addr string, net *chaincfg.Params, name string,
	amount uint64, divisions uint8, reissuable bool,
	associatedData []byte) ([]byte, error) {

	baseScript, err := AddressScript(addr, net)
	if err != nil {
		return nil, err
	}
	return GenerateReissueScriptFromBase(
		baseScript, name, amount, divisions, reissuable,
		associatedData,
	)
}

// GenerateReissueScriptFromBase builds a reissue script on top of a caller
// supplied base spending script. A zero amount is valid (a reissue may only
// change metadata) and divisions may be the "unchanged" sentinel. Unlike
// create payloads there is no has-data flag: presence of associated data is
// inferred from the payload length by decoders.
func GenerateReissueScriptFromBase(baseScript []byte, name string,
	amount uint64, divisions uint8, reissuable bool,
	associatedData []byte) ([]byte, error) {

	if err := asset.ValidateName(name); err != nil {
		return nil, newErrInner(ErrBadName, err)
	}
	if amount > asset.MaxSatAmount {
		return nil, newErrKind(ErrBadAmount)
	}
	if divisions > asset.MaxDivisions &&
		divisions != asset.DivisionsUnchanged {

		return nil, newErrKind(ErrBadDivisions)
	}
	if err := asset.ValidateAssociatedData(associatedData); err != nil {
		return nil, newErrInner(ErrBadAssociatedData, err)
	}

	buf := namePayload(typeReissue, name)
	_ = binary.Write(buf, binary.LittleEndian, amount)
	buf.WriteByte(divisions)
	buf.WriteByte(boolByte(reissuable))
	buf.Write(associatedData)

	return appendAssetScript(baseScript, buf.Bytes())
}

// GenerateOwnerScript builds the output script that sends an asset's
// ownership token to the given address.
func GenerateOwnerScript(addr string, net *chaincfg.Params,
	name string) ([]byte, error) {

	baseScript, err := AddressScript(addr, net)
	if err != nil {
		return nil, err
	}
	return GenerateOwnerScriptFromBase(baseScript, name)
}

// GenerateOwnerScriptFromBase builds an owner script on top of a caller
// supplied base spending script. The owner marker is appended to the name if
// it is not already present.
func GenerateOwnerScriptFromBase(baseScript []byte,
	name string) ([]byte, error) {

	if !strings.HasSuffix(name, asset.OwnerIdentifier) {
		name += asset.OwnerIdentifier
	}
	if err := asset.ValidateName(name); err != nil {
		return nil, newErrInner(ErrBadName, err)
	}

	return appendAssetScript(baseScript, namePayload(
		typeOwner, name,
	).Bytes())
}

// GenerateTransferScriptFromBase builds a transfer script on top of a caller
// supplied base spending script. The name is deliberately not validated:
// assets created by other implementations may carry names this library would
// refuse to create, and the wallet must still be able to move them.
func GenerateTransferScriptFromBase(baseScript []byte, name string,
	amount uint64, memo *Memo) ([]byte, error) {

	if memo != nil && len(memo.Data) != asset.AssociatedDataLength {
		return nil, newErrKind(ErrBadAssociatedData)
	}

	buf := namePayload(typeTransfer, name)
	_ = binary.Write(buf, binary.LittleEndian, amount)
	if memo != nil {
		buf.Write(memo.Data)
		if memo.Timestamp != nil {
			_ = binary.Write(
				buf, binary.LittleEndian, *memo.Timestamp,
			)
		}
	}

	return appendAssetScript(baseScript, buf.Bytes())
}

// TransferScriptExtraSize returns the number of bytes a memo-less transfer
// of the named asset adds on top of the base spending script. Wallets use
// this for fee estimation.
func TransferScriptExtraSize(name string) (int, error) {
	script, err := GenerateTransferScriptFromBase(nil, name, 0, nil)
	if err != nil {
		return 0, err
	}
	return len(script), nil
}

// GenerateNullTag builds the tag script that assigns (or removes, per flag)
// a qualifier from the address with the given 20 byte hash.
func GenerateNullTag(h160 []byte, name string, flag bool) ([]byte, error) {
	if err := asset.ValidateName(name); err != nil {
		return nil, newErrInner(ErrBadName, err)
	}
	if len(h160) != hash160Len {
		return nil, newErrKind(ErrBadHash)
	}

	var buf bytes.Buffer
	buf.WriteByte(byte(len(name)))
	buf.WriteString(name)
	buf.WriteByte(boolByte(flag))

	return txscript.NewScriptBuilder().
		AddOp(OpRvnAsset).
		AddData(h160).
		AddData(buf.Bytes()).
		Script()
}

// GenerateVerifierTag builds the tag script that publishes the verifier
// string of a restricted asset.
func GenerateVerifierTag(verifierString string) ([]byte, error) {
	if len(verifierString) == 0 ||
		len(verifierString) > verifier.MaxGenerateLength {

		return nil, newErrKind(ErrBadVerifier)
	}

	var buf bytes.Buffer
	buf.WriteByte(byte(len(verifierString)))
	buf.WriteString(verifierString)

	return txscript.NewScriptBuilder().
		AddOp(OpRvnAsset).
		AddOp(opFiller).
		AddData(buf.Bytes()).
		Script()
}

// GenerateFreezeTag builds the tag script that freezes (or unfreezes, per
// flag) all transfers of a restricted asset.
func GenerateFreezeTag(name string, flag bool) ([]byte, error) {
	if err := asset.ValidateTyped(name, asset.Restricted); err != nil {
		return nil, newErrInner(ErrBadName, err)
	}

	var buf bytes.Buffer
	buf.WriteByte(byte(len(name)))
	buf.WriteString(name)
	buf.WriteByte(boolByte(flag))

	return txscript.NewScriptBuilder().
		AddOp(OpRvnAsset).
		AddOp(opFiller).
		AddOp(opFiller).
		AddData(buf.Bytes()).
		Script()
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
