// Package assetscript encodes and decodes the asset payloads carried inside
// ordinary Ravencoin output scripts. Value operations (create, reissue,
// owner, transfer) are appended to a base spending script as a single
// OP_RVN_ASSET push-then-drop; tag operations (null, verifier, freeze) start
// the script at the marker directly.
//
// The decoder is built for adversarial input: any third party script may
// coincidentally contain the marker byte, so running out of payload mid
// structure is reported as "no asset information", never as a failure.
package assetscript

import (
	"github.com/btcsuite/btcd/txscript"

	"github.com/ravenlabs/raven-assets/asset"
)

const (
	// OpRvnAsset is the script opcode that introduces an asset payload.
	// It sits in the range Bitcoin leaves undefined.
	OpRvnAsset = 0xc0

	// opFiller is the reserved opcode used as filler after the marker in
	// tag scripts: one filler precedes a verifier tag, two precede a
	// freeze tag.
	opFiller = txscript.OP_RESERVED

	// hash160Len is the byte length of the address hash carried by null
	// tag scripts.
	hash160Len = 20
)

// assetPrefix is the fixed ASCII protocol prefix of value script payloads.
var assetPrefix = []byte("rvn")

// Value script operation discriminators, following the protocol prefix.
const (
	typeCreate   = 'q'
	typeOwner    = 'o'
	typeTransfer = 't'
	typeReissue  = 'r'
)

// VoutType denotes the kind of asset information decoded from an output
// script.
type VoutType uint8

const (
	// VoutNone means the script carries no recognizable asset structure.
	VoutNone VoutType = iota

	// VoutTransfer moves an existing asset amount.
	VoutTransfer

	// VoutCreate issues a new asset.
	VoutCreate

	// VoutOwner carries the ownership token of an asset.
	VoutOwner

	// VoutReissue changes the issued amount or metadata of an asset.
	VoutReissue

	// VoutNull tags or untags a specific address hash with a qualifier.
	VoutNull

	// VoutVerifier publishes the verifier string of a restricted asset.
	VoutVerifier

	// VoutFreeze freezes or unfreezes a restricted asset globally.
	VoutFreeze
)

// String returns a human-readable description of the vout type.
func (t VoutType) String() string {
	switch t {
	case VoutNone:
		return "none"
	case VoutTransfer:
		return "transfer"
	case VoutCreate:
		return "create"
	case VoutOwner:
		return "owner"
	case VoutReissue:
		return "reissue"
	case VoutNull:
		return "null tag"
	case VoutVerifier:
		return "verifier tag"
	case VoutFreeze:
		return "freeze tag"
	default:
		return "<unknown>"
	}
}

// Memo is the optional annotation a transfer payload may carry: a 34 byte
// content addressed digest plus an optional timestamp.
type Memo struct {
	// Data is the 34 byte digest.
	Data []byte

	// Timestamp is the optional memo timestamp in unix seconds. Nil when
	// the payload carried no timestamp.
	Timestamp *uint64
}

// VoutInfo is the structured asset information recovered from a single
// output script. Which fields are meaningful depends on Type; the variant
// set is closed, so consumers dispatch with an exhaustive switch.
type VoutInfo struct {
	// Type is the decoded operation kind. VoutNone means no asset
	// structure was found.
	Type VoutType

	// WellFormed reports whether the payload was embedded in the single
	// canonical push-then-drop form with no extra trailing bytes. Tag
	// variants and VoutNone are well formed by construction.
	WellFormed bool

	// Name is the asset name. Unset for VoutNone and VoutVerifier.
	Name string

	// Amount is the moved or issued amount in base units. Owner tokens
	// always carry one whole coin unit.
	Amount uint64

	// Divisions and Reissuable are the issuance parameters of create and
	// reissue operations.
	Divisions  uint8
	Reissuable bool

	// AssociatedData is the optional 34 byte digest of create and
	// reissue operations. Nil when absent.
	AssociatedData []byte

	// Memo is the optional transfer annotation. Nil when absent.
	Memo *Memo

	// H160 is the 20 byte address hash a null tag applies to.
	H160 []byte

	// Flag is the boolean payload of null and freeze tags.
	Flag bool

	// VerifierString is the raw verifier expression of a verifier tag.
	VerifierString string
}

// IsTransferable reports whether the vout moves an asset balance that a
// wallet can spend onward.
func (v *VoutInfo) IsTransferable() bool {
	switch v.Type {
	case VoutCreate, VoutOwner, VoutTransfer, VoutReissue:
		return true
	default:
		return false
	}
}

// IsDeterministic reports whether re-encoding the decoded information would
// reproduce the original script byte for byte. Tag variants always are;
// transfers only without a memo, and only when the script was well formed.
func (v *VoutInfo) IsDeterministic() bool {
	switch v.Type {
	case VoutNull, VoutVerifier, VoutFreeze:
		return true
	case VoutTransfer:
		return v.Memo == nil && v.WellFormed
	case VoutOwner, VoutNone:
		return v.WellFormed
	default:
		return false
	}
}

// IsTag reports whether the vout is a tag script rather than a value script.
func (v *VoutInfo) IsTag() bool {
	switch v.Type {
	case VoutNull, VoutVerifier, VoutFreeze:
		return true
	default:
		return false
	}
}

// noAssetInfo is the sentinel result for scripts without asset information.
func noAssetInfo() *VoutInfo {
	return &VoutInfo{Type: VoutNone, WellFormed: true}
}

// ownerInfo builds the fixed-amount owner variant.
func ownerInfo(wellFormed bool, name string) *VoutInfo {
	return &VoutInfo{
		Type:       VoutOwner,
		WellFormed: wellFormed,
		Name:       name,
		Amount:     asset.Coin,
	}
}
