// Package asset implements the naming grammar and metadata rules of the
// Ravencoin asset protocol. Asset names are classified into one of eight
// taxonomies, each with its own character set and length rules, and the
// package exposes validators that report the exact rule a candidate name
// violates.
package asset

const (
	// MaxNameLength is the maximum byte length of a tagged asset name
	// (unique, message channel, owner, qualifier or restricted). Root and
	// sub asset names may be at most MaxNameLength-1 bytes so that the
	// owner token, which appends a single marker character, still fits.
	MaxNameLength = 32

	// MaxTotalNameLength is the absolute cap applied to any candidate
	// name before it is classified. Scripts never carry a name longer
	// than this.
	MaxTotalNameLength = 40

	// MaxChannelNameLength is the maximum byte length of the channel part
	// of a message channel name, i.e. everything after the '~' delimiter.
	MaxChannelNameLength = 12

	// MinAssetLength is the minimum byte length of a root, qualifier or
	// restricted name. Sub asset segments may be as short as a single
	// character.
	MinAssetLength = 3

	// AssociatedDataLength is the exact byte length of the optional
	// content-addressed digest (an IPFS hash) that can be attached to an
	// asset at creation or reissuance.
	AssociatedDataLength = 34
)

const (
	// Coin is the number of base units (satoshis) in one whole coin.
	Coin = 100_000_000

	// DefaultAmountMax is the maximum number of whole units a normal
	// asset may be issued with.
	DefaultAmountMax = 21_000_000_000

	// UniqueAmountMax is the fixed issuance amount of a unique asset.
	UniqueAmountMax = 1

	// QualifierAmountMax is the maximum number of whole units a qualifier
	// asset may be issued with.
	QualifierAmountMax = 10

	// MaxSatAmount is the maximum asset amount expressible in base units.
	MaxSatAmount = DefaultAmountMax * Coin
)

const (
	// MaxDivisions is the largest number of decimal places an asset can
	// be divided into.
	MaxDivisions = 8

	// DivisionsUnchanged is the sentinel divisions value used by reissue
	// operations to signal that the current divisibility should be kept.
	// This is a protocol level convention; create operations have no such
	// sentinel.
	DivisionsUnchanged = 0xff
)

const (
	// OwnerIdentifier is the marker character appended to a root or sub
	// asset name to denote its ownership token.
	OwnerIdentifier = "!"

	// SubNameDelimiter separates the segments of a sub asset name.
	SubNameDelimiter = "/"

	// UniqueTagDelimiter separates a root/sub name from its unique tag.
	UniqueTagDelimiter = "#"

	// MsgChannelDelimiter separates a root/sub name from its message
	// channel name.
	MsgChannelDelimiter = "~"

	// QualifierTagDelimiter is the leading marker of qualifier names. It
	// is also the character stripped from verifier strings before they
	// are parsed.
	QualifierTagDelimiter = "#"

	// RestrictedTagDelimiter is the leading marker of restricted names.
	RestrictedTagDelimiter = "$"
)

// Type denotes the taxonomy an asset name belongs to. Every well formed name
// maps to exactly one taxonomy.
type Type uint8

const (
	// Root is a top level asset name such as "CARD".
	Root Type = iota

	// Sub is a '/' delimited child of a root asset, such as "CARD/ACE".
	Sub

	// MsgChannel is a messaging channel under a root or sub asset, such
	// as "CARD~NEWS".
	MsgChannel

	// Owner is the ownership token of a root or sub asset, such as
	// "CARD!".
	Owner

	// Unique is a one of a kind asset under a root or sub asset, such as
	// "CARD#SPADES.QUEEN".
	Unique

	// Qualifier is a tagging asset, such as "#KYC".
	Qualifier

	// SubQualifier is a '/' delimited child of a qualifier, such as
	// "#KYC/#EXCHANGE".
	SubQualifier

	// Restricted is an asset whose transfers are gated by a verifier
	// string, such as "$TOKEN".
	Restricted
)

// String returns a human-readable description of the asset type.
func (t Type) String() string {
	switch t {
	case Root:
		return "root"
	case Sub:
		return "sub"
	case MsgChannel:
		return "message channel"
	case Owner:
		return "owner"
	case Unique:
		return "unique"
	case Qualifier:
		return "qualifier"
	case SubQualifier:
		return "sub qualifier"
	case Restricted:
		return "restricted"
	default:
		return "<unknown>"
	}
}
