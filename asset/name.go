package asset

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ravenlabs/raven-assets/fn"
)

var (
	// ErrNameTooLong is returned when a name, or one of its parts, is
	// longer than the taxonomy allows.
	ErrNameTooLong = errors.New("name is too long")

	// ErrNameTooShort is returned when a name is shorter than the
	// taxonomy allows.
	ErrNameTooShort = errors.New("name is too short")

	// ErrBadCharacters is returned when a name contains characters
	// outside the taxonomy's character set, or places '.' or '_' at a
	// position where they are not allowed.
	ErrBadCharacters = errors.New("name contains invalid characters")

	// ErrReservedName is returned when a name collides with one of the
	// network currency's reserved names.
	ErrReservedName = errors.New("name is reserved")

	// ErrWrongAssetType is returned when a name does not carry the
	// delimiters and markers of the taxonomy it was validated against.
	ErrWrongAssetType = errors.New("name does not match the asset type")
)

// The rule patterns below are compiled once at startup. They mirror the
// consensus rules of the reference node, which validates names with the same
// set of anchored expressions.
var (
	rootNameRx   = regexp.MustCompile(`^[A-Z0-9._]{3,}$`)
	subNameRx    = regexp.MustCompile(`^[A-Z0-9._]+$`)
	uniqueTagRx  = regexp.MustCompile(`^[-A-Za-z0-9@$%&*()\[\]{}_.?:]+$`)
	msgChannelRx = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	qualifierRx  = regexp.MustCompile(`^#[A-Z0-9._]{3,}$`)
	subQualRx    = regexp.MustCompile(`^#[A-Z0-9._]+$`)
	restrictedRx = regexp.MustCompile(`^\$[A-Z0-9._]{3,}$`)

	doublePunctuationRx   = regexp.MustCompile(`[._]{2}`)
	leadingPunctuationRx  = regexp.MustCompile(`^[._]`)
	trailingPunctuationRx = regexp.MustCompile(`[._]$`)
	taggedLeadingPunctRx  = regexp.MustCompile(`^[#$][._]`)

	// reservedNameRx matches the network currency's own ticker and names,
	// bare or behind a qualifier/restricted marker. Assets may never
	// squat on these.
	reservedNameRx = regexp.MustCompile(
		`^[#$]?(RVN|RAVEN|RAVENCOIN|RVNS|RAVENS|RAVENCOINS)$`,
	)
)

// Classification indicators, tried in strict priority order. A name that
// matches none of them is a sub asset if it has a '/' delimited segment under
// a valid root, and a root asset otherwise.
var (
	uniqueIndicatorRx     = regexp.MustCompile(`^[^^~#!]+#[^~#!/]+$`)
	msgChannelIndicatorRx = regexp.MustCompile(`^[^^~#!]+~[^~#!/]+$`)
	ownerIndicatorRx      = regexp.MustCompile(`^[^^~#!]+!$`)
	qualifierIndicatorRx  = regexp.MustCompile(`^#[A-Z0-9._]{3,}$`)
	subQualIndicatorRx    = regexp.MustCompile(`^#[A-Z0-9._]+/#[A-Z0-9._]+$`)
	restrictedIndicatorRx = regexp.MustCompile(`^\$[A-Z0-9._]{3,}$`)
)

// matchesAny reports whether any of the given patterns matches the name.
func matchesAny(name string, patterns []*regexp.Regexp) bool {
	return fn.Any(patterns, func(rx *regexp.Regexp) bool {
		return rx.MatchString(name)
	})
}

// isReserved reports whether the name collides with a reserved currency name.
func isReserved(name string) bool {
	return reservedNameRx.MatchString(name)
}

func isRootNameValid(name string) bool {
	return rootNameRx.MatchString(name) && !isReserved(name) &&
		!matchesAny(name, []*regexp.Regexp{
			doublePunctuationRx, leadingPunctuationRx,
			trailingPunctuationRx,
		})
}

func isSubNameValid(name string) bool {
	return subNameRx.MatchString(name) &&
		!matchesAny(name, []*regexp.Regexp{
			doublePunctuationRx, leadingPunctuationRx,
			trailingPunctuationRx,
		})
}

func isUniqueTagValid(tag string) bool {
	return uniqueTagRx.MatchString(tag)
}

func isMsgChannelTagValid(tag string) bool {
	return msgChannelRx.MatchString(tag) &&
		!matchesAny(tag, []*regexp.Regexp{
			doublePunctuationRx, leadingPunctuationRx,
			trailingPunctuationRx,
		})
}

func isQualifierNameValid(name string) bool {
	return qualifierRx.MatchString(name) && !isReserved(name) &&
		!matchesAny(name, []*regexp.Regexp{
			doublePunctuationRx, taggedLeadingPunctRx,
			trailingPunctuationRx,
		})
}

func isSubQualifierValid(name string) bool {
	return subQualRx.MatchString(name) &&
		!matchesAny(name, []*regexp.Regexp{
			doublePunctuationRx, leadingPunctuationRx,
			trailingPunctuationRx,
		})
}

func isRestrictedNameValid(name string) bool {
	return restrictedRx.MatchString(name) && !isReserved(name) &&
		!matchesAny(name, []*regexp.Regexp{
			doublePunctuationRx, leadingPunctuationRx,
			trailingPunctuationRx,
		})
}

// isNameValidBeforeTag reports whether the part of a name that precedes a tag
// delimiter is a valid root or sub asset name: the first '/' delimited
// segment must be a valid root name, every later segment a valid sub name.
func isNameValidBeforeTag(name string) bool {
	parts := strings.Split(name, SubNameDelimiter)
	if !isRootNameValid(parts[0]) {
		return false
	}
	return fn.All(parts[1:], isSubNameValid)
}

// isQualifierValidBeforeTag reports whether a qualifier or sub qualifier name
// is valid as a whole: a valid qualifier head and at most one '/#' child.
func isQualifierValidBeforeTag(name string) bool {
	parts := strings.Split(name, SubNameDelimiter)
	if !isQualifierNameValid(parts[0]) {
		return false
	}
	if len(parts) > 2 {
		return false
	}
	return fn.All(parts[1:], isSubQualifierValid)
}

// isSubAssetName reports whether the name is a '/' delimited child of a valid
// root asset.
func isSubAssetName(name string) bool {
	parts := strings.Split(name, SubNameDelimiter)
	return isRootNameValid(parts[0]) && len(parts) > 1
}

// Classify maps a candidate name to the taxonomy it would belong to if it
// were valid. Classification is total: every string maps to exactly one
// taxonomy, though the result may still fail ValidateTyped. The indicator
// patterns are tried in strict priority order.
func Classify(name string) Type {
	switch {
	case uniqueIndicatorRx.MatchString(name):
		return Unique
	case msgChannelIndicatorRx.MatchString(name):
		return MsgChannel
	case ownerIndicatorRx.MatchString(name):
		return Owner
	case qualifierIndicatorRx.MatchString(name):
		return Qualifier
	case subQualIndicatorRx.MatchString(name):
		return SubQualifier
	case restrictedIndicatorRx.MatchString(name):
		return Restricted
	case isSubAssetName(name):
		return Sub
	default:
		return Root
	}
}

// ValidateName checks a candidate name against the rules of the taxonomy it
// classifies into. A nil return means the name can be used on chain. The
// returned error wraps one of the Err sentinels above and spells out the
// exact rule that failed, suitable for direct display to the user.
func ValidateName(name string) error {
	if len(name) > MaxTotalNameLength {
		return fmt.Errorf("%w: names cannot exceed %d characters",
			ErrNameTooLong, MaxTotalNameLength)
	}
	return ValidateTyped(name, Classify(name))
}

// ValidateTyped checks a candidate name against the rules of a specific
// taxonomy. A name valid for one taxonomy is generally invalid for every
// other one.
func ValidateTyped(name string, assetType Type) error {
	switch assetType {
	case Root, Sub:
		return validateRootSub(name, assetType)

	case Unique:
		if len(name) > MaxNameLength {
			return errTaggedTooLong()
		}
		parts := strings.Split(name, UniqueTagDelimiter)
		if len(parts) == 1 {
			return fmt.Errorf("%w: not a unique asset",
				ErrWrongAssetType)
		}
		if !isNameValidBeforeTag(parts[0]) ||
			!isUniqueTagValid(parts[len(parts)-1]) {

			return fmt.Errorf("%w: valid unique tag characters "+
				"are A-Z a-z 0-9 @ $ %% & * ( ) [ ] { } _ . "+
				"? : -", ErrBadCharacters)
		}
		return nil

	case MsgChannel:
		if len(name) > MaxNameLength {
			return errTaggedTooLong()
		}
		parts := strings.Split(name, MsgChannelDelimiter)
		if len(parts) == 1 {
			return fmt.Errorf("%w: not a message channel",
				ErrWrongAssetType)
		}
		if len(parts[len(parts)-1]) > MaxChannelNameLength {
			return fmt.Errorf("%w: channel names cannot exceed "+
				"%d characters", ErrNameTooLong,
				MaxChannelNameLength)
		}
		if !isNameValidBeforeTag(parts[0]) ||
			!isMsgChannelTagValid(parts[len(parts)-1]) {

			return fmt.Errorf("%w: valid channel characters are "+
				"A-Z a-z 0-9 _ and '.' or '_' cannot be the "+
				"first or last character", ErrBadCharacters)
		}
		return nil

	case Owner:
		if len(name) > MaxNameLength {
			return errTaggedTooLong()
		}
		if !strings.HasSuffix(name, OwnerIdentifier) {
			return fmt.Errorf("%w: not an owner asset",
				ErrWrongAssetType)
		}
		prefix := name[:len(name)-1]
		if isReserved(prefix) {
			return errReserved(prefix)
		}
		if !isNameValidBeforeTag(prefix) {
			return fmt.Errorf("%w: valid characters are A-Z 0-9 "+
				"_ . and '.' or '_' cannot be the first or "+
				"last character", ErrBadCharacters)
		}
		return nil

	case Qualifier, SubQualifier:
		if len(name) > MaxNameLength {
			return errTaggedTooLong()
		}
		hasDelimiter := strings.Contains(name, SubNameDelimiter)
		if assetType == Qualifier && hasDelimiter {
			return fmt.Errorf("%w: not a qualifier",
				ErrWrongAssetType)
		}
		if assetType == SubQualifier && !hasDelimiter {
			return fmt.Errorf("%w: not a sub qualifier",
				ErrWrongAssetType)
		}
		if len(name) < MinAssetLength+1 {
			return fmt.Errorf("%w: qualifiers must have at least "+
				"%d characters after the leading '#'",
				ErrNameTooShort, MinAssetLength)
		}
		if isReserved(name) {
			return errReserved(name)
		}
		if !isQualifierValidBeforeTag(name) {
			return fmt.Errorf("%w: '#' must be the first "+
				"character, the rest must be A-Z 0-9 _ . and "+
				"'.' or '_' cannot be the first or last "+
				"character", ErrBadCharacters)
		}
		return nil

	case Restricted:
		if len(name) > MaxNameLength {
			return errTaggedTooLong()
		}
		if isReserved(name) {
			return errReserved(name)
		}
		if !isRestrictedNameValid(name) {
			return fmt.Errorf("%w: '$' must be the first "+
				"character, the rest must be A-Z 0-9 _ . and "+
				"'.' or '_' cannot be the first or last "+
				"character", ErrBadCharacters)
		}
		return nil

	default:
		return fmt.Errorf("unknown asset type %d", assetType)
	}
}

func validateRootSub(name string, assetType Type) error {
	hasDelimiter := strings.Contains(name, SubNameDelimiter)
	if assetType == Sub && !hasDelimiter {
		return fmt.Errorf("%w: not a sub asset", ErrWrongAssetType)
	}
	if assetType == Root && hasDelimiter {
		return fmt.Errorf("%w: not a root asset", ErrWrongAssetType)
	}
	if len(name) > MaxNameLength-1 {
		return fmt.Errorf("%w: names cannot exceed %d characters",
			ErrNameTooLong, MaxNameLength-1)
	}
	if !isSubAssetName(name) && len(name) < MinAssetLength {
		return fmt.Errorf("%w: names must have at least %d "+
			"characters", ErrNameTooShort, MinAssetLength)
	}
	if isReserved(name) {
		return errReserved(name)
	}
	if !isNameValidBeforeTag(name) {
		return fmt.Errorf("%w: valid characters are A-Z 0-9 _ . and "+
			"'.' or '_' cannot be the first or last character",
			ErrBadCharacters)
	}
	return nil
}

func errTaggedTooLong() error {
	return fmt.Errorf("%w: names cannot exceed %d characters",
		ErrNameTooLong, MaxNameLength)
}

func errReserved(name string) error {
	return fmt.Errorf("%w: %s is reserved for the network currency",
		ErrReservedName, name)
}
