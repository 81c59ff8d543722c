package asset

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrBadCirculation is returned when a metadata record carries a non
	// positive circulating amount.
	ErrBadCirculation = errors.New("sats in circulation must be positive")

	// ErrBadDivisions is returned when a divisions value is outside the
	// valid 0-8 range.
	ErrBadDivisions = errors.New("divisions must be between 0 and 8")
)

// Metadata is the persisted record a wallet keeps for every asset it knows
// about. It is not a wire format; the fields are populated from decoded
// create and reissue scripts.
type Metadata struct {
	// SatsInCirculation is the total issued amount in base units. Always
	// positive for an asset that exists.
	SatsInCirculation uint64

	// Divisions is the number of decimal places the asset is divisible
	// into, 0 through 8.
	Divisions uint8

	// Reissuable signals whether the issuer can reissue further amounts
	// or change divisibility.
	Reissuable bool

	// AssociatedData is the optional 34 byte content addressed digest
	// attached at creation or reissuance. Nil when absent.
	AssociatedData []byte
}

// Validate checks the metadata invariants.
func (m *Metadata) Validate() error {
	if m.SatsInCirculation == 0 {
		return ErrBadCirculation
	}
	if m.Divisions > MaxDivisions {
		return fmt.Errorf("%w, got %d", ErrBadDivisions, m.Divisions)
	}
	return ValidateAssociatedData(m.AssociatedData)
}

// AssociatedDataAsIPFS returns the base58 IPFS hash rendering of the
// associated data, or an empty string when there is none.
func (m *Metadata) AssociatedDataAsIPFS() string {
	if m.AssociatedData == nil {
		return ""
	}
	return EncodeIPFSHash(m.AssociatedData)
}

// Status derives the deterministic status digest of the metadata: the sha256
// of the ASCII rendering of the circulation, divisions, reissuable flag, the
// presence of associated data and, when present, its IPFS hash form. The
// digest is compared against the one reported by electrum servers to detect
// metadata changes cheaply, so the rendering must match theirs exactly,
// including the capitalized booleans.
func (m *Metadata) Status() string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(m.SatsInCirculation, 10))
	sb.WriteString(strconv.FormatUint(uint64(m.Divisions), 10))
	sb.WriteString(pythonBool(m.Reissuable))
	sb.WriteString(pythonBool(m.AssociatedData != nil))
	if m.AssociatedData != nil {
		sb.WriteString(m.AssociatedDataAsIPFS())
	}

	digest := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(digest[:])
}

// pythonBool renders a bool the way the server side serializes it.
func pythonBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
