package asset

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// ErrBadAssociatedData is returned when associated data is present but is not
// exactly AssociatedDataLength bytes once decoded.
var ErrBadAssociatedData = errors.New("associated data must be 34 bytes")

// ValidateAssociatedData checks that associated data, when present, has the
// exact on-chain length. Nil data is valid and means "no associated data".
func ValidateAssociatedData(data []byte) error {
	if data != nil && len(data) != AssociatedDataLength {
		return fmt.Errorf("%w, got %d", ErrBadAssociatedData,
			len(data))
	}
	return nil
}

// ParseAssociatedData normalizes a user supplied associated data string to
// its 34 raw bytes. Both the hex form (68 characters) and the base58 IPFS
// hash form are accepted. An empty string means no associated data and
// returns nil bytes.
func ParseAssociatedData(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}

	if len(s) == hex.EncodedLen(AssociatedDataLength) {
		if data, err := hex.DecodeString(s); err == nil {
			return data, nil
		}
	}

	data := base58.Decode(s)
	if len(data) != AssociatedDataLength {
		return nil, fmt.Errorf("%w: %q decodes to %d bytes",
			ErrBadAssociatedData, s, len(data))
	}
	return data, nil
}

// EncodeIPFSHash renders 34 bytes of associated data in the base58 text form
// users know as an IPFS hash.
func EncodeIPFSHash(data []byte) string {
	return base58.Encode(data)
}
