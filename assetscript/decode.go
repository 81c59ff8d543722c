package assetscript

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/txscript"
	"github.com/davecgh/go-spew/spew"

	"github.com/ravenlabs/raven-assets/asset"
)

// ErrMalformedScript is returned when the script itself cannot be
// disassembled, e.g. a push opcode that claims more bytes than the script
// holds. This is distinct from "no asset information": a script that parses
// but carries no complete asset structure yields the VoutNone sentinel
// instead.
var ErrMalformedScript = errors.New("malformed script")

// parsedOpcode is one disassembled script operation: the opcode, its push
// data (nil for non-push opcodes) and the byte offset just past it.
type parsedOpcode struct {
	opcode byte
	data   []byte
	offset int
}

// parseScript disassembles a raw script into its ordered operations.
func parseScript(script []byte) ([]parsedOpcode, error) {
	tokenizer := txscript.MakeScriptTokenizer(0, script)

	var ops []parsedOpcode
	for tokenizer.Next() {
		ops = append(ops, parsedOpcode{
			opcode: tokenizer.Opcode(),
			data:   tokenizer.Data(),
			offset: int(tokenizer.ByteIndex()),
		})
	}
	if err := tokenizer.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedScript, err)
	}
	return ops, nil
}

// payloadReader is a bounds checked cursor over an asset payload. Reads
// report failure instead of panicking or erroring: a truncated payload means
// "no asset information", not a malformed script.
type payloadReader struct {
	buf []byte
	pos int
}

func newPayloadReader(buf []byte) payloadReader {
	return payloadReader{buf: buf}
}

func (r *payloadReader) canRead(n int) bool {
	return len(r.buf)-r.pos >= n
}

func (r *payloadReader) readByte() (byte, bool) {
	if !r.canRead(1) {
		return 0, false
	}
	b := r.buf[r.pos]
	r.pos++
	return b, true
}

func (r *payloadReader) readBytes(n int) ([]byte, bool) {
	if n < 0 || !r.canRead(n) {
		return nil, false
	}
	out := r.buf[r.pos : r.pos+n]
	r.pos += n
	return out, true
}

func (r *payloadReader) readUint64LE() (uint64, bool) {
	raw, ok := r.readBytes(8)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint64(raw), true
}

// ExtractVoutInfo scans an output script for the asset marker and
// reconstructs the structured asset information it carries. Scripts without
// a recognizable, complete asset structure yield the VoutNone sentinel; an
// error is returned only when the script itself cannot be disassembled.
func ExtractVoutInfo(script []byte) (*VoutInfo, error) {
	ops, err := parseScript(script)
	if err != nil {
		return nil, err
	}

	for i, op := range ops {
		if op.opcode != OpRvnAsset {
			continue
		}

		var info *VoutInfo
		if i == 0 {
			var rescan bool
			info, rescan = parseTagScript(ops, script)
			if rescan {
				// The byte after the marker was not a
				// plausible tag layout; the marker may recur
				// later in the script.
				continue
			}
		} else {
			info = parseValueScript(ops, script, i)
		}

		if info == nil {
			break
		}
		log.Tracef("decoded %v asset script: %v", info.Type,
			spew.Sdump(info))
		return info, nil
	}

	return noAssetInfo(), nil
}

// parseTagScript handles scripts that begin with the asset marker: freeze
// tags (marker, two fillers, push), verifier tags (marker, one filler, push)
// and null qualifier tags (marker, hash push, payload push). It returns a
// nil info when the structure is incomplete; rescan is true when the first
// payload byte rules out a tag layout entirely and scanning should resume at
// later marker positions.
func parseTagScript(ops []parsedOpcode, script []byte) (info *VoutInfo,
	rescan bool) {

	if len(ops) < 2 {
		return nil, false
	}

	if ops[1].opcode == opFiller {
		if len(ops) < 3 {
			return nil, false
		}

		if ops[2].opcode == opFiller {
			if len(ops) < 4 {
				return nil, false
			}
			return parseFreezeTag(ops[3].data), false
		}

		return parseVerifierTag(ops[2].data), false
	}

	// Null tag: the script continues with a direct 20 byte hash push, so
	// the byte right after the marker must be the hash length.
	reader := newPayloadReader(script[ops[0].offset:])
	first, ok := reader.readByte()
	if !ok {
		return nil, false
	}
	if first != hash160Len {
		return nil, true
	}
	return parseNullTag(&reader), false
}

// parseFreezeTag decodes the inner payload of a freeze tag: a length
// prefixed name and a flag byte.
func parseFreezeTag(inner []byte) *VoutInfo {
	reader := newPayloadReader(inner)

	nameLen, ok := reader.readByte()
	if !ok {
		return nil
	}
	name, ok := reader.readBytes(int(nameLen))
	if !ok {
		return nil
	}
	flag, ok := reader.readByte()
	if !ok {
		return nil
	}

	return &VoutInfo{
		Type:       VoutFreeze,
		WellFormed: true,
		Name:       string(name),
		Flag:       flag != 0,
	}
}

// parseVerifierTag decodes the inner payload of a verifier tag: the push
// data itself starts with a length byte, i.e. it parses as a one-push
// script.
func parseVerifierTag(inner []byte) *VoutInfo {
	tokenizer := txscript.MakeScriptTokenizer(0, inner)
	if !tokenizer.Next() || tokenizer.Data() == nil {
		return nil
	}

	return &VoutInfo{
		Type:           VoutVerifier,
		WellFormed:     true,
		VerifierString: string(tokenizer.Data()),
	}
}

// parseNullTag decodes a null qualifier tag from the bytes following the
// marker: the 20 byte address hash, an inner payload length, then the length
// prefixed name and a flag byte.
func parseNullTag(reader *payloadReader) *VoutInfo {
	h160, ok := reader.readBytes(hash160Len)
	if !ok {
		return nil
	}

	// Length of the inner push that holds name and flag. The individual
	// field reads below bound the actual content.
	if _, ok := reader.readByte(); !ok {
		return nil
	}

	nameLen, ok := reader.readByte()
	if !ok {
		return nil
	}
	name, ok := reader.readBytes(int(nameLen))
	if !ok {
		return nil
	}
	flag, ok := reader.readByte()
	if !ok {
		return nil
	}

	return &VoutInfo{
		Type:       VoutNull,
		WellFormed: true,
		Name:       string(name),
		H160:       append([]byte{}, h160...),
		Flag:       flag != 0,
	}
}

// parseValueScript handles a marker found after the base spending script:
// create, reissue, owner and transfer payloads.
func parseValueScript(ops []parsedOpcode, script []byte,
	markerIdx int) *VoutInfo {

	assetPortion := script[ops[markerIdx].offset:]
	wellFormed := isWellFormed(ops, assetPortion, markerIdx)

	prefixPos := bytes.Index(assetPortion, assetPrefix)
	if prefixPos < 0 {
		return nil
	}
	if len(assetPortion) < len(assetPrefix)+3 {
		return nil
	}

	reader := newPayloadReader(assetPortion[prefixPos+len(assetPrefix):])

	opType, ok := reader.readByte()
	if !ok {
		return nil
	}
	switch opType {
	case typeCreate, typeOwner, typeTransfer, typeReissue:
	default:
		return nil
	}

	nameLen, ok := reader.readByte()
	if !ok {
		return nil
	}
	nameBytes, ok := reader.readBytes(int(nameLen))
	if !ok {
		return nil
	}
	name := string(nameBytes)

	if opType == typeOwner {
		return ownerInfo(wellFormed, name)
	}

	amount, ok := reader.readUint64LE()
	if !ok {
		return nil
	}

	if opType == typeTransfer {
		return parseTransferTail(&reader, wellFormed, name, amount)
	}

	divisions, ok := reader.readByte()
	if !ok {
		return nil
	}
	reissuableByte, ok := reader.readByte()
	if !ok {
		return nil
	}

	info := &VoutInfo{
		WellFormed: wellFormed,
		Name:       name,
		Amount:     amount,
		Divisions:  divisions,
		Reissuable: reissuableByte == 1,
	}

	switch opType {
	case typeCreate:
		info.Type = VoutCreate
		hasData, ok := reader.readByte()
		if !ok {
			return nil
		}
		if hasData == 1 {
			data, ok := reader.readBytes(
				asset.AssociatedDataLength,
			)
			if !ok {
				return nil
			}
			info.AssociatedData = append([]byte{}, data...)
		}

	case typeReissue:
		info.Type = VoutReissue

		// Reissue payloads carry no has-data flag; presence is
		// inferred from the remaining length.
		if reader.canRead(asset.AssociatedDataLength) {
			data, _ := reader.readBytes(
				asset.AssociatedDataLength,
			)
			info.AssociatedData = append([]byte{}, data...)
		}
	}

	return info
}

// parseTransferTail reads the optional memo and timestamp of a transfer
// payload. There is no presence flag: a memo is read if 34 bytes remain, a
// timestamp if a further 8 remain, so trailing garbage of the right length
// is indistinguishable from a genuine memo. Missing bytes simply mean "no
// memo".
func parseTransferTail(reader *payloadReader, wellFormed bool, name string,
	amount uint64) *VoutInfo {

	info := &VoutInfo{
		Type:       VoutTransfer,
		WellFormed: wellFormed,
		Name:       name,
		Amount:     amount,
	}

	if reader.canRead(asset.AssociatedDataLength) {
		data, _ := reader.readBytes(asset.AssociatedDataLength)
		info.Memo = &Memo{Data: append([]byte{}, data...)}

		if timestamp, ok := reader.readUint64LE(); ok {
			info.Memo.Timestamp = &timestamp
		}
	}

	return info
}

// isWellFormed reports whether everything from the marker onward is exactly
// the canonical minimal push of the payload followed by a single drop, with
// no extra trailing bytes.
func isWellFormed(ops []parsedOpcode, assetPortion []byte,
	markerIdx int) bool {

	if len(ops) <= markerIdx+1 {
		return false
	}
	payload := ops[markerIdx+1].data
	if payload == nil {
		return false
	}

	canonical := append(pushPrefix(len(payload)), payload...)
	canonical = append(canonical, txscript.OP_DROP)
	return bytes.Equal(canonical, assetPortion)
}

// pushPrefix returns the canonical minimal push opcode prefix for a data
// push of n bytes.
func pushPrefix(n int) []byte {
	switch {
	case n < txscript.OP_PUSHDATA1:
		return []byte{byte(n)}
	case n <= 0xff:
		return []byte{txscript.OP_PUSHDATA1, byte(n)}
	case n <= 0xffff:
		prefix := []byte{txscript.OP_PUSHDATA2, 0, 0}
		binary.LittleEndian.PutUint16(prefix[1:], uint16(n))
		return prefix
	default:
		prefix := []byte{txscript.OP_PUSHDATA4, 0, 0, 0, 0}
		binary.LittleEndian.PutUint32(prefix[1:], uint32(n))
		return prefix
	}
}
