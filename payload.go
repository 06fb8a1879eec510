package structmatch

import (
	"strconv"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════════
// PAYLOAD CODEC
// ═══════════════════════════════════════════════════════════════════════════════
// The indexer (external, out of scope) writes one payload string per position
// in the annotations/text fields it indexes. This file owns the encode side
// (so an indexer can use it) and the decode side (so this engine can recover
// the annotation metadata a position carries).
//
// Wire format:
//
//	<lowercased-label> PAYLOAD_SEP <start> ID_SEP <end> ID_SEP <annotId> ID_SEP <parentId>
//
// For a plain token, annotId and parentId are 0 and start/end come from the
// token's own character span — the decoder doesn't need to know which case
// it's looking at; both shapes decode identically.
// ═══════════════════════════════════════════════════════════════════════════════

const (
	// PayloadSep separates the label from the numeric fields.
	PayloadSep = '\x1f' // ASCII unit separator; never appears in analyzed text
	// IDSep separates the four numeric fields from each other.
	IDSep = '\x1e' // ASCII record separator

	// MaxPayloadLength bounds a single payload string; anything longer is
	// treated as corrupt rather than parsed.
	MaxPayloadLength = 1024
)

// EncodePayload builds the wire-format payload string for one occurrence.
// label is lowercased unconditionally — annotation labels are lowercased
// both at index and query time so lookups don't have to case-fold twice.
func EncodePayload(label string, startOffset, endOffset, annotID, parentID int) ([]byte, error) {
	if startOffset < 0 || endOffset < 0 || annotID < 0 || parentID < 0 {
		return nil, invariantErrorf("negative field in payload (start=%d end=%d annot=%d parent=%d)",
			startOffset, endOffset, annotID, parentID)
	}

	var b strings.Builder
	b.WriteString(strings.ToLower(label))
	b.WriteByte(PayloadSep)
	b.WriteString(strconv.Itoa(startOffset))
	b.WriteByte(IDSep)
	b.WriteString(strconv.Itoa(endOffset))
	b.WriteByte(IDSep)
	b.WriteString(strconv.Itoa(annotID))
	b.WriteByte(IDSep)
	b.WriteString(strconv.Itoa(parentID))

	if b.Len() > MaxPayloadLength {
		return nil, corruptPayloadErrorf("encoded payload exceeds %d bytes (got %d)", MaxPayloadLength, b.Len())
	}
	return []byte(b.String()), nil
}

// DecodedPayload is the result of splitting and parsing one payload string.
type DecodedPayload struct {
	Label       string
	StartOffset int
	EndOffset   int
	AnnotID     int
	ParentID    int
}

// DecodePayload parses the wire format produced by EncodePayload. A payload
// that doesn't split into a label plus exactly four integers, or that
// exceeds MaxPayloadLength, is a fatal CORRUPT_PAYLOAD error — there is no
// partial-decode fallback.
func DecodePayload(payload []byte) (DecodedPayload, error) {
	if len(payload) > MaxPayloadLength {
		return DecodedPayload{}, corruptPayloadErrorf("payload exceeds %d bytes (got %d)", MaxPayloadLength, len(payload))
	}

	sepIdx := -1
	for i, c := range payload {
		if c == PayloadSep {
			sepIdx = i
			break
		}
	}
	if sepIdx < 0 {
		return DecodedPayload{}, corruptPayloadErrorf("missing payload separator in %q", payload)
	}

	label := string(payload[:sepIdx])
	fields := strings.Split(string(payload[sepIdx+1:]), string(rune(IDSep)))
	if len(fields) != 4 {
		return DecodedPayload{}, corruptPayloadErrorf("expected 4 numeric fields, got %d in %q", len(fields), payload)
	}

	nums := make([]int, 4)
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return DecodedPayload{}, corruptPayloadErrorf("field %d (%q) is not a non-negative integer", i, f)
		}
		nums[i] = n
	}

	if nums[0] > nums[1] {
		return DecodedPayload{}, corruptPayloadErrorf("startOffset %d exceeds endOffset %d", nums[0], nums[1])
	}

	return DecodedPayload{
		Label:       label,
		StartOffset: nums[0],
		EndOffset:   nums[1],
		AnnotID:     nums[2],
		ParentID:    nums[3],
	}, nil
}
