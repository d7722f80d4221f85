package panicfmt

import (
	"fmt"

	"github.com/wippyai/cairo-panic/errors"
	"github.com/wippyai/cairo-panic/felt"
)

// MaxPendingLen is the largest pending word length a byte array may declare.
const MaxPendingLen = felt.WordSize - 1

// ByteArrayMagic marks the start of a serialized byte array in a payload.
var ByteArrayMagic = felt.MustParse("0x46a6158a16a947e5916b2a2ca68501a45e93d7110e81aa2d6438b1c57c879a3")

// DecodeByteArray decodes the byte array serialized at the start of felts:
//
//	magic, full_word_count, full_word_1..full_word_n, pending_word, pending_word_len
//
// It returns the payload bytes and the number of elements the encoding spans.
// Any violation of the encoding is reported as a decode-phase *errors.Error
// and nothing is consumed.
func DecodeByteArray(felts []felt.Felt) ([]byte, int, error) {
	if len(felts) == 0 || felts[0] != ByteArrayMagic {
		return nil, 0, errors.InvalidData(errors.PhaseDecode, path("magic"), "sequence does not start with the byte array marker")
	}
	pos := 1

	if pos >= len(felts) {
		return nil, 0, errors.OutOfBounds(errors.PhaseDecode, path("full_word_count"), pos, len(felts))
	}
	count, ok := felts[pos].Uint()
	if !ok {
		return nil, 0, errors.Overflow(errors.PhaseDecode, path("full_word_count"), felts[pos].Hex(), "uint")
	}
	pos++

	if count > uint(len(felts)-pos) {
		return nil, 0, errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
			Path(path("full_word")...).
			Value(count).
			Detail("%d full words declared, %d elements remain", count, len(felts)-pos).
			Build()
	}
	words := int(count)

	payload := make([]byte, 0, words*felt.WordSize+MaxPendingLen)
	for i := 0; i < words; i++ {
		word, ok := felts[pos].Bytes31()
		if !ok {
			return nil, 0, errors.Overflow(errors.PhaseDecode, path(fmt.Sprintf("full_word[%d]", i)), felts[pos].Hex(), "bytes31")
		}
		payload = append(payload, word[:]...)
		pos++
	}

	if pos+1 >= len(felts) {
		field := "pending_word"
		if pos < len(felts) {
			field = "pending_word_len"
		}
		return nil, 0, errors.OutOfBounds(errors.PhaseDecode, path(field), pos+1, len(felts))
	}
	pending, lenFelt := felts[pos], felts[pos+1]

	pendingLen, ok := lenFelt.Uint()
	if !ok {
		return nil, 0, errors.Overflow(errors.PhaseDecode, path("pending_word_len"), lenFelt.Hex(), "uint")
	}
	if pendingLen > MaxPendingLen {
		return nil, 0, errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
			Path(path("pending_word_len")...).
			Value(pendingLen).
			Detail("pending word length %d exceeds %d", pendingLen, MaxPendingLen).
			Build()
	}
	if uint(pending.ByteLen()) > pendingLen {
		return nil, 0, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Path(path("pending_word")...).
			Value(pending.Hex()).
			Detail("pending word has %d significant bytes, length declares %d", pending.ByteLen(), pendingLen).
			Build()
	}

	// ByteLen <= MaxPendingLen, so the packed form always exists.
	word, _ := pending.Bytes31()
	payload = append(payload, word[felt.WordSize-int(pendingLen):]...)
	pos += 2

	return payload, pos, nil
}

func path(field string) []string {
	return []string{"byte_array", field}
}
