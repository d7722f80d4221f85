package panicfmt

import (
	stderrors "errors"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/cairo-panic/errors"
	"github.com/wippyai/cairo-panic/felt"
)

// encodeByteArray serializes payload the way a guest program does.
func encodeByteArray(t *testing.T, payload []byte) []felt.Felt {
	t.Helper()

	words := len(payload) / felt.WordSize
	felts := []felt.Felt{ByteArrayMagic, felt.FromUint64(uint64(words))}
	for i := 0; i < words; i++ {
		felts = append(felts, packWord(t, payload[i*felt.WordSize:(i+1)*felt.WordSize]))
	}
	pending := payload[words*felt.WordSize:]
	felts = append(felts, packWord(t, pending), felt.FromUint64(uint64(len(pending))))
	return felts
}

func packWord(t *testing.T, b []byte) felt.Felt {
	t.Helper()

	var buf [felt.Size]byte
	copy(buf[felt.Size-len(b):], b)
	f, err := felt.FromBytes32(buf)
	if err != nil {
		t.Fatalf("pack %x: %v", b, err)
	}
	return f
}

func TestDecodeByteArray_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	randomBytes := func(n int) []byte {
		b := make([]byte, n)
		rng.Read(b)
		return b
	}

	tests := []struct {
		name    string
		payload []byte
	}{
		{name: "empty", payload: []byte{}},
		{name: "one byte", payload: []byte("a")},
		{name: "leading zeros", payload: []byte("\x00\x00a")},
		{name: "only zeros", payload: make([]byte, 5)},
		{name: "thirty bytes", payload: []byte(strings.Repeat("x", 30))},
		{name: "one full word", payload: []byte(strings.Repeat("y", 31))},
		{name: "full word plus one", payload: append([]byte(strings.Repeat("z", 31)), '!')},
		{name: "two full words", payload: randomBytes(62)},
		{name: "zero full word", payload: make([]byte, 31)},
		{name: "random long", payload: randomBytes(200)},
		{name: "embedded nul", payload: []byte("Hello\x00world")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := encodeByteArray(t, tt.payload)
			trailing := append(encoded, felt.FromUint64(0x8888))

			got, consumed, err := DecodeByteArray(trailing)
			if err != nil {
				t.Fatalf("DecodeByteArray failed: %v", err)
			}
			if consumed != len(encoded) {
				t.Errorf("consumed = %d, want %d", consumed, len(encoded))
			}
			if wantConsumed := 4 + len(tt.payload)/felt.WordSize; consumed != wantConsumed {
				t.Errorf("consumed = %d, want 4 + full words = %d", consumed, wantConsumed)
			}
			if diff := cmp.Diff(tt.payload, got); diff != "" {
				t.Errorf("payload mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeByteArray_Rejections(t *testing.T) {
	magic := ByteArrayMagic
	n := felt.FromUint64
	tooWide := felt.MustParse("0x161616161616161616161616161616161616161616161616161616161616161")
	big := felt.MustParse("0x1" + strings.Repeat("0", 32))

	// 2^32 fits a 64-bit uint and then exceeds the remaining elements; a
	// 32-bit uint cannot hold it at all.
	countKind, countField := errors.KindOutOfBounds, "full_word"
	pendingKind := errors.KindOutOfBounds
	if strconv.IntSize == 32 {
		countKind, countField = errors.KindOverflow, "full_word_count"
		pendingKind = errors.KindOverflow
	}

	tests := []struct {
		name  string
		felts []felt.Felt
		kind  errors.Kind
		field string
	}{
		{name: "empty", felts: nil, kind: errors.KindInvalidData, field: "magic"},
		{name: "no magic", felts: []felt.Felt{n(1)}, kind: errors.KindInvalidData, field: "magic"},
		{name: "magic only", felts: []felt.Felt{magic}, kind: errors.KindOutOfBounds, field: "full_word_count"},
		{name: "count overflows uint", felts: []felt.Felt{magic, big}, kind: errors.KindOverflow, field: "full_word_count"},
		{name: "count of 2^32", felts: []felt.Felt{magic, felt.MustParse("0x100000000")}, kind: countKind, field: countField},
		{name: "missing pending word", felts: []felt.Felt{magic, n(0)}, kind: errors.KindOutOfBounds, field: "pending_word"},
		{name: "missing pending length", felts: []felt.Felt{magic, n(1), n(0), n(0)}, kind: errors.KindOutOfBounds, field: "pending_word_len"},
		{name: "full word too wide", felts: []felt.Felt{magic, n(1), tooWide, n(0), n(0)}, kind: errors.KindOverflow, field: "full_word[0]"},
		{name: "pending length overflows uint", felts: []felt.Felt{magic, n(0), n(0), big}, kind: errors.KindOverflow, field: "pending_word_len"},
		{name: "pending length of 2^32", felts: []felt.Felt{magic, n(0), n(0), felt.MustParse("0x100000000")}, kind: pendingKind, field: "pending_word_len"},
		{name: "pending length above 30", felts: []felt.Felt{magic, n(0), n(0), n(31)}, kind: errors.KindOutOfBounds, field: "pending_word_len"},
		{name: "pending word wider than length", felts: []felt.Felt{magic, n(0), n(0x6161), n(1)}, kind: errors.KindInvalidData, field: "pending_word"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, consumed, err := DecodeByteArray(tt.felts)
			if err == nil {
				t.Fatalf("DecodeByteArray succeeded with %q", payload)
			}
			if consumed != 0 || payload != nil {
				t.Errorf("rejection returned consumed=%d payload=%q", consumed, payload)
			}

			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("error %T is not *errors.Error", err)
			}
			if e.Phase != errors.PhaseDecode || e.Kind != tt.kind {
				t.Errorf("got %s/%s, want decode/%s (%v)", e.Phase, e.Kind, tt.kind, err)
			}
			if diff := cmp.Diff([]string{"byte_array", tt.field}, e.Path); diff != "" {
				t.Errorf("Path mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeByteArray_PendingBoundaries(t *testing.T) {
	n := felt.FromUint64

	t.Run("zero length empty word", func(t *testing.T) {
		payload, consumed, err := DecodeByteArray([]felt.Felt{ByteArrayMagic, n(0), n(0), n(0)})
		if err != nil {
			t.Fatalf("DecodeByteArray failed: %v", err)
		}
		if len(payload) != 0 || consumed != 4 {
			t.Errorf("payload=%q consumed=%d", payload, consumed)
		}
	})

	t.Run("length 30", func(t *testing.T) {
		word := felt.MustParse("0x" + strings.Repeat("41", 30))
		payload, _, err := DecodeByteArray([]felt.Felt{ByteArrayMagic, n(0), word, n(30)})
		if err != nil {
			t.Fatalf("DecodeByteArray failed: %v", err)
		}
		if string(payload) != strings.Repeat("A", 30) {
			t.Errorf("payload = %q", payload)
		}
	})

	t.Run("implicit leading zero", func(t *testing.T) {
		payload, _, err := DecodeByteArray([]felt.Felt{ByteArrayMagic, n(0), n(0x61), n(2)})
		if err != nil {
			t.Fatalf("DecodeByteArray failed: %v", err)
		}
		if diff := cmp.Diff([]byte{0x00, 0x61}, payload); diff != "" {
			t.Errorf("payload mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestCursor_AlwaysAdvances(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pool := []felt.Felt{
		ByteArrayMagic,
		felt.Zero,
		felt.FromUint64(1),
		felt.FromUint64(2),
		felt.FromUint64(17),
		felt.FromUint64(31),
		felt.MustParse("0x68656c6c6f"),
		felt.MustParse("0x100000000"),
	}

	for round := 0; round < 500; round++ {
		felts := make([]felt.Felt, rng.Intn(12))
		for i := range felts {
			felts[i] = pool[rng.Intn(len(pool))]
		}

		c := NewCursor(felts)
		steps := 0
		for {
			before := c.Pos()
			item, ok := c.Next()
			if !ok {
				break
			}
			steps++
			if c.Pos() <= before {
				t.Fatalf("cursor did not advance on %v at %d", felts, before)
			}
			if item.Kind == ItemPlain && item.Felt != felts[before] {
				t.Fatalf("plain item %s does not match element %s", item.Felt, felts[before])
			}
		}
		if !c.Done() || c.Pos() != len(felts) {
			t.Fatalf("cursor stopped at %d of %d", c.Pos(), len(felts))
		}
		if steps > len(felts) {
			t.Fatalf("%d items from %d elements", steps, len(felts))
		}
	}
}

func TestCursor_FallbackConsumesOnlyMagic(t *testing.T) {
	felts := []felt.Felt{ByteArrayMagic, felt.FromUint64(0), felt.FromUint64(0x6161), felt.FromUint64(1)}
	c := NewCursor(felts)

	item, ok := c.Next()
	if !ok || item.Kind != ItemPlain || item.Felt != ByteArrayMagic {
		t.Fatalf("first item = %+v, %v", item, ok)
	}
	if c.Pos() != 1 {
		t.Fatalf("Pos = %d after fallback, want 1", c.Pos())
	}

	var rest []string
	for {
		item, ok := c.Next()
		if !ok {
			break
		}
		rest = append(rest, item.String())
	}
	want := []string{"0x0 ('')", "0x6161 ('aa')", "0x1"}
	if diff := cmp.Diff(want, rest); diff != "" {
		t.Errorf("remaining items mismatch (-want +got):\n%s", diff)
	}
}

func TestCursor_Exhausted(t *testing.T) {
	c := NewCursor(nil)
	if !c.Done() {
		t.Error("empty cursor should be done")
	}
	if _, ok := c.Next(); ok {
		t.Error("Next on empty cursor returned an item")
	}
}
