package runtime

import (
	"github.com/wippyai/cairo-panic/felt"
)

// guest assembles a minimal core module for tests:
//
//	(import "<importModule>" "panic" (func (param i32 i32)))
//	(memory (export "memory") 1)
//	(func (export "main") [(result i32)] <body>)
//	(data (i32.const 0) <data>)
type guest struct {
	importModule string
	body         []byte
	data         []byte
	returnsI32   bool
}

func (g guest) bytes() []byte {
	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	mainType := []byte{0x60, 0x00, 0x00}
	if g.returnsI32 {
		mainType = []byte{0x60, 0x00, 0x01, 0x7f}
	}
	types := append([]byte{0x02, 0x60, 0x02, 0x7f, 0x7f, 0x00}, mainType...)
	out = appendSection(out, 1, types)

	imports := []byte{0x01}
	imports = appendName(imports, g.importModule)
	imports = appendName(imports, PanicFunction)
	imports = append(imports, 0x00, 0x00)
	out = appendSection(out, 2, imports)

	out = appendSection(out, 3, []byte{0x01, 0x01})
	out = appendSection(out, 5, []byte{0x01, 0x00, 0x01})

	exports := []byte{0x02}
	exports = appendName(exports, MemoryExport)
	exports = append(exports, 0x02, 0x00)
	exports = appendName(exports, "main")
	exports = append(exports, 0x00, 0x01)
	out = appendSection(out, 7, exports)

	body := append([]byte{0x00}, g.body...)
	body = append(body, 0x0b)
	code := appendULEB([]byte{0x01}, uint32(len(body)))
	code = append(code, body...)
	out = appendSection(out, 10, code)

	if len(g.data) > 0 {
		seg := []byte{0x01, 0x00, 0x41, 0x00, 0x0b}
		seg = appendULEB(seg, uint32(len(g.data)))
		seg = append(seg, g.data...)
		out = appendSection(out, 11, seg)
	}
	return out
}

func appendSection(out []byte, id byte, content []byte) []byte {
	out = append(out, id)
	out = appendULEB(out, uint32(len(content)))
	return append(out, content...)
}

func appendName(out []byte, name string) []byte {
	out = appendULEB(out, uint32(len(name)))
	return append(out, name...)
}

func appendULEB(out []byte, v uint32) []byte {
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(out, c)
		}
		out = append(out, c|0x80)
	}
}

func appendSLEB(out []byte, v int64) []byte {
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && c&0x40 == 0) || (v == -1 && c&0x40 != 0) {
			return append(out, c)
		}
		out = append(out, c|0x80)
	}
}

func i32Const(v int32) []byte {
	return appendSLEB([]byte{0x41}, int64(v))
}

// callPanic emits panic(ptr, count).
func callPanic(ptr, count int32) []byte {
	code := append(i32Const(ptr), i32Const(count)...)
	return append(code, 0x10, 0x00)
}

var unreachable = []byte{0x00}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func feltData(felts ...felt.Felt) []byte {
	out := make([]byte, 0, len(felts)*felt.Size)
	for _, f := range felts {
		b := f.Bytes32()
		out = append(out, b[:]...)
	}
	return out
}
