// Package panicfmt turns the data of a VM panic into a readable message.
//
// A panic payload is a sequence of field elements. Most elements are shown
// on their own as hex, together with their ASCII text when every byte is
// printable:
//
//	0x68656c6c6f ('hello')
//
// A run of elements that starts with ByteArrayMagic and forms a valid byte
// array encoding is shown as one escaped, double-quoted string instead:
//
//	magic, full_word_count, full_word_1..n, pending_word, pending_word_len
//
// When the encoding is malformed the marker is shown as a plain element and
// the elements after it are examined afresh, so a corrupt payload still
// renders every element it holds.
//
//	msg := panicfmt.Message(felts)
//	// Panicked with (0x9999, "hello", 0x776f726c64 ('world'), 0x8888).
//
// All functions are safe for concurrent use on independent payloads.
package panicfmt
