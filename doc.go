// Package cairopanic renders VM panic payloads as human-readable messages.
//
// A panic payload is a list of field elements (felts). Runs of felts that
// encode a byte array are shown as one quoted, escaped string; every other
// felt is shown in hex, with its ASCII form when it is a short string:
//
//	Panicked with (0x1, "short, but string", 0x68656c6c6f ('hello')).
//
// # Packages
//
//	cairopanic/
//	├── felt/        Field element type, parsing and byte views
//	├── panicfmt/    Escaping, short strings, byte array decoding, formatting
//	├── runtime/     wazero host that captures panics from WebAssembly guests
//	├── report/      JSON result envelope and exit codes
//	├── config/      YAML configuration
//	├── errors/      Structured errors with phase and kind
//	└── cmd/panicfmt Command-line tool
//
// # Quick Start
//
//	felts, err := felt.ParseList("0x1 0x68656c6c6f")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(panicfmt.Message(felts))
//	// Panicked with (0x1, 0x68656c6c6f ('hello')).
package cairopanic
