// Package runtime runs core WebAssembly guests that report panics as a list
// of field elements.
//
// Guests import a single host function:
//
//	(import "env" "panic" (func (param i32 i32)))
//
// The parameters are a pointer into the guest's exported memory and a count
// of felts. Each felt occupies 32 big-endian bytes. The payload is read when
// the guest calls the import, so the guest may trap or return afterwards.
//
//	rt, err := runtime.New(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Close(ctx)
//
//	_, err = rt.Run(ctx, wasm, "main")
//	if pe, ok := runtime.AsPanic(err); ok {
//	    fmt.Println(pe) // Panicked with 0x68656c6c6f ('hello').
//	}
//
// # Configuration
//
// The import module name, a memory limit and the wazero interpreter can be
// selected through Config. A compiled Module may be run from several
// goroutines; every call gets a fresh anonymous instance.
package runtime
