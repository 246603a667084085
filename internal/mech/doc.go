// Package mech provides core primitives for the composite mechanics engine.
//
// The package defines the types and failure modes shared by every analysis:
//
//   - [Series]: ordered sample vector (strain or stress)
//   - [ParamError]: error carrying the offending parameter and value
//   - [ParallelFor]: chunked fan-out over independent index ranges
//
// # Errors
//
// All validation failures wrap one of four sentinels so callers can
// classify them with errors.Is:
//
//	if errors.Is(err, mech.ErrInvalidParameter) {
//	    // fix inputs and re-run
//	}
//
// # Thread Safety
//
// Nothing in this package holds mutable state. Series values are plain
// slices and must not be shared across goroutines while being written.
package mech
