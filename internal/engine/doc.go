// Package engine resolves free-text temporal expressions to year spans.
//
// ARCHITECTURE:
//
// Rule Cascade:
// A language Variant is an ordered list of named rules built against that
// language's vocabulary. Resolve normalizes the input and offers it to each
// rule in order; the first rule that recognizes the whole input and yields a
// resolved span wins. Later rules are never consulted.
//
// Default order puts specific numeric forms (months, centuries, ranges,
// tolerances) before the lone year, and the named-period rules last, so a
// gazetteer is only consulted for text no numeric rule understood.
//
// Variants are values. Replace, Suppress and the Insert helpers return a new
// Variant and never mutate the receiver or any shared default.
//
// Named periods:
// Labels such as "Edwardian" are looked up through a gazetteer with a
// per-lookup timeout. Any lookup failure (not found, timeout, transport
// error) leaves the input unresolved; it never fails the call.
//
// An Engine is immutable after New and safe for concurrent use.
package engine
