// Package span provides the year-span value produced by expression resolution.
//
// This package contains value types only. Every other internal package may
// import span; span imports nothing internal.
//
// Year model:
//   - AD year n is held as n
//   - BC year n is held as -n (there is no year zero)
//   - Canonical output is ISO-8601 style astronomical numbering, so BC years
//     shift by one on the way out (1 BC prints as "0000")
//   - Spans are inclusive on both ends and always ordered min <= max
package span
