// Package vocab holds the per-language word lists that temporal expression
// rules are built from: months, seasons, ordinals, precision prefixes, era
// suffixes, range separators, and the century, millennium and decade words.
//
// Vocabularies are YAML documents. The built-in ones are embedded under
// data/; any file can be checked against the embedded CUE schema with
// Validate before use. A loaded Vocabulary is read-only and safe to share
// between goroutines.
package vocab
