// Package harness runs scenario files against the resolution engine.
//
// # Scenario Format
//
// A scenario is a YAML file naming a language and a list of expressions
// with the span each must resolve to:
//
//	name: english-core
//	description: "Month, century and range expressions"
//	language: en
//	present: 2000          # optional BP epoch
//	authority: p0kh9ds     # optional gazetteer authority
//	periods:               # optional extra named periods
//	  - {label: Hanoverian, min: 1714, max: 1837}
//	cases:
//	  - input: "May 1066"
//	    expect: "1066/1066"
//	    rule: month-year   # optional
//	  - input: "not a date"
//	    unresolved: true
//
// Spans are written in canonical ISO 8601 year form ("-1065/-1065" is
// 1066 BC). Unknown fields are rejected.
//
// # Named Periods
//
// Scenarios resolve named periods against the embedded period tables of
// package gazetteer, after any periods the scenario lists itself. Run
// accepts WithGazetteer to substitute another source.
//
// # Golden Reports
//
// Report renders a Result as text. AssertGolden and RunWithGolden compare
// that text with testdata/golden/<name>.golden; regenerate with
//
//	go test ./internal/harness -update
package harness
