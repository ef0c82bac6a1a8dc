// Package harness runs conformance scenarios against the y2km codec and
// column store.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	range_policy: reject          # or saturate; default reject
//	flow:
//	  - op: parse
//	    values: ["2000-01", "1999-12", "NA"]
//	    expect:
//	      output: ["0", "-1", "NA"]
//	  - op: add_dates
//	    values: ["2000-01"]
//	    other: ["2000-02"]
//	    expect:
//	      error: INVALID_OPERATION
//
// Every element is written as text: YYYY-MM for months, decimal integers for
// month-counts and deltas, true/false for comparisons, NA for missing.
//
// # Operations
//
//   - parse, format: text to month-counts and back
//   - diff: values - other in months
//   - shift, unshift: values + by, values - by
//   - add_dates: values + other (always INVALID_OPERATION)
//   - eq, ne, lt, le, gt, ge: element-wise comparison of values and other
//   - concat: values followed by other
//   - take: gather values at indices, with fill when fill is set
//   - put, get: write and read a stored column
//
// # Deterministic Testing
//
// Each run uses an in-memory store with sequential version IDs
// (testutil.SequentialIDs), so identical scenarios produce identical traces
// for golden file comparison.
package harness
