// Package errors provides the classified error primitives used across rvgswg.
//
// A ClassifiedError carries a broad category (config, filesystem, converter,
// feed, ...), a severity and structured context. The build taxonomy maps onto
// severities as follows:
//
//   - SeverityFatal: aborts the run (bad marker file, staging mismatch,
//     unparsable article date)
//   - SeverityError: one unit failed and was skipped (a group write, a document)
//   - SeverityWarning: a feature degraded but the build continues
//
// Example usage:
//
//	err := errors.ConfigError("missing required value").
//		WithContext("field", "website_output").
//		Build()
package errors
