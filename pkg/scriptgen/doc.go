// Package scriptgen orchestrates migration creation and SQL script
// generation.
//
// The workflow is strictly sequential: resolve the migration range from
// the on-disk catalog (or explicit overrides), derive the ticket used to
// name the output, optionally build the startup project, then invoke the
// external migration CLI to emit the script. A failed emission is
// retried exactly once with the tool's no-build flag before the failure
// is surfaced.
package scriptgen
