// Package executor runs external processes for efscript.
//
// Every external collaborator (the migration CLI, git, the build step)
// is invoked through the Runner interface. The real implementation
// streams process output line by line as it arrives so operators can
// watch long-running tools; the Mock implementation records invocations
// for tests.
package executor
