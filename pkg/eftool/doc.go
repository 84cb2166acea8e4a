// Package eftool adapts the external dotnet-ef migration CLI.
//
// It detects whether the tool is installed globally or as a
// project-local tool and builds the matching invocation prefix. The
// tool itself is an opaque external collaborator; this package never
// interprets its output beyond the version probe.
package eftool
