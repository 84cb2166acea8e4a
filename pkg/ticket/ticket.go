// Package ticket derives the short ticket identifier used to name
// generated SQL scripts.
package ticket

import "regexp"

// Tickets follow the issue-tracker convention OS-123 (or OS_123), case
// insensitive, embedded anywhere in a branch or migration name.
var ticketRE = regexp.MustCompile(`(?i)\bOS[-_](\d+)\b`)

// Extract returns the ticket number for the output filename.
//
// Priority order, first match wins: the branch name, then the latest
// migration name, then the latest migration timestamp verbatim. Extract
// is a pure function of its inputs.
func Extract(branch, latestName, latestTS string) string {
	if m := ticketRE.FindStringSubmatch(branch); m != nil {
		return m[1]
	}

	if m := ticketRE.FindStringSubmatch(latestName); m != nil {
		return m[1]
	}

	return latestTS
}
