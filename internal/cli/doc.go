// Package cli provides the command-line plumbing shared by the jansctl
// commands.
//
// # Errors
//
// The typed errors in this package carry the guidance printed to the user
// and drive the process exit code:
//   - AuthRequiredError: no identity token or API access token is available
//   - AuthExpiredError: the API rejected the access token with a 401
//   - AuthFailedError: a login or token request failed
//   - PermissionDeniedError: the session lacks a capability, or the API
//     answered 403
//   - ConnectionError: the server could not be reached, classified as TLS,
//     DNS, timeout or network failure
//
// Classify converts the errors produced by the API client into these types.
//
// # Output
//
// Commands render in one of the OutputFormat values. Tables use the
// kubectl-style PlainTableWriter so output can be piped to grep, awk and cut.
// Progress is shown with a spinner on stderr unless --quiet is set.
package cli
