// Package context provides kubectl-style contexts for jansctl.
//
// A context names a Jans server together with the OpenID issuer used to log
// in to it, so an administrator can switch between environments without
// passing --server on every command.
//
// # Configuration File
//
// Contexts are stored in ~/.config/jansctl/contexts.yaml:
//
//	current-context: production
//	contexts:
//	  - name: local
//	    server: https://localhost
//	  - name: production
//	    server: https://jans.example.org
//	    issuer: https://login.example.org
//	    settings:
//	      output: wide
//
// The issuer defaults to the server URL when omitted.
//
// # Precedence
//
// The active context is, in order: the --context flag, the JANSCTL_CONTEXT
// environment variable, then current-context from the file.
package context
