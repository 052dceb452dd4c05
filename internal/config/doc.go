// Package config loads the jansctl configuration.
//
// The configuration lives in ~/.config/jansctl/config.yaml and is layered
// over built-in defaults:
//
//	server: https://jans.example.org
//	issuer: https://jans.example.org
//	client-id: 2000.admin-ui
//	client-secret: s3cret
//	grant: ujwt
//	scopes:
//	  - https://jans.io/oauth/config/scopes.readonly
//	callback-port: 8765
//	output: table
//	timeout: 30s
//
// Resolve then applies the active context, the environment
// (JANSCTL_SERVER, JANSCTL_ID_TOKEN) and finally command-line flags, each
// layer overriding the previous one.
package config
