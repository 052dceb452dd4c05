// Package logging provides the structured logging facade used across jansctl.
//
// It wraps Go's slog package behind small subsystem-scoped helpers so every
// log line carries a "subsystem" attribute:
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//	logging.Info("Effects", "dispatching %s", act.Type())
//	logging.Error("API", err, "request %s failed", path)
//
// # Subsystems
//
//   - Store: dispatch and reduction
//   - Effects: coordinator tasks and supersession
//   - API: configuration API requests
//   - OAuth: discovery, login, token minting
//   - Session: identity token handling
//   - Console: interactive console
//   - Config: configuration loading
//
// Token values must never be passed to these helpers. Use session.Secret,
// which renders as [REDACTED], when a token-bearing value has to be logged.
package logging
