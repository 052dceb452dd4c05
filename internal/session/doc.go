// Package session holds the authenticated context of a console run: the
// server, the issuer, the API access token, the identity token and the
// permission set granted with the access token.
//
// A Session is a value. The store owns the current one and hands out copies;
// effect handlers receive a snapshot per invocation and never observe later
// changes. Tokens are wrapped in Secret, which renders as [REDACTED] in every
// fmt, JSON and slog path.
//
// Claims are decoded without signature verification. They drive display and
// permission gating only; the server enforces authorization.
package session
