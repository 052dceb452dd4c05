// Package views renders the store state for the terminal: the reports
// cards, the logging page and the entity tables.
//
// Every control that changes server state is gated on a capability of the
// session. A control is rendered only when the session holds exactly the
// capability it needs; a view whose read capability is missing renders a
// notice instead of its data.
package views
