// Package actions is the catalog of typed messages exchanged between views,
// the store and the effect runner.
//
// Every catalog entry is a struct implementing Action. Requests are handled
// by effect handlers; each request has a _RESPONSE twin carrying the fetched
// payload on success, or a nil payload and the error on failure. The
// remaining entries (SET_API_ERROR, RESET, SET_ITEM) are reduced directly.
//
// Action is sealed: only this package can add entries, so reducers and
// handlers can rely on Catalog being exhaustive.
package actions
