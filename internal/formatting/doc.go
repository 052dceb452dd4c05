// Package formatting renders command results in the output format the user
// asked for.
//
// Print writes the raw data as JSON, YAML or through a Go template, and uses
// the Table built for the data for the table and wide formats. Tables can
// also be rendered with box drawing for the interactive console.
package formatting
