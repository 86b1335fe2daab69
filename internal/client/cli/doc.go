// Package cli provides the interactive book shelf command-line client.
//
// It wires configuration, the cached session token, the API services and an
// interactive REPL. A token saved by an earlier run is reused, so a user
// stays logged in until it expires or they log out.
//
// Key features:
//   - Register / Login / Logout / Me
//   - Add books, list them, show one
//   - Change a book's reading status, delete a book
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
