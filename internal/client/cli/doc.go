// Package cli provides the interactive newsdigest terminal client.
//
// It wires configuration, the local database, the REST API client, the
// session store and the page services, and runs a REPL on top of them.
// Every page command is resolved through the router guard: anonymous users
// are sent to the join view and taken back to the page they asked for once
// they log in or register.
//
// Key features:
//   - Register / Login / Logout
//   - Summary cards: show, flip, expand, mark as read, share
//   - Dashboard with text bar charts
//   - Profiles and follow toggling
//   - Chat with the assistant
//   - Manual retry of the last failed page load
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
