// Package types holds the context keys shared between the command tree and
// the root command that populates them.
package types

type contextKey string

// ClientAppKey locates the client application on a command context.
const ClientAppKey contextKey = "clientApp"
