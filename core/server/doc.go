// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application; this package only defines
// the settings it reads: listen port, request read timeout and the optional
// API key that turns on the auth middleware.
package server
