// Package server holds the HTTP server configuration.
//
// The serve command starts a read-only API over the curated staging tables.
// This package defines its listen port and the API key that protects it.
package server
