// Package server holds the operational HTTP server configuration.
//
// The server only exposes run status and manual triggers for operators; the product
// API and its authentication live outside this service.
package server
