// Package server runs the HTTP transport of the identity service.
//
// It owns the listener lifecycle: startup, signal handling and graceful
// shutdown, after which the registered resources (hash worker pool,
// database connections) are released in order.
package server
