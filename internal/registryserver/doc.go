// Package registryserver serves a trip registry over HTTP from an
// in-memory store. It backs local development and integration tests of
// the registry client.
package registryserver
