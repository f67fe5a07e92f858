// Package cache provides idempotency key tracking for dataset generation
// requests, backed by an in-process map or a redis server.
package cache
