// Package messaging provides event publisher implementations for dataset
// lifecycle events.
package messaging
