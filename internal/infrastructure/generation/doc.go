// Package generation implements the deterministic corpus engine: balanced
// sample generation from the catalog vocabulary, artifact encoders for the
// supported formats, and decoding/auditing of existing artifacts.
package generation
