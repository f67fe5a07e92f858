// Package connector provides artifact store implementations for persisting
// encoded dataset files.
//
// Two backends are supported: a local filesystem store for single-node
// deployments and an S3-compatible object store for shared deployments
// (AWS S3, MinIO, etc.).
package connector
