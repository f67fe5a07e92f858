// Package datasets defines the domain entities and service contracts for
// generated corpus artifacts: dataset metadata, generation requests, query
// filters and the storage/eventing interfaces the application layer depends
// on.
package datasets
