// Package corpus holds the word-aligned headline vocabulary used to build
// labeled financial-news datasets: the ticker universe, the per-category
// headline templates and the rendering rules that turn them into samples.
package corpus
